package models

import (
	"errors"

	json "github.com/goccy/go-json"
)

var (
	ErrInvalidKind   = errors.New("invalid data type")
	ErrNotCollection = errors.New("kind is not a collection")
)

// Kind is the parsed value of the "type" discriminator.
type Kind int

const (
	KindUnknown Kind = iota
	KindVideo
	KindUser
	KindGroup
	KindConfig
)

// Collection describes the on-disk file and unique key of a collection kind.
type Collection struct {
	Kind      Kind
	FileName  string
	UniqueKey string
	singular  string
	plural    string
}

const ConfigFileName = "config.json"

var collections = []Collection{
	{Kind: KindVideo, FileName: "videos.json", UniqueKey: "file_id", singular: "Video", plural: "Videos"},
	{Kind: KindUser, FileName: "users.json", UniqueKey: "user_id", singular: "User", plural: "Users"},
	{Kind: KindGroup, FileName: "groups.json", UniqueKey: "group_id", singular: "Group", plural: "Groups"},
}

var kindNames = map[Kind]string{
	KindVideo:  "video",
	KindUser:   "user",
	KindGroup:  "group",
	KindConfig: "config",
}

// Collections returns the descriptors of every collection kind in a stable order.
func Collections() []Collection {
	out := make([]Collection, len(collections))
	copy(out, collections)
	return out
}

func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return KindUnknown, false
}

// KindFromJSON parses a raw "type" value. Only JSON strings can name a kind.
func KindFromJSON(raw []byte) (Kind, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return KindUnknown, false
	}
	return ParseKind(s)
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

func (k Kind) IsCollection() bool {
	_, err := k.Collection()
	return err == nil
}

func (k Kind) Collection() (Collection, error) {
	for _, c := range collections {
		if c.Kind == k {
			return c, nil
		}
	}
	return Collection{}, ErrNotCollection
}

func (k Kind) SavedMessage() string {
	if k == KindConfig {
		return "Config saved"
	}
	if c, err := k.Collection(); err == nil {
		return c.singular + " saved"
	}
	return ""
}

func (k Kind) LoadedMessage() string {
	if k == KindConfig {
		return "Config loaded"
	}
	if c, err := k.Collection(); err == nil {
		return c.plural + " loaded"
	}
	return ""
}
