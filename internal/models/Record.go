package models

import (
	"math"

	json "github.com/goccy/go-json"
)

// Record is a client supplied JSON document. The bytes are kept as received
// so key order survives a round trip through the store; encoding goes
// through Stringify.
type Record []byte

func (r Record) MarshalJSON() ([]byte, error) {
	return r.Stringify("")
}

func (r *Record) UnmarshalJSON(data []byte) error {
	*r = append((*r)[:0], data...)
	return nil
}

// Value decodes the whole record.
func (r Record) Value() (any, error) {
	if len(r) == 0 {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(r, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Field returns the decoded value at key. ok is false when the record is not
// an object or the key is absent.
func (r Record) Field(key string) (value any, ok bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(r, &fields); err != nil {
		return nil, false
	}
	raw, ok := fields[key]
	if !ok {
		return nil, false
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, false
	}
	return value, true
}

// Truthy reports whether the record is present and not a falsy literal.
func (r Record) Truthy() bool {
	v, err := r.Value()
	if err != nil {
		return false
	}
	return Truthy(v)
}

// Truthy follows loose JSON truthiness: null, false, 0, NaN and "" are falsy,
// everything else including empty objects and arrays is truthy.
func Truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0 && !math.IsNaN(val)
	case string:
		return val != ""
	default:
		return true
	}
}

// StrictEqual compares two decoded JSON values by type and value. Objects and
// arrays are never equal, mirroring identity comparison of freshly parsed data.
func StrictEqual(a, b any) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	default:
		return false
	}
}

// Upsert drops every record whose uniqueKey value equals the incoming one and
// appends record at the end. When the incoming key is missing or falsy it
// only appends.
func Upsert(records []Record, record Record, uniqueKey string) []Record {
	if uniqueKey != "" {
		if key, ok := record.Field(uniqueKey); ok && Truthy(key) {
			kept := records[:0:0]
			for _, existing := range records {
				if v, ok := existing.Field(uniqueKey); ok && StrictEqual(v, key) {
					continue
				}
				kept = append(kept, existing)
			}
			records = kept
		}
	}
	return append(records, record)
}
