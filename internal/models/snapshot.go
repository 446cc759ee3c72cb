package models

import "time"

const SnapshotVersion = 1

// Snapshot is the archive format of the whole data directory.
type Snapshot struct {
	Version     int                 `json:"version"`
	CreatedAt   time.Time           `json:"created_at"`
	Collections map[string][]Record `json:"collections"`
	Config      Record              `json:"config,omitempty"`
}
