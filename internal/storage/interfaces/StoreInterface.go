package interfaces

import "recstore/internal/models"

// CollectionStoreInterface persists one collection as a JSON array.
type CollectionStoreInterface interface {
	Collection() models.Collection
	Exists() (bool, error)
	Load() ([]models.Record, error)
	// Raw returns the stored document even when it is not an array.
	Raw() (models.Record, error)
	// Save upserts record by the collection's unique key and returns the
	// resulting number of records.
	Save(record models.Record) (int, error)
	Replace(records []models.Record) error
}

// ConfigStoreInterface persists the single config object.
type ConfigStoreInterface interface {
	Exists() (bool, error)
	Load() (models.Record, error)
	Save(data models.Record) error
}
