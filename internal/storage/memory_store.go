package storage

import (
	"recstore/internal/models"
	"sync"
)

// MemoryCollectionStore is an in-process stand-in for FileCollectionStore.
type MemoryCollectionStore struct {
	mu         sync.Mutex
	collection models.Collection
	records    []models.Record
	created    bool
}

func NewMemoryCollectionStore(collection models.Collection) *MemoryCollectionStore {
	return &MemoryCollectionStore{collection: collection}
}

func (s *MemoryCollectionStore) Collection() models.Collection {
	return s.collection
}

func (s *MemoryCollectionStore) Exists() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.created, nil
}

func (s *MemoryCollectionStore) Load() ([]models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = true
	out := make([]models.Record, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *MemoryCollectionStore) Raw() (models.Record, error) {
	records, err := s.Load()
	if err != nil {
		return nil, err
	}
	return models.StringifyArray(records, "")
}

func (s *MemoryCollectionStore) Save(record models.Record) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = true
	s.records = models.Upsert(s.records, cloneRecord(record), s.collection.UniqueKey)
	return len(s.records), nil
}

func (s *MemoryCollectionStore) Replace(records []models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = true
	s.records = make([]models.Record, 0, len(records))
	for _, r := range records {
		s.records = append(s.records, cloneRecord(r))
	}
	return nil
}

type MemoryConfigStore struct {
	mu   sync.Mutex
	data models.Record
}

func NewMemoryConfigStore() *MemoryConfigStore {
	return &MemoryConfigStore{}
}

func (s *MemoryConfigStore) Exists() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data != nil, nil
}

func (s *MemoryConfigStore) Load() (models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return models.Record("{}"), nil
	}
	return cloneRecord(s.data), nil
}

func (s *MemoryConfigStore) Save(data models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = cloneRecord(data)
	return nil
}

func cloneRecord(r models.Record) models.Record {
	out := make(models.Record, len(r))
	copy(out, r)
	return out
}
