package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"recstore/internal/models"
	"recstore/internal/providers"
	"recstore/internal/storage/interfaces"
	"recstore/internal/structures"
)

// Registry maps every kind to the store that persists it.
type Registry struct {
	dataDir     string
	collections map[models.Kind]interfaces.CollectionStoreInterface
	config      interfaces.ConfigStoreInterface
}

func NewRegistry(dataDir string, config interfaces.ConfigStoreInterface, collections ...interfaces.CollectionStoreInterface) *Registry {
	r := &Registry{
		dataDir:     dataDir,
		collections: make(map[models.Kind]interfaces.CollectionStoreInterface, len(collections)),
		config:      config,
	}
	for _, c := range collections {
		r.collections[c.Collection().Kind] = c
	}
	return r
}

// NewFileRegistry resolves the data directory against the working directory,
// creates it when missing and wires a file store per kind.
func NewFileRegistry(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) (*Registry, error) {
	dataDir, err := filepath.Abs(conf.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	writer := &fileWriter{
		mode:   os.FileMode(conf.Storage.FileMode),
		atomic: conf.Storage.AtomicWrites,
	}
	if conf.Storage.AtomicWrites || conf.Storage.LockWrites {
		logger.Warnf(providers.TypeApp, "Write hardening enabled (atomic=%t, lock=%t)", conf.Storage.AtomicWrites, conf.Storage.LockWrites)
	}

	stores := make([]interfaces.CollectionStoreInterface, 0, len(models.Collections()))
	for _, c := range models.Collections() {
		stores = append(stores, NewFileCollectionStore(dataDir, c, writer, conf.Storage.LockWrites, logger, metrics))
	}

	logger.Infof(providers.TypeApp, "Data directory %s", dataDir)
	return NewRegistry(dataDir, NewFileConfigStore(dataDir, writer, metrics), stores...), nil
}

func NewMemoryRegistry() *Registry {
	stores := make([]interfaces.CollectionStoreInterface, 0, len(models.Collections()))
	for _, c := range models.Collections() {
		stores = append(stores, NewMemoryCollectionStore(c))
	}
	return NewRegistry("", NewMemoryConfigStore(), stores...)
}

func (r *Registry) DataDir() string {
	return r.dataDir
}

func (r *Registry) Collection(kind models.Kind) (interfaces.CollectionStoreInterface, error) {
	store, ok := r.collections[kind]
	if !ok {
		return nil, models.ErrNotCollection
	}
	return store, nil
}

// Collections returns the stores in models.Collections order.
func (r *Registry) Collections() []interfaces.CollectionStoreInterface {
	out := make([]interfaces.CollectionStoreInterface, 0, len(r.collections))
	for _, c := range models.Collections() {
		if store, ok := r.collections[c.Kind]; ok {
			out = append(out, store)
		}
	}
	return out
}

func (r *Registry) Config() interfaces.ConfigStoreInterface {
	return r.config
}
