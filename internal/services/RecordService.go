package services

import (
	"errors"
	"fmt"
	"recstore/internal/models"
	"recstore/internal/providers"
	"recstore/internal/storage"
)

type RecordServiceInterface interface {
	Save(kind models.Kind, data models.Record) error
	Load(kind models.Kind) (any, error)
	Counts() (map[string]int, error)
	DataDir() string
}

type RecordService struct {
	registry *storage.Registry
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
}

func NewRecordService(registry *storage.Registry, logger providers.Logger, metrics providers.MetricsProviderInterface) RecordServiceInterface {
	return &RecordService{
		registry: registry,
		logger:   logger,
		metrics:  metrics,
	}
}

// Save upserts data into the collection of kind, or replaces the config
// object when kind is KindConfig.
func (rs *RecordService) Save(kind models.Kind, data models.Record) error {
	if kind == models.KindConfig {
		if err := rs.registry.Config().Save(data); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		rs.logger.Debugf(providers.TypePost, "Config replaced")
		return nil
	}

	store, err := rs.registry.Collection(kind)
	if err != nil {
		return fmt.Errorf("%w: %s", models.ErrInvalidKind, kind)
	}

	count, err := store.Save(data)
	if err != nil {
		return fmt.Errorf("save %s: %w", kind, err)
	}
	rs.metrics.SetRecordsTotal(kind.String(), count)
	rs.logger.Debugf(providers.TypePost, "Saved %s record, collection size %d", kind, count)
	return nil
}

// Load returns []models.Record for collections and a models.Record for the
// config object.
func (rs *RecordService) Load(kind models.Kind) (any, error) {
	if kind == models.KindConfig {
		cfg, err := rs.registry.Config().Load()
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		return cfg, nil
	}

	store, err := rs.registry.Collection(kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidKind, kind)
	}

	records, err := store.Load()
	if errors.Is(err, storage.ErrNotArray) {
		// a hand-edited file is served as it is; saving to it still fails
		raw, rawErr := store.Raw()
		if rawErr != nil {
			return nil, fmt.Errorf("load %s: %w", kind, rawErr)
		}
		rs.logger.Warnf(providers.TypeGet, "%s does not hold a JSON array", store.Collection().FileName)
		return raw, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", kind, err)
	}
	rs.metrics.SetRecordsTotal(kind.String(), len(records))
	return records, nil
}

func (rs *RecordService) Counts() (map[string]int, error) {
	counts := make(map[string]int)
	for _, store := range rs.registry.Collections() {
		kind := store.Collection().Kind
		records, err := store.Load()
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", kind, err)
		}
		counts[kind.String()] = len(records)
	}
	return counts, nil
}

func (rs *RecordService) DataDir() string {
	return rs.registry.DataDir()
}
