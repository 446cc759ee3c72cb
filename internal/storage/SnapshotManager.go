package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"recstore/internal/models"
	"recstore/internal/providers"
	"recstore/internal/storage/interfaces"
	"time"

	json "github.com/goccy/go-json"
)

var ErrSnapshotVersion = errors.New("unsupported snapshot version")

// SnapshotManager archives every collection and the config object into one
// compressed file and restores missing data files from it.
type SnapshotManager struct {
	registry   *Registry
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

func NewSnapshotManager(compressor interfaces.CompressorInterface, registry *Registry, logger providers.Logger, metrics providers.MetricsProviderInterface) *SnapshotManager {
	return &SnapshotManager{
		registry:   registry,
		compressor: compressor,
		logger:     logger,
		metrics:    metrics,
	}
}

func (m *SnapshotManager) Capture() (*models.Snapshot, error) {
	snapshot := &models.Snapshot{
		Version:     models.SnapshotVersion,
		CreatedAt:   time.Now().UTC(),
		Collections: make(map[string][]models.Record),
	}

	for _, store := range m.registry.Collections() {
		records, err := store.Load()
		if err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", store.Collection().Kind, err)
		}
		snapshot.Collections[store.Collection().Kind.String()] = records
	}

	exists, err := m.registry.Config().Exists()
	if err != nil {
		return nil, err
	}
	if exists {
		cfg, err := m.registry.Config().Load()
		if err != nil {
			return nil, fmt.Errorf("snapshot config: %w", err)
		}
		snapshot.Config = cfg
	}
	return snapshot, nil
}

func (m *SnapshotManager) SaveToFile(fileName string) error {
	start := time.Now()
	defer func() {
		m.metrics.ObservePersistenceDuration(time.Since(start))
	}()

	snapshot, err := m.Capture()
	if err != nil {
		return err
	}

	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	data, err := m.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fileName), 0755); err != nil {
		return err
	}
	writer := &fileWriter{mode: 0644, atomic: true}
	return writer.write(fileName, data)
}

// LoadFromFile restores collections and config whose files do not exist yet.
// Existing data is never overwritten. A missing snapshot is not an error.
func (m *SnapshotManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressed, err := m.compressor.Decompress(data)
	if err != nil {
		return err
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(decompressed, &snapshot); err != nil {
		return err
	}
	if snapshot.Version != models.SnapshotVersion {
		return fmt.Errorf("%w: %d", ErrSnapshotVersion, snapshot.Version)
	}

	for _, store := range m.registry.Collections() {
		name := store.Collection().Kind.String()
		records, ok := snapshot.Collections[name]
		if !ok {
			continue
		}
		exists, err := store.Exists()
		if err != nil {
			return err
		}
		if exists {
			m.logger.Debugf(providers.TypeApp, "Snapshot restore skipped %s: file present", name)
			continue
		}
		if err := store.Replace(records); err != nil {
			return fmt.Errorf("restore %s: %w", name, err)
		}
		m.logger.Infof(providers.TypeApp, "Restored %d %s records from snapshot", len(records), name)
	}

	if len(snapshot.Config) > 0 {
		exists, err := m.registry.Config().Exists()
		if err != nil {
			return err
		}
		if !exists {
			if err := m.registry.Config().Save(snapshot.Config); err != nil {
				return fmt.Errorf("restore config: %w", err)
			}
			m.logger.Infof(providers.TypeApp, "Restored config from snapshot")
		}
	}
	return nil
}

func (m *SnapshotManager) Close() {
	m.compressor.Close()
}
