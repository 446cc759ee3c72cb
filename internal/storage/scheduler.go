package storage

import (
	"recstore/internal/providers"
	"recstore/internal/storage/interfaces"
	"recstore/internal/structures"
	"sync"

	"github.com/roylee0704/gron"
)

type Scheduler struct {
	config          *structures.Config
	logger          providers.Logger
	snapshotManager *SnapshotManager
	cron            *gron.Cron
	opsMu           sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Snapshot.SaveInterval), func() {
		if err := s.persist(); err != nil {
			return
		}
		s.logger.Infof(providers.TypeApp, "Snapshot written to %s", s.config.Snapshot.FilePath)
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	if !s.config.Snapshot.RestoreOnStart {
		return nil
	}
	return s.snapshotManager.LoadFromFile(s.config.Snapshot.FilePath)
}

func (s *Scheduler) Persist() error {
	s.logger.Infof(providers.TypeApp, "Writing snapshot to file...")
	return s.persist()
}

func (s *Scheduler) Close() {
	s.snapshotManager.Close()
}

func (s *Scheduler) persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	err := s.snapshotManager.SaveToFile(s.config.Snapshot.FilePath)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while writing snapshot: %s", err)
		return err
	}
	return nil
}

// noopScheduler is used when snapshots are disabled. It still owns the
// snapshot manager so the compressor is released on Close.
type noopScheduler struct {
	snapshotManager *SnapshotManager
}

func (n *noopScheduler) Init()          {}
func (n *noopScheduler) Stop()          {}
func (n *noopScheduler) Restore() error { return nil }
func (n *noopScheduler) Persist() error { return nil }

func (n *noopScheduler) Close() {
	if n.snapshotManager != nil {
		n.snapshotManager.Close()
	}
}

func NewScheduler(config *structures.Config, logger providers.Logger, snapshotManager *SnapshotManager) interfaces.SchedulerInterface {
	if !config.Snapshot.Enabled {
		return &noopScheduler{snapshotManager: snapshotManager}
	}
	return &Scheduler{
		config:          config,
		logger:          logger,
		snapshotManager: snapshotManager,
	}
}
