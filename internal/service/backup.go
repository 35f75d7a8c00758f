package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskboard/internal/backup"
	"github.com/BuzzLyutic/taskboard/internal/metrics"
)

const (
	TriggerManual    = "manual"
	TriggerScheduled = "scheduled"
)

type BackupService struct {
	rotator *backup.Rotator
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func NewBackupService(rotator *backup.Rotator, logger *zap.Logger, m *metrics.Metrics) *BackupService {
	return &BackupService{rotator: rotator, logger: logger, metrics: m}
}

// Create takes a backup and applies retention. trigger is recorded in metrics.
func (s *BackupService) Create(ctx context.Context, trigger string) (string, error) {
	name, removed, err := s.rotator.Create(ctx)
	s.metrics.Backup(trigger, err)
	s.metrics.BackupsPruned(len(removed))
	if err != nil {
		return name, err
	}

	s.logger.Info("backup created",
		zap.String("name", name),
		zap.String("trigger", trigger),
		zap.Strings("pruned", removed),
	)
	return name, nil
}

func (s *BackupService) List() ([]string, error) {
	return s.rotator.List()
}

// Recent returns at most n of the newest backups.
func (s *BackupService) Recent(n int) ([]string, error) {
	names, err := s.rotator.List()
	if err != nil {
		return nil, err
	}
	if len(names) > n {
		names = names[:n]
	}
	return names, nil
}

func (s *BackupService) Path(name string) (string, error) {
	return s.rotator.Path(name)
}
