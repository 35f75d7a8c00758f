package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskboard/internal/service"
)

type BackupCreator interface {
	Create(ctx context.Context, trigger string) (string, error)
}

var _ BackupCreator = (*service.BackupService)(nil)

// BackupWorker takes a backup every interval until stopped.
type BackupWorker struct {
	backups  BackupCreator
	logger   *zap.Logger
	interval time.Duration
	wg       sync.WaitGroup
	stop     chan struct{}
	once     sync.Once
}

func NewBackupWorker(backups BackupCreator, logger *zap.Logger, interval time.Duration) *BackupWorker {
	return &BackupWorker{
		backups:  backups,
		logger:   logger,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (w *BackupWorker) Start(ctx context.Context) {
	w.logger.Info("Starting backup worker", zap.Duration("interval", w.interval))

	w.wg.Add(1)
	go w.run(ctx)
}

func (w *BackupWorker) Stop() {
	w.once.Do(func() {
		w.logger.Info("Stopping backup worker...")
		close(w.stop)
	})
	w.wg.Wait()
	w.logger.Info("Backup worker stopped")
}

func (w *BackupWorker) run(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := w.backups.Create(ctx, service.TriggerScheduled); err != nil {
				w.logger.Error("scheduled backup failed", zap.Error(err))
			}
		}
	}
}
