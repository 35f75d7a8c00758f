package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskboard/internal/backup"
	"github.com/BuzzLyutic/taskboard/internal/config"
	"github.com/BuzzLyutic/taskboard/internal/logger"
	"github.com/BuzzLyutic/taskboard/internal/metrics"
	"github.com/BuzzLyutic/taskboard/internal/repo"
)

// app holds the wiring shared by every subcommand.
type app struct {
	cfg         config.Config
	logger      *zap.Logger
	metrics     *metrics.Metrics
	tasks       repo.TaskRepository
	credentials repo.CredentialRepository
	rotator     *backup.Rotator
	closers     []func()
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogDevelopment)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	a := &app{cfg: cfg, logger: log, metrics: metrics.New()}
	a.closers = append(a.closers, func() { _ = log.Sync() })

	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := repo.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		a.tasks = repo.NewTaskRepo(pool)
		a.credentials = repo.NewCredentialRepo(pool)
		// Бэкап копированием файла для PostgreSQL невозможен
		a.rotator = backup.NewRotator("", cfg.BackupDir, cfg.BackupKeep)
		log.Info("Successfully connected to the Database!", zap.String("driver", cfg.Driver))

	default:
		db, err := repo.OpenSQLite(cfg.DatabasePath, cfg.DatabaseDebug)
		if err != nil {
			a.close()
			return nil, err
		}
		a.closers = append(a.closers, func() {
			if err := repo.CloseSQLite(db); err != nil {
				log.Warn("failed to close sqlite", zap.Error(err))
			}
		})
		a.tasks = repo.NewSQLiteTaskRepo(db)
		a.credentials = repo.NewSQLiteCredentialRepo(db)
		a.rotator = backup.NewRotator(cfg.DatabasePath, cfg.BackupDir, cfg.BackupKeep)
		log.Info("Successfully opened the Database!", zap.String("driver", cfg.Driver), zap.String("path", cfg.DatabasePath))
	}

	return a, nil
}

// close runs closers in reverse order.
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
