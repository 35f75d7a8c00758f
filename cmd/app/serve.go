package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskboard/internal/auth"
	"github.com/BuzzLyutic/taskboard/internal/handler"
	"github.com/BuzzLyutic/taskboard/internal/service"
	"github.com/BuzzLyutic/taskboard/internal/worker"
)

func newServeCmd() *cobra.Command {
	var secureCookie bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()
			return serve(a, secureCookie)
		},
	}
	cmd.Flags().BoolVar(&secureCookie, "secure-cookie", false, "mark the session cookie Secure (behind TLS)")
	return cmd
}

func serve(a *app, secureCookie bool) error {
	logger := a.logger
	if a.cfg.SessionSecret == "change-me" {
		logger.Warn("SESSION_SECRET is the default value; set it before exposing the server")
	}

	tokens := auth.NewTokenManager(a.cfg.SessionSecret, a.cfg.SessionTTL)
	taskService := service.NewTaskService(a.tasks, logger, a.metrics)
	authService := service.NewAuthService(a.credentials, auth.NewPasswordHasher(auth.DefaultBcryptCost), tokens, logger, a.metrics)
	backupService := service.NewBackupService(a.rotator, logger, a.metrics)

	router := handler.NewRouter(handler.RouterDeps{
		Tasks:       handler.NewTaskHandler(taskService, backupService, logger),
		Auth:        handler.NewAuthHandler(authService, tokens, logger, secureCookie),
		Backups:     handler.NewBackupHandler(backupService, logger),
		Tokens:      tokens,
		Metrics:     a.metrics,
		Logger:      logger,
		CORSOrigins: a.cfg.CORSOrigins,
	})

	ctx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	var backupWorker *worker.BackupWorker
	if a.cfg.BackupInterval > 0 {
		backupWorker = worker.NewBackupWorker(backupService, logger, a.cfg.BackupInterval)
		backupWorker.Start(ctx)
	}

	srv := http.Server{ // Создаем сервер
		Addr:         ":" + a.cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { // Запуск сервера и обработка ошибок
		logger.Info("Server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	select {
	case <-quit:
	case err := <-errCh:
		logger.Error("Server failed", zap.Error(err))
		return err
	}

	logger.Info("Shutting down server...")
	if backupWorker != nil {
		backupWorker.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", zap.Error(err))
		return err
	}
	logger.Info("Server stopped successfully!")
	return nil
}
