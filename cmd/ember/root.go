package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/emberworks/ember/internal/api"
	"github.com/emberworks/ember/internal/config"
	"github.com/emberworks/ember/internal/engine"
	"github.com/emberworks/ember/internal/notify"
	"github.com/emberworks/ember/internal/snapshot"
	"github.com/emberworks/ember/internal/store"
	"github.com/emberworks/ember/internal/worker"
)

// Version is set at build time via ldflags: -ldflags "-X main.Version=1.0.0"
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "ember",
	Short: "Ember - progression and recurring-obligation engine",
	RunE:  run,
}

func run(cmd *cobra.Command, args []string) error {
	// Signal handling
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("configuration loaded")

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))
	slog.SetDefault(logger)
	slog.Info("logger initialized", "level", cfg.Log.Level)

	// Store (migrations, WAL mode)
	db, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return err
	}
	slog.Info("store initialized", "path", cfg.Database.Path)

	// Engine over the store, notifying through the structured logger.
	eng := engine.New(db, notify.SlogNotifier{}, engineAwards(cfg))
	slog.Info("engine initialized")

	handler := api.NewHandler(db, eng, cfg.Auth.APIKey, Version)
	router := api.NewRouter(handler)
	slog.Info("router initialized")

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout),
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout),
	}

	// Background workers. The backup worker only runs when backup storage
	// is configured; engine processing never runs on a timer.
	var wg sync.WaitGroup
	if cfg.Backup.Enabled() {
		uploader, err := snapshot.NewUploader(cfg.Backup)
		if err != nil {
			return err
		}
		backup := worker.NewBackupWorker(db, uploader, time.Duration(cfg.Backup.Interval))
		startWorker(ctx, &wg, "backup", backup.Run)
	}

	go func() {
		slog.Info("server starting", "address", addr)
		// ErrServerClosed is the expected error when Shutdown() is called gracefully.
		// Any other error indicates an actual server failure that should trigger shutdown.
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			cancel()
		}
	}()

	// Block until signal received
	<-ctx.Done()
	slog.Info("shutdown initiated")

	// Graceful shutdown: drain HTTP, stop workers, close store.
	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout))
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	wg.Wait()

	if err := db.Close(); err != nil {
		slog.Error("store close error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

// engineAwards maps the configured point amounts onto the engine tuning.
func engineAwards(cfg *config.Config) engine.Awards {
	return engine.Awards{
		Base:         cfg.Engine.BasePoints,
		Fire:         cfg.Engine.FirePoints,
		Shield:       cfg.Engine.ShieldPoints,
		Focus:        cfg.Engine.FocusPoints,
		Subscription: cfg.Engine.SubscriptionPoints,
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// startWorker launches a background worker goroutine that respects context cancellation.
// Workers are tracked via WaitGroup for graceful shutdown.
func startWorker(ctx context.Context, wg *sync.WaitGroup, name string, fn func(ctx context.Context)) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		slog.Info("worker started", "worker", name)
		fn(ctx)
		slog.Info("worker stopped", "worker", name)
	}()
}
