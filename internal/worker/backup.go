// Package worker contains the background loops the server runs alongside
// the HTTP listener. Workers are interval-driven and shut down with the
// server's context; none of them touch progression, renewal, or focus
// processing, which runs only from client lifecycle triggers.
package worker

import (
	"context"
	"log/slog"
	"time"
)

// BackupStore defines the store operations needed by the backup worker.
type BackupStore interface {
	GenerateSnapshot(ctx context.Context) error
	SnapshotPath() string
}

// SnapshotUploader ships a generated snapshot file to backup storage.
type SnapshotUploader interface {
	Upload(ctx context.Context, filePath string) error
}

// BackupWorker periodically snapshots the database and uploads the result.
type BackupWorker struct {
	store    BackupStore
	uploader SnapshotUploader
	interval time.Duration
}

// NewBackupWorker creates a worker with the given store, uploader and interval.
func NewBackupWorker(store BackupStore, uploader SnapshotUploader, interval time.Duration) *BackupWorker {
	return &BackupWorker{
		store:    store,
		uploader: uploader,
		interval: interval,
	}
}

// Run starts the worker loop. Backs up immediately on start, then on each
// interval. Respects context cancellation for graceful shutdown.
func (w *BackupWorker) Run(ctx context.Context) {
	slog.Info("worker started",
		"component", "worker",
		"worker", "backup",
	)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.backup(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("worker stopped",
				"component", "worker",
				"worker", "backup",
				"reason", "context_cancelled",
			)
			return
		case <-ticker.C:
			w.backup(ctx)
		}
	}
}

// backup generates a snapshot, uploads it, and logs any errors. A failed
// cycle is retried at the next tick.
func (w *BackupWorker) backup(ctx context.Context) {
	slog.Info("backup started",
		"component", "worker",
		"action", "backup_start",
	)

	if err := w.store.GenerateSnapshot(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		slog.Warn("snapshot generation failed",
			"component", "worker",
			"action", "backup_failed",
			"error", err,
		)
		return
	}

	if err := w.uploader.Upload(ctx, w.store.SnapshotPath()); err != nil {
		if ctx.Err() != nil {
			return
		}
		slog.Warn("snapshot upload failed",
			"component", "worker",
			"action", "backup_failed",
			"error", err,
		)
		return
	}

	slog.Info("backup completed",
		"component", "worker",
		"action", "backup_complete",
		"path", w.store.SnapshotPath(),
	)
}
