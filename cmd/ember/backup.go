package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/emberworks/ember/internal/config"
	"github.com/emberworks/ember/internal/snapshot"
	"github.com/emberworks/ember/internal/store"
)

// backupCmd runs a single snapshot-and-upload cycle without the server.
// Useful before maintenance and from cron on hosts that don't keep the
// service running.
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshot the database and upload it to backup storage",
	RunE:  runBackup,
}

func runBackup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	start := time.Now()
	if err := db.GenerateSnapshot(ctx); err != nil {
		return fmt.Errorf("generate snapshot: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "snapshot written to %s\n", db.SnapshotPath())

	if !cfg.Backup.Enabled() {
		fmt.Fprintln(cmd.OutOrStdout(), "backup storage not configured, skipping upload")
		return nil
	}

	uploader, err := snapshot.NewUploader(cfg.Backup)
	if err != nil {
		return err
	}
	if err := uploader.Upload(ctx, db.SnapshotPath()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "uploaded in %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}
