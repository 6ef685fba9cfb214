package migrations

import (
	"strings"
	"testing"
)

func TestEmbeddedFS_ContainsMigrationFiles(t *testing.T) {
	entries, err := FS.ReadDir(".")
	if err != nil {
		t.Fatalf("failed to read embedded FS: %v", err)
	}

	found := false
	for _, entry := range entries {
		if entry.Name() == "001_initial_schema.sql" {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected 001_initial_schema.sql in embedded FS")
	}
}

func TestEmbeddedFS_MigrationHasGooseMarkers(t *testing.T) {
	data, err := FS.ReadFile("001_initial_schema.sql")
	if err != nil {
		t.Fatalf("failed to read migration: %v", err)
	}
	body := string(data)
	if !strings.Contains(body, "-- +goose Up") || !strings.Contains(body, "-- +goose Down") {
		t.Error("migration missing goose directives")
	}
}
