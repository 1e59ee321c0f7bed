package cmd

import (
	"context"
	"testing"

	"github.com/incident-desk/backend/internal/config"
	"github.com/incident-desk/backend/internal/db"
	"github.com/incident-desk/backend/internal/registry"
)

func TestTableNames(t *testing.T) {
	tables := tableNames(registry.Default())
	if len(tables) != 7 {
		t.Fatalf("expected 7 tables, got %v", tables)
	}
	seen := map[string]bool{}
	for _, table := range tables {
		if seen[table] {
			t.Fatalf("duplicate table %q", table)
		}
		seen[table] = true
	}
}

func TestOpenStore(t *testing.T) {
	store, closeStore, err := openStore(context.Background(), config.Config{Storage: config.StorageConfig{Driver: config.StorageMemory}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer closeStore()
	if _, ok := store.(*db.Memory); !ok {
		t.Fatalf("expected memory store, got %T", store)
	}

	if _, _, err := openStore(context.Background(), config.Config{Storage: config.StorageConfig{Driver: "sqlite"}}); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
