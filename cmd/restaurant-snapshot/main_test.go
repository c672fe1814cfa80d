package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"restaurantcore/internal/core"
	"restaurantcore/pkg/domain"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "state.db")
	t.Setenv("RESTAURANT_ENV", "test")
	t.Setenv("RESTAURANT_STORAGE_DRIVER", "sqlite")
	t.Setenv("RESTAURANT_SQLITE_PATH", dbPath)
	t.Setenv("RESTAURANT_BLOB_DRIVER", "fs")
	t.Setenv("RESTAURANT_BLOB_FS_ROOT", filepath.Join(dir, "blobs"))
	return dbPath
}

func seedPerson(t *testing.T, dbPath, email string) {
	t.Helper()
	store, err := core.OpenPersistentStore(core.StorageConfig{Driver: core.StorageSQLite, SQLitePath: dbPath}, nil)
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	defer func() { _ = store.Close() }()
	if _, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreatePerson(domain.Person{Name: "Ada", Email: email})
		return err
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func personCount(t *testing.T, dbPath string) int {
	t.Helper()
	store, err := core.OpenPersistentStore(core.StorageConfig{Driver: core.StorageSQLite, SQLitePath: dbPath}, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = store.Close() }()
	return len(store.ExportState().Persons)
}

func TestBackupListRestore(t *testing.T) {
	dbPath := setupEnv(t)
	seedPerson(t, dbPath, "ada@example.com")
	ctx := context.Background()

	var stdout, stderr bytes.Buffer
	if code := run(ctx, []string{"restaurant-snapshot", "backup"}, &stdout, &stderr); code != 0 {
		t.Fatalf("backup exit %d: %s", code, stderr.String())
	}
	key := strings.TrimSpace(stdout.String())
	if !strings.HasPrefix(key, core.SnapshotPrefix) || !strings.HasSuffix(key, ".json") {
		t.Fatalf("unexpected key %q", key)
	}

	stdout.Reset()
	if code := run(ctx, []string{"restaurant-snapshot", "list"}, &stdout, &stderr); code != 0 {
		t.Fatalf("list exit %d: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), key) {
		t.Fatalf("expected %s in listing:\n%s", key, stdout.String())
	}

	seedPerson(t, dbPath, "grace@example.com")
	if got := personCount(t, dbPath); got != 2 {
		t.Fatalf("expected two persons before restore, got %d", got)
	}
	if code := run(ctx, []string{"restaurant-snapshot", "restore", key}, &stdout, &stderr); code != 0 {
		t.Fatalf("restore exit %d: %s", code, stderr.String())
	}
	if got := personCount(t, dbPath); got != 1 {
		t.Fatalf("expected snapshot state after restore, got %d persons", got)
	}
}

func TestUsageErrors(t *testing.T) {
	setupEnv(t)
	ctx := context.Background()
	for _, args := range [][]string{
		{"restaurant-snapshot"},
		{"restaurant-snapshot", "restore"},
		{"restaurant-snapshot", "compact"},
	} {
		var stdout, stderr bytes.Buffer
		if code := run(ctx, args, &stdout, &stderr); code != 2 {
			t.Fatalf("%v: expected usage exit, got %d", args, code)
		}
		if !strings.Contains(stderr.String(), "usage:") {
			t.Fatalf("%v: expected usage text, got %q", args, stderr.String())
		}
	}
}

func TestRestoreMissingKeyFails(t *testing.T) {
	setupEnv(t)
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"restaurant-snapshot", "restore", "snapshots/missing.json"}, &stdout, &stderr)
	if code != 1 || !strings.Contains(stderr.String(), "load snapshot") {
		t.Fatalf("expected load failure, got %d %q", code, stderr.String())
	}
}
