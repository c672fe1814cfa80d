package core

import (
	"context"
	"path/filepath"
	"testing"

	"restaurantcore/pkg/domain"
)

func TestOpenPersistentStoreDrivers(t *testing.T) {
	mem, err := OpenPersistentStore(StorageConfig{Driver: StorageMemory}, NewDefaultRulesEngine())
	if err != nil {
		t.Fatalf("memory: %v", err)
	}
	if err := mem.Close(); err != nil {
		t.Fatalf("close memory: %v", err)
	}
	path := filepath.Join(t.TempDir(), "restaurant.db")
	lite, err := OpenPersistentStore(StorageConfig{SQLitePath: path}, NewDefaultRulesEngine())
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(func() { _ = lite.Close() })
	svc := NewService(lite)
	must(svc.CreatePerson(context.Background(), PersonInput{Name: "Ada", Email: "ada@example.com"}))
	if got := len(lite.ExportState().Persons); got != 1 {
		t.Fatalf("expected persisted person, got %d", got)
	}
}

func TestOpenPersistentStoreErrors(t *testing.T) {
	if _, err := OpenPersistentStore(StorageConfig{Driver: "mongo"}, nil); err == nil {
		t.Fatalf("expected unknown driver error")
	}
	if _, err := OpenPersistentStore(StorageConfig{Driver: StoragePostgres, PostgresDSN: "postgres://127.0.0.1:1/none?connect_timeout=1"}, nil); err == nil {
		t.Fatalf("expected postgres connection error")
	}
}

func TestMemoryStoreRestoreReplacesState(t *testing.T) {
	store, err := OpenPersistentStore(StorageConfig{Driver: StorageMemory}, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreatePerson(domain.Person{Name: "Ada", Email: "ada@example.com"})
		return err
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	snapshot := store.ExportState()
	fresh, _ := OpenPersistentStore(StorageConfig{Driver: StorageMemory}, nil)
	if err := fresh.Restore(context.Background(), snapshot); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if got := len(fresh.ExportState().Persons); got != 1 {
		t.Fatalf("expected restored person, got %d", got)
	}
}
