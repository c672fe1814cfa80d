package core

import (
	"context"
	"fmt"

	"restaurantcore/internal/infra/persistence/memory"
	"restaurantcore/internal/infra/persistence/postgres"
	"restaurantcore/internal/infra/persistence/sqlite"
	"restaurantcore/pkg/domain"
)

// StorageDriver identifies a concrete persistent storage implementation.
type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"   // in-memory only (tests / ephemeral)
	StorageSQLite   StorageDriver = "sqlite"   // embedded sqlite file
	StoragePostgres StorageDriver = "postgres" // PostgreSQL server
)

// StorageConfig selects a backend. An empty Driver selects sqlite.
type StorageConfig struct {
	Driver      StorageDriver
	SQLitePath  string
	PostgresDSN string
}

// SnapshotStore is a persistent store whose full state can be exported and
// replaced, as every built-in backend allows.
type SnapshotStore interface {
	domain.PersistentStore
	ExportState() memory.Snapshot
	Restore(ctx context.Context, snapshot memory.Snapshot) error
	Close() error
}

// OpenPersistentStore constructs the backend named by cfg.
func OpenPersistentStore(cfg StorageConfig, engine *domain.RulesEngine) (SnapshotStore, error) {
	switch cfg.Driver {
	case StorageMemory:
		return memoryStore{memory.NewStore(engine)}, nil
	case "", StorageSQLite:
		store, err := sqlite.NewStore(cfg.SQLitePath, engine)
		if err != nil {
			return nil, err
		}
		return store, nil
	case StoragePostgres:
		store, err := postgres.NewStore(cfg.PostgresDSN, engine)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %s", cfg.Driver)
	}
}

// memoryStore adds Restore to the plain in-memory store.
type memoryStore struct {
	*memory.Store
}

func (s memoryStore) Restore(ctx context.Context, snapshot memory.Snapshot) error {
	return s.Replace(ctx, snapshot)
}

func (memoryStore) Close() error { return nil }
