// Package sqlite provides a SQLite-backed persistent store that writes the
// in-memory state as JSON buckets inside every commit.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"restaurantcore/internal/infra/persistence/memory"
	"restaurantcore/pkg/domain"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// Compile-time contract assertion ensuring the store satisfies the domain interface.
var _ domain.PersistentStore = (*Store)(nil)

const defaultPath = "restaurant.db"

// Store persists the in-memory state to a single SQLite table as JSON blobs.
// The full state is written inside every commit, before it becomes visible.
type Store struct {
	*memory.Store
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// bucket maps one row of the state table onto a part of the snapshot.
type bucket struct {
	name   string
	target func(*memory.Snapshot) any
}

var sqliteBuckets = []bucket{
	{string(domain.EntityPerson), func(s *memory.Snapshot) any { return &s.Persons }},
	{string(domain.EntityClient), func(s *memory.Snapshot) any { return &s.Clients }},
	{string(domain.EntityRestaurantEmployee), func(s *memory.Snapshot) any { return &s.RestaurantEmployees }},
	{string(domain.EntityDeliver), func(s *memory.Snapshot) any { return &s.Delivers }},
	{string(domain.EntityDelivery), func(s *memory.Snapshot) any { return &s.Deliveries }},
	{string(domain.EntityDish), func(s *memory.Snapshot) any { return &s.Dishes }},
	{string(domain.EntityIngredient), func(s *memory.Snapshot) any { return &s.Ingredients }},
	{string(domain.EntityOrder), func(s *memory.Snapshot) any { return &s.Orders }},
	{string(domain.EntityReservation), func(s *memory.Snapshot) any { return &s.Reservations }},
	{string(domain.EntityTable), func(s *memory.Snapshot) any { return &s.Tables }},
	{string(domain.EntityAddressHistory), func(s *memory.Snapshot) any { return &s.AddressHistories }},
	{string(domain.EntityEmploymentContract), func(s *memory.Snapshot) any { return &s.EmploymentContracts }},
	{"links", func(s *memory.Snapshot) any { return &s.Links }},
	{"sequences", func(s *memory.Snapshot) any { return &s.Sequences }},
}

// NewStore constructs a snapshotting SQLite-backed persistent store.
func NewStore(path string, engine *domain.RulesEngine) (*Store, error) {
	if path == "" {
		path = defaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}
	s := &Store{Store: memory.NewStore(engine), db: db, path: path}
	if err := s.load(); err != nil {
		_ = db.Close()
		return nil, err
	}
	s.SetCommitHook(s.persist)
	return s, nil
}

func (s *Store) load() error {
	rows, err := s.db.Query(`SELECT bucket, payload FROM state`)
	if err != nil {
		return fmt.Errorf("select state: %w", err)
	}
	defer func() { _ = rows.Close() }()

	targets := make(map[string]func(*memory.Snapshot) any, len(sqliteBuckets))
	for _, b := range sqliteBuckets {
		targets[b.name] = b.target
	}
	var snapshot memory.Snapshot
	loaded := 0
	for rows.Next() {
		var name string
		var payload []byte
		if err := rows.Scan(&name, &payload); err != nil {
			return fmt.Errorf("scan: %w", err)
		}
		target, ok := targets[name]
		if !ok || len(payload) == 0 {
			continue
		}
		if err := json.Unmarshal(payload, target(&snapshot)); err != nil {
			return fmt.Errorf("decode %s: %w", name, err)
		}
		loaded++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate state: %w", err)
	}
	if loaded == 0 {
		return nil
	}
	s.ImportState(snapshot)
	return nil
}

// persist writes the candidate state of a transaction before it becomes
// visible in memory.
func (s *Store) persist(ctx context.Context, snapshot memory.Snapshot) (retErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for _, b := range sqliteBuckets {
		data, err := json.Marshal(b.target(&snapshot))
		if err != nil {
			return fmt.Errorf("encode %s: %w", b.name, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO state(bucket,payload) VALUES(?,?) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`, b.name, data); err != nil {
			return fmt.Errorf("upsert %s: %w", b.name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Restore replaces the full state with snapshot and persists it.
func (s *Store) Restore(ctx context.Context, snapshot memory.Snapshot) error {
	return s.Store.Replace(ctx, snapshot)
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the configured database path.
func (s *Store) Path() string { return s.path }

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }
