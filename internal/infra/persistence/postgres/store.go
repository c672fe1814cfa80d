// Package postgres provides a Postgres-backed persistent store that mirrors the
// in-memory semantics while keeping one relational row per record.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"restaurantcore/internal/entitymodel/sqlbundle"
	"restaurantcore/internal/infra/persistence/memory"
	"restaurantcore/pkg/domain"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

// Compile-time contract assertion ensuring the store satisfies the domain interface.
var _ domain.PersistentStore = (*Store)(nil)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/restaurant?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Store persists state to Postgres while reusing the in-memory implementation for transactions.
type Store struct {
	*memory.Store
	db *sql.DB
	mu sync.Mutex
}

// NewStore opens a Postgres-backed store using the provided DSN (falls back to defaultDSN).
// It applies the schema DDL and hydrates the in-memory store from the relational tables.
func NewStore(dsn string, engine *domain.RulesEngine) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := applyDDLStatements(ctx, db, sqlbundle.Postgres()); err != nil {
		_ = db.Close()
		return nil, err
	}
	snapshot, err := loadNormalizedSnapshot(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	mem := memory.NewStore(engine)
	mem.ImportState(snapshot)
	s := &Store{Store: mem, db: db}
	mem.SetCommitHook(s.persist)
	return s, nil
}

// Restore replaces the full state with snapshot and persists it.
func (s *Store) Restore(ctx context.Context, snapshot memory.Snapshot) error {
	return s.Store.Replace(ctx, snapshot)
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) persist(ctx context.Context, snapshot memory.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return persistNormalized(ctx, s.db, snapshot)
}

func applyDDLStatements(ctx context.Context, exec execer, ddl string) error {
	for _, stmt := range sqlbundle.SplitStatements(ddl) {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := exec.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("execute ddl: %w", err)
		}
	}
	return nil
}

// persistNormalized rewrites every table from snapshot inside one database transaction.
func persistNormalized(ctx context.Context, db *sql.DB, snapshot memory.Snapshot) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	tables := normalizedTables()
	names := make([]string, 0, len(tables))
	for _, table := range tables {
		names = append(names, table.name)
	}
	if _, err := tx.ExecContext(ctx, "TRUNCATE TABLE "+strings.Join(names, ", ")); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}
	for _, table := range tables {
		query := table.insertSQL()
		for _, row := range table.rows(snapshot) {
			if _, err := tx.ExecContext(ctx, query, row...); err != nil {
				return fmt.Errorf("insert %s: %w", table.name, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	committed = true
	return nil
}

func loadNormalizedSnapshot(ctx context.Context, db *sql.DB) (memory.Snapshot, error) {
	var snapshot memory.Snapshot
	for _, table := range normalizedTables() {
		if err := loadTable(ctx, db, table, &snapshot); err != nil {
			return memory.Snapshot{}, err
		}
	}
	return snapshot, nil
}

func loadTable(ctx context.Context, db *sql.DB, table tableSpec, snapshot *memory.Snapshot) error {
	rows, err := db.QueryContext(ctx, table.selectSQL())
	if err != nil {
		return fmt.Errorf("select %s: %w", table.name, err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		if err := table.scan(snapshot, rows); err != nil {
			return fmt.Errorf("scan %s: %w", table.name, err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate %s: %w", table.name, err)
	}
	return nil
}

// OverrideSQLOpen swaps the sqlOpen function for tests and returns a restore function.
func OverrideSQLOpen(fn func(driverName, dataSourceName string) (*sql.DB, error)) func() {
	openMu.Lock()
	defer openMu.Unlock()
	prev := sqlOpen
	sqlOpen = fn
	return func() {
		openMu.Lock()
		defer openMu.Unlock()
		sqlOpen = prev
	}
}
