// Package memory provides an in-memory implementation of the core persistence
// store used for tests, ephemeral environments, and as the transactional engine
// behind the durable stores.
package memory

import (
	"context"
	"sync"
	"time"

	"restaurantcore/pkg/domain"
)

// Compile-time contract assertions ensuring memory.Store adheres to the domain persistence interfaces.
var _ domain.PersistentStore = (*Store)(nil)

// Store provides an in-memory transactional store for the core domain.
type Store struct {
	mu     sync.RWMutex
	state  memoryState
	engine *domain.RulesEngine
	nowFn  func() time.Time
	commit CommitHook
}

// CommitHook receives the candidate state of a transaction that passed its
// rules. An error aborts the commit and leaves the store unchanged.
type CommitHook func(ctx context.Context, candidate Snapshot) error

// NewStore constructs an in-memory store backed by the provided rules engine.
func NewStore(engine *domain.RulesEngine) *Store {
	if engine == nil {
		engine = domain.NewRulesEngine()
	}
	return &Store{
		state:  newMemoryState(),
		engine: engine,
		nowFn:  func() time.Time { return time.Now().UTC() },
	}
}

// ExportState clones the current store state for external persistence.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotFromMemoryState(s.state)
}

// ImportState replaces the store state with the provided snapshot.
func (s *Store) ImportState(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = memoryStateFromSnapshot(migrateSnapshot(snapshot))
}

// RulesEngine exposes the currently configured engine.
func (s *Store) RulesEngine() *domain.RulesEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}

// NowFunc returns the time provider used by the in-memory store.
func (s *Store) NowFunc() func() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nowFn
}

// SetNowFunc replaces the time provider; tests use it to pin timestamps.
func (s *Store) SetNowFunc(fn func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fn != nil {
		s.nowFn = fn
	}
}

// SetCommitHook installs fn to run, under the write lock, before every
// state swap. Durable stores use it to write through.
func (s *Store) SetCommitHook(fn CommitHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit = fn
}

// Replace swaps in snapshot as the full store state, subject to the commit hook.
func (s *Store) Replace(ctx context.Context, snapshot Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := memoryStateFromSnapshot(migrateSnapshot(snapshot))
	if s.commit != nil {
		if err := s.commit(ctx, snapshotFromMemoryState(next)); err != nil {
			return err
		}
	}
	s.state = next
	return nil
}

// RunInTransaction executes fn within a transactional copy of the store state.
// Rules run once against the final state; blocking violations or a failing
// commit hook discard the copy.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx domain.Transaction) error) (domain.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &transaction{
		state: s.state.clone(),
		now:   s.nowFn(),
	}
	tx.transactionView = transactionView{state: &tx.state}

	if err := fn(tx); err != nil {
		return domain.Result{}, err
	}

	var result domain.Result
	if s.engine != nil {
		view := newTransactionView(&tx.state)
		res, err := s.engine.Evaluate(ctx, view, tx.changes)
		if err != nil {
			return domain.Result{}, err
		}
		result = res
		if res.HasBlocking() {
			return res, domain.RuleViolationError{Result: res}
		}
	}

	if s.commit != nil {
		if err := s.commit(ctx, snapshotFromMemoryState(tx.state)); err != nil {
			return result, err
		}
	}
	s.state = tx.state
	return result, nil
}

// View executes fn against a read-only snapshot of the store state.
func (s *Store) View(_ context.Context, fn func(domain.TransactionView) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := s.state.clone()
	view := newTransactionView(&snapshot)
	return fn(view)
}
