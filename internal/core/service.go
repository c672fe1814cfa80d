package core

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"restaurantcore/internal/infra/persistence/memory"
	"restaurantcore/pkg/domain"
)

// MetricsRecorder receives one observation per service operation.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

// EventPublisher delivers encoded change events to a named queue.
type EventPublisher interface {
	Publish(ctx context.Context, queueName string, body []byte) error
}

// DefaultEventQueue is the queue change events are published to unless
// WithPublisher names another.
const DefaultEventQueue = "restaurant-changes"

type clockSetter interface {
	SetNowFunc(func() time.Time)
}

// Service exposes transactional CRUD operations over the restaurant schema.
type Service struct {
	store     domain.PersistentStore
	logger    *zap.SugaredLogger
	metrics   MetricsRecorder
	publisher EventPublisher
	queue     string
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger routes operation logs to logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics records one observation per operation on recorder.
func WithMetrics(recorder MetricsRecorder) Option {
	return func(s *Service) { s.metrics = recorder }
}

// WithPublisher publishes committed changes to queueName. An empty queueName
// selects DefaultEventQueue.
func WithPublisher(publisher EventPublisher, queueName string) Option {
	return func(s *Service) {
		s.publisher = publisher
		if queueName == "" {
			queueName = DefaultEventQueue
		}
		s.queue = queueName
	}
}

// WithClock overrides the time source used for event timestamps and, when the
// store supports it, for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now == nil {
			return
		}
		s.now = now
		if setter, ok := s.store.(clockSetter); ok {
			setter.SetNowFunc(now)
		}
	}
}

// NewService constructs a service backed by the supplied store.
func NewService(store domain.PersistentStore, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: zap.NewNop().Sugar(),
		queue:  DefaultEventQueue,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewInMemoryService creates a service over a fresh in-memory store. A nil
// engine selects NewDefaultRulesEngine.
func NewInMemoryService(engine *domain.RulesEngine, opts ...Option) *Service {
	if engine == nil {
		engine = NewDefaultRulesEngine()
	}
	return NewService(memory.NewStore(engine), opts...)
}

// Store returns the underlying storage implementation.
func (s *Service) Store() domain.PersistentStore {
	return s.store
}

// run executes fn in one store transaction and reports the outcome.
func (s *Service) run(ctx context.Context, op string, fn func(domain.Transaction) error) error {
	started := time.Now()
	var changes []domain.Change
	_, err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		if err := fn(tx); err != nil {
			return err
		}
		changes = tx.Changes()
		return nil
	})
	s.observe(ctx, op, err, time.Since(started))
	if err != nil {
		return err
	}
	s.logger.Infow("transaction committed", "operation", op, "changes", len(changes))
	s.publish(ctx, op, changes)
	return nil
}

// view executes fn against a read-only snapshot.
func (s *Service) view(ctx context.Context, op string, fn func(domain.TransactionView) error) error {
	started := time.Now()
	err := s.store.View(ctx, fn)
	s.observe(ctx, op, err, time.Since(started))
	return err
}

func (s *Service) observe(ctx context.Context, op string, err error, elapsed time.Duration) {
	if s.metrics != nil {
		s.metrics.Observe(ctx, op, err == nil, elapsed)
	}
	if err == nil {
		return
	}
	if isDomainError(err) {
		s.logger.Warnw("operation rejected", "operation", op, "error", err)
		return
	}
	s.logger.Errorw("operation failed", "operation", op, "error", err)
}

func isDomainError(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrPreconditionFailed) ||
		errors.Is(err, domain.ErrInvariantViolation) ||
		errors.Is(err, domain.ErrConstraintConflict)
}

func (s *Service) publish(ctx context.Context, op string, changes []domain.Change) {
	if s.publisher == nil || len(changes) == 0 {
		return
	}
	for _, event := range changeEvents(changes, s.now()) {
		body, err := event.encode()
		if err != nil {
			s.logger.Errorw("encode change event", "operation", op, "error", err)
			continue
		}
		if err := s.publisher.Publish(ctx, s.queue, body); err != nil {
			s.logger.Warnw("publish change event",
				"operation", op,
				"queue", s.queue,
				"entity", event.Entity,
				"entity_id", event.EntityID,
				"error", err,
			)
		}
	}
}

// mutate runs one validated write and returns the record it produced.
func mutate[T any](ctx context.Context, s *Service, op string, validate func() error, fn func(domain.Transaction) (T, error)) (T, error) {
	var out T
	if validate != nil {
		if err := validate(); err != nil {
			s.observe(ctx, op, err, 0)
			return out, err
		}
	}
	err := s.run(ctx, op, func(tx domain.Transaction) error {
		var err error
		out, err = fn(tx)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// get reads one record by id.
func get[T any](ctx context.Context, s *Service, op string, entity domain.EntityType, id int64, find func(domain.TransactionView, int64) (T, bool)) (T, error) {
	var out T
	err := s.view(ctx, op, func(v domain.TransactionView) error {
		found, ok := find(v, id)
		if !ok {
			return domain.NotFoundError{Entity: entity, ID: id}
		}
		out = found
		return nil
	})
	return out, err
}

// list reads every record of one entity ordered by id.
func list[T any](ctx context.Context, s *Service, op string, all func(domain.TransactionView) []T) ([]T, error) {
	var out []T
	err := s.view(ctx, op, func(v domain.TransactionView) error {
		out = all(v)
		return nil
	})
	if out == nil {
		out = []T{}
	}
	return out, err
}
