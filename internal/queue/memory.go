package queue

import (
	"context"
	"errors"
	"sync"
)

var ErrBrokerClosed = errors.New("queue: broker closed")

// MemoryBroker delivers messages in-process. Handlers run synchronously on
// the publishing goroutine; a failing handler is retried up to MaxRetries
// times before the message is parked on the dead letter queue.
type MemoryBroker struct {
	MaxRetries int

	mu       sync.RWMutex
	handlers map[string][]MessageHandler
	pending  map[string][][]byte
	closed   bool
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{
		handlers: make(map[string][]MessageHandler),
		pending:  make(map[string][][]byte),
	}
}

func (b *MemoryBroker) Publish(ctx context.Context, queueName string, message []byte) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrBrokerClosed
	}
	handlers := b.handlers[queueName]
	if len(handlers) == 0 {
		b.pending[queueName] = append(b.pending[queueName], append([]byte(nil), message...))
		b.mu.Unlock()
		return nil
	}
	b.mu.Unlock()

	for _, handler := range handlers {
		b.deliver(ctx, queueName, message, handler)
	}
	return nil
}

func (b *MemoryBroker) deliver(ctx context.Context, queueName string, message []byte, handler MessageHandler) {
	var err error
	for attempt := 0; attempt <= b.MaxRetries; attempt++ {
		if err = handler(ctx, message); err == nil {
			return
		}
		if ctx.Err() != nil {
			break
		}
	}
	dlq := DeadLetterQueue(queueName)
	b.mu.Lock()
	b.pending[dlq] = append(b.pending[dlq], append([]byte(nil), message...))
	b.mu.Unlock()
}

// Subscribe registers handler and drains messages published before any
// consumer existed.
func (b *MemoryBroker) Subscribe(ctx context.Context, queueName string, handler MessageHandler) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrBrokerClosed
	}
	b.handlers[queueName] = append(b.handlers[queueName], handler)
	backlog := b.pending[queueName]
	delete(b.pending, queueName)
	b.mu.Unlock()

	for _, message := range backlog {
		b.deliver(ctx, queueName, message, handler)
	}
	return nil
}

// Pending returns the messages waiting on queueName.
func (b *MemoryBroker) Pending(queueName string) [][]byte {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([][]byte, len(b.pending[queueName]))
	copy(out, b.pending[queueName])
	return out
}

func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.handlers = make(map[string][]MessageHandler)
	return nil
}
