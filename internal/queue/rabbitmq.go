package queue

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const retryHeader = "x-retry-count"

type RabbitMQBroker struct {
	conn       *amqp.Connection
	channel    *amqp.Channel
	url        string
	maxRetries int
	retryDelay time.Duration
	logger     *zap.SugaredLogger
	mu         sync.RWMutex
	declared   map[string]bool
}

type Config struct {
	URL           string
	MaxRetries    int
	RetryDelay    time.Duration
	PrefetchCount int
	// Logger receives settlement failures. Nil discards them.
	Logger *zap.SugaredLogger
}

func NewRabbitMQBroker(cfg Config) (*RabbitMQBroker, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if cfg.PrefetchCount > 0 {
		if err := channel.Qos(cfg.PrefetchCount, 0, false); err != nil {
			channel.Close()
			conn.Close()
			return nil, fmt.Errorf("failed to set QoS: %w", err)
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	broker := &RabbitMQBroker{
		conn:       conn,
		channel:    channel,
		url:        cfg.URL,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		logger:     logger,
		declared:   make(map[string]bool),
	}

	if err := broker.ensureQueue(QueueRestaurantChanges); err != nil {
		broker.Close()
		return nil, err
	}

	return broker, nil
}

// queuesFor lists the queues that must exist before queueName is used: the
// queue itself and, unless it already is one, its dead letter queue.
func queuesFor(queueName string) []string {
	if strings.HasSuffix(queueName, dlqSuffix) {
		return []string{queueName}
	}
	return []string{queueName, DeadLetterQueue(queueName)}
}

// ensureQueue declares queueName and its dead letter queue once per broker.
func (b *RabbitMQBroker) ensureQueue(queueName string) error {
	b.mu.RLock()
	done := b.declared[queueName]
	b.mu.RUnlock()
	if done {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, name := range queuesFor(queueName) {
		if b.declared[name] {
			continue
		}
		_, err := b.channel.QueueDeclare(
			name,  // name
			true,  // durable
			false, // delete when unused
			false, // exclusive
			false, // no-wait
			nil,   // arguments
		)
		if err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", name, err)
		}
		b.declared[name] = true
	}
	return nil
}

func (b *RabbitMQBroker) Publish(ctx context.Context, queueName string, message []byte) error {
	if err := b.ensureQueue(queueName); err != nil {
		return err
	}
	return b.publish(ctx, queueName, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Body:         message,
		Timestamp:    time.Now(),
	})
}

func (b *RabbitMQBroker) publish(ctx context.Context, queueName string, msg amqp.Publishing) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := b.channel.PublishWithContext(ctx, "", queueName, false, false, msg); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

func (b *RabbitMQBroker) Subscribe(ctx context.Context, queueName string, handler MessageHandler) error {
	if err := b.ensureQueue(queueName); err != nil {
		return err
	}

	b.mu.RLock()
	msgs, err := b.channel.Consume(
		queueName, // queue
		"",        // consumer
		false,     // auto-ack
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	b.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				b.handleMessage(ctx, msg, handler, queueName)
			}
		}
	}()

	return nil
}

// redeliveryTarget picks where a failed message goes next and the retry
// count it carries there.
func redeliveryTarget(queueName string, attempt, maxRetries int) (string, int) {
	if attempt < maxRetries {
		return queueName, attempt + 1
	}
	return DeadLetterQueue(queueName), attempt
}

// handleMessage acks a message only once it was handled or handed on to its
// retry or dead letter queue. Anything else puts it back on queueName.
func (b *RabbitMQBroker) handleMessage(ctx context.Context, msg amqp.Delivery, handler MessageHandler, queueName string) {
	err := handler(ctx, msg.Body)
	if err == nil {
		b.ack(msg, queueName)
		return
	}

	attempt := retryCount(msg.Headers)
	target, next := redeliveryTarget(queueName, attempt, b.maxRetries)
	headers := amqp.Table{retryHeader: int32(next)}
	if target == queueName {
		select {
		case <-ctx.Done():
			b.requeue(msg, queueName, ctx.Err())
			return
		case <-time.After(backoff(b.retryDelay, attempt)):
		}
	} else {
		headers["x-original-queue"] = queueName
		headers["x-error"] = err.Error()
	}

	if err := b.publish(ctx, target, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  msg.ContentType,
		Body:         msg.Body,
		Headers:      headers,
		Timestamp:    time.Now(),
	}); err != nil {
		b.requeue(msg, queueName, err)
		return
	}
	b.ack(msg, queueName)
}

func (b *RabbitMQBroker) ack(msg amqp.Delivery, queueName string) {
	if err := msg.Ack(false); err != nil {
		b.logger.Errorw("failed to ack message", "queue", queueName, "error", err)
	}
}

func (b *RabbitMQBroker) requeue(msg amqp.Delivery, queueName string, cause error) {
	b.logger.Warnw("requeueing message", "queue", queueName, "error", cause)
	if err := msg.Nack(false, true); err != nil {
		b.logger.Errorw("failed to nack message", "queue", queueName, "error", err)
	}
}

func retryCount(headers amqp.Table) int {
	if headers == nil {
		return 0
	}
	switch v := headers[retryHeader].(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// backoff doubles base for every previous attempt.
func backoff(base time.Duration, attempt int) time.Duration {
	if base <= 0 {
		base = time.Second
	}
	return base << attempt
}

func (b *RabbitMQBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.channel != nil {
		b.channel.Close()
	}
	if b.conn != nil {
		return b.conn.Close()
	}
	return nil
}
