// Package queue carries committed change events to downstream consumers.
package queue

import "context"

// Broker publishes and consumes messages on named queues.
type Broker interface {
	Publish(ctx context.Context, queueName string, message []byte) error
	Subscribe(ctx context.Context, queueName string, handler MessageHandler) error
	Close() error
}

type MessageHandler func(ctx context.Context, message []byte) error

const (
	QueueRestaurantChanges    = "restaurant-changes"
	QueueRestaurantChangesDLQ = QueueRestaurantChanges + dlqSuffix
)

const dlqSuffix = "-dlq"

// DeadLetterQueue names the queue that receives messages whose handler kept failing.
func DeadLetterQueue(queueName string) string { return queueName + dlqSuffix }
