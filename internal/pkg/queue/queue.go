package queue

import (
	"context"
	"errors"
)

var ErrQueueNotFound = errors.New("queue not found")

// Message is a single received queue message.
type Message struct {
	ID   string
	Body string
}

// Queue delivers and consumes plain text messages on named queues.
type Queue interface {
	Enqueue(ctx context.Context, queueName, body string) error

	// DequeueOne receives at most one message and removes it from the queue.
	// ok is false when the queue is empty.
	DequeueOne(ctx context.Context, queueName string) (msg *Message, ok bool, err error)
}
