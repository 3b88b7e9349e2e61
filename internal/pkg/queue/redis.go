package queue

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const redisKeyPrefix = "queue:"

// RedisQueue stores each queue as a Redis list. Messages are pushed on the
// left and popped from the right, giving FIFO order.
type RedisQueue struct {
	client *redis.Client
}

func NewRedisQueue(client *redis.Client) *RedisQueue {
	return &RedisQueue{client: client}
}

func (q *RedisQueue) Enqueue(ctx context.Context, queueName, body string) error {
	if err := q.client.LPush(ctx, redisKeyPrefix+queueName, body).Err(); err != nil {
		return fmt.Errorf("push to %s failed: %w", queueName, err)
	}
	return nil
}

func (q *RedisQueue) DequeueOne(ctx context.Context, queueName string) (*Message, bool, error) {
	body, err := q.client.RPop(ctx, redisKeyPrefix+queueName).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("pop from %s failed: %w", queueName, err)
	}
	return &Message{ID: uuid.NewString(), Body: body}, true, nil
}

// Len reports the number of pending messages.
func (q *RedisQueue) Len(ctx context.Context, queueName string) (int64, error) {
	n, err := q.client.LLen(ctx, redisKeyPrefix+queueName).Result()
	if err != nil {
		return 0, fmt.Errorf("length of %s failed: %w", queueName, err)
	}
	return n, nil
}
