package queue

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisQueue(t *testing.T) (*miniredis.Miniredis, *RedisQueue) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisQueue(client)
}

func TestRedisQueue_FIFO(t *testing.T) {
	_, q := setupRedisQueue(t)
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, "support", "first"))
	require.NoError(t, q.Enqueue(ctx, "support", "second"))

	n, err := q.Len(ctx, "support")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	msg, ok, err := q.DequeueOne(ctx, "support")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "first", msg.Body)
	assert.NotEmpty(t, msg.ID)

	msg, ok, err = q.DequeueOne(ctx, "support")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "second", msg.Body)
}

func TestRedisQueue_Empty(t *testing.T) {
	_, q := setupRedisQueue(t)

	msg, ok, err := q.DequeueOne(context.Background(), "support")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, msg)
}

func TestRedisQueue_QueuesAreIsolated(t *testing.T) {
	mr, q := setupRedisQueue(t)
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, "a", "x"))
	assert.True(t, mr.Exists("queue:a"))

	_, ok, err := q.DequeueOne(ctx, "b")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisQueue_ServerDown(t *testing.T) {
	mr, q := setupRedisQueue(t)
	mr.Close()

	err := q.Enqueue(context.Background(), "support", "x")
	assert.Error(t, err)
}
