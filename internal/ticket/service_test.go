package ticket

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/nekogravitycat/room-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memQueue struct {
	msgs map[string][]string
	err  error
}

func newMemQueue() *memQueue {
	return &memQueue{msgs: map[string][]string{}}
}

func (q *memQueue) Enqueue(ctx context.Context, name, body string) error {
	if q.err != nil {
		return q.err
	}
	q.msgs[name] = append(q.msgs[name], body)
	return nil
}

func (q *memQueue) DequeueOne(ctx context.Context, name string) (*queue.Message, bool, error) {
	if q.err != nil {
		return nil, false, q.err
	}
	if len(q.msgs[name]) == 0 {
		return nil, false, nil
	}
	body := q.msgs[name][0]
	q.msgs[name] = q.msgs[name][1:]
	return &queue.Message{ID: "m", Body: body}, true, nil
}

func TestService_SubmitAndNext(t *testing.T) {
	q := newMemQueue()
	svc := NewService(q, "support", zap.NewNop())
	ctx := context.Background()

	submitted, err := svc.Submit(ctx, SubmitRequest{Email: "a@b.c", Subject: " Wifi ", Message: "No signal in room 4"})
	require.NoError(t, err)
	assert.Equal(t, "Wifi", submitted.Subject)
	assert.Len(t, q.msgs["support"], 1)

	got, ok, err := svc.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, submitted.ID, got.ID)
	assert.Equal(t, "No signal in room 4", got.Message)
	assert.Equal(t, "a@b.c", got.Email)

	_, ok, err = svc.Next(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_Submit_Validation(t *testing.T) {
	svc := NewService(newMemQueue(), "support", zap.NewNop())

	_, err := svc.Submit(context.Background(), SubmitRequest{Subject: "", Message: "x"})
	assert.ErrorIs(t, err, ErrEmptySubject)

	_, err = svc.Submit(context.Background(), SubmitRequest{Subject: "x", Message: "  "})
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestService_QueueDown(t *testing.T) {
	q := newMemQueue()
	q.err = errors.New("connection refused")
	svc := NewService(q, "support", zap.NewNop())

	_, err := svc.Submit(context.Background(), SubmitRequest{Subject: "x", Message: "y"})
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.Code)

	_, _, err = svc.Next(context.Background())
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.Code)
}

func TestService_Next_PlainTextMessage(t *testing.T) {
	q := newMemQueue()
	q.msgs["support"] = []string{"hello from the cli"}
	svc := NewService(q, "support", zap.NewNop())

	got, ok, err := svc.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "hello from the cli", got.Message)
}
