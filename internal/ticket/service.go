package ticket

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/queue"
	"go.uber.org/zap"
)

type SubmitRequest struct {
	Email   string
	Subject string
	Message string
}

type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (*Ticket, error)

	// Next takes the oldest pending ticket off the queue. ok is false when
	// there is nothing to handle.
	Next(ctx context.Context) (t *Ticket, ok bool, err error)
}

type service struct {
	queue     queue.Queue
	queueName string
	logger    *zap.Logger
}

func NewService(q queue.Queue, queueName string, logger *zap.Logger) Service {
	return &service{
		queue:     q,
		queueName: queueName,
		logger:    logger.Named("ticket"),
	}
}

func (s *service) Submit(ctx context.Context, req SubmitRequest) (*Ticket, error) {
	if strings.TrimSpace(req.Subject) == "" {
		return nil, ErrEmptySubject
	}
	if strings.TrimSpace(req.Message) == "" {
		return nil, ErrEmptyMessage
	}

	t := &Ticket{
		ID:        uuid.NewString(),
		Email:     req.Email,
		Subject:   strings.TrimSpace(req.Subject),
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}

	body, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("marshal ticket failed: %w", err)
	}

	if err := s.queue.Enqueue(ctx, s.queueName, string(body)); err != nil {
		return nil, apperror.Unavailable(err, "support queue")
	}

	s.logger.Info("ticket submitted", zap.String("ticket_id", t.ID), zap.String("email", t.Email))
	return t, nil
}

func (s *service) Next(ctx context.Context) (*Ticket, bool, error) {
	msg, ok, err := s.queue.DequeueOne(ctx, s.queueName)
	if err != nil {
		return nil, false, apperror.Unavailable(err, "support queue")
	}
	if !ok {
		return nil, false, nil
	}

	var t Ticket
	if err := json.Unmarshal([]byte(msg.Body), &t); err != nil {
		// Messages sent by other producers are plain text; keep them readable.
		s.logger.Warn("ticket body is not JSON", zap.String("message_id", msg.ID), zap.Error(err))
		return &Ticket{ID: msg.ID, Message: msg.Body}, true, nil
	}
	return &t, true, nil
}
