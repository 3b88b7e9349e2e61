package booking

import (
	"context"
	"errors"
	"strings"

	"github.com/nekogravitycat/room-booking-backend/internal/notify"
	"github.com/nekogravitycat/room-booking-backend/internal/pricing"
	"github.com/nekogravitycat/room-booking-backend/internal/room"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RoomDirectory is the part of the room service bookings depend on.
type RoomDirectory interface {
	GetByID(ctx context.Context, id string) (*room.Room, error)
	SyncCatalog(ctx context.Context, id string)
}

type CreateRequest struct {
	RoomID    string
	UserEmail string
	CheckIn   string
	CheckOut  string
}

type EditRequest struct {
	CheckIn  string
	CheckOut string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Edit(ctx context.Context, id string, req EditRequest) (*Booking, error)
	Cancel(ctx context.Context, id string) (*Booking, error)
	Confirm(ctx context.Context, id string) (*Booking, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo     Repository
	rooms    RoomDirectory
	notifier notify.Notifier
	policy   pricing.Policy
	logger   *zap.Logger
}

func NewService(repo Repository, rooms RoomDirectory, notifier notify.Notifier, policy pricing.Policy, logger *zap.Logger) Service {
	return &service{
		repo:     repo,
		rooms:    rooms,
		notifier: notifier,
		policy:   policy,
		logger:   logger.Named("booking"),
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	email := strings.TrimSpace(req.UserEmail)
	if email == "" {
		return nil, ErrEmptyEmail
	}

	rm, err := s.lookupRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	b := &Booking{
		RoomID:    rm.ID,
		RoomName:  rm.Name,
		UserEmail: email,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		Status:    StatusConfirmed,
	}
	if b.TotalPrice, err = s.price(b, rm); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		zap.String("booking_id", b.ID),
		zap.String("room_id", b.RoomID),
		zap.String("total_price", b.TotalPrice.StringFixed(2)),
	)

	s.notifyConfirmed(ctx, b)
	s.rooms.SyncCatalog(ctx, b.RoomID)
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Edit(ctx context.Context, id string, req EditRequest) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.Status.CanTransitionTo(StatusUpdated) {
		return nil, ErrInvalidTransition
	}

	rm, err := s.lookupRoom(ctx, b.RoomID)
	if err != nil {
		return nil, err
	}

	from := b.Status
	b.CheckIn = req.CheckIn
	b.CheckOut = req.CheckOut
	if b.TotalPrice, err = s.price(b, rm); err != nil {
		return nil, err
	}
	b.Status = StatusUpdated

	if err := s.repo.UpdateStay(ctx, b, from); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Cancel(ctx context.Context, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status == StatusCancelled {
		return b, nil
	}

	release := b.Status.HoldsRoom()
	if err := s.repo.Cancel(ctx, b, release); err != nil {
		return nil, err
	}

	if release {
		s.rooms.SyncCatalog(ctx, b.RoomID)
	}
	return b, nil
}

func (s *service) Confirm(ctx context.Context, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.Status.CanTransitionTo(StatusConfirmed) {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.Confirm(ctx, b); err != nil {
		return nil, err
	}

	s.notifyConfirmed(ctx, b)
	s.rooms.SyncCatalog(ctx, b.RoomID)
	return b, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) lookupRoom(ctx context.Context, id string) (*room.Room, error) {
	rm, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return rm, nil
}

// price derives the booking total from its dates and the room's current rate.
func (s *service) price(b *Booking, rm *room.Room) (decimal.Decimal, error) {
	nights, fellBack := pricing.StayNights(b.CheckIn, b.CheckOut)
	if fellBack {
		s.logger.Warn("stay has no billable nights, charging minimum",
			zap.String("room_id", rm.ID),
			zap.String("check_in", b.CheckIn),
			zap.String("check_out", b.CheckOut),
			zap.Int("nights", nights),
		)
	}
	total := s.policy.Total(nights, rm.NightlyRate)
	if !total.LessThan(MaxTotalPrice) {
		return decimal.Zero, ErrTotalTooLarge
	}
	return total, nil
}

// notifyConfirmed is fire-and-forget; the booking is already committed.
func (s *service) notifyConfirmed(ctx context.Context, b *Booking) {
	if s.notifier == nil {
		return
	}
	snap := notify.Snapshot{
		BookingID:  b.ID,
		UserEmail:  b.UserEmail,
		RoomName:   b.RoomName,
		CheckIn:    b.CheckIn,
		CheckOut:   b.CheckOut,
		TotalPrice: b.TotalPrice.StringFixed(2),
	}
	if err := s.notifier.NotifyBookingConfirmed(ctx, snap); err != nil {
		s.logger.Warn("booking confirmation not delivered",
			zap.String("booking_id", b.ID),
			zap.Error(err),
		)
	}
}
