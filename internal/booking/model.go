package booking

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/room-booking-backend/internal/pkg/apperror"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "booking not found")
	ErrRoomNotFound      = apperror.New(http.StatusBadRequest, "room does not exist")
	ErrRoomUnavailable   = apperror.New(http.StatusConflict, "room is not available")
	ErrInvalidTransition = apperror.New(http.StatusConflict, "booking status does not allow this change")
	ErrStale             = apperror.New(http.StatusConflict, "booking was modified concurrently")
	ErrEmptyEmail        = apperror.New(http.StatusBadRequest, "requester email cannot be empty")
	ErrPermissionDenied  = apperror.New(http.StatusForbidden, "permission denied")
	ErrTotalTooLarge     = apperror.New(http.StatusBadRequest, "booking total exceeds the maximum amount")
)

// MaxTotalPrice is the exclusive upper bound of numeric(10,2).
var MaxTotalPrice = decimal.New(1, 8)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusUpdated   Status = "updated"
	StatusCancelled Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusUpdated, StatusCancelled},
	StatusUpdated:   {StatusUpdated, StatusCancelled},
	StatusCancelled: nil,
}

func (s Status) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo reports whether a booking in status s may move to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// HoldsRoom reports whether a booking in this status keeps its room unavailable.
func (s Status) HoldsRoom() bool {
	return s == StatusConfirmed || s == StatusUpdated
}

// Booking is one reservation of a room. CheckIn and CheckOut are stored as
// entered; TotalPrice is always derived from them.
type Booking struct {
	ID         string
	RoomID     string
	RoomName   string
	UserEmail  string
	CheckIn    string
	CheckOut   string
	TotalPrice decimal.Decimal
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Filter struct {
	UserEmail string
	RoomID    string
	Status    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
