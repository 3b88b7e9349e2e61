// Package notify delivers booking confirmations to an external collaborator.
package notify

import (
	"context"
)

// Snapshot is the booking data sent with a confirmation.
type Snapshot struct {
	BookingID  string `json:"booking_id"`
	UserEmail  string `json:"user_email"`
	RoomName   string `json:"room_name"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	TotalPrice string `json:"total_price"`
}

// Notifier is called once after a booking has been committed.
// Implementations must not retry; callers only log failures.
type Notifier interface {
	NotifyBookingConfirmed(ctx context.Context, snap Snapshot) error
}
