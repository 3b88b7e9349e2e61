package http

import (
	"time"

	"github.com/nekogravitycat/room-booking-backend/internal/booking"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/room-booking-backend/internal/pricing"
	roomHttp "github.com/nekogravitycat/room-booking-backend/internal/room/http"
)

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	RoomID    string `form:"room_id" binding:"omitempty,uuid"`
	Status    string `form:"status" binding:"omitempty,oneof=pending confirmed updated cancelled"`
	UserEmail string `form:"user_email" binding:"omitempty,email"`
	SortBy    string `form:"sort_by" binding:"omitempty,oneof=created_at updated_at check_in status"`
}

type BookingResponse struct {
	ID         string           `json:"id"`
	Room       roomHttp.RoomTag `json:"room"`
	UserEmail  string           `json:"user_email"`
	CheckIn    string           `json:"check_in"`
	CheckOut   string           `json:"check_out"`
	Nights     int              `json:"nights"`
	TotalPrice string           `json:"total_price"`
	Status     string           `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	nights, _ := pricing.StayNights(b.CheckIn, b.CheckOut)
	return BookingResponse{
		ID:         b.ID,
		Room:       roomHttp.RoomTag{ID: b.RoomID, Name: b.RoomName},
		UserEmail:  b.UserEmail,
		CheckIn:    b.CheckIn,
		CheckOut:   b.CheckOut,
		Nights:     nights,
		TotalPrice: b.TotalPrice.StringFixed(2),
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

// CreateBookingRequest carries the stay dates as entered. Unparsable or
// inverted dates are accepted and billed as a single night.
type CreateBookingRequest struct {
	RoomID   string `json:"room_id" binding:"required,uuid"`
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
}

type EditBookingRequest struct {
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
}
