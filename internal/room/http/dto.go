package http

import (
	"strings"
	"time"

	"github.com/nekogravitycat/room-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/room-booking-backend/internal/room"
	"github.com/shopspring/decimal"
)

// RoomTag is the compact room reference embedded in other responses.
type RoomTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type RoomResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Location      string    `json:"location"`
	Category      string    `json:"category"`
	CategoryLabel string    `json:"category_label"`
	NightlyRate   string    `json:"nightly_rate"`
	Description   *string   `json:"description"`
	ImageURL      *string   `json:"image_url"`
	Available     bool      `json:"available"`
	BookingStatus string    `json:"booking_status"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewRoomResponse(r *room.Room) RoomResponse {
	return RoomResponse{
		ID:            r.ID,
		Name:          r.Name,
		Location:      r.Location,
		Category:      string(r.Category),
		CategoryLabel: r.Category.Label(),
		NightlyRate:   r.NightlyRate.StringFixed(2),
		Description:   r.Description,
		ImageURL:      r.ImageURL,
		Available:     r.Available,
		BookingStatus: r.BookingStatus(),
		CreatedAt:     r.CreatedAt,
	}
}

// ListRoomsRequest defines query parameters for listing rooms.
type ListRoomsRequest struct {
	request.ListParams
	Category  string `form:"category" binding:"omitempty,oneof=classic premium studio"`
	Available *bool  `form:"available"`
	SortBy    string `form:"sort_by" binding:"omitempty,oneof=name nightly_rate created_at"`
}

type CreateRoomRequest struct {
	Name        string  `json:"name" binding:"required"`
	Location    string  `json:"location" binding:"required"`
	Category    string  `json:"category" binding:"required,oneof=classic premium studio"`
	NightlyRate string  `json:"nightly_rate" binding:"required"`
	Description *string `json:"description"`

	rate decimal.Decimal
}

// Validate parses the nightly rate.
func (r *CreateRoomRequest) Validate() error {
	rate, err := parseRate(r.NightlyRate)
	if err != nil {
		return err
	}
	r.rate = rate
	return nil
}

func (r *CreateRoomRequest) ToServiceRequest() room.CreateRequest {
	return room.CreateRequest{
		Name:        r.Name,
		Location:    r.Location,
		Category:    room.Category(r.Category),
		NightlyRate: r.rate,
		Description: r.Description,
	}
}

type UpdateRoomRequest struct {
	Name        *string `json:"name"`
	Location    *string `json:"location"`
	Category    *string `json:"category" binding:"omitempty,oneof=classic premium studio"`
	NightlyRate *string `json:"nightly_rate"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`

	rate *decimal.Decimal
}

func (r *UpdateRoomRequest) Validate() error {
	if r.NightlyRate != nil {
		rate, err := parseRate(*r.NightlyRate)
		if err != nil {
			return err
		}
		r.rate = &rate
	}
	return nil
}

func (r *UpdateRoomRequest) ToServiceRequest() room.UpdateRequest {
	req := room.UpdateRequest{
		Name:        r.Name,
		Location:    r.Location,
		NightlyRate: r.rate,
		Description: r.Description,
		Available:   r.Available,
	}
	if r.Category != nil {
		c := room.Category(*r.Category)
		req.Category = &c
	}
	return req
}

func parseRate(s string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || !room.ValidRate(rate) {
		return decimal.Zero, room.ErrInvalidRate
	}
	return rate, nil
}
