package room

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/room-booking-backend/internal/pkg/apperror"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "room not found")
	ErrEmptyName       = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrEmptyLocation   = apperror.New(http.StatusBadRequest, "location cannot be empty")
	ErrInvalidCategory = apperror.New(http.StatusBadRequest, "category must be one of classic, premium, studio")
	ErrInvalidRate     = apperror.New(http.StatusBadRequest, "nightly rate must be a non-negative amount below 1000000 with at most 2 decimal places")
	ErrNoImage         = apperror.New(http.StatusNotFound, "room has no image")
	ErrInvalidImage    = apperror.New(http.StatusBadRequest, "uploaded file is not a supported image")
)

type Category string

const (
	CategoryClassic Category = "classic"
	CategoryPremium Category = "premium"
	CategoryStudio  Category = "studio"
)

var categoryLabels = map[Category]string{
	CategoryClassic: "Classic Room",
	CategoryPremium: "Premium Room",
	CategoryStudio:  "Studio Apartment",
}

func (c Category) IsValid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label is the human readable name shown in listings.
func (c Category) Label() string {
	return categoryLabels[c]
}

// Room is a bookable accommodation unit.
// Available is flipped by the booking lifecycle; staff may reset it.
type Room struct {
	ID          string
	Name        string
	Location    string
	Category    Category
	NightlyRate decimal.Decimal
	Description *string
	ImageKey    *string // object storage key
	ImageURL    *string // public URL of ImageKey
	Available   bool
	CreatedAt   time.Time
}

// BookingStatus is the availability as exposed to the room catalog.
func (r *Room) BookingStatus() string {
	if r.Available {
		return "available"
	}
	return "booked"
}

// Filter defines parameters for listing rooms.
type Filter struct {
	Category  string
	Available *bool
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// MaxNightlyRate is the exclusive upper bound of numeric(8,2).
var MaxNightlyRate = decimal.New(1, 6)

// ValidRate reports whether rate can be stored as a room's nightly rate.
func ValidRate(rate decimal.Decimal) bool {
	return !rate.IsNegative() && rate.LessThan(MaxNightlyRate) && rate.Equal(rate.Round(2))
}
