package ticket

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/room-booking-backend/internal/pkg/apperror"
)

var (
	ErrEmptySubject = apperror.New(http.StatusBadRequest, "subject cannot be empty")
	ErrEmptyMessage = apperror.New(http.StatusBadRequest, "message cannot be empty")
)

// Ticket is a support request submitted by a guest.
type Ticket struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
