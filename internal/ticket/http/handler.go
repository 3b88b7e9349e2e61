package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/room-booking-backend/internal/auth"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/room-booking-backend/internal/ticket"
)

type Handler struct {
	service ticket.Service
}

func NewHandler(service ticket.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Submit(c *gin.Context) {
	var body SubmitTicketRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	t, err := h.service.Submit(c.Request.Context(), ticket.SubmitRequest{
		Email:   auth.GetUserEmail(c),
		Subject: body.Subject,
		Message: body.Message,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusAccepted, t)
}

// Next hands the oldest pending ticket to a staff member. 204 when empty.
func (h *Handler) Next(c *gin.Context) {
	t, ok, err := h.service.Next(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, t)
}
