package http

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/room-booking-backend/internal/auth"
	"github.com/nekogravitycat/room-booking-backend/internal/booking"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/response"
)

const (
	exportPageSize = 100
	xlsxMIME       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// canAccess reports whether the caller owns b or is staff.
func canAccess(c *gin.Context, b *booking.Booking) bool {
	return auth.IsStaff(c) || strings.EqualFold(auth.GetUserEmail(c), b.UserEmail)
}

// load fetches the booking named in the path and checks access. It writes the
// error response itself and returns nil when the request should stop.
func (h *Handler) load(c *gin.Context) *booking.Booking {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return nil
	}

	b, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return nil
	}
	if !canAccess(c, b) {
		response.Error(c, booking.ErrPermissionDenied)
		return nil
	}
	return b
}

func (h *Handler) filterFrom(c *gin.Context) (booking.Filter, *ListBookingsRequest, bool) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return booking.Filter{}, nil, false
	}

	filter := booking.Filter{
		UserEmail: req.UserEmail,
		RoomID:    req.RoomID,
		Status:    req.Status,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    req.SortBy,
		SortOrder: strings.ToUpper(req.SortOrder),
	}

	// Non-staff only ever see their own bookings.
	if !auth.IsStaff(c) {
		filter.UserEmail = auth.GetUserEmail(c)
	}
	return filter, &req, true
}

func (h *Handler) List(c *gin.Context) {
	filter, req, ok := h.filterFrom(c)
	if !ok {
		return
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Export streams every booking matching the query as an .xlsx file.
func (h *Handler) Export(c *gin.Context) {
	filter, _, ok := h.filterFrom(c)
	if !ok {
		return
	}
	filter.PageSize = exportPageSize

	var all []*booking.Booking
	for page := 1; ; page++ {
		filter.Page = page
		items, total, err := h.service.List(c.Request.Context(), filter)
		if err != nil {
			response.Error(c, err)
			return
		}
		all = append(all, items...)
		if len(items) == 0 || len(all) >= total {
			break
		}
	}

	var buf bytes.Buffer
	if err := booking.WriteSpreadsheet(&buf, all); err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("bookings-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxMIME, buf.Bytes())
}

func (h *Handler) Get(c *gin.Context) {
	b := h.load(c)
	if b == nil {
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	email := auth.GetUserEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		RoomID:    body.RoomID,
		UserEmail: email,
		CheckIn:   body.CheckIn,
		CheckOut:  body.CheckOut,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Edit(c *gin.Context) {
	var body EditBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	existing := h.load(c)
	if existing == nil {
		return
	}

	b, err := h.service.Edit(c.Request.Context(), existing.ID, booking.EditRequest{
		CheckIn:  body.CheckIn,
		CheckOut: body.CheckOut,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Cancel(c *gin.Context) {
	existing := h.load(c)
	if existing == nil {
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), existing.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Confirm(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	b, err := h.service.Confirm(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// Delete is idempotent: deleting an unknown booking succeeds.
func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			c.Status(http.StatusNoContent)
			return
		}
		response.Error(c, err)
		return
	}
	if !canAccess(c, b) {
		response.Error(c, booking.ErrPermissionDenied)
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
