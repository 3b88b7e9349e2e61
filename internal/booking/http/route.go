package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers booking routes. staffResolver marks the request
// with the caller's staff flag; staffOnly rejects non-staff callers.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, staffResolver, staffOnly gin.HandlerFunc) {
	group := g.Group("/bookings")

	// === Authenticated Routes ===
	group.Use(authMiddleware, staffResolver)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.PATCH("/:id", h.Edit)
		group.POST("/:id/cancel", h.Cancel)
		group.DELETE("/:id", h.Delete)
	}

	// === Staff Routes ===
	staff := group.Group("")
	staff.Use(staffOnly)
	{
		staff.GET("/export", h.Export)
		staff.POST("/:id/confirm", h.Confirm)
	}
}
