package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers room-related routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, staffMiddleware gin.HandlerFunc) {
	group := g.Group("/rooms")

	// === Public Routes ===
	group.GET("", h.List)
	group.GET("/:id", h.Get)

	// === Staff Routes ===
	staff := group.Group("")
	staff.Use(authMiddleware, staffMiddleware)
	{
		staff.POST("", h.Create)
		staff.PATCH("/:id", h.Update)
		staff.DELETE("/:id", h.Delete)
		staff.PUT("/:id/image", h.UploadImage)
		staff.DELETE("/:id/image", h.DeleteImage)
	}
}
