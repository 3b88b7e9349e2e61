package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers support ticket routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, staffMiddleware gin.HandlerFunc) {
	group := g.Group("/tickets")
	group.Use(authMiddleware)
	{
		group.POST("", h.Submit)
		group.POST("/next", staffMiddleware, h.Next)
	}
}
