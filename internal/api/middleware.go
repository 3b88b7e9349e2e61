package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/room-booking-backend/internal/auth"
	"github.com/nekogravitycat/room-booking-backend/internal/user"
)

// ResolveStaff loads the authenticated user and records their staff flag on
// the request. It MUST be used after auth.AuthRequired middleware.
func ResolveStaff(userService user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !resolveStaff(c, userService) {
			return
		}
		c.Next()
	}
}

// RequireStaff ensures the authenticated user is staff.
// It MUST be used after auth.AuthRequired middleware. The user lookup is
// skipped when ResolveStaff already ran for the request.
func RequireStaff(userService user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.StaffResolved(c) && !resolveStaff(c, userService) {
			return
		}

		if !auth.IsStaff(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: staff access required"})
			return
		}

		c.Next()
	}
}

func resolveStaff(c *gin.Context, userService user.Service) bool {
	userID := auth.GetUserID(c)
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return false
	}

	u, err := userService.GetByID(c.Request.Context(), userID)
	if err != nil || !u.IsActive {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return false
	}

	auth.SetStaff(c, u.IsStaff)
	return true
}
