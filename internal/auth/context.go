package auth

import "github.com/gin-gonic/gin"

const (
	ctxUserID    = "userID"
	ctxUserEmail = "userEmail"
	ctxIsStaff   = "isStaff"
)

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// GetUserEmail returns the authenticated user's email or empty string.
func GetUserEmail(c *gin.Context) string {
	return c.GetString(ctxUserEmail)
}

// SetStaff records whether the authenticated user is staff.
func SetStaff(c *gin.Context, staff bool) {
	c.Set(ctxIsStaff, staff)
}

// IsStaff reports whether the staff flag was resolved and set for this request.
func IsStaff(c *gin.Context) bool {
	return c.GetBool(ctxIsStaff)
}

// StaffResolved reports whether SetStaff already ran for this request.
func StaffResolved(c *gin.Context) bool {
	_, ok := c.Get(ctxIsStaff)
	return ok
}
