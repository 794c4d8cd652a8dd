package middleware

import (
	"net/http"

	"foodgram/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireAuth is used on routes mounted behind OptionalAuth that need a user.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserID(c) == 0 {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication credentials were not provided")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole ensures that the authenticated user has one of the given roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := Role(c)
		if role == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
		c.Abort()
	}
}
