package middleware

import (
	"net/http"
	"strings"

	"foodgram/internal/pkg/jwt"
	"foodgram/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// JWTAuth rejects requests without a valid bearer token.
func JWTAuth(j *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			c.Abort()
			return
		}
		if !authenticate(c, j, header) {
			return
		}
		c.Next()
	}
}

// OptionalAuth lets anonymous requests through, but a header that is present
// must carry a valid token.
func OptionalAuth(j *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		if !authenticate(c, j, header) {
			return
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, j *jwt.Service, header string) bool {
	parts := strings.SplitN(header, " ", 2)
	// "Token" is what the frontend sends, "Bearer" is accepted too
	if len(parts) != 2 || (!strings.EqualFold(parts[0], "bearer") && !strings.EqualFold(parts[0], "token")) {
		response.Error(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
		c.Abort()
		return false
	}

	claims, err := j.ValidateToken(strings.TrimSpace(parts[1]))
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
		c.Abort()
		return false
	}

	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextRole, claims.Role)
	return true
}

// UserID returns the authenticated user id, 0 for anonymous requests.
func UserID(c *gin.Context) int64 {
	return c.GetInt64(ContextUserID)
}

func Role(c *gin.Context) string {
	return c.GetString(ContextRole)
}
