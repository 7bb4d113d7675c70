package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"pulsefeed-backend/internal/delivery/http/response"
	auth_service "pulsefeed-backend/internal/service/auth"
)

// UserIDKey is the gin context key the auth middleware stores the
// authenticated user id under.
const UserIDKey = "user_id"

func Auth(tokens *auth_service.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "missing authorization header")
			return
		}
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			response.Unauthorized(c, "malformed authorization header")
			return
		}

		userID, err := tokens.ParseAuth(token)
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// UserID reads the authenticated user id set by Auth. Empty when the
// route runs without the middleware.
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
