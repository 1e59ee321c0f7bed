package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/incident-desk/backend/internal/service"
)

const userIDKey = "user_id"

// AuthMiddleware resolves the bearer token into a user id. It never aborts:
// unauthenticated requests continue as anonymous.
func AuthMiddleware(resolver *service.AuthResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := resolver.Resolve(c.GetHeader("Authorization")); ok {
			c.Set(userIDKey, id)
		}
		c.Next()
	}
}

// UserID returns the resolved user id, or "" for anonymous requests.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
