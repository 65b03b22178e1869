package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/files-manager/files-service/internal/identity"
)

const userIDKey = "user_id"

// Authenticate resolves the request token, if any, and stores the user id in
// the gin context. It never rejects: endpoints that serve public content run
// with an anonymous caller, and RequireUser gates the rest.
func Authenticate(resolver identity.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := extractToken(c); token != "" {
			userID, err := resolver.Resolve(c.Request.Context(), token)
			if err == nil && userID != "" {
				c.Set(userIDKey, userID)
			}
		}
		c.Next()
	}
}

// RequireUser aborts with 401 when Authenticate did not yield an identity.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserID(c); !ok {
			c.AbortWithStatusJSON(401, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated caller's id, if any.
func UserID(c *gin.Context) (string, bool) {
	userID, ok := c.Get(userIDKey)
	if !ok {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok && id != ""
}

// extractToken pulls the session token from the X-Token header, falling back
// to a bearer Authorization header for OIDC deployments.
func extractToken(c *gin.Context) string {
	if token := c.GetHeader("X-Token"); token != "" {
		return token
	}
	auth := c.GetHeader("Authorization")
	if token := strings.TrimPrefix(auth, "Bearer "); token != auth {
		return token
	}
	return ""
}
