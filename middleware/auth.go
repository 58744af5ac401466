package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shuno-backend/models"
	"shuno-backend/store"
	"shuno-backend/utils"
)

const (
	ctxUserIDKey  = "userID"
	ctxRoleKey    = "role"
	ctxTokenIDKey = "tokenID"
)

// RequireAuth validates the bearer token, rejects revoked token ids and
// puts the claims into the gin context.
func RequireAuth(secret string, tokens store.TokenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "missing bearer token"})
			return
		}

		claims, err := utils.ParseAccessToken(secret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid or expired token"})
			return
		}

		revoked, err := tokens.IsRevoked(c.Request.Context(), claims.ID)
		if err == nil && revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "token revoked"})
			return
		}

		c.Set(ctxUserIDKey, claims.UserID)
		c.Set(ctxRoleKey, claims.Role)
		c.Set(ctxTokenIDKey, claims.ID)
		c.Next()
	}
}

// RequireAdmin gates a route on the admin role. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if Role(c) != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "admin access required"})
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user id set by RequireAuth.
func UserID(c *gin.Context) uint {
	if v, ok := c.Get(ctxUserIDKey); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// Role returns the authenticated role, or "" for anonymous requests.
func Role(c *gin.Context) string {
	if v, ok := c.Get(ctxRoleKey); ok {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}

// TokenID returns the jti of the current access token.
func TokenID(c *gin.Context) string {
	if v, ok := c.Get(ctxTokenIDKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
