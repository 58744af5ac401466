package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shuno-backend/store"
)

// CSRF checks the X-Csrf-Token header on mutating requests against the
// token store. Tokens are issued by the /api/csrf-token endpoint. Safe
// methods pass through.
func CSRF(tokens store.TokenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		token := c.GetHeader("X-Csrf-Token")
		if token == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "missing csrf token"})
			return
		}

		valid, err := tokens.ValidCSRFToken(c.Request.Context(), token)
		if err != nil || !valid {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "invalid csrf token"})
			return
		}
		c.Next()
	}
}
