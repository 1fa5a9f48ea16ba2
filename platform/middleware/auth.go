package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Amritansu-Adi/klantroef/pkg/token"
)

// Context keys set by SessionAuth for downstream handlers.
const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
)

// SessionAuth enforces `Authorization: Bearer <session token>`. A missing
// header is 401; a header that is present but malformed, expired or signed
// with the wrong secret is 403.
func SessionAuth(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		raw := strings.TrimPrefix(header, "Bearer ")
		if raw == header || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid authorization header"})
			return
		}

		claims, err := tokens.VerifySession(strings.TrimSpace(raw))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid or expired session token"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserEmail, claims.Email)
		c.Next()
	}
}
