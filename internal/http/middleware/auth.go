// README: Bearer-token auth middleware; the verified subject becomes the caller id.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ojoto/internal/infra"
	"ojoto/internal/logging"
)

const callerUIDKey = "caller_uid"

// Auth rejects requests without a verifiable bearer token.
func Auth(verifier infra.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		raw = strings.TrimSpace(raw)
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		token, err := verifier.VerifyIDToken(c.Request.Context(), raw)
		if err != nil || token == nil || token.UID == "" {
			if err != nil {
				logging.FromContext(c.Request.Context()).Debug("token rejected", "error", err.Error())
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(callerUIDKey, token.UID)
		log := logging.FromContext(c.Request.Context()).With("caller_uid", token.UID)
		c.Request = c.Request.WithContext(log.WithContext(c.Request.Context()))
		c.Next()
	}
}

// CallerUID returns the authenticated caller, or "" outside Auth.
func CallerUID(c *gin.Context) string {
	return c.GetString(callerUIDKey)
}
