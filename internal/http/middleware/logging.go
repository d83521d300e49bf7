// README: Request logging middleware; attaches a request-scoped logger to the context.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"ojoto/internal/logging"
)

// Logging must run after RequestID.
func Logging(base *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		log := base.WithRequestID(RequestIDFrom(c)).With(
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
		c.Request = c.Request.WithContext(log.WithContext(c.Request.Context()))

		c.Next()

		status := c.Writer.Status()
		args := []any{
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"bytes", c.Writer.Size(),
			"client_ip", c.ClientIP(),
		}
		switch {
		case status >= 500:
			log.Error("request completed", args...)
		case status >= 400:
			log.Warn("request completed", args...)
		default:
			log.Info("request completed", args...)
		}
	}
}
