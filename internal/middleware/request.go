package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/karashiro/jobtrack-api/internal/apperrors"
	"github.com/karashiro/jobtrack-api/internal/logger"
)

// RequestID assigns each request a correlation id and echoes it back in the
// X-Request-ID response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := apperrors.RequestID(c)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// RequestLogger logs one line per request after it completes.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", apperrors.RequestID(c),
		)
	}
}

// Recovery converts panics into the generic internal problem response.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered",
					"panic", r,
					"path", c.Request.URL.Path,
					"request_id", apperrors.RequestID(c),
				)
				apperrors.Respond(c, apperrors.Internal())
				c.Abort()
			}
		}()
		c.Next()
	}
}
