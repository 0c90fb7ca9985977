package monitoring

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware creates Gin middleware for request monitoring.
func Middleware(metrics *Metrics, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		metrics.IncrementRequest()

		method := c.Request.Method
		path := c.Request.URL.Path
		ip := c.ClientIP()

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		if statusCode >= 400 {
			metrics.IncrementError()
		}

		logger.Info("request completed",
			"method", method,
			"path", path,
			"ip", ip,
			"status", statusCode,
			"duration_ms", duration.Milliseconds())

		if duration > 5*time.Second {
			logger.Warn("slow request",
				"method", method,
				"path", path,
				"duration_ms", duration.Milliseconds())
		}
	}
}
