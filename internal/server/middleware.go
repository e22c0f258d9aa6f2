package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/lumen/internal/logger"
	"github.com/julianstephens/lumen/internal/metrics"
)

// observe records request metrics and logs each request at debug level.
func observe(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		status := c.Writer.Status()
		m.ObserveHTTPRequest(c.Request.Method, path, status, duration)
		logger.Debug("request", "method", c.Request.Method, "path", path, "status", status, "duration", duration)
		if status >= 500 {
			logger.Error("request failed", "method", c.Request.Method, "path", path, "errors", c.Errors.String())
		}
	}
}
