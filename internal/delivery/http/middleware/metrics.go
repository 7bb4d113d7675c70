package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"pulsefeed-backend/internal/metrics"
)

// Metrics records request counts and latencies labeled by route
// template, not the raw URL, to keep cardinality bounded.
func Metrics(provider metrics.MetricsProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		provider.IncrementHTTPRequests(c.Request.Method, path, strconv.Itoa(c.Writer.Status()))
		provider.RecordHTTPRequestDuration(c.Request.Method, path, time.Since(start))
	}
}
