package ui

import (
	"strconv"

	"lifelens/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requestID tags every request with an id for log correlation. A caller-sent
// X-Request-ID is honored so ids survive proxies.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// countRequests counts finished requests by route template and status.
func countRequests(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
