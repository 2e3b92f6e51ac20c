package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"travelapp/internal/metrics"
	"travelapp/internal/utils"
)

// Logger writes one access line per request and counts it by route template
// when m is set. Unmatched paths share one label to keep cardinality bounded.
func Logger(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()

		utils.LogEventf(GetRequestID(c), "HTTP", c.Request.Method,
			"path=%s route=%s status=%d latency_ms=%.3f ip=%s user=%s",
			c.Request.URL.Path, route, status,
			float64(elapsed.Microseconds())/1000.0,
			c.ClientIP(), GetRequestContext(c).UserKey(),
		)
		m.ObserveRequest(route, status, elapsed)
	}
}
