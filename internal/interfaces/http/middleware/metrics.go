package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/BrandGuard-Intelligence/internal/infrastructure/monitoring/prometheus"
)

// Metrics records request counts, latency, and in-flight gauges per route.
// The route template (not the raw URL) labels the series so path parameters
// cannot explode cardinality.
func Metrics(m *prometheus.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method

		m.HTTPActiveRequests.WithLabelValues(method, path).Inc()
		start := time.Now()

		c.Next()

		m.HTTPActiveRequests.WithLabelValues(method, path).Dec()
		prometheus.RecordHTTPRequest(m, method, path, c.Writer.Status(), time.Since(start))
	}
}

//Personal.AI order the ending
