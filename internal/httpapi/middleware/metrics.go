package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jujulabs/juju-dashboard/internal/metrics"
)

// Metrics records request duration and totals per route.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RequestDuration.WithLabelValues(route).
			Observe(time.Since(start).Seconds())
		metrics.RequestTotal.WithLabelValues(route,
			strconv.Itoa(c.Writer.Status())).Inc()
	}
}
