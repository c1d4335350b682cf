package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "erms",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "path", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "erms",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})

	AssignmentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "erms",
		Name:      "assignments_created_total",
		Help:      "Assignments created.",
	})

	AssignmentsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "erms",
		Name:      "assignments_completed_total",
		Help:      "Assignments transitioned to completed.",
	})

	CapacityAllocated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "erms",
		Name:      "capacity_allocated_percent_total",
		Help:      "Sum of allocation percentages added to engineer capacity.",
	})
)

// Middleware records request counts and latencies per route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the default registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
