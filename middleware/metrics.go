package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records request counts and latencies per route on reg.
func Metrics(reg prometheus.Registerer) gin.HandlerFunc {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fund_insights_http_requests_total",
		Help: "HTTP requests by route, method and status",
	}, []string{"route", "method", "status"})

	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fund_insights_http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"route", "method"})

	reg.MustRegister(requests, latency)

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		latency.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
