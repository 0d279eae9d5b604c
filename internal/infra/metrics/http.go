package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() { register(httpRequestsTotal, httpDurationMs) }

var httpRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "API requests by method, route and status code.",
	},
	[]string{"method", "route", "code"},
)

var httpDurationMs = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_ms",
		Help:    "API request duration in milliseconds.",
		Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	},
	[]string{"method", "route"},
)

func ObserveHTTP(method, route string, code int, ms float64) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	httpDurationMs.WithLabelValues(method, route).Observe(ms)
}
