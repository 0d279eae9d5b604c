package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() { register(pollsTotal, pollLatencyMs, pollFailureStreak) }

var pollsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "planner_polls_total",
		Help: "Status polls against the planner service, by success.",
	},
	[]string{"success"},
)

var pollLatencyMs = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "planner_poll_latency_ms",
		Help:    "Poll round-trip latency distribution in milliseconds.",
		Buckets: []float64{10, 25, 50, 100, 200, 400, 800, 1600, 3000, 5000},
	},
	[]string{"success"},
)

var pollFailureStreak = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "planner_poll_failure_streak",
		Help:    "Consecutive poll failures observed before recovery or give-up.",
		Buckets: []float64{1, 2, 3, 5, 8, 13},
	},
)

func ObservePoll(success bool, latencyMs int) {
	lbl := strconv.FormatBool(success)
	pollsTotal.WithLabelValues(lbl).Inc()
	pollLatencyMs.WithLabelValues(lbl).Observe(float64(latencyMs))
}

func ObservePollFailureStreak(n int) {
	if n > 0 {
		pollFailureStreak.Observe(float64(n))
	}
}
