package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(planJobsTotal, planJobDurationSeconds, planJobTimeouts) }

var planJobsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "plan_jobs_total",
		Help: "Plan jobs reaching a terminal state, labeled by outcome.",
	},
	[]string{"outcome"}, // 'completed', 'failed'
)

var planJobDurationSeconds = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "plan_job_duration_seconds",
		Help:    "Wall-clock time from submission to terminal state.",
		Buckets: []float64{5, 15, 30, 60, 120, 180, 300, 600},
	},
	[]string{"outcome"},
)

var planJobTimeouts = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "plan_job_timeouts_total",
		Help: "Jobs forced to failed after exceeding the client deadline.",
	},
)

func ObserveJobFinished(outcome string, seconds float64) {
	planJobsTotal.WithLabelValues(norm(outcome)).Inc()
	planJobDurationSeconds.WithLabelValues(norm(outcome)).Observe(seconds)
}

func IncJobTimeout() { planJobTimeouts.Inc() }
