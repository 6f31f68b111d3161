package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "juju_dash_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"route"},
	)

	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "juju_dash_request_total",
			Help: "Total HTTP requests served",
		},
		[]string{"route", "status"},
	)

	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "juju_dash_view_cache_hits_total",
			Help: "View cache lookups by outcome",
		},
		[]string{"view", "outcome"},
	)

	EvalEventsConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "juju_dash_eval_events_total",
			Help: "Evaluation events consumed by status",
		},
		[]string{"status"},
	)
)

func Register() {
	prometheus.MustRegister(RequestDuration, RequestTotal, CacheHits, EvalEventsConsumed)
}
