package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by route pattern and status code",
		},
		[]string{"pattern", "code"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"pattern"},
	)
	GamesStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "games_started_total",
			Help: "Games started by difficulty",
		},
		[]string{"difficulty"},
	)
	GamesFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "games_finished_total",
			Help: "Games finished by final status",
		},
		[]string{"status"},
	)
	HintsServed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hints_served_total",
			Help: "Hints served by confidence",
		},
		[]string{"confidence"},
	)
	HintsLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hints_rate_limited_total",
			Help: "Hint requests rejected by the rate limiter",
		},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequests,
		HTTPDuration,
		GamesStarted,
		GamesFinished,
		HintsServed,
		HintsLimited,
	)
}
