package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TripsGenerated = promauto.NewCounter(prometheus.CounterOpts{Namespace: "tripplanner", Name: "trips_generated_total", Help: "Trips generated and stored"})
	BookingsTotal  = promauto.NewCounterVec(prometheus.CounterOpts{Namespace: "tripplanner", Name: "bookings_total", Help: "Confirmed bookings"}, []string{"kind"})

	NormalizationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "tripplanner", Name: "normalization_failures_total", Help: "Model outputs rejected during normalization"},
		[]string{"kind", "reason"},
	)
	OracleLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tripplanner",
			Name:      "oracle_latency_seconds",
			Help:      "Generative model call latency",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 40, 60},
		},
		[]string{"purpose", "outcome"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "tripplanner", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tripplanner",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
