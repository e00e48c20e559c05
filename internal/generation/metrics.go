package generation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generationRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "frontdesigner_generation_requests_total",
			Help: "Total number of generation requests by requested and used provider.",
		},
		[]string{"requested", "used"},
	)

	providerCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "frontdesigner_provider_call_duration_seconds",
			Help:    "Duration of outbound provider calls by provider and outcome.",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
		},
		[]string{"provider", "outcome"},
	)

	breakerTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "frontdesigner_provider_breaker_transitions_total",
			Help: "Total number of provider circuit breaker state changes.",
		},
		[]string{"provider", "to"},
	)
)
