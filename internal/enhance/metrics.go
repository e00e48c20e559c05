package enhance

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	enhancementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "frontdesigner_enhancements_total",
			Help: "Total number of prompt enhancements by method.",
		},
		[]string{"method"},
	)

	enhancementAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "frontdesigner_enhancement_attempts_total",
			Help: "Total number of enhancement model calls by outcome.",
		},
		[]string{"outcome"},
	)
)
