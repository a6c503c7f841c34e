package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const OutcomeSuccess = "success"

var (
	GenerationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "floorplan_generation_requests_total",
			Help: "Total number of floor plan submissions by outcome",
		},
		[]string{"outcome"},
	)

	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "floorplan_generation_duration_seconds",
			Help:    "Duration of a floor plan generation call in seconds",
			Buckets: []float64{1, 2.5, 5, 10, 20, 30, 60, 120},
		},
	)

	GeneratedImages = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "floorplan_generated_images_total",
			Help: "Total number of floor plan images returned to the user",
		},
	)

	GenerationInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "floorplan_generation_in_flight",
			Help: "Number of submissions currently waiting on the image service",
		},
	)
)
