package recommender

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RecommendationsGeneratedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommender_batches_generated_total",
			Help: "Count of generated recommendation batches by algorithm.",
		},
		[]string{"algorithm"},
	)

	ExplanationFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "recommender_explanation_failures_total",
			Help: "Count of explanation generator calls that failed or timed out.",
		},
	)
)

func init() {
	prometheus.MustRegister(RecommendationsGeneratedTotal, ExplanationFailuresTotal)
}
