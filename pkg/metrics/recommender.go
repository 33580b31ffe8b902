package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the recommendation generate HTTP handler
	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommender_generate_latency_seconds",
		Help:    "Latency of the recommendation generate handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of recommendation requests served
	RecommendRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recommender_generate_requests_total",
		Help: "Total number of recommendation generate requests",
	})
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		RecommendRequests,
	)
}
