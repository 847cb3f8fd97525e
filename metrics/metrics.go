// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APIRequestsTotal counts finished HTTP requests.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dinepick_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		},
		[]string{"method", "route", "status"},
	)

	// APIRequestDuration observes HTTP request latency.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dinepick_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// APIActiveRequests is the number of in-flight requests.
	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dinepick_http_active_requests",
			Help: "Requests currently being served",
		},
	)

	// RecommendationsTotal counts recommendation calls by outcome.
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dinepick_recommendations_total",
			Help: "Recommendation calls by mode and outcome (found, empty, invalid)",
		},
		[]string{"mode", "outcome"},
	)

	// RecommendationResults observes result list lengths.
	RecommendationResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dinepick_recommendation_results",
			Help:    "Number of restaurants returned per recommendation",
			Buckets: []float64{0, 1, 3, 5, 10},
		},
		[]string{"mode"},
	)

	// DatasetRecords is the size of the loaded dataset.
	DatasetRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dinepick_dataset_records",
			Help: "Restaurants loaded into memory",
		},
	)
)

// Recommendation outcomes.
const (
	OutcomeFound   = "found"
	OutcomeEmpty   = "empty"
	OutcomeInvalid = "invalid"
)

// RecordAPIRequest records one finished HTTP request.
func RecordAPIRequest(method, route, status string, d time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, status).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// TrackActiveRequest moves the in-flight gauge.
func TrackActiveRequest(start bool) {
	if start {
		APIActiveRequests.Inc()
		return
	}
	APIActiveRequests.Dec()
}

// RecordRecommendation records the outcome of one recommendation call.
func RecordRecommendation(mode, outcome string, n int) {
	RecommendationsTotal.WithLabelValues(mode, outcome).Inc()
	if outcome != OutcomeInvalid {
		RecommendationResults.WithLabelValues(mode).Observe(float64(n))
	}
}
