// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "waste_api"

var (
	// HTTPRequests counts handled requests by route and status code.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Handled HTTP requests.",
	}, []string{"method", "route", "status"})

	// HTTPDuration observes request latency by route.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// Predictions counts returned labels.
	Predictions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "predictions_total",
		Help:      "Predictions returned, by label.",
	}, []string{"label"})

	InferenceDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "inference_duration_seconds",
		Help:      "Forward pass latency.",
		Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	})

	InferenceErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inference_errors_total",
		Help:      "Failed forward passes.",
	})

	// GlassPlasticOverrides counts Glass predictions replaced by Plastic.
	GlassPlasticOverrides = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "glass_plastic_overrides_total",
		Help:      "Glass predictions overridden to Plastic by the margin rule.",
	})

	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "prediction_cache_lookups_total",
		Help:      "Prediction cache lookups, by result.",
	}, []string{"result"})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
