// Package metrics exposes Prometheus collectors for the evaluator.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "llmeval_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "llmeval_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	GenerationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "llmeval_generations_total",
		Help: "Total generation gateway calls",
	}, []string{"model", "status"})

	GenerationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "llmeval_generation_duration_seconds",
		Help:    "Generation gateway call duration",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
	}, []string{"model"})

	ComparisonCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "llmeval_comparison_cache_hits_total",
		Help: "Comparison combinations served from existing outputs",
	})

	ComparisonCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "llmeval_comparison_cache_misses_total",
		Help: "Comparison combinations that required fresh generation",
	})

	CombinationsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "llmeval_combinations_skipped_total",
		Help: "Comparison combinations skipped without aborting the batch",
	}, []string{"reason"})
)
