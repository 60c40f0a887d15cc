// Cinematch - Genre-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package metrics declares the Prometheus collectors exported on /metrics.
// Collectors register with the default registry through promauto; callers
// use the Record helpers rather than touching label sets directly.
package metrics

import (
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Metrics
	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Time spent ranking in the recommendation engine",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"mode"}, // mode: "user", "similar"
	)

	RecommendResultSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_result_size",
			Help:    "Number of movies returned per recommendation request",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
		},
		[]string{"mode"},
	)

	RecommendCatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_catalog_size",
			Help: "Catalog size seen by the most recent recommendation request",
		},
	)

	RecommendComparisons = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_comparisons_total",
			Help: "Total pairwise similarity computations",
		},
	)

	RecommendZeroVectorMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_zero_vector_movies",
			Help: "Catalog movies without any recognized genre in the most recent request",
		},
	)

	RecommendErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_errors_total",
			Help: "Total recommendation requests that failed",
		},
		[]string{"mode", "reason"},
	)

	// Upstream Catalog Metrics
	UpstreamFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_fetch_duration_seconds",
			Help:    "Duration of upstream catalog fetches in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"source"},
	)

	UpstreamFetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_fetch_errors_total",
			Help: "Total failed upstream catalog fetches",
		},
		[]string{"source", "reason"},
	)

	UpstreamRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_retries_total",
			Help: "Total upstream requests retried after HTTP 429",
		},
		[]string{"source"},
	)

	UpstreamRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "upstream_records",
			Help: "Records returned by the most recent successful fetch",
		},
		[]string{"source"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a request rejected by the inbound limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// Recommendation modes used as the "mode" label.
const (
	ModeUser    = "user"
	ModeSimilar = "similar"
)

// RecommendationStats is what the engine reports about one request.
type RecommendationStats struct {
	Mode        string
	Duration    time.Duration
	Results     int
	CatalogSize int
	Comparisons int
	ZeroVectors int
}

// RecordRecommendation records a completed recommendation request.
func RecordRecommendation(s RecommendationStats) {
	RecommendDuration.WithLabelValues(s.Mode).Observe(s.Duration.Seconds())
	RecommendResultSize.WithLabelValues(s.Mode).Observe(float64(s.Results))
	RecommendCatalogSize.Set(float64(s.CatalogSize))
	RecommendComparisons.Add(float64(s.Comparisons))
	// Only full aggregation scans the whole catalog for empty vectors.
	if s.Mode == ModeUser {
		RecommendZeroVectorMovies.Set(float64(s.ZeroVectors))
	}
}

// RecordRecommendationError counts a failed request. reason is a short
// classification such as "upstream" or "not_found".
func RecordRecommendationError(mode, reason string) {
	RecommendErrors.WithLabelValues(mode, reason).Inc()
}

// RecordUpstreamFetch records one fetch of an upstream source. An empty
// reason marks success.
func RecordUpstreamFetch(source string, duration time.Duration, records int, reason string) {
	UpstreamFetchDuration.WithLabelValues(source).Observe(duration.Seconds())
	if reason != "" {
		UpstreamFetchErrors.WithLabelValues(source, reason).Inc()
		return
	}
	UpstreamRecords.WithLabelValues(source).Set(float64(records))
}

// RecordUpstreamRetry counts a retried upstream request.
func RecordUpstreamRetry(source string) {
	UpstreamRetries.WithLabelValues(source).Inc()
}

// SetAppInfo publishes the build version.
func SetAppInfo(version string) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
}

// UpdateUptime sets the uptime gauge relative to start.
func UpdateUptime(start time.Time) {
	AppUptime.Set(time.Since(start).Seconds())
}
