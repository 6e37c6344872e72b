// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

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
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
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
			Name:    "recommend_query_duration_seconds",
			Help:    "Duration of ranked candidate queries in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 5},
		},
		[]string{"algorithm"},
	)

	RecommendCandidates = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_candidates",
			Help:    "Number of candidates returned per query",
			Buckets: []float64{0, 1, 3, 5, 10, 25, 50},
		},
		[]string{"algorithm"},
	)

	RecommendDegenerate = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_degenerate_queries_total",
			Help: "Queries with no active dimension, answered without touching the catalog",
		},
	)

	RecommendErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_errors_total",
			Help: "Total number of failed ranked candidate queries",
		},
		[]string{"algorithm"},
	)

	// Blind Test Metrics
	BlindTestSessions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "blind_test_sessions_total",
			Help: "Total number of submitted blind-test sessions",
		},
	)

	BlindTestSelections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blind_test_selections_total",
			Help: "Products marked as selected in blind tests, by algorithm",
		},
		[]string{"algorithm"},
	)

	// Conversation Metrics
	ConversationTurns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conversation_turns_total",
			Help: "Total number of conversation turns by resulting state",
		},
		[]string{"state"},
	)

	ConversationPrompts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conversation_prompts_total",
			Help: "Follow-up prompts asked, by slot",
		},
		[]string{"slot"},
	)

	LanguageCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "conversation_language_cache_hits_total",
			Help: "Session language lookups served from the store",
		},
	)

	LanguageCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "conversation_language_cache_misses_total",
			Help: "Session language lookups that required detection",
		},
	)

	// Extractor Metrics
	ExtractorRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "extractor_request_duration_seconds",
			Help:    "Duration of language model calls in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"operation"},
	)

	ExtractorErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extractor_errors_total",
			Help: "Total number of failed language model calls",
		},
		[]string{"operation", "error_type"}, // error_type: "transport", "status", "parse", "rejected"
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
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
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
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

// RecordRecommendation records a successful ranked query.
func RecordRecommendation(algorithm string, candidates int, duration time.Duration) {
	RecommendDuration.WithLabelValues(algorithm).Observe(duration.Seconds())
	RecommendCandidates.WithLabelValues(algorithm).Observe(float64(candidates))
}

// RecordBlindTestSubmission counts a stored session and its selections.
func RecordBlindTestSubmission(selectedByAlgorithm map[string]int) {
	BlindTestSessions.Inc()
	for alg, n := range selectedByAlgorithm {
		BlindTestSelections.WithLabelValues(alg).Add(float64(n))
	}
}

// RecordConversationTurn records the state a turn ended in and, when a
// follow-up was asked, which slot it targeted.
func RecordConversationTurn(state, slot string) {
	ConversationTurns.WithLabelValues(state).Inc()
	if slot != "" {
		ConversationPrompts.WithLabelValues(slot).Inc()
	}
}

// RecordLanguageLookup records a session language cache lookup.
func RecordLanguageLookup(hit bool) {
	if hit {
		LanguageCacheHits.Inc()
	} else {
		LanguageCacheMisses.Inc()
	}
}

// RecordExtractorCall records a language model call. errorType is empty on
// success.
func RecordExtractorCall(operation, errorType string, duration time.Duration) {
	ExtractorRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if errorType != "" {
		ExtractorErrors.WithLabelValues(operation, errorType).Inc()
	}
}

// RecordCacheLookup records a hit or miss on the named cache.
func RecordCacheLookup(cacheType string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cacheType).Inc()
	} else {
		CacheMisses.WithLabelValues(cacheType).Inc()
	}
}

// CircuitStateValue maps a breaker state name onto the gauge encoding.
func CircuitStateValue(state string) float64 {
	switch state {
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return 0
	}
}
