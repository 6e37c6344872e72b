// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered on the default registry through promauto and
exposed at /metrics in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)

Database Metrics:
  - duckdb_query_duration_seconds: Query execution time (histogram)
    Labels: operation, table
  - duckdb_query_errors_total: Failed queries (counter)

Recommendation Metrics:
  - recommend_query_duration_seconds: Ranked query latency (histogram)
    Labels: algorithm
  - recommend_candidates: Candidates returned per query (histogram)
  - recommend_degenerate_queries_total: Queries with no active dimension
  - recommend_errors_total: Failed ranked queries
  - blind_test_sessions_total, blind_test_selections_total

Conversation Metrics:
  - conversation_turns_total: Turns by resulting state
  - conversation_prompts_total: Follow-up prompts by slot
  - conversation_language_cache_{hits,misses}_total

Extractor Metrics:
  - extractor_request_duration_seconds: Language model latency
    Labels: operation (extract, language)
  - extractor_errors_total: Labels operation, error_type

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total: Labels name, result
  - circuit_breaker_state_transitions_total

# Usage

	start := time.Now()
	rows, err := db.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("select", "product", time.Since(start), err)
*/
package metrics
