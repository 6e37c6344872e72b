// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

/*
Package middleware provides chi-compatible HTTP middleware.

Key Components:

  - RequestID: reuses or generates X-Request-ID and stores it in the logging context
  - PrometheusMetrics: request counters, latency histograms, in-flight gauge
  - AccessLog: one zerolog line per request
  - Compression: gzip for clients that accept it

All middleware has the func(http.Handler) http.Handler shape and is
installed with r.Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)

PrometheusMetrics labels requests with the chi route pattern, so it must
run inside the router for the pattern to be known once the handler
returns.
*/
package middleware
