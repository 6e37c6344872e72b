// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/giftmatch/internal/auth"
	"github.com/tomtom215/giftmatch/internal/middleware"
)

// Router wires handlers to routes.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware

	// verifier guards the blind-test submission and history endpoints.
	// Nil leaves them public.
	verifier *auth.JWTVerifier
}

// NewRouter creates a router. verifier may be nil.
func NewRouter(handler *Handler, mw *ChiMiddleware, verifier *auth.JWTVerifier) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: mw, verifier: verifier}
}

// SetupChi configures all HTTP routes using Chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.AccessLog)
	r.Use(router.chiMiddleware.CORS())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	r.Route("/health", func(r chi.Router) {
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)
		r.Use(middleware.Compression)

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit("catalog"))
			r.Get("/algorithms", router.handler.Algorithms)
			r.Post("/products", router.handler.Products)
			r.Post("/blind-test/recommendations", router.handler.BlindTestRecommendations)
		})

		// Each turn may call the language model.
		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitExpensive("chat"))
			r.Post("/chat/fill", router.handler.ChatFill)
		})
		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit("chat_revise"))
			r.Post("/chat/revise", router.handler.ChatRevise)
		})

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit("blind_test"))
			r.Use(auth.RequireBearer(router.verifier))
			r.Post("/blind-test/submit", router.handler.BlindTestSubmit)
			r.Get("/blind-test/previous-sessions", router.handler.PreviousSessions)
		})
	})

	return r
}
