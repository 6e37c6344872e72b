// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/giftmatch/internal/cache"
	"github.com/tomtom215/giftmatch/internal/conversation"
	"github.com/tomtom215/giftmatch/internal/database"
	"github.com/tomtom215/giftmatch/internal/models"
	"github.com/tomtom215/giftmatch/internal/recommend"
)

// BlindTestStore persists blind-test sessions. *database.DB implements it.
type BlindTestStore interface {
	SubmitBlindTest(ctx context.Context, sub database.BlindTestSubmission) (int64, error)
	RecentBlindTestSessions(ctx context.Context, limit int) ([]database.BlindTestSession, error)
}

// Pinger reports backend reachability for the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options holds request handling limits.
type Options struct {
	// MaxBodyBytes bounds JSON request bodies.
	MaxBodyBytes int64

	// RequestTimeout bounds the work done for one request. Zero disables it.
	RequestTimeout time.Duration

	Version string
}

// Dependencies are the collaborators the handlers call. Engine,
// Conversation and Store are required; ProductCache and DB are optional.
type Dependencies struct {
	Engine       *recommend.Engine
	Conversation *conversation.Orchestrator
	Store        BlindTestStore
	DB           Pinger

	// ProductCache memoizes /products responses by profile.
	ProductCache *cache.Cache[*models.ProductsResponse]
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: JSON encode/decode and error envelopes
//   - handlers_health.go: health and readiness probes
//   - handlers_products.go: direct profile ranking and algorithm listing
//   - handlers_chat.go: conversational fill and revise
//   - handlers_blindtest.go: blind-test recommendations, submission and history
type Handler struct {
	engine       *recommend.Engine
	conversation *conversation.Orchestrator
	store        BlindTestStore
	db           Pinger
	productCache *cache.Cache[*models.ProductsResponse]
	opts         Options
	startTime    time.Time
}

// NewHandler creates a new API handler.
func NewHandler(deps Dependencies, opts Options) (*Handler, error) {
	switch {
	case deps.Engine == nil:
		return nil, errors.New("api: recommendation engine is required")
	case deps.Conversation == nil:
		return nil, errors.New("api: conversation orchestrator is required")
	case deps.Store == nil:
		return nil, errors.New("api: blind test store is required")
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	return &Handler{
		engine:       deps.Engine,
		conversation: deps.Conversation,
		store:        deps.Store,
		db:           deps.DB,
		productCache: deps.ProductCache,
		opts:         opts,
		startTime:    time.Now(),
	}, nil
}

// requestContext applies the configured request timeout.
func (h *Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if h.opts.RequestTimeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), h.opts.RequestTimeout)
}
