// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/giftmatch/internal/metrics"
)

// ErrNoCatalog is returned when the engine has no catalog reader.
var ErrNoCatalog = errors.New("recommend: no catalog reader configured")

// Engine turns feature vectors into ranked candidates. It holds no
// per-request state and is safe for concurrent use.
type Engine struct {
	config  *Config
	logger  zerolog.Logger
	catalog CatalogReader

	requestCount    atomic.Int64
	degenerateCount atomic.Int64
	emptyCount      atomic.Int64
	errorCount      atomic.Int64
}

// NewEngine creates a scoring engine reading from catalog.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, catalog CatalogReader, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if catalog == nil {
		return nil, ErrNoCatalog
	}

	return &Engine{
		config:  cfg,
		logger:  logger.With().Str("component", "recommend").Logger(),
		catalog: catalog,
	}, nil
}

// Config returns the engine configuration. Callers must not modify it.
func (e *Engine) Config() *Config {
	return e.config
}

// BuildSpec resolves defaults and turns a request into a catalog query.
// The second return value is false for a degenerate request (no active
// dimension), which must not reach the catalog.
//
//nolint:gocritic // Request is passed by value to keep callers' copies untouched
func (e *Engine) BuildSpec(req Request) (ScoreSpec, bool) {
	alg := req.Algorithm
	if alg == "" {
		alg = e.config.PrimaryAlgorithm
	}

	limit := req.Limit
	if limit <= 0 {
		limit = e.config.DefaultLimit
	}
	if limit > e.config.MaxLimit {
		limit = e.config.MaxLimit
	}

	weights := e.config.Weights
	if alg == AlgorithmLegacyBalanced {
		weights = legacyBalancedWeights
	}

	active := req.Vector.Active()
	terms := make([]Term, 0, len(active))
	for _, d := range active {
		terms = append(terms, Term{Dimension: d, Weight: weights.For(d)})
	}

	spec := ScoreSpec{
		Algorithm:  alg,
		Terms:      terms,
		Normalize:  e.config.Normalize,
		Epsilon:    e.config.Epsilon,
		MinPrice:   req.MinBudget,
		MaxPrice:   req.MaxBudget,
		ExcludeIDs: req.ExcludeIDs,
		Limit:      limit,
	}
	if alg.Family() == FamilyLegacy {
		spec.Offset = LegacyOffset
	}
	return spec, len(terms) > 0
}

// Recommend ranks the catalog for one request.
//
// A request with no active dimension returns an empty, Degenerate response
// without touching the catalog. A catalog failure returns *StorageError
// and no candidates.
//
//nolint:gocritic // Request is passed by value to keep callers' copies untouched
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	if req.Algorithm != "" && !req.Algorithm.Valid() {
		return nil, fmt.Errorf("unknown algorithm %q", req.Algorithm)
	}

	spec, ok := e.BuildSpec(req)
	if !ok {
		e.degenerateCount.Add(1)
		metrics.RecommendDegenerate.Inc()
		e.logger.Debug().Str("algorithm", string(spec.Algorithm)).Msg("degenerate query, no active dimensions")
		return &Response{
			Algorithm:   spec.Algorithm,
			Candidates:  []Candidate{},
			Degenerate:  true,
			GeneratedAt: time.Now(),
		}, nil
	}

	queryCtx := ctx
	if e.config.QueryTimeout > 0 {
		var cancel context.CancelFunc
		queryCtx, cancel = context.WithTimeout(ctx, e.config.QueryTimeout)
		defer cancel()
	}

	candidates, err := e.catalog.FetchCandidates(queryCtx, spec)
	if err != nil {
		e.errorCount.Add(1)
		metrics.RecommendErrors.WithLabelValues(string(spec.Algorithm)).Inc()
		return nil, &StorageError{Op: "fetch_candidates", Err: err}
	}

	if len(candidates) > spec.Limit {
		candidates = candidates[:spec.Limit]
	}
	for i := range candidates {
		candidates[i].Rank = i + 1
	}
	if len(candidates) == 0 {
		e.emptyCount.Add(1)
		candidates = []Candidate{}
	}

	elapsed := time.Since(start)
	metrics.RecordRecommendation(string(spec.Algorithm), len(candidates), elapsed)

	e.logger.Debug().
		Str("algorithm", string(spec.Algorithm)).
		Int("active_dimensions", len(spec.Terms)).
		Int("candidates", len(candidates)).
		Dur("duration", elapsed).
		Msg("ranked catalog")

	return &Response{
		Algorithm:   spec.Algorithm,
		Candidates:  candidates,
		GeneratedAt: time.Now(),
		QueryTimeMS: elapsed.Milliseconds(),
	}, nil
}

// BlindTest ranks the slot input with each algorithm of the configured
// family using the blind-test limit. Any storage error aborts the whole
// comparison.
func (e *Engine) BlindTest(ctx context.Context, in SlotInput, minBudget, maxBudget *float64) (*BlindTestResult, error) {
	family := e.config.BlindTestFamily
	vector := FromSlots(in)

	var lists [3][]Candidate
	for i, alg := range family.Members() {
		resp, err := e.Recommend(ctx, Request{
			Vector:    vector,
			Algorithm: alg,
			MinBudget: minBudget,
			MaxBudget: maxBudget,
			Limit:     e.config.BlindTestLimit,
		})
		if err != nil {
			return nil, err
		}
		lists[i] = resp.Candidates
	}

	return &BlindTestResult{
		Family:     family,
		Algorithm1: lists[0],
		Algorithm2: lists[1],
		Algorithm3: lists[2],
	}, nil
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Metrics {
	return Metrics{
		Requests:   e.requestCount.Load(),
		Degenerate: e.degenerateCount.Load(),
		Empty:      e.emptyCount.Load(),
		Errors:     e.errorCount.Load(),
	}
}
