// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/giftmatch/internal/cache"
	"github.com/tomtom215/giftmatch/internal/logging"
	"github.com/tomtom215/giftmatch/internal/models"
	"github.com/tomtom215/giftmatch/internal/profile"
	"github.com/tomtom215/giftmatch/internal/recommend"
)

// msgNoFilters is returned by /products for a profile with no selection.
const msgNoFilters = "No filters selected"

// Products handles POST /api/v1/products.
//
// The body is a flat profile ({"age_19_29": true, ..., "min_budget": 100}).
// Unknown keys, exclusivity violations and an inverted budget are
// rejected with 400. The response lists the top products under the
// primary algorithm.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var body map[string]interface{}
	if err := decodeJSON(w, r, h.opts.MaxBodyBytes, &body); err != nil {
		respondDecodeError(w, err)
		return
	}

	p, err := profile.FromMap(body)
	if err == nil {
		err = p.CheckBudget()
	}
	if err != nil {
		respondDomainError(w, err)
		return
	}

	key := cache.GenerateKey("products:", p.ToMap())
	if h.productCache != nil {
		if cached, ok := h.productCache.Get(key); ok {
			respondJSON(w, http.StatusOK, &models.APIResponse{
				Status: "success",
				Data:   cached,
				Metadata: models.Metadata{
					Timestamp: time.Now(),
					Cached:    true,
					RequestID: logging.RequestIDFromContext(r.Context()),
				},
			})
			return
		}
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	resp, err := h.engine.Recommend(ctx, recommend.Request{
		Vector:    recommend.FromProfile(p),
		MinBudget: p.MinBudget,
		MaxBudget: p.MaxBudget,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	out := &models.ProductsResponse{
		Algorithm: resp.Algorithm,
		Products:  resp.Candidates,
	}
	if resp.Degenerate {
		out.Message = msgNoFilters
	}
	if h.productCache != nil {
		h.productCache.Set(key, out)
	}

	respondSuccess(w, r, out, start)
}

// Algorithms handles GET /api/v1/algorithms.
func (h *Handler) Algorithms(w http.ResponseWriter, r *http.Request) {
	cfg := h.engine.Config()
	respondSuccess(w, r, models.AlgorithmsResponse{
		Primary:         cfg.PrimaryAlgorithm,
		BlindTestFamily: cfg.BlindTestFamily,
		Algorithms:      recommend.Algorithms(),
	}, time.Now())
}
