// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/giftmatch/internal/profile"
)

// Candidate is one ranked product. Created per query, never persisted.
type Candidate struct {
	ProductID    int64   `json:"product_id"`
	Name         string  `json:"product_name"`
	Price        float64 `json:"price"`
	Score        float64 `json:"score"`
	Rank         int     `json:"rank"`
	PriceDrop7d  bool    `json:"price_drop_7d"`
	PriceDrop30d bool    `json:"price_drop_30d"`
}

// Term is one active dimension of a score expression with its weight.
type Term struct {
	Dimension profile.Dimension
	Weight    float64
}

// ScoreSpec is the declarative description of a ranking query. Catalog
// implementations compile it into their own query language; they must
// take column identities only from Term.Dimension and pass every number
// as a bound value.
type ScoreSpec struct {
	Algorithm Algorithm
	Terms     []Term

	// Normalize divides stored magnitudes in the normalized family.
	Normalize float64
	// Epsilon keeps the cosine denominator away from zero.
	Epsilon float64
	// Offset is added to stored magnitudes in the legacy family.
	Offset float64

	MinPrice   *float64
	MaxPrice   *float64
	ExcludeIDs []int64
	Limit      int
}

// CatalogReader executes a ScoreSpec against stored product features and
// returns at most spec.Limit candidates ordered by descending score, ties
// by ascending product id. Rank is assigned by the engine.
type CatalogReader interface {
	FetchCandidates(ctx context.Context, spec ScoreSpec) ([]Candidate, error)
}

// Request is a single ranking query.
type Request struct {
	Vector FeatureVector

	// Algorithm defaults to Config.PrimaryAlgorithm.
	Algorithm Algorithm

	MinBudget *float64
	MaxBudget *float64

	// ExcludeIDs are products already shown in this session.
	ExcludeIDs []int64

	// Limit defaults to Config.DefaultLimit and is clamped to Config.MaxLimit.
	Limit int
}

// Response is the ranked result of a Request.
type Response struct {
	Algorithm   Algorithm   `json:"algorithm"`
	Candidates  []Candidate `json:"candidates"`
	Degenerate  bool        `json:"degenerate,omitempty"`
	GeneratedAt time.Time   `json:"generated_at"`
	QueryTimeMS int64       `json:"query_time_ms"`
}

// Empty reports whether no candidate was produced.
func (r *Response) Empty() bool {
	return r == nil || len(r.Candidates) == 0
}

// BlindTestResult holds the side-by-side output of the three algorithms
// of one family.
type BlindTestResult struct {
	Family     Family      `json:"family"`
	Algorithm1 []Candidate `json:"algorithm_1"`
	Algorithm2 []Candidate `json:"algorithm_2"`
	Algorithm3 []Candidate `json:"algorithm_3"`
}

// StorageError wraps a catalog failure. A query that hits one returns no
// candidates at all.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("catalog %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Metrics is a snapshot of engine counters.
type Metrics struct {
	Requests   int64 `json:"requests"`
	Degenerate int64 `json:"degenerate"`
	Empty      int64 `json:"empty"`
	Errors     int64 `json:"errors"`
}
