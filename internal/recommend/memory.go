// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package recommend

import (
	"context"
	"sort"
	"sync"
)

// Product is a catalog entry held by MemoryCatalog.
type Product struct {
	ID           int64
	Name         string
	Price        float64
	Features     FeatureVector
	PriceDrop7d  bool
	PriceDrop30d bool
}

// MemoryCatalog is an in-process CatalogReader. It scores with Score and
// applies the same filters and ordering as the database catalog, which
// makes it suitable for fixtures and for checking the SQL compiler.
type MemoryCatalog struct {
	mu       sync.RWMutex
	products []Product
}

// NewMemoryCatalog creates a catalog holding a copy of products.
func NewMemoryCatalog(products ...Product) *MemoryCatalog {
	c := &MemoryCatalog{}
	c.Add(products...)
	return c
}

// Add appends products to the catalog.
func (c *MemoryCatalog) Add(products ...Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = append(c.products, products...)
}

// FetchCandidates implements CatalogReader.
//
//nolint:gocritic // ScoreSpec is read-only here
func (c *MemoryCatalog) FetchCandidates(ctx context.Context, spec ScoreSpec) ([]Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	excluded := make(map[int64]struct{}, len(spec.ExcludeIDs))
	for _, id := range spec.ExcludeIDs {
		excluded[id] = struct{}{}
	}

	c.mu.RLock()
	out := make([]Candidate, 0, len(c.products))
	for i := range c.products {
		p := &c.products[i]
		if _, skip := excluded[p.ID]; skip {
			continue
		}
		if spec.MinPrice != nil && p.Price < *spec.MinPrice {
			continue
		}
		if spec.MaxPrice != nil && p.Price > *spec.MaxPrice {
			continue
		}
		out = append(out, Candidate{
			ProductID:    p.ID,
			Name:         p.Name,
			Price:        p.Price,
			Score:        Score(spec, p.Features),
			PriceDrop7d:  p.PriceDrop7d,
			PriceDrop30d: p.PriceDrop30d,
		})
	}
	c.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ProductID < out[j].ProductID
	})
	if spec.Limit > 0 && len(out) > spec.Limit {
		out = out[:spec.Limit]
	}
	return out, nil
}
