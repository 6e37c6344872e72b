// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the scoring engine.
type Config struct {
	// Weights is the per-group weight table used by the weighted formulas.
	Weights WeightTable `json:"weights"`

	// Normalize divides stored feature magnitudes (NORMALIZE). Default: 10.
	Normalize float64 `json:"normalize"`

	// Epsilon guards the cosine denominator. Default: 1e-6.
	Epsilon float64 `json:"epsilon"`

	// PrimaryAlgorithm ranks the conversational and /products paths.
	PrimaryAlgorithm Algorithm `json:"primary_algorithm"`

	// BlindTestFamily selects the algorithm triple compared in blind tests.
	BlindTestFamily Family `json:"blind_test_family"`

	// DefaultLimit is the result size of the primary path. Default: 10.
	DefaultLimit int `json:"default_limit"`

	// BlindTestLimit is the per-algorithm result size of a blind test. Default: 5.
	BlindTestLimit int `json:"blind_test_limit"`

	// MaxLimit caps any caller-provided limit.
	MaxLimit int `json:"max_limit"`

	// QueryTimeout bounds a single catalog query. Zero disables the bound.
	QueryTimeout time.Duration `json:"query_timeout"`
}

// DefaultConfig returns production-ready defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights:          DefaultWeights(),
		Normalize:        10.0,
		Epsilon:          1e-6,
		PrimaryAlgorithm: AlgorithmLinear,
		BlindTestFamily:  FamilyNormalized,
		DefaultLimit:     10,
		BlindTestLimit:   5,
		MaxLimit:         50,
		QueryTimeout:     5 * time.Second,
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	w := c.Weights
	if w.Age < 0 || w.Gender < 0 || w.Occasion < 0 || w.Interest < 0 {
		return fmt.Errorf("weights must be non-negative: %+v", w)
	}
	if c.Normalize <= 0 {
		return fmt.Errorf("normalize must be positive, got %v", c.Normalize)
	}
	if c.Epsilon <= 0 {
		return fmt.Errorf("epsilon must be positive, got %v", c.Epsilon)
	}
	if !c.PrimaryAlgorithm.Valid() {
		return fmt.Errorf("unknown primary algorithm %q", c.PrimaryAlgorithm)
	}
	if !c.BlindTestFamily.Valid() {
		return fmt.Errorf("unknown blind test family %q", c.BlindTestFamily)
	}
	if c.DefaultLimit <= 0 || c.BlindTestLimit <= 0 {
		return fmt.Errorf("limits must be positive")
	}
	if c.MaxLimit < c.DefaultLimit || c.MaxLimit < c.BlindTestLimit {
		return fmt.Errorf("max_limit %d is below a default limit", c.MaxLimit)
	}
	if c.QueryTimeout < 0 {
		return fmt.Errorf("query timeout must not be negative")
	}
	return nil
}
