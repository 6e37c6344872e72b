// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package main

import (
	"strconv"
	"testing"
	"time"

	"github.com/tomtom215/giftmatch/internal/budget"
	"github.com/tomtom215/giftmatch/internal/config"
	"github.com/tomtom215/giftmatch/internal/recommend"
)

func TestRecommendConfig(t *testing.T) {
	t.Parallel()

	got := recommendConfig(&config.RecommendConfig{
		WeightAge:        2,
		WeightGender:     4,
		WeightOccasion:   1,
		WeightInterest:   1,
		Normalize:        10,
		Epsilon:          1e-6,
		PrimaryAlgorithm: "linear",
		BlindTestFamily:  "normalized",
		DefaultLimit:     10,
		BlindTestLimit:   5,
		MaxLimit:         50,
		QueryTimeout:     5 * time.Second,
	})
	want := recommend.DefaultConfig()

	if got.Weights != want.Weights {
		t.Errorf("Weights = %+v, want %+v", got.Weights, want.Weights)
	}
	if got.PrimaryAlgorithm != recommend.AlgorithmLinear || got.BlindTestFamily != recommend.FamilyNormalized {
		t.Errorf("algorithm = %q family = %q", got.PrimaryAlgorithm, got.BlindTestFamily)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestBudgetPolicy(t *testing.T) {
	t.Parallel()

	p := budgetPolicy(&config.BudgetConfig{
		SingleValueBand: 0.2,
		CheapMin:        0,
		CheapMax:        300,
		LuxuryMin:       1000,
		LuxuryMax:       0,
	})
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	tests := []struct {
		name    string
		band    budget.Band
		wantMin *float64
		wantMax *float64
	}{
		{"cheap", p.Cheap, ptr(0), ptr(300)},
		{"luxury has open maximum", p.Luxury, ptr(1000), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if !equalPtr(tt.band.Min, tt.wantMin) || !equalPtr(tt.band.Max, tt.wantMax) {
				t.Errorf("band = %s, want [%s, %s]", formatBand(tt.band), format(tt.wantMin), format(tt.wantMax))
			}
		})
	}
}

func TestBudgetPolicy_MatchesDefaults(t *testing.T) {
	t.Parallel()

	got := budgetPolicy(&config.BudgetConfig{SingleValueBand: 0.2, CheapMax: 300, LuxuryMin: 1000})
	want := budget.DefaultPolicy()

	for _, hint := range []budget.Hint{budget.HintCheap, budget.HintLuxury} {
		gMin, gMax := budget.Infer(nil, nil, hint, got)
		wMin, wMax := budget.Infer(nil, nil, hint, want)
		if !equalPtr(gMin, wMin) || !equalPtr(gMax, wMax) {
			t.Errorf("hint %v: got [%s, %s], want [%s, %s]", hint, format(gMin), format(gMax), format(wMin), format(wMax))
		}
	}
}

func TestConversationConfig(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Recommend:    config.RecommendConfig{DefaultLimit: 7},
		Budget:       config.BudgetConfig{SingleValueBand: 0.2, CheapMax: 300, LuxuryMin: 1000},
		Conversation: config.ConversationConfig{ProceedWithoutBudget: false, DefaultLanguage: "ko"},
	}
	got := conversationConfig(cfg)
	if got.ProceedWithoutBudget || got.DefaultLanguage != "ko" || got.Limit != 7 {
		t.Errorf("conversationConfig() = %+v", got)
	}
}

func TestMiddlewareConfig(t *testing.T) {
	t.Parallel()

	got := middlewareConfig(&config.SecurityConfig{
		RateLimitReqs:     60,
		RateLimitWindow:   time.Minute,
		RateLimitDisabled: true,
		CORSOrigins:       []string{"https://gifts.example"},
	})
	if got.RateLimitRequests != 60 || got.RateLimitWindow != time.Minute || !got.RateLimitDisabled {
		t.Errorf("rate limit = %+v", got)
	}
	if len(got.CORSAllowedOrigins) != 1 || got.CORSAllowedOrigins[0] != "https://gifts.example" {
		t.Errorf("CORSAllowedOrigins = %v", got.CORSAllowedOrigins)
	}
	if got.CORSMaxAge != 86400 {
		t.Errorf("CORSMaxAge = %d, want default", got.CORSMaxAge)
	}
}

func ptr(v float64) *float64 { return &v }

func equalPtr(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func format(v *float64) string {
	if v == nil {
		return "open"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatBand(b budget.Band) string {
	return "[" + format(b.Min) + ", " + format(b.Max) + "]"
}
