// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package main

import (
	"github.com/tomtom215/giftmatch/internal/api"
	"github.com/tomtom215/giftmatch/internal/budget"
	"github.com/tomtom215/giftmatch/internal/config"
	"github.com/tomtom215/giftmatch/internal/conversation"
	"github.com/tomtom215/giftmatch/internal/extractor"
	"github.com/tomtom215/giftmatch/internal/logging"
	"github.com/tomtom215/giftmatch/internal/recommend"
)

// Conversions from the flat koanf layout into package configs.

func loggingConfig(cfg *config.Config) logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = cfg.Logging.Level
	lc.Format = cfg.Logging.Format
	lc.Caller = cfg.Logging.Caller
	return lc
}

func recommendConfig(cfg *config.RecommendConfig) *recommend.Config {
	return &recommend.Config{
		Weights: recommend.WeightTable{
			Age:      cfg.WeightAge,
			Gender:   cfg.WeightGender,
			Occasion: cfg.WeightOccasion,
			Interest: cfg.WeightInterest,
		},
		Normalize:        cfg.Normalize,
		Epsilon:          cfg.Epsilon,
		PrimaryAlgorithm: recommend.Algorithm(cfg.PrimaryAlgorithm),
		BlindTestFamily:  recommend.Family(cfg.BlindTestFamily),
		DefaultLimit:     cfg.DefaultLimit,
		BlindTestLimit:   cfg.BlindTestLimit,
		MaxLimit:         cfg.MaxLimit,
		QueryTimeout:     cfg.QueryTimeout,
	}
}

// budgetPolicy treats a zero maximum as an open upper bound. Minimums are
// always bounded; zero is a valid floor.
func budgetPolicy(cfg *config.BudgetConfig) budget.Policy {
	bounded := func(v float64) *float64 {
		if v <= 0 {
			return nil
		}
		return &v
	}
	floor := func(v float64) *float64 { return &v }

	return budget.Policy{
		SingleValueBand: cfg.SingleValueBand,
		Cheap:           budget.Band{Min: floor(cfg.CheapMin), Max: bounded(cfg.CheapMax)},
		Luxury:          budget.Band{Min: floor(cfg.LuxuryMin), Max: bounded(cfg.LuxuryMax)},
	}
}

func extractorConfig(cfg *config.ExtractorConfig) extractor.Config {
	return extractor.Config{
		BaseURL:           cfg.BaseURL,
		APIKey:            cfg.APIKey,
		Model:             cfg.Model,
		Temperature:       cfg.Temperature,
		Timeout:           cfg.Timeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.Burst,
		BreakerFailures:   cfg.BreakerFailures,
		BreakerTimeout:    cfg.BreakerTimeout,
	}
}

func conversationConfig(cfg *config.Config) conversation.Config {
	return conversation.Config{
		ProceedWithoutBudget: cfg.Conversation.ProceedWithoutBudget,
		DefaultLanguage:      cfg.Conversation.DefaultLanguage,
		Limit:                cfg.Recommend.DefaultLimit,
		Budget:               budgetPolicy(&cfg.Budget),
	}
}

func middlewareConfig(cfg *config.SecurityConfig) *api.ChiMiddlewareConfig {
	mc := api.DefaultChiMiddlewareConfig()
	mc.CORSAllowedOrigins = cfg.CORSOrigins
	mc.RateLimitRequests = cfg.RateLimitReqs
	mc.RateLimitWindow = cfg.RateLimitWindow
	mc.RateLimitDisabled = cfg.RateLimitDisabled
	return mc
}
