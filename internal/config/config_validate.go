// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package config

import (
	"fmt"
	"net/url"
	"strings"
)

var (
	validAlgorithms = map[string]bool{
		"linear": true, "cosine": true, "inverse_distance": true,
		"legacy_product": true, "legacy_weighted": true, "legacy_balanced": true,
	}
	validFamilies   = map[string]bool{"normalized": true, "legacy": true}
	validLogLevels  = map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "warning": true, "error": true}
	validLogFormats = map[string]bool{"json": true, "console": true}
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateBudget(); err != nil {
		return err
	}
	if err := c.validateConversation(); err != nil {
		return err
	}
	if err := c.validateExtractor(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.API.MaxBodyBytes <= 0 {
		return fmt.Errorf("API_MAX_BODY_BYTES must be positive")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.JWTSecret != "" && len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters when set")
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs <= 0 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive")
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
		}
	}
	if strings.EqualFold(c.Server.Environment, "production") {
		for _, origin := range c.Security.CORSOrigins {
			if origin == "*" {
				return fmt.Errorf("CORS_ORIGINS must not contain '*' in production")
			}
		}
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.WeightAge < 0 || r.WeightGender < 0 || r.WeightOccasion < 0 || r.WeightInterest < 0 {
		return fmt.Errorf("recommend weights must be non-negative")
	}
	if r.Normalize <= 0 {
		return fmt.Errorf("RECOMMEND_NORMALIZE must be positive, got %v", r.Normalize)
	}
	if r.Epsilon <= 0 {
		return fmt.Errorf("RECOMMEND_EPSILON must be positive, got %v", r.Epsilon)
	}
	if !validAlgorithms[r.PrimaryAlgorithm] {
		return fmt.Errorf("RECOMMEND_PRIMARY_ALGORITHM %q is not a known algorithm", r.PrimaryAlgorithm)
	}
	if !validFamilies[r.BlindTestFamily] {
		return fmt.Errorf("RECOMMEND_BLIND_TEST_FAMILY must be normalized or legacy, got %q", r.BlindTestFamily)
	}
	if r.DefaultLimit <= 0 || r.BlindTestLimit <= 0 || r.MaxLimit < r.DefaultLimit || r.MaxLimit < r.BlindTestLimit {
		return fmt.Errorf("recommend limits are inconsistent: default=%d blind_test=%d max=%d",
			r.DefaultLimit, r.BlindTestLimit, r.MaxLimit)
	}
	return nil
}

func (c *Config) validateBudget() error {
	b := c.Budget
	if b.SingleValueBand < 0 || b.SingleValueBand >= 1 {
		return fmt.Errorf("BUDGET_SINGLE_VALUE_BAND must be in [0, 1), got %v", b.SingleValueBand)
	}
	if b.CheapMin < 0 || b.CheapMax < 0 || b.LuxuryMin < 0 || b.LuxuryMax < 0 {
		return fmt.Errorf("budget bands must be non-negative")
	}
	if b.CheapMax > 0 && b.CheapMin > b.CheapMax {
		return fmt.Errorf("cheap budget band is inverted: %v > %v", b.CheapMin, b.CheapMax)
	}
	if b.LuxuryMax > 0 && b.LuxuryMin > b.LuxuryMax {
		return fmt.Errorf("luxury budget band is inverted: %v > %v", b.LuxuryMin, b.LuxuryMax)
	}
	return nil
}

func (c *Config) validateConversation() error {
	switch strings.ToLower(c.Conversation.DefaultLanguage) {
	case "en", "tr":
	default:
		return fmt.Errorf("DEFAULT_LANGUAGE must be en or tr, got %q", c.Conversation.DefaultLanguage)
	}
	if c.Conversation.LanguageTTL <= 0 {
		return fmt.Errorf("LANGUAGE_TTL must be positive")
	}
	return nil
}

func (c *Config) validateExtractor() error {
	e := c.Extractor
	u, err := url.Parse(e.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("LLM_BASE_URL must be an http(s) URL, got %q", e.BaseURL)
	}
	if e.Model == "" {
		return fmt.Errorf("LLM_MODEL is required")
	}
	if e.Timeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be positive")
	}
	if e.RequestsPerSecond <= 0 || e.Burst <= 0 {
		return fmt.Errorf("LLM_REQUESTS_PER_SECOND and LLM_BURST must be positive")
	}
	if e.BreakerFailures == 0 {
		return fmt.Errorf("LLM_BREAKER_FAILURES must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL %q is invalid", c.Logging.Level)
	}
	if !validLogFormats[strings.ToLower(c.Logging.Format)] {
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
