// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package config

import (
	"time"
)

// Config holds all application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in values from defaultConfig
//  2. Config File: optional YAML file (CONFIG_PATH or config.yaml)
//  3. Environment Variables: explicit mapping in envTransformFunc
//
// Example:
//
//	cfg, err := config.LoadWithKoanf()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load config")
//	}
//	db, err := database.New(&cfg.Database)
type Config struct {
	Server       ServerConfig       `koanf:"server"`
	Database     DatabaseConfig     `koanf:"database"`
	Logging      LoggingConfig      `koanf:"logging"`
	Security     SecurityConfig     `koanf:"security"`
	API          APIConfig          `koanf:"api"`
	Recommend    RecommendConfig    `koanf:"recommend"`
	Budget       BudgetConfig       `koanf:"budget"`
	Conversation ConversationConfig `koanf:"conversation"`
	Extractor    ExtractorConfig    `koanf:"extractor"`
	Cache        CacheConfig        `koanf:"cache"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"`

	// SeedFile is an optional CSV of products loaded when the catalog is
	// empty. See database.SeedProductsFromCSV for the column layout.
	SeedFile string `koanf:"seed_file"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// SecurityConfig holds HTTP hardening and the optional bearer guard.
type SecurityConfig struct {
	// JWTSecret enables HS256 bearer verification on the blind-test
	// submission and history endpoints when non-empty.
	JWTSecret string `koanf:"jwt_secret"`

	// JWTIssuer, when set, must match the iss claim.
	JWTIssuer string `koanf:"jwt_issuer"`

	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// APIConfig holds request limits.
type APIConfig struct {
	// MaxBodyBytes bounds JSON request bodies.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// RequestTimeout bounds the work done for one request.
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

// RecommendConfig holds scoring engine settings.
type RecommendConfig struct {
	WeightAge      float64 `koanf:"weight_age"`
	WeightGender   float64 `koanf:"weight_gender"`
	WeightOccasion float64 `koanf:"weight_occasion"`
	WeightInterest float64 `koanf:"weight_interest"`

	Normalize float64 `koanf:"normalize"`
	Epsilon   float64 `koanf:"epsilon"`

	// PrimaryAlgorithm ranks /products and the conversational path.
	PrimaryAlgorithm string `koanf:"primary_algorithm"`

	// BlindTestFamily is "normalized" or "legacy".
	BlindTestFamily string `koanf:"blind_test_family"`

	DefaultLimit   int           `koanf:"default_limit"`
	BlindTestLimit int           `koanf:"blind_test_limit"`
	MaxLimit       int           `koanf:"max_limit"`
	QueryTimeout   time.Duration `koanf:"query_timeout"`
}

// BudgetConfig holds the budget inference constants. A zero maximum means
// the band has no upper bound.
type BudgetConfig struct {
	SingleValueBand float64 `koanf:"single_value_band"`
	CheapMin        float64 `koanf:"cheap_min"`
	CheapMax        float64 `koanf:"cheap_max"`
	LuxuryMin       float64 `koanf:"luxury_min"`
	LuxuryMax       float64 `koanf:"luxury_max"`
}

// ConversationConfig holds orchestrator settings.
type ConversationConfig struct {
	// ProceedWithoutBudget ranks once the budget question was asked and
	// left unanswered. When false the question is repeated.
	ProceedWithoutBudget bool `koanf:"proceed_without_budget"`

	// DefaultLanguage is used when detection fails.
	DefaultLanguage string `koanf:"default_language"`

	// LanguageStorePath is the Badger directory for per-session language
	// tags. Empty keeps the store in memory.
	LanguageStorePath string `koanf:"language_store_path"`

	// LanguageTTL is how long a detected language is remembered.
	LanguageTTL time.Duration `koanf:"language_ttl"`

	// GCInterval is how often the Badger value log is collected.
	GCInterval time.Duration `koanf:"gc_interval"`
}

// ExtractorConfig holds the language model client settings.
type ExtractorConfig struct {
	BaseURL     string        `koanf:"base_url"`
	APIKey      string        `koanf:"api_key"`
	Model       string        `koanf:"model"`
	Temperature float64       `koanf:"temperature"`
	Timeout     time.Duration `koanf:"timeout"`

	// RequestsPerSecond and Burst bound outbound calls.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst"`

	// BreakerFailures consecutive failures open the circuit for
	// BreakerTimeout.
	BreakerFailures uint32        `koanf:"breaker_failures"`
	BreakerTimeout  time.Duration `koanf:"breaker_timeout"`
}

// CacheConfig holds the /products result cache settings.
type CacheConfig struct {
	Enabled    bool          `koanf:"enabled"`
	TTL        time.Duration `koanf:"ttl"`
	MaxEntries int           `koanf:"max_entries"`
}
