// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths searched for a config file, in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/giftmatch/config.yaml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Database: DatabaseConfig{
			Path:      "/data/giftmatch.duckdb",
			MaxMemory: "1GB",
			Threads:   0, // 0 = DuckDB default
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Security: SecurityConfig{
			RateLimitReqs:   60,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		API: APIConfig{
			MaxBodyBytes:   1 << 20,
			RequestTimeout: 60 * time.Second,
		},
		Recommend: RecommendConfig{
			WeightAge:        2.0,
			WeightGender:     4.0,
			WeightOccasion:   1.0,
			WeightInterest:   1.0,
			Normalize:        10.0,
			Epsilon:          1e-6,
			PrimaryAlgorithm: "linear",
			BlindTestFamily:  "normalized",
			DefaultLimit:     10,
			BlindTestLimit:   5,
			MaxLimit:         50,
			QueryTimeout:     5 * time.Second,
		},
		Budget: BudgetConfig{
			SingleValueBand: 0.2,
			CheapMin:        0,
			CheapMax:        300,
			LuxuryMin:       1000,
			LuxuryMax:       0, // open
		},
		Conversation: ConversationConfig{
			ProceedWithoutBudget: true,
			DefaultLanguage:      "en",
			LanguageStorePath:    "/data/sessions",
			LanguageTTL:          24 * time.Hour,
			GCInterval:           10 * time.Minute,
		},
		Extractor: ExtractorConfig{
			BaseURL:           "https://api.openai.com/v1",
			Model:             "gpt-4o-mini",
			Temperature:       0,
			Timeout:           30 * time.Second,
			RequestsPerSecond: 5,
			Burst:             10,
			BreakerFailures:   5,
			BreakerTimeout:    30 * time.Second,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        5 * time.Minute,
			MaxEntries: 1000,
		},
	}
}

// LoadWithKoanf loads configuration from defaults, an optional YAML file
// and environment variables, in increasing order of precedence, then
// validates it.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// LOG_LEVEL -> logging.level, DUCKDB_PATH -> database.path, ...
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed as comma-separated lists when they arrive as
// a single string from the environment.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to koanf paths.
// Variables not listed are ignored.
var envMappings = map[string]string{
	// Server
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	// Database
	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",
	"catalog_seed_file": "database.seed_file",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Security
	"jwt_secret":          "security.jwt_secret",
	"jwt_issuer":          "security.jwt_issuer",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// API
	"api_max_body_bytes":  "api.max_body_bytes",
	"api_request_timeout": "api.request_timeout",

	// Recommendation engine
	"recommend_weight_age":        "recommend.weight_age",
	"recommend_weight_gender":     "recommend.weight_gender",
	"recommend_weight_occasion":   "recommend.weight_occasion",
	"recommend_weight_interest":   "recommend.weight_interest",
	"recommend_normalize":         "recommend.normalize",
	"recommend_epsilon":           "recommend.epsilon",
	"recommend_primary_algorithm": "recommend.primary_algorithm",
	"recommend_blind_test_family": "recommend.blind_test_family",
	"recommend_default_limit":     "recommend.default_limit",
	"recommend_blind_test_limit":  "recommend.blind_test_limit",
	"recommend_max_limit":         "recommend.max_limit",
	"recommend_query_timeout":     "recommend.query_timeout",

	// Budget inference
	"budget_single_value_band": "budget.single_value_band",
	"budget_cheap_min":         "budget.cheap_min",
	"budget_cheap_max":         "budget.cheap_max",
	"budget_luxury_min":        "budget.luxury_min",
	"budget_luxury_max":        "budget.luxury_max",

	// Conversation
	"proceed_without_budget": "conversation.proceed_without_budget",
	"default_language":       "conversation.default_language",
	"language_store_path":    "conversation.language_store_path",
	"language_ttl":           "conversation.language_ttl",
	"language_store_gc":      "conversation.gc_interval",

	// Extractor
	"llm_base_url":            "extractor.base_url",
	"llm_api_key":             "extractor.api_key",
	"openai_api_key":          "extractor.api_key",
	"llm_model":               "extractor.model",
	"llm_temperature":         "extractor.temperature",
	"llm_timeout":             "extractor.timeout",
	"llm_requests_per_second": "extractor.requests_per_second",
	"llm_burst":               "extractor.burst",
	"llm_breaker_failures":    "extractor.breaker_failures",
	"llm_breaker_timeout":     "extractor.breaker_timeout",

	// Cache
	"products_cache_enabled":     "cache.enabled",
	"products_cache_ttl":         "cache.ttl",
	"products_cache_max_entries": "cache.max_entries",
}

// envTransformFunc transforms environment variable names to koanf paths.
// Unmapped keys return "" so unrelated environment variables never reach
// the configuration.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
