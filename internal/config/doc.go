// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

/*
Package config loads and validates the Giftmatch configuration.

Values are layered with koanf: struct defaults, then an optional YAML file
(CONFIG_PATH, config.yaml, /etc/giftmatch/config.yaml), then environment
variables. Only the environment variables listed in envMappings are read.

# Frequently Used Variables

  - HTTP_PORT, HTTP_HOST: listener (default 0.0.0.0:8080)
  - DUCKDB_PATH: catalog database (default /data/giftmatch.duckdb)
  - CATALOG_SEED_FILE: CSV loaded into an empty catalog
  - LLM_BASE_URL, LLM_API_KEY (or OPENAI_API_KEY), LLM_MODEL
  - RECOMMEND_PRIMARY_ALGORITHM: linear, cosine, inverse_distance or a
    legacy_* variant
  - RECOMMEND_BLIND_TEST_FAMILY: normalized or legacy
  - PROCEED_WITHOUT_BUDGET: rank after one unanswered budget question
  - JWT_SECRET: enables the bearer guard on blind-test history
  - LOG_LEVEL, LOG_FORMAT

# Example YAML

	server:
	  port: 8080
	recommend:
	  primary_algorithm: inverse_distance
	  weight_gender: 4
	budget:
	  cheap_max: 250
	conversation:
	  language_store_path: ""   # in-memory
*/
package config
