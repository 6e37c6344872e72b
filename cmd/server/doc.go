// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

/*
Package main is the entry point for the Giftmatch server.

Giftmatch recommends gifts from a product catalog. Callers either submit a
complete recipient profile (age band, gender, occasion, interests, budget)
or hold a free-text conversation in which a language model fills the
profile one answer at a time. Three scoring formulas rank the catalog; a
blind-test workflow shows their results side by side and stores which
products the user picked.

# Application Architecture

	RootSupervisor ("giftmatch")
	├── DataSupervisor ("data-layer")
	│   ├── language-store-gc
	│   ├── duckdb-checkpoint
	│   └── products-cache
	└── APISupervisor ("api-layer")
	    └── http-server

Component initialization order:

 1. Configuration: Koanf v2 with defaults, optional YAML file and environment
 2. Logging: zerolog with JSON/console output modes
 3. Database: DuckDB catalog and blind-test tables, optional CSV seed
 4. Scoring engine over the DuckDB catalog
 5. Extractor: OpenAI-compatible client with rate limiter and circuit breaker
 6. Conversation orchestrator with the Badger language store
 7. Authentication: optional JWT bearer guard for blind-test storage
 8. Supervisor Tree: Suture v4 process supervision
 9. HTTP Server: Chi router with middleware stack

# Configuration

	HTTP_PORT=8080
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console
	DUCKDB_PATH=/data/giftmatch.duckdb
	CATALOG_SEED_FILE=/data/products.csv  # loaded only into an empty catalog
	LLM_BASE_URL=https://api.openai.com/v1
	LLM_API_KEY=<key>
	LLM_MODEL=gpt-4o-mini
	LANGUAGE_STORE_PATH=/data/sessions    # empty for in-memory
	JWT_SECRET=<32+ chars>                # enables the bearer guard
	CONFIG_PATH=/etc/giftmatch/config.yaml

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains
in-flight requests within HTTP_SHUTDOWN_TIMEOUT, then the language store
and database are closed.
*/
package main
