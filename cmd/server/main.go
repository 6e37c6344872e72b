// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/giftmatch/internal/api"
	"github.com/tomtom215/giftmatch/internal/auth"
	"github.com/tomtom215/giftmatch/internal/cache"
	"github.com/tomtom215/giftmatch/internal/config"
	"github.com/tomtom215/giftmatch/internal/conversation"
	"github.com/tomtom215/giftmatch/internal/database"
	"github.com/tomtom215/giftmatch/internal/extractor"
	"github.com/tomtom215/giftmatch/internal/logging"
	"github.com/tomtom215/giftmatch/internal/metrics"
	"github.com/tomtom215/giftmatch/internal/models"
	"github.com/tomtom215/giftmatch/internal/recommend"
	"github.com/tomtom215/giftmatch/internal/supervisor"
	"github.com/tomtom215/giftmatch/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(loggingConfig(cfg))
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	logging.Info().
		Str("version", version).
		Str("db_path", cfg.Database.Path).
		Str("model", cfg.Extractor.Model).
		Msg("Starting Giftmatch with supervisor tree")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	if cfg.Database.SeedFile != "" {
		if _, err := db.SeedProductsFromCSV(context.Background(), cfg.Database.SeedFile); err != nil {
			if closeErr := db.Close(); closeErr != nil {
				logging.Error().Err(closeErr).Msg("Error closing database")
			}
			logging.Fatal().Err(err).Msg("Failed to seed product catalog")
		}
	}

	engine, err := recommend.NewEngine(recommendConfig(&cfg.Recommend), db, logging.WithComponent("recommend"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	llm, err := extractor.New(extractorConfig(&cfg.Extractor))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create extractor client")
	}
	if cfg.Extractor.APIKey == "" {
		logging.Warn().Str("base_url", cfg.Extractor.BaseURL).Msg("No extractor API key configured; chat endpoints will fail against hosted models")
	}

	languages, err := conversation.OpenLanguageStore(cfg.Conversation.LanguageStorePath, cfg.Conversation.LanguageTTL)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open language store")
	}
	defer func() {
		if err := languages.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing language store")
		}
	}()
	if cfg.Conversation.LanguageStorePath == "" {
		logging.Info().Msg("Language store running in memory")
	}

	orchestrator, err := conversation.New(conversationConfig(cfg), llm, engine, languages, logging.WithComponent("conversation"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create conversation orchestrator")
	}

	var productCache *cache.Cache[*models.ProductsResponse]
	if cfg.Cache.Enabled {
		productCache = cache.New[*models.ProductsResponse]("products-cache", cfg.Cache.TTL, cfg.Cache.MaxEntries)
	}

	var verifier *auth.JWTVerifier
	if cfg.Security.JWTSecret != "" {
		verifier, err = auth.NewJWTVerifier(cfg.Security.JWTSecret, cfg.Security.JWTIssuer)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to initialize JWT verifier")
		}
		logging.Info().Msg("Bearer authentication enabled for blind-test storage")
	} else {
		logging.Warn().Msg("JWT_SECRET not set: blind-test submissions are accepted without authentication")
	}

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	handler, err := api.NewHandler(api.Dependencies{
		Engine:       engine,
		Conversation: orchestrator,
		Store:        db,
		DB:           db,
		ProductCache: productCache,
	}, api.Options{
		MaxBodyBytes:   cfg.API.MaxBodyBytes,
		RequestTimeout: cfg.API.RequestTimeout,
		Version:        version,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create API handler")
	}

	router := api.NewRouter(handler, api.NewChiMiddleware(middlewareConfig(&cfg.Security)), verifier)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		// Chat turns wait on the language model, so writes get the
		// request budget plus slack.
		WriteTimeout: cfg.API.RequestTimeout + cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// === ADD SERVICES TO SUPERVISOR TREE ===

	// Data layer
	tree.AddDataService(services.NewPeriodicService("language-store-gc", cfg.Conversation.GCInterval,
		func(context.Context) error { return languages.RunGC() }))
	tree.AddDataService(services.NewPeriodicService("duckdb-checkpoint", 10*time.Minute, db.Checkpoint))
	if productCache != nil {
		tree.AddDataService(productCache)
	}

	// API layer
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// === START SUPERVISOR TREE ===

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
		serveErr = <-errCh
	case serveErr = <-errCh:
	}
	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		logging.Error().Err(serveErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
