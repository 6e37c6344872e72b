// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

/*
database_schema.go - Database Schema Management

Tables:
  - product: catalog entries with price and price-drop recency flags
  - product_features: one DOUBLE column per profile dimension (0..10 scale,
    NULL counts as 0), keyed by product id
  - blind_test_session: one row per submitted comparison, with the query
    parameters as JSON text
  - blind_test_recommendations: the products shown in a session and the
    user's verdict on each

Timestamps are written by the application in UTC so the schema does not
depend on the ICU extension.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/giftmatch/internal/database/query"
	"github.com/tomtom215/giftmatch/internal/profile"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, q := range tableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

func tableCreationQueries() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS product (
			id BIGINT PRIMARY KEY,
			name TEXT NOT NULL,
			price DOUBLE NOT NULL,
			price_drop_7d BOOLEAN NOT NULL DEFAULT false,
			price_drop_30d BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP NOT NULL
		)`,
		productFeaturesDDL(),
		`CREATE SEQUENCE IF NOT EXISTS blind_test_session_id_seq START 1`,
		`CREATE TABLE IF NOT EXISTS blind_test_session (
			id BIGINT PRIMARY KEY DEFAULT nextval('blind_test_session_id_seq'),
			parameters TEXT NOT NULL,
			email TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE SEQUENCE IF NOT EXISTS blind_test_recommendation_id_seq START 1`,
		`CREATE TABLE IF NOT EXISTS blind_test_recommendations (
			id BIGINT PRIMARY KEY DEFAULT nextval('blind_test_recommendation_id_seq'),
			blind_test_session_id BIGINT NOT NULL REFERENCES blind_test_session(id),
			algorithm_name TEXT NOT NULL,
			recommended_product_id BIGINT NOT NULL,
			is_selected BOOLEAN NOT NULL,
			recommended_order INTEGER NOT NULL,
			bad_recommendation BOOLEAN NOT NULL DEFAULT false
		)`,
	}
}

// productFeaturesDDL generates the feature table from the canonical
// dimension list so column order always matches the feature vector.
func productFeaturesDDL() string {
	var sb strings.Builder
	sb.WriteString("CREATE TABLE IF NOT EXISTS product_features (\n\t\t\tproduct_id BIGINT PRIMARY KEY REFERENCES product(id)")
	for _, d := range profile.Dimensions() {
		sb.WriteString(",\n\t\t\t")
		sb.WriteString(query.QuoteIdent(d.String()))
		sb.WriteString(" DOUBLE")
	}
	sb.WriteString("\n\t\t)")
	return sb.String()
}

func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_product_price ON product(price)`,
		`CREATE INDEX IF NOT EXISTS idx_blind_test_session_created ON blind_test_session(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_blind_test_recommendations_session ON blind_test_recommendations(blind_test_session_id)`,
	}
	for _, q := range indexes {
		if _, err := db.conn.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}
