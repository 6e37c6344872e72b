// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

// Package database provides the DuckDB-backed product catalog and the
// blind-test session store.
//
// # Catalog
//
// DB implements recommend.CatalogReader. FetchCandidates compiles a
// recommend.ScoreSpec into one SELECT over product LEFT JOIN
// product_features:
//
//	SELECT p.id, p.name, p.price, p.price_drop_7d, p.price_drop_30d,
//	       (CAST(? AS DOUBLE) * (COALESCE(f."gender_female", 0) / CAST(? AS DOUBLE)) + ...) AS score
//	FROM product p LEFT JOIN product_features f ON f.product_id = p.id
//	WHERE p.price >= ? AND p.price <= ? AND p.id NOT IN (?, ?)
//	ORDER BY score DESC, p.id ASC
//	LIMIT ?
//
// Feature column names are taken from the fixed profile dimension list and
// every number is a bound parameter, so no user input reaches the SQL text.
// The compiled formulas agree with recommend.Score; the package tests
// check both against the same fixtures.
//
// # Blind tests
//
// SubmitBlindTest writes the session header and its selections in one
// transaction. RecentBlindTestSessions lists the newest sessions.
//
// # Seeding
//
// SeedProductsFromCSV loads a CSV file into an empty catalog at startup.
//
// # Thread Safety
//
// DB is safe for concurrent use; database/sql pools the DuckDB connections.
package database
