// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/giftmatch/internal/database/query"
	"github.com/tomtom215/giftmatch/internal/metrics"
	"github.com/tomtom215/giftmatch/internal/profile"
	"github.com/tomtom215/giftmatch/internal/recommend"
)

// ErrEmptySpec is returned for a score spec without terms. The engine
// never sends one; the catalog refuses to rank on nothing.
var ErrEmptySpec = errors.New("score spec has no terms")

// Compile-time check.
var _ recommend.CatalogReader = (*DB)(nil)

// FetchCandidates implements recommend.CatalogReader.
//
//nolint:gocritic // ScoreSpec is read-only here
func (db *DB) FetchCandidates(ctx context.Context, spec recommend.ScoreSpec) ([]recommend.Candidate, error) {
	q, args, err := buildCandidateQuery(spec)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	candidates, err := queryAndScan(ctx, db.conn, q, args, scanCandidate)
	metrics.RecordDBQuery("fetch_candidates", "product", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	if candidates == nil {
		candidates = []recommend.Candidate{}
	}
	return candidates, nil
}

func scanCandidate(rows *sql.Rows) (recommend.Candidate, error) {
	var c recommend.Candidate
	err := rows.Scan(&c.ProductID, &c.Name, &c.Price, &c.PriceDrop7d, &c.PriceDrop30d, &c.Score)
	return c, err
}

// buildCandidateQuery compiles spec into a single SELECT. Column names come
// from the dimension whitelist; weights, constants, prices, exclusions and
// the limit are bound parameters.
//
//nolint:gocritic // ScoreSpec is read-only here
func buildCandidateQuery(spec recommend.ScoreSpec) (string, []interface{}, error) {
	score, err := compileScore(spec)
	if err != nil {
		return "", nil, err
	}

	where := query.NewWhereBuilder().
		AddPriceRange("p.price", spec.MinPrice, spec.MaxPrice).
		AddNotIn("p.id", spec.ExcludeIDs)
	whereClause, whereArgs := where.BuildWithPrefix()

	var sb strings.Builder
	sb.WriteString("SELECT p.id, p.name, p.price, p.price_drop_7d, p.price_drop_30d, ")
	sb.WriteString(score.SQL())
	sb.WriteString(" AS score FROM product p LEFT JOIN product_features f ON f.product_id = p.id ")
	sb.WriteString(whereClause)
	sb.WriteString(" ORDER BY score DESC, p.id ASC")

	args := make([]interface{}, 0, len(score.Args())+len(whereArgs)+1)
	args = append(args, score.Args()...)
	args = append(args, whereArgs...)
	if spec.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, spec.Limit)
	}
	return sb.String(), args, nil
}

// compileScore renders the score formula of spec.Algorithm. It must agree
// with recommend.Score.
//
//nolint:gocritic // ScoreSpec is read-only here
func compileScore(spec recommend.ScoreSpec) (*query.Expr, error) {
	if len(spec.Terms) == 0 {
		return nil, ErrEmptySpec
	}
	for _, t := range spec.Terms {
		if !t.Dimension.Valid() {
			return nil, fmt.Errorf("invalid dimension %d in score spec", t.Dimension)
		}
	}
	n := spec.Normalize
	if n == 0 {
		n = 1
	}

	parts := make([]*query.Expr, len(spec.Terms))
	e := &query.Expr{}

	switch spec.Algorithm {
	case recommend.AlgorithmLinear:
		for i, t := range spec.Terms {
			parts[i] = (&query.Expr{}).Float(t.Weight).Raw(" * ").Append(normalized(t.Dimension, n))
		}
		e.Raw("(").Join(" + ", parts).Raw(")")

	case recommend.AlgorithmCosine:
		squares := make([]*query.Expr, len(spec.Terms))
		for i, t := range spec.Terms {
			parts[i] = normalized(t.Dimension, n)
			squares[i] = (&query.Expr{}).Raw("POWER(").Append(normalized(t.Dimension, n)).Raw(", 2)")
		}
		e.Raw("((").Join(" + ", parts).Raw(") / (SQRT(").Float(float64(len(spec.Terms))).
			Raw(") * SQRT(").Join(" + ", squares).Raw(" + ").Float(spec.Epsilon).Raw(")))")

	case recommend.AlgorithmInverseDistance:
		for i, t := range spec.Terms {
			parts[i] = (&query.Expr{}).Float(t.Weight).Raw(" * POWER(").
				Append(normalized(t.Dimension, n)).Raw(" - 1.0, 2)")
		}
		e.Raw("(1.0 / (1.0 + SQRT(").Join(" + ", parts).Raw(")))")

	case recommend.AlgorithmLegacyProduct:
		for i, t := range spec.Terms {
			parts[i] = (&query.Expr{}).Raw("(" + featureColumn(t.Dimension) + " + ").Float(spec.Offset).Raw(")")
		}
		e.Raw("(").Join(" * ", parts).Raw(")")

	case recommend.AlgorithmLegacyWeighted, recommend.AlgorithmLegacyBalanced:
		for i, t := range spec.Terms {
			parts[i] = (&query.Expr{}).Float(t.Weight).Raw(" * (" + featureColumn(t.Dimension) + " + ").
				Float(spec.Offset).Raw(")")
		}
		e.Raw("(").Join(" + ", parts).Raw(")")

	default:
		return nil, fmt.Errorf("unknown algorithm %q", spec.Algorithm)
	}
	return e, nil
}

func featureColumn(d profile.Dimension) string {
	return "COALESCE(f." + query.QuoteIdent(d.String()) + ", 0)"
}

func normalized(d profile.Dimension, n float64) *query.Expr {
	return (&query.Expr{}).Raw("(" + featureColumn(d) + " / ").Float(n).Raw(")")
}

// InsertProducts stores products and their features in one transaction and
// returns the assigned ids in input order. Products with an explicit ID are
// written first; a product with ID 0 then takes one past the largest id in
// the catalog, so mixed batches never collide.
func (db *DB) InsertProducts(ctx context.Context, products []recommend.Product) (ids []int64, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordDBQuery("insert_products", "product", time.Since(start), err)
	}()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollbackOnError(tx, &err)

	featureInsert := productFeaturesInsert()
	now := time.Now().UTC()
	ids = make([]int64, len(products))

	order := make([]int, 0, len(products))
	for i := range products {
		if products[i].ID != 0 {
			order = append(order, i)
		}
	}
	for i := range products {
		if products[i].ID == 0 {
			order = append(order, i)
		}
	}

	for _, i := range order {
		p := &products[i]
		id := p.ID
		if id == 0 {
			if err = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) + 1 FROM product`).Scan(&id); err != nil {
				return nil, fmt.Errorf("allocate id for product %q: %w", p.Name, err)
			}
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO product (id, name, price, price_drop_7d, price_drop_30d, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			id, p.Name, p.Price, p.PriceDrop7d, p.PriceDrop30d, now)
		if err != nil {
			return nil, fmt.Errorf("insert product %q: %w", p.Name, err)
		}

		args := make([]interface{}, 0, profile.NumDimensions+1)
		args = append(args, id)
		for _, v := range p.Features {
			args = append(args, v)
		}
		if _, err = tx.ExecContext(ctx, featureInsert, args...); err != nil {
			return nil, fmt.Errorf("insert features for product %d: %w", id, err)
		}
		ids[i] = id
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit products: %w", err)
	}
	return ids, nil
}

func productFeaturesInsert() string {
	cols := make([]string, 0, profile.NumDimensions+1)
	cols = append(cols, "product_id")
	for _, d := range profile.Dimensions() {
		cols = append(cols, query.QuoteIdent(d.String()))
	}
	return "INSERT INTO product_features (" + strings.Join(cols, ", ") + ") VALUES (" + query.Placeholders(len(cols)) + ")"
}

// CountProducts returns the number of catalog entries.
func (db *DB) CountProducts(ctx context.Context) (int, error) {
	var n int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM product`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}
