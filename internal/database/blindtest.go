// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/giftmatch/internal/metrics"
)

// DefaultRecentSessions is the size of the previous-sessions listing.
const DefaultRecentSessions = 10

// BlindTestSelection is the verdict on one product shown in a blind test.
type BlindTestSelection struct {
	Algorithm         string
	ProductID         int64
	RecommendedOrder  int
	IsSelected        bool
	BadRecommendation bool
}

// BlindTestSubmission is a completed blind-test session.
type BlindTestSubmission struct {
	Email string

	// Parameters is the JSON document of the query the session ranked.
	Parameters json.RawMessage

	Selections []BlindTestSelection
}

// BlindTestSession is a stored session header.
type BlindTestSession struct {
	ID         int64           `json:"session_id"`
	Parameters json.RawMessage `json:"parameters"`
	Email      string          `json:"-"`
	CreatedAt  time.Time       `json:"created_at"`
}

// SubmitBlindTest stores the session and all of its selections atomically
// and returns the new session id. On any failure nothing is written.
//
//nolint:gocritic // submission is copied once per request
func (db *DB) SubmitBlindTest(ctx context.Context, sub BlindTestSubmission) (sessionID int64, err error) {
	if !json.Valid(sub.Parameters) {
		return 0, fmt.Errorf("session parameters are not valid JSON")
	}

	start := time.Now()
	defer func() {
		metrics.RecordDBQuery("submit_blind_test", "blind_test_session", time.Since(start), err)
	}()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollbackOnError(tx, &err)

	err = tx.QueryRowContext(ctx,
		`INSERT INTO blind_test_session (parameters, email, created_at) VALUES (?, ?, ?) RETURNING id`,
		string(sub.Parameters), sub.Email, time.Now().UTC()).Scan(&sessionID)
	if err != nil {
		return 0, fmt.Errorf("insert blind test session: %w", err)
	}

	if err = insertSelections(ctx, tx, sessionID, sub.Selections); err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit blind test session: %w", err)
	}
	return sessionID, nil
}

func insertSelections(ctx context.Context, tx *sql.Tx, sessionID int64, selections []BlindTestSelection) error {
	if len(selections) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO blind_test_recommendations (
			blind_test_session_id, algorithm_name, recommended_product_id,
			is_selected, recommended_order, bad_recommendation
		) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare selection insert: %w", err)
	}
	defer closeWithLog(stmt, "prepared statement")

	for i := range selections {
		s := &selections[i]
		if _, err := stmt.ExecContext(ctx, sessionID, s.Algorithm, s.ProductID, s.IsSelected, s.RecommendedOrder, s.BadRecommendation); err != nil {
			return fmt.Errorf("insert selection %d: %w", i, err)
		}
	}
	return nil
}

// RecentBlindTestSessions returns the newest sessions first. A limit <= 0
// uses DefaultRecentSessions.
func (db *DB) RecentBlindTestSessions(ctx context.Context, limit int) ([]BlindTestSession, error) {
	if limit <= 0 {
		limit = DefaultRecentSessions
	}

	start := time.Now()
	sessions, err := queryAndScan(ctx, db.conn,
		`SELECT id, parameters, email, created_at FROM blind_test_session ORDER BY created_at DESC, id DESC LIMIT ?`,
		[]interface{}{limit},
		func(rows *sql.Rows) (BlindTestSession, error) {
			var s BlindTestSession
			var params string
			err := rows.Scan(&s.ID, &params, &s.Email, &s.CreatedAt)
			s.Parameters = json.RawMessage(params)
			return s, err
		})
	metrics.RecordDBQuery("recent_blind_test_sessions", "blind_test_session", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("query blind test sessions: %w", err)
	}
	if sessions == nil {
		sessions = []BlindTestSession{}
	}
	return sessions, nil
}

// CountBlindTestSelections returns the number of selections stored for a
// session.
func (db *DB) CountBlindTestSelections(ctx context.Context, sessionID int64) (int, error) {
	var n int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM blind_test_recommendations WHERE blind_test_session_id = ?`, sessionID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count selections: %w", err)
	}
	return n, nil
}
