// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package models

import (
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/giftmatch/internal/profile"
	"github.com/tomtom215/giftmatch/internal/recommend"
)

// APIResponse is the envelope every JSON endpoint returns.
//
// Status is "success" with Data set, or "error" with Error set:
//
//	{
//	  "status": "success",
//	  "data": {"products": [...]},
//	  "metadata": {"timestamp": "2026-01-01T12:00:00Z", "query_time_ms": 4}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata describes how the response was produced.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError carries a machine-readable code such as VALIDATION_ERROR or
// EXTRACTOR_UNAVAILABLE, a message and optional field details.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ProductsResponse answers the direct profile ranking endpoint. Message is
// set only for a profile with no selections.
type ProductsResponse struct {
	Message   string                `json:"message,omitempty"`
	Algorithm recommend.Algorithm   `json:"algorithm,omitempty"`
	Products  []recommend.Candidate `json:"products"`
}

// ChatResponse is the conversational envelope. Recommendations is present
// only in the TERMINAL_RESULTS state. Error and RawResponse are present
// only when the model reply could not be used.
type ChatResponse struct {
	Message         string                `json:"message"`
	FieldKey        string                `json:"field_key,omitempty"`
	FilledTable     profile.Profile       `json:"filled_table"`
	State           string                `json:"state"`
	BudgetAsked     bool                  `json:"budget_asked"`
	SessionID       string                `json:"session_id,omitempty"`
	Language        string                `json:"language,omitempty"`
	Algorithm       string                `json:"algorithm,omitempty"`
	Recommendations []recommend.Candidate `json:"recommendations,omitempty"`
	Error           string                `json:"error,omitempty"`
	RawResponse     string                `json:"raw_response,omitempty"`
}

// AlgorithmsResponse lists the selectable scoring algorithms.
type AlgorithmsResponse struct {
	Primary         recommend.Algorithm       `json:"primary"`
	BlindTestFamily recommend.Family          `json:"blind_test_family"`
	Algorithms      []recommend.AlgorithmInfo `json:"algorithms"`
}

// BlindTestSubmitResponse confirms a stored blind-test session.
type BlindTestSubmitResponse struct {
	Status    string `json:"status"`
	SessionID int64  `json:"session_id"`
}

// BlindTestSessionSummary is one stored blind-test session. The
// submitter's email is never listed.
type BlindTestSessionSummary struct {
	SessionID  int64           `json:"session_id"`
	Parameters json.RawMessage `json:"parameters"`
	CreatedAt  time.Time       `json:"created_at"`
}

// PreviousSessionsResponse lists recent blind-test sessions.
type PreviousSessionsResponse struct {
	Sessions []BlindTestSessionSummary `json:"sessions"`
}

// HealthStatus is returned by the health endpoints.
type HealthStatus struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Uptime    float64           `json:"uptime_seconds"`
	Checks    map[string]string `json:"checks,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}
