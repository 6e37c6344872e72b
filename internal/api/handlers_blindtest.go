// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/giftmatch/internal/database"
	"github.com/tomtom215/giftmatch/internal/logging"
	"github.com/tomtom215/giftmatch/internal/metrics"
	"github.com/tomtom215/giftmatch/internal/models"
)

// BlindTestRecommendations handles POST /api/v1/blind-test/recommendations.
// It returns the top products of each algorithm of the configured family
// under neutral labels algorithm_1..3.
func (h *Handler) BlindTestRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.BlindTestRequest
	if err := decodeJSON(w, r, h.opts.MaxBodyBytes, &req); err != nil {
		respondDecodeError(w, err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr, nil)
		return
	}
	if err := req.CheckBudget(); err != nil {
		respondDomainError(w, err)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	result, err := h.engine.BlindTest(ctx, req.SlotInput(), req.MinBudget, req.MaxBudget)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, r, result, start)
}

// BlindTestSubmit handles POST /api/v1/blind-test/submit. The session and
// all selections are stored in one transaction.
func (h *Handler) BlindTestSubmit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.BlindTestSubmitRequest
	if err := decodeJSON(w, r, h.opts.MaxBodyBytes, &req); err != nil {
		respondDecodeError(w, err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr, nil)
		return
	}
	if err := req.SessionParameters.CheckBudget(); err != nil {
		respondDomainError(w, err)
		return
	}

	sub, err := toSubmission(&req)
	if err != nil {
		respondError(w, http.StatusBadRequest, codeValidation, "Invalid session parameters", err)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	sessionID, err := h.store.SubmitBlindTest(ctx, sub)
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeDatabase, "Failed to store blind test session", err)
		return
	}

	metrics.RecordBlindTestSubmission(req.SelectedByAlgorithm())
	logging.Ctx(r.Context()).Info().
		Int64("session_id", sessionID).
		Int("selections", len(sub.Selections)).
		Msg("Stored blind test session")

	respondSuccess(w, r, models.BlindTestSubmitResponse{Status: "ok", SessionID: sessionID}, start)
}

// PreviousSessions handles GET /api/v1/blind-test/previous-sessions and
// lists the most recent sessions, newest first.
func (h *Handler) PreviousSessions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ctx, cancel := h.requestContext(r)
	defer cancel()

	sessions, err := h.store.RecentBlindTestSessions(ctx, database.DefaultRecentSessions)
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeDatabase, "Failed to list blind test sessions", err)
		return
	}
	respondSuccess(w, r, models.PreviousSessionsResponse{Sessions: sessionSummaries(sessions)}, start)
}

// toSubmission converts the request for the session writer.
func toSubmission(req *models.BlindTestSubmitRequest) (database.BlindTestSubmission, error) {
	params, err := json.Marshal(req.SessionParameters)
	if err != nil {
		return database.BlindTestSubmission{}, err
	}
	sub := database.BlindTestSubmission{
		Email:      req.Email,
		Parameters: params,
		Selections: make([]database.BlindTestSelection, len(req.Selections)),
	}
	for i, s := range req.Selections {
		sub.Selections[i] = database.BlindTestSelection{
			Algorithm:         s.Algorithm,
			ProductID:         s.ProductID,
			RecommendedOrder:  s.RecommendedOrder,
			IsSelected:        s.IsSelected,
			BadRecommendation: s.BadRecommendation,
		}
	}
	return sub, nil
}

func sessionSummaries(sessions []database.BlindTestSession) []models.BlindTestSessionSummary {
	out := make([]models.BlindTestSessionSummary, len(sessions))
	for i, s := range sessions {
		out[i] = models.BlindTestSessionSummary{
			SessionID:  s.ID,
			Parameters: s.Parameters,
			CreatedAt:  s.CreatedAt,
		}
	}
	return out
}
