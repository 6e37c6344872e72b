// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/giftmatch/internal/conversation"
	"github.com/tomtom215/giftmatch/internal/logging"
	"github.com/tomtom215/giftmatch/internal/models"
	"github.com/tomtom215/giftmatch/internal/profile"
)

// ChatFill handles POST /api/v1/chat/fill.
//
// The client echoes back filled_table as previous_filled_data together
// with budget_asked and session_id; the server keeps no per-session
// profile. An unusable model reply is answered with 200, the raw reply and
// the unchanged table.
func (h *Handler) ChatFill(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.ChatFillRequest
	if err := decodeJSON(w, r, h.opts.MaxBodyBytes, &req); err != nil {
		respondDecodeError(w, err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	previous, err := profile.FromMap(req.PreviousFilledData)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()
	if req.SessionID != "" {
		ctx = logging.ContextWithSessionID(ctx, req.SessionID)
	}

	res, err := h.conversation.Turn(ctx, conversation.TurnRequest{
		SessionID:   req.SessionID,
		UserText:    req.UserInput,
		Previous:    previous,
		BudgetAsked: req.BudgetAsked,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, r, chatResponse(res), start)
}

// ChatRevise handles POST /api/v1/chat/revise.
//
// Changes overwrite the stored answers. Setting a member of an exclusive
// group replaces the current selection; budgets are taken as given.
// Products listed in exclude_ids are left out of the new results.
func (h *Handler) ChatRevise(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.ChatReviseRequest
	if err := decodeJSON(w, r, h.opts.MaxBodyBytes, &req); err != nil {
		respondDecodeError(w, err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	previous, err := profile.FromMap(req.FilledTable)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	update, err := profile.ParseUpdate(req.Changes)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	res, err := h.conversation.Revise(ctx, conversation.ReviseRequest{
		SessionID:   req.SessionID,
		Previous:    previous,
		Update:      update,
		BudgetAsked: req.BudgetAsked,
		ExcludeIDs:  req.ExcludeIDs,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, r, chatResponse(res), start)
}

func chatResponse(res *conversation.Result) models.ChatResponse {
	return models.ChatResponse{
		Message:         res.Message,
		FieldKey:        string(res.FieldKey),
		FilledTable:     res.Profile,
		State:           string(res.State),
		BudgetAsked:     res.BudgetAsked,
		SessionID:       res.SessionID,
		Language:        res.Language,
		Algorithm:       string(res.Algorithm),
		Recommendations: res.Recommendations,
		Error:           res.ExtractionError,
		RawResponse:     res.RawResponse,
	}
}
