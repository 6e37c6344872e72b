// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/giftmatch/internal/extractor"
	"github.com/tomtom215/giftmatch/internal/models"
	"github.com/tomtom215/giftmatch/internal/profile"
	"github.com/tomtom215/giftmatch/internal/recommend"
)

// Error codes returned in the envelope.
const (
	codeValidation           = "VALIDATION_ERROR"
	codeExtractorUnavailable = "EXTRACTOR_UNAVAILABLE"
	codeDatabase             = "DATABASE_ERROR"
	codeTimeout              = "TIMEOUT"
	codeInternal             = "INTERNAL_ERROR"
)

// respondDomainError maps the domain error kinds to HTTP statuses.
func respondDomainError(w http.ResponseWriter, err error) {
	var verr *profile.ValidationError
	var serr *recommend.StorageError

	switch {
	case errors.As(err, &verr):
		apiErr := &models.APIError{Code: codeValidation, Message: verr.Error()}
		if verr.Field != "" {
			apiErr.Details = map[string]interface{}{"field": verr.Field}
		}
		respondErrorDetails(w, http.StatusBadRequest, apiErr, err)
	case errors.Is(err, extractor.ErrUnavailable):
		respondError(w, http.StatusServiceUnavailable, codeExtractorUnavailable,
			"The language service is temporarily unavailable, please try again", err)
	case errors.As(err, &serr):
		respondError(w, http.StatusInternalServerError, codeDatabase, "Failed to query the product catalog", err)
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, codeTimeout, "Request timed out", err)
	default:
		respondError(w, http.StatusInternalServerError, codeInternal, "Internal server error", err)
	}
}
