// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

/*
Package models defines the HTTP request and response shapes.

Every endpoint wraps its payload in APIResponse. Request DTOs carry
go-playground/validator tags; the custom tags (gender, age_bracket,
occasion, interest, algorithm) are registered by the validation package.

Conversation envelopes:

	need more info   {message, field_key, filled_table, state, budget_asked, session_id, language}
	terminal         {message, filled_table, state, recommendations?}
	parse failure    {message, error, raw_response, filled_table, state}
*/
package models
