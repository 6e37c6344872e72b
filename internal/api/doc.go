// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

/*
Package api provides the HTTP surface of the gift recommendation service.

Routes (chi):

	GET  /health, /health/live, /health/ready
	GET  /metrics
	GET  /api/v1/algorithms
	POST /api/v1/products
	POST /api/v1/chat/fill
	POST /api/v1/chat/revise
	POST /api/v1/blind-test/recommendations
	POST /api/v1/blind-test/submit               (bearer guard when configured)
	GET  /api/v1/blind-test/previous-sessions    (bearer guard when configured)

Every JSON response uses the models.APIResponse envelope. Errors carry a
code:

	VALIDATION_ERROR        400  bad DTO, closed-schema or exclusivity violation, inverted budget
	EXTRACTOR_UNAVAILABLE   503  language model unreachable, rate limited or circuit open
	DATABASE_ERROR          500  catalog or session store failure
	RATE_LIMITED            429  per-IP limit exceeded
	UNAUTHORIZED            401  missing or invalid bearer token

A model reply that cannot be parsed is not an error: /chat/fill answers
200 with the raw reply and the unchanged filled_table so the client can
ask the user to rephrase.
*/
package api
