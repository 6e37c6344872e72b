// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

/*
Package auth guards the operator endpoints with HS256 bearer tokens.

Tokens are minted outside this service with the shared secret from
SECURITY_JWT_SECRET. JWTVerifier checks the signature, the algorithm, the
exp claim and, when configured, the iss claim. RequireBearer wraps a chi
route group:

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireBearer(verifier))
		r.Get("/api/v1/blind-test/previous-sessions", h.PreviousSessions)
	})

Rejected requests get a 401 with the standard JSON error envelope and the
UNAUTHORIZED code. The conversation and recommendation endpoints are public.
*/
package auth
