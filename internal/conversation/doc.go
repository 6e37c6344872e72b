// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

/*
Package conversation drives the slot-filling dialogue that turns free text
into a ranked gift list.

Each turn moves through the same steps:

 1. Resolve the session language (cached in a Badger LanguageStore).
 2. Ask the extractor for a partial profile.
 3. Apply budget inference to the extracted bounds.
 4. Merge into the caller's profile. The first answer wins.
 5. Ask for the highest-priority missing slot, ask about the budget once,
    or rank the catalog.

The orchestrator is stateless. The caller persists the filled table and
the budget_asked flag between turns and sends them back with the next
message. Explicit corrections go through Revise, which replaces stored
selections instead of merging.

States:

	COLLECTING        a required slot is empty
	BUDGET_PENDING    the budget question is outstanding
	READY             ranking (transient)
	TERMINAL_RESULTS  recommendations produced
	TERMINAL_EMPTY    the catalog had nothing matching
*/
package conversation
