// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package conversation

// State is where a conversation stands after a turn.
type State string

const (
	// StateCollecting means at least one required slot is still empty.
	StateCollecting State = "COLLECTING"

	// StateBudgetPending means every required slot is filled and the
	// budget question is outstanding.
	StateBudgetPending State = "BUDGET_PENDING"

	// StateReady is the transient state in which the catalog is ranked.
	// A turn never ends in it.
	StateReady State = "READY"

	StateTerminalResults State = "TERMINAL_RESULTS"
	StateTerminalEmpty   State = "TERMINAL_EMPTY"
)

// Terminal reports whether the conversation produced a final answer.
func (s State) Terminal() bool {
	return s == StateTerminalResults || s == StateTerminalEmpty
}
