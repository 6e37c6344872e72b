// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

// Package profile defines the gift-recipient preference profile.
//
// A profile is a closed set of boolean dimensions split into four groups:
//
//   - age (8 brackets, at most one selected)
//   - gender (male/female, at most one selected)
//   - occasion (7 special days, at most one selected)
//   - interests (14 categories, any number selected)
//
// plus optional non-negative min/max budgets.
//
// # Completeness
//
// MissingFields reports the hard-required slots that are still empty in a
// fixed priority order (age, gender, occasion, interests). Budget is
// optional and tracked separately by the conversation package. Budget
// ordering (min <= max) is enforced lazily when completeness is evaluated.
//
// # Updates
//
// Each conversational turn produces an Update. Profile.Merge applies it
// under a first-answer-wins policy so a later turn cannot silently change
// an earlier answer; Profile.Revise is the explicit correction path.
package profile
