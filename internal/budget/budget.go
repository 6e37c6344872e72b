// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

// Package budget turns heterogeneous budget signals into a min/max range.
//
// The extractor may report an explicit range, a single approximate figure
// (reported as min == max), a vague qualitative hint such as "cheap", or
// nothing at all. Infer applies the numeric post-processing:
//
//   - equal min and max become a band of +/- Policy.SingleValueBand
//   - a recognised hint becomes the configured vague band
//   - no signal leaves both bounds nil
//
// Explicit numbers always take precedence over a hint.
package budget

import (
	"fmt"
	"math"
	"strings"
)

// Band is an inclusive price range. A nil bound is open.
type Band struct {
	Min *float64 `koanf:"min" json:"min"`
	Max *float64 `koanf:"max" json:"max"`
}

// Policy holds the tunable inference constants.
type Policy struct {
	// SingleValueBand is the relative spread applied around a single
	// quoted figure. 0.2 turns 500 into 400..600.
	SingleValueBand float64

	// Cheap and Luxury are the ranges used for vague hints.
	Cheap  Band
	Luxury Band
}

// DefaultPolicy returns the stock constants.
func DefaultPolicy() Policy {
	return Policy{
		SingleValueBand: 0.2,
		Cheap:           Band{Min: ptr(0), Max: ptr(300)},
		Luxury:          Band{Min: ptr(1000)},
	}
}

// Validate rejects a policy that could only produce inverted ranges.
func (p Policy) Validate() error {
	if p.SingleValueBand < 0 || p.SingleValueBand >= 1 {
		return fmt.Errorf("single value band must be in [0, 1), got %v", p.SingleValueBand)
	}
	for name, b := range map[string]Band{"cheap": p.Cheap, "luxury": p.Luxury} {
		if b.Min != nil && *b.Min < 0 {
			return fmt.Errorf("%s band minimum must be non-negative", name)
		}
		if b.Min != nil && b.Max != nil && *b.Min > *b.Max {
			return fmt.Errorf("%s band minimum exceeds maximum", name)
		}
	}
	return nil
}

// Hint is a vague qualitative budget signal.
type Hint string

const (
	HintNone   Hint = ""
	HintCheap  Hint = "cheap"
	HintLuxury Hint = "luxury"
)

var hintAliases = map[string]Hint{
	"cheap":       HintCheap,
	"budget":      HintCheap,
	"affordable":  HintCheap,
	"inexpensive": HintCheap,
	"ucuz":        HintCheap,
	"luxury":      HintLuxury,
	"expensive":   HintLuxury,
	"premium":     HintLuxury,
	"pahalı":      HintLuxury,
	"lüks":        HintLuxury,
}

// ParseHint normalises free-form hint text. Unknown words yield HintNone.
func ParseHint(s string) Hint {
	return hintAliases[strings.ToLower(strings.TrimSpace(s))]
}

// Infer applies the policy to the extracted bounds and hint. The returned
// pointers are fresh copies; the inputs are never modified.
func Infer(minBudget, maxBudget *float64, hint Hint, p Policy) (*float64, *float64) {
	if minBudget != nil && maxBudget != nil && *minBudget == *maxBudget {
		v := *minBudget
		return ptr(math.Round(v * (1 - p.SingleValueBand))), ptr(math.Round(v * (1 + p.SingleValueBand)))
	}
	if minBudget != nil || maxBudget != nil {
		return clone(minBudget), clone(maxBudget)
	}

	switch hint {
	case HintCheap:
		return clone(p.Cheap.Min), clone(p.Cheap.Max)
	case HintLuxury:
		return clone(p.Luxury.Min), clone(p.Luxury.Max)
	default:
		return nil, nil
	}
}

func ptr(v float64) *float64 { return &v }

func clone(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return ptr(*v)
}
