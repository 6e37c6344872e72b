// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package recommend

import (
	"strings"

	"github.com/tomtom215/giftmatch/internal/profile"
)

// FeatureVector is the fixed-width numeric encoding shared by user queries
// and stored product features. Index i holds the weight of
// profile.Dimension(i). User vectors hold 0 or 1; product vectors hold the
// raw stored magnitude (0..NORMALIZE).
type FeatureVector [profile.NumDimensions]float64

// FromProfile maps each set flag to 1.0.
//
//nolint:gocritic // profile.Profile is a small value type
func FromProfile(p profile.Profile) FeatureVector {
	var v FeatureVector
	for _, d := range p.ActiveDimensions() {
		v[d] = 1.0
	}
	return v
}

// SlotInput is the single-choice form used by the blind-test surface: one
// value per exclusive group plus a list of interests. Values are the
// suffixes of the field names, e.g. Age "19_29", Occasion "new_year".
type SlotInput struct {
	Age       string   `json:"age"`
	Gender    string   `json:"gender"`
	Occasion  string   `json:"special"`
	Interests []string `json:"interests"`
}

// FromSlots maps a SlotInput onto a vector. Values that do not name a
// known dimension are ignored so older clients keep working when the
// catalog grows new categories.
func FromSlots(in SlotInput) FeatureVector {
	var v FeatureVector
	v.setNamed(profile.GroupAge, in.Age)
	v.setNamed(profile.GroupGender, in.Gender)
	v.setNamed(profile.GroupOccasion, in.Occasion)
	for _, interest := range in.Interests {
		v.setNamed(profile.GroupInterest, interest)
	}
	return v
}

func (v *FeatureVector) setNamed(g profile.Group, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	d, ok := profile.DimensionByName(g.Prefix() + "_" + value)
	if !ok || d.Group() != g {
		return
	}
	v[d] = 1.0
}

// Active returns the dimensions with a nonzero weight in canonical order.
func (v FeatureVector) Active() []profile.Dimension {
	var out []profile.Dimension
	for i, w := range v {
		if w != 0 {
			out = append(out, profile.Dimension(i))
		}
	}
	return out
}

// Map returns the vector keyed by field name.
func (v FeatureVector) Map() map[string]float64 {
	m := make(map[string]float64, len(v))
	for i, w := range v {
		m[profile.Dimension(i).String()] = w
	}
	return m
}
