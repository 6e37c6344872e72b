// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package profile

import (
	"sort"

	"github.com/goccy/go-json"
)

// Profile is the structured gift-recipient preference record.
//
// The zero value is the empty profile a conversation starts with: every
// flag false and both budgets unset. Profiles are values; Merge and Revise
// return new profiles and never mutate the receiver.
type Profile struct {
	flags [NumDimensions]bool

	MinBudget *float64
	MaxBudget *float64
}

// FromMap builds a profile from a flat field map such as a decoded
// filled_table. Unknown keys, non-boolean flags, non-numeric or negative
// budgets and exclusivity violations are rejected with *ValidationError.
// A null flag is treated as unset.
func FromMap(m map[string]interface{}) (Profile, error) {
	var p Profile
	for _, key := range sortedKeys(m) {
		value := m[key]
		switch key {
		case FieldMinBudget, FieldMaxBudget:
			budget, err := parseBudget(key, value)
			if err != nil {
				return Profile{}, err
			}
			if key == FieldMinBudget {
				p.MinBudget = budget
			} else {
				p.MaxBudget = budget
			}
		default:
			d, ok := DimensionByName(key)
			if !ok {
				return Profile{}, newValidationError(key, "unknown field")
			}
			if value == nil {
				continue
			}
			b, ok := value.(bool)
			if !ok {
				return Profile{}, newValidationError(key, "must be a boolean, got %T", value)
			}
			p.flags[d] = b
		}
	}

	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Get reports whether dimension d is set.
func (p Profile) Get(d Dimension) bool {
	if !d.Valid() {
		return false
	}
	return p.flags[d]
}

// Set assigns a flag without validation. Call Validate afterwards when the
// result must satisfy group exclusivity.
func (p *Profile) Set(d Dimension, v bool) {
	if d.Valid() {
		p.flags[d] = v
	}
}

// Validate checks group exclusivity and non-negative budgets. Budget
// ordering is deliberately not checked here; see CheckBudget.
func (p Profile) Validate() error {
	for _, g := range Groups() {
		if !g.Exclusive() {
			continue
		}
		if p.count(g) > 1 {
			return newValidationError(g.String(), "only one %s can be selected", groupNoun(g))
		}
	}
	if p.MinBudget != nil && *p.MinBudget < 0 {
		return newValidationError(FieldMinBudget, "must be greater than or equal to 0")
	}
	if p.MaxBudget != nil && *p.MaxBudget < 0 {
		return newValidationError(FieldMaxBudget, "must be greater than or equal to 0")
	}
	return nil
}

// CheckBudget enforces min_budget <= max_budget when both are present.
func (p Profile) CheckBudget() error {
	if p.MinBudget != nil && p.MaxBudget != nil && *p.MinBudget > *p.MaxBudget {
		return &ValidationError{Field: FieldMinBudget, Message: MsgBudgetOrder}
	}
	return nil
}

func (p Profile) HasAge() bool       { return p.count(GroupAge) > 0 }
func (p Profile) HasGender() bool    { return p.count(GroupGender) > 0 }
func (p Profile) HasOccasion() bool  { return p.count(GroupOccasion) > 0 }
func (p Profile) HasInterests() bool { return p.count(GroupInterest) > 0 }

// HasBudget reports whether at least one budget bound is known.
func (p Profile) HasBudget() bool {
	return p.MinBudget != nil || p.MaxBudget != nil
}

// Has reports whether the group has at least one flag set.
func (p Profile) Has(g Group) bool {
	return p.count(g) > 0
}

// MissingFields returns the unfilled hard-required slots in question
// priority order: age, gender, occasion, interests. Budget is optional and
// never listed. When both budgets are present and inverted the profile is
// rejected with *ValidationError instead.
func (p Profile) MissingFields() ([]Slot, error) {
	missing := make([]Slot, 0, 4)
	for _, g := range Groups() {
		if !p.Has(g) {
			missing = append(missing, g.Slot())
		}
	}
	if err := p.CheckBudget(); err != nil {
		return nil, err
	}
	return missing, nil
}

// MissingPrompts is MissingFields rendered as questions in lang.
func (p Profile) MissingPrompts(lang string) ([]string, error) {
	slots, err := p.MissingFields()
	if err != nil {
		return nil, err
	}
	prompts := make([]string, len(slots))
	for i, s := range slots {
		prompts[i] = s.Prompt(lang)
	}
	return prompts, nil
}

// ActiveDimensions returns the set flags in canonical order.
func (p Profile) ActiveDimensions() []Dimension {
	var out []Dimension
	for i, set := range p.flags {
		if set {
			out = append(out, Dimension(i))
		}
	}
	return out
}

// ToMap returns the canonical filled_table form: every flag plus both
// budgets (nil when unset).
func (p Profile) ToMap() map[string]interface{} {
	m := make(map[string]interface{}, NumDimensions+2)
	for i, name := range dimensionNames {
		m[name] = p.flags[i]
	}
	m[FieldMinBudget] = floatOrNil(p.MinBudget)
	m[FieldMaxBudget] = floatOrNil(p.MaxBudget)
	return m
}

// Equal compares flags and budget values.
func (p Profile) Equal(o Profile) bool {
	return p.flags == o.flags && equalFloatPtr(p.MinBudget, o.MinBudget) && equalFloatPtr(p.MaxBudget, o.MaxBudget)
}

// MarshalJSON encodes the profile as its filled_table map.
func (p Profile) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ToMap())
}

// UnmarshalJSON decodes with the same strict rules as FromMap.
func (p *Profile) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return &ValidationError{Message: "profile must be a JSON object"}
	}
	decoded, err := FromMap(m)
	if err != nil {
		return err
	}
	*p = decoded
	return nil
}

func (p Profile) count(g Group) int {
	n := 0
	for _, d := range g.Dimensions() {
		if p.flags[d] {
			n++
		}
	}
	return n
}

func groupNoun(g Group) string {
	switch g {
	case GroupAge:
		return "age group"
	case GroupGender:
		return "gender"
	case GroupOccasion:
		return "special day"
	default:
		return "interest"
	}
}

// sortedKeys gives deterministic error reporting when several keys are bad.
func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func parseBudget(field string, value interface{}) (*float64, error) {
	if value == nil {
		return nil, nil
	}
	f, ok := toFloat(value)
	if !ok {
		return nil, newValidationError(field, "must be a number, got %T", value)
	}
	if f < 0 {
		return nil, newValidationError(field, "must be greater than or equal to 0")
	}
	return &f, nil
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case interface{ Float64() (float64, error) }:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func floatOrNil(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}

func equalFloatPtr(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Float returns a pointer to v. Handy for budgets in literals and tests.
func Float(v float64) *float64 {
	return &v
}
