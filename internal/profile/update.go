// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package profile

// Update is a partial profile produced by one conversational turn. Only
// the fields present in the source are recorded; absent and null fields
// mean "no new information".
type Update struct {
	flags map[Dimension]bool

	MinBudget *float64
	MaxBudget *float64
}

// ParseUpdate decodes a partial field map with the closed-schema rules of
// FromMap. Null values are skipped. The update itself must not select two
// members of an exclusive group.
func ParseUpdate(m map[string]interface{}) (Update, error) {
	u := Update{flags: make(map[Dimension]bool)}
	for _, key := range sortedKeys(m) {
		value := m[key]
		switch key {
		case FieldMinBudget, FieldMaxBudget:
			budget, err := parseBudget(key, value)
			if err != nil {
				return Update{}, err
			}
			if key == FieldMinBudget {
				u.MinBudget = budget
			} else {
				u.MaxBudget = budget
			}
		default:
			d, ok := DimensionByName(key)
			if !ok {
				return Update{}, newValidationError(key, "unknown field")
			}
			if value == nil {
				continue
			}
			b, ok := value.(bool)
			if !ok {
				return Update{}, newValidationError(key, "must be a boolean, got %T", value)
			}
			u.flags[d] = b
		}
	}

	for _, g := range Groups() {
		if g.Exclusive() && len(u.selected(g)) > 1 {
			return Update{}, newValidationError(g.String(), "only one %s can be selected", groupNoun(g))
		}
	}
	return u, nil
}

// Set records a flag value in the update.
func (u *Update) Set(d Dimension, v bool) {
	if !d.Valid() {
		return
	}
	if u.flags == nil {
		u.flags = make(map[Dimension]bool)
	}
	u.flags[d] = v
}

// Value returns the recorded value for d and whether one was provided.
func (u Update) Value(d Dimension) (value, ok bool) {
	value, ok = u.flags[d]
	return value, ok
}

// IsEmpty reports whether the update carries no information at all.
func (u Update) IsEmpty() bool {
	return len(u.flags) == 0 && u.MinBudget == nil && u.MaxBudget == nil
}

func (u Update) selected(g Group) []Dimension {
	var out []Dimension
	for _, d := range g.Dimensions() {
		if u.flags[d] {
			out = append(out, d)
		}
	}
	return out
}

// Merge folds an update into the profile under the first-answer-wins
// policy:
//   - an exclusive group that already has a selection ignores the update;
//     otherwise the update's selection (if any) is adopted
//   - interests are unioned and a false never clears a true
//   - a budget bound is adopted only while it is still unset
//
// Merging the same update twice yields the same profile.
func (p Profile) Merge(u Update) Profile {
	out := p
	for _, g := range Groups() {
		if g.Exclusive() {
			if p.Has(g) {
				continue
			}
			if sel := u.selected(g); len(sel) == 1 {
				out.flags[sel[0]] = true
			}
			continue
		}
		for _, d := range u.selected(g) {
			out.flags[d] = true
		}
	}
	if out.MinBudget == nil && u.MinBudget != nil {
		out.MinBudget = Float(*u.MinBudget)
	}
	if out.MaxBudget == nil && u.MaxBudget != nil {
		out.MaxBudget = Float(*u.MaxBudget)
	}
	return out
}

// Revise applies an explicit correction. Unlike Merge, a selection in an
// exclusive group replaces the current one, a false flag clears it and a
// provided budget overwrites the stored bound. The result is validated.
func (p Profile) Revise(u Update) (Profile, error) {
	out := p
	for _, g := range Groups() {
		sel := u.selected(g)
		if g.Exclusive() && len(sel) > 0 {
			for _, d := range g.Dimensions() {
				out.flags[d] = false
			}
		}
		for _, d := range g.Dimensions() {
			if v, ok := u.flags[d]; ok {
				out.flags[d] = v
			}
		}
	}
	if u.MinBudget != nil {
		out.MinBudget = Float(*u.MinBudget)
	}
	if u.MaxBudget != nil {
		out.MaxBudget = Float(*u.MaxBudget)
	}
	if err := out.Validate(); err != nil {
		return p, err
	}
	return out, nil
}
