// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package profile

// Dimension identifies one of the boolean preference flags. The numeric
// value is the position of the flag in the canonical ordering shared by
// profiles, feature vectors and the product_features table.
type Dimension int

// Canonical dimension order. Do not reorder: feature vectors and catalog
// columns are aligned on these indices.
const (
	Age0To2 Dimension = iota
	Age3To5
	Age6To12
	Age13To18
	Age19To29
	Age30To45
	Age45To65
	Age65Plus

	GenderMale
	GenderFemale

	OccasionBirthday
	OccasionAnniversary
	OccasionValentines
	OccasionNewYear
	OccasionHouseWarming
	OccasionMothersDay
	OccasionFathersDay

	InterestSports
	InterestMusic
	InterestBooks
	InterestTechnology
	InterestTravel
	InterestArt
	InterestFood
	InterestFitness
	InterestHealth
	InterestPhotography
	InterestFashion
	InterestPets
	InterestHomeDecor
	InterestMoviesTV

	// NumDimensions is the fixed width of every profile and feature vector.
	NumDimensions int = iota
)

// Budget field names. They are part of the closed profile schema but are
// not scoring dimensions.
const (
	FieldMinBudget = "min_budget"
	FieldMaxBudget = "max_budget"
)

var dimensionNames = [NumDimensions]string{
	"age_0_2", "age_3_5", "age_6_12", "age_13_18", "age_19_29", "age_30_45", "age_45_65", "age_65_plus",
	"gender_male", "gender_female",
	"special_birthday", "special_anniversary", "special_valentines", "special_new_year",
	"special_house_warming", "special_mothers_day", "special_fathers_day",
	"interest_sports", "interest_music", "interest_books", "interest_technology",
	"interest_travel", "interest_art", "interest_food", "interest_fitness", "interest_health",
	"interest_photography", "interest_fashion", "interest_pets", "interest_home_decor", "interest_movies_tv",
}

var dimensionsByName = func() map[string]Dimension {
	m := make(map[string]Dimension, NumDimensions)
	for i, name := range dimensionNames {
		m[name] = Dimension(i)
	}
	return m
}()

// String returns the canonical field name (for example "age_19_29").
func (d Dimension) String() string {
	if !d.Valid() {
		return "unknown"
	}
	return dimensionNames[d]
}

// Valid reports whether d is one of the known dimensions.
func (d Dimension) Valid() bool {
	return d >= 0 && int(d) < NumDimensions
}

// Group returns the group the dimension belongs to.
func (d Dimension) Group() Group {
	switch {
	case d <= Age65Plus:
		return GroupAge
	case d <= GenderFemale:
		return GroupGender
	case d <= OccasionFathersDay:
		return GroupOccasion
	default:
		return GroupInterest
	}
}

// DimensionByName resolves a canonical field name.
func DimensionByName(name string) (Dimension, bool) {
	d, ok := dimensionsByName[name]
	return d, ok
}

// Dimensions returns all dimensions in canonical order.
func Dimensions() []Dimension {
	out := make([]Dimension, NumDimensions)
	for i := range out {
		out[i] = Dimension(i)
	}
	return out
}

// Group is a family of related dimensions.
type Group int

const (
	GroupAge Group = iota
	GroupGender
	GroupOccasion
	GroupInterest
)

var groupBounds = [...]struct{ first, last Dimension }{
	GroupAge:      {Age0To2, Age65Plus},
	GroupGender:   {GenderMale, GenderFemale},
	GroupOccasion: {OccasionBirthday, OccasionFathersDay},
	GroupInterest: {InterestSports, InterestMoviesTV},
}

// Groups returns the groups in question-priority order.
func Groups() []Group {
	return []Group{GroupAge, GroupGender, GroupOccasion, GroupInterest}
}

// Exclusive reports whether at most one member of the group may be set.
func (g Group) Exclusive() bool {
	return g != GroupInterest
}

// Dimensions returns the group members in canonical order.
func (g Group) Dimensions() []Dimension {
	b := groupBounds[g]
	out := make([]Dimension, 0, int(b.last-b.first)+1)
	for d := b.first; d <= b.last; d++ {
		out = append(out, d)
	}
	return out
}

// Prefix returns the field-name prefix used by slot-style inputs
// ("age", "gender", "special", "interest").
func (g Group) Prefix() string {
	switch g {
	case GroupAge:
		return "age"
	case GroupGender:
		return "gender"
	case GroupOccasion:
		return "special"
	default:
		return "interest"
	}
}

func (g Group) String() string {
	return string(g.Slot())
}

// Slot returns the completeness slot the group fills.
func (g Group) Slot() Slot {
	switch g {
	case GroupAge:
		return SlotAge
	case GroupGender:
		return SlotGender
	case GroupOccasion:
		return SlotOccasion
	default:
		return SlotInterests
	}
}
