// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package recommend

import (
	"math"

	"github.com/tomtom215/giftmatch/internal/profile"
)

// Algorithm names a scoring formula.
type Algorithm string

// Normalized family. Stored magnitudes are divided by NORMALIZE first.
const (
	// AlgorithmLinear: sum of w_d * f_d/N over active d. Unbounded above.
	AlgorithmLinear Algorithm = "linear"
	// AlgorithmCosine: sum(f_d/N) / (sqrt(k) * sqrt(sum((f_d/N)^2) + eps)).
	AlgorithmCosine Algorithm = "cosine"
	// AlgorithmInverseDistance: 1 / (1 + sqrt(sum w_d * (f_d/N - 1)^2)).
	// A product at full magnitude on every active dimension scores 1.0.
	AlgorithmInverseDistance Algorithm = "inverse_distance"
)

// Legacy family. Raw magnitudes plus a 0.1 offset, NULL counting as 0.
const (
	AlgorithmLegacyProduct  Algorithm = "legacy_product"
	AlgorithmLegacyWeighted Algorithm = "legacy_weighted"
	AlgorithmLegacyBalanced Algorithm = "legacy_balanced"
)

// LegacyOffset is added to every stored magnitude by the legacy family.
const LegacyOffset = 0.1

// Family groups three algorithms compared side by side in a blind test.
type Family string

const (
	FamilyNormalized Family = "normalized"
	FamilyLegacy     Family = "legacy"
)

// AlgorithmInfo describes an algorithm for listings.
type AlgorithmInfo struct {
	Name        Algorithm `json:"name"`
	Family      Family    `json:"family"`
	Description string    `json:"description"`
}

var algorithmCatalog = []AlgorithmInfo{
	{AlgorithmLinear, FamilyNormalized, "Weighted linear sum of normalized feature magnitudes"},
	{AlgorithmCosine, FamilyNormalized, "Cosine similarity between the query and normalized features"},
	{AlgorithmInverseDistance, FamilyNormalized, "Inverse weighted Euclidean distance to a perfect match"},
	{AlgorithmLegacyProduct, FamilyLegacy, "Product of offset raw magnitudes"},
	{AlgorithmLegacyWeighted, FamilyLegacy, "Weighted sum of offset raw magnitudes"},
	{AlgorithmLegacyBalanced, FamilyLegacy, "Weighted sum of offset raw magnitudes with softened gender and interest weights"},
}

// Algorithms lists every supported algorithm.
func Algorithms() []AlgorithmInfo {
	out := make([]AlgorithmInfo, len(algorithmCatalog))
	copy(out, algorithmCatalog)
	return out
}

// Valid reports whether a is a known algorithm.
func (a Algorithm) Valid() bool {
	for _, info := range algorithmCatalog {
		if info.Name == a {
			return true
		}
	}
	return false
}

// Family returns the family a belongs to.
func (a Algorithm) Family() Family {
	for _, info := range algorithmCatalog {
		if info.Name == a {
			return info.Family
		}
	}
	return ""
}

// Valid reports whether f is a known family.
func (f Family) Valid() bool {
	return f == FamilyNormalized || f == FamilyLegacy
}

// Members returns the blind-test triple for the family, in
// algorithm_1..algorithm_3 order.
func (f Family) Members() [3]Algorithm {
	if f == FamilyLegacy {
		return [3]Algorithm{AlgorithmLegacyProduct, AlgorithmLegacyWeighted, AlgorithmLegacyBalanced}
	}
	return [3]Algorithm{AlgorithmLinear, AlgorithmCosine, AlgorithmInverseDistance}
}

// WeightTable assigns a weight per dimension group.
type WeightTable struct {
	Age      float64 `json:"age"`
	Gender   float64 `json:"gender"`
	Occasion float64 `json:"occasion"`
	Interest float64 `json:"interest"`
}

// DefaultWeights is the canonical table: gender dominates, age next.
func DefaultWeights() WeightTable {
	return WeightTable{Age: 2.0, Gender: 4.0, Occasion: 1.0, Interest: 1.0}
}

// legacyBalancedWeights is fixed; it only exists to reproduce historic
// rankings.
var legacyBalancedWeights = WeightTable{Age: 1.0, Gender: 2.0, Occasion: 1.0, Interest: 0.5}

// For returns the weight of d.
func (w WeightTable) For(d profile.Dimension) float64 {
	switch d.Group() {
	case profile.GroupAge:
		return w.Age
	case profile.GroupGender:
		return w.Gender
	case profile.GroupOccasion:
		return w.Occasion
	default:
		return w.Interest
	}
}

// Score evaluates spec against one product's stored features in process.
// It is the reference the SQL compiler in the database package must agree
// with, and backs MemoryCatalog. A spec without terms scores 0.
//
//nolint:gocritic // ScoreSpec is read-only here
func Score(spec ScoreSpec, features FeatureVector) float64 {
	if len(spec.Terms) == 0 {
		return 0
	}
	n := spec.Normalize
	if n == 0 {
		n = 1
	}

	switch spec.Algorithm {
	case AlgorithmCosine:
		var dot, sumSq float64
		for _, t := range spec.Terms {
			x := features[t.Dimension] / n
			dot += x
			sumSq += x * x
		}
		return dot / (math.Sqrt(float64(len(spec.Terms))) * math.Sqrt(sumSq+spec.Epsilon))

	case AlgorithmInverseDistance:
		var diff float64
		for _, t := range spec.Terms {
			d := features[t.Dimension]/n - 1
			diff += t.Weight * d * d
		}
		return 1 / (1 + math.Sqrt(diff))

	case AlgorithmLegacyProduct:
		product := 1.0
		for _, t := range spec.Terms {
			product *= features[t.Dimension] + spec.Offset
		}
		return product

	case AlgorithmLegacyWeighted, AlgorithmLegacyBalanced:
		var sum float64
		for _, t := range spec.Terms {
			sum += t.Weight * (features[t.Dimension] + spec.Offset)
		}
		return sum

	default: // AlgorithmLinear
		var sum float64
		for _, t := range spec.Terms {
			sum += t.Weight * (features[t.Dimension] / n)
		}
		return sum
	}
}
