// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package recommend

import (
	"context"
	"math"
	"testing"

	"github.com/tomtom215/giftmatch/internal/profile"
)

const tolerance = 1e-9

func specFor(alg Algorithm, dims ...profile.Dimension) ScoreSpec {
	cfg := DefaultConfig()
	weights := cfg.Weights
	if alg == AlgorithmLegacyBalanced {
		weights = legacyBalancedWeights
	}
	spec := ScoreSpec{Algorithm: alg, Normalize: cfg.Normalize, Epsilon: cfg.Epsilon}
	if alg.Family() == FamilyLegacy {
		spec.Offset = LegacyOffset
	}
	for _, d := range dims {
		spec.Terms = append(spec.Terms, Term{Dimension: d, Weight: weights.For(d)})
	}
	return spec
}

func TestScore_Formulas(t *testing.T) {
	t.Parallel()

	var features FeatureVector
	features[profile.Age30To45] = 5 // 0.5 normalized
	features[profile.GenderFemale] = 10
	features[profile.InterestArt] = 0

	active := []profile.Dimension{profile.Age30To45, profile.GenderFemale, profile.InterestArt}

	tests := []struct {
		alg  Algorithm
		want float64
	}{
		// 2*0.5 + 4*1 + 1*0
		{AlgorithmLinear, 5.0},
		// (0.5+1+0) / (sqrt(3) * sqrt(0.25+1+0+eps))
		{AlgorithmCosine, 1.5 / (math.Sqrt(3) * math.Sqrt(1.25+1e-6))},
		// 1 / (1 + sqrt(2*0.25 + 4*0 + 1*1))
		{AlgorithmInverseDistance, 1 / (1 + math.Sqrt(1.5))},
		// (5.1) * (10.1) * (0.1)
		{AlgorithmLegacyProduct, 5.1 * 10.1 * 0.1},
		// 2*5.1 + 4*10.1 + 1*0.1
		{AlgorithmLegacyWeighted, 2*5.1 + 4*10.1 + 0.1},
		// 1*5.1 + 2*10.1 + 0.5*0.1
		{AlgorithmLegacyBalanced, 5.1 + 2*10.1 + 0.05},
	}

	for _, tt := range tests {
		t.Run(string(tt.alg), func(t *testing.T) {
			t.Parallel()

			got := Score(specFor(tt.alg, active...), features)
			if math.Abs(got-tt.want) > tolerance {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScore_InverseDistancePerfectMatch(t *testing.T) {
	t.Parallel()

	active := []profile.Dimension{profile.Age6To12, profile.GenderMale, profile.OccasionNewYear, profile.InterestSports}

	var perfect, none FeatureVector
	for _, d := range active {
		perfect[d] = 10
	}
	none[profile.InterestBooks] = 10

	spec := specFor(AlgorithmInverseDistance, active...)
	if got := Score(spec, perfect); got != 1.0 {
		t.Errorf("perfect match scored %v, want exactly 1.0", got)
	}
	if got := Score(spec, none); got >= 1.0 {
		t.Errorf("non-matching product scored %v, want < 1.0", got)
	}
}

func TestScore_CosineBounded(t *testing.T) {
	t.Parallel()

	spec := specFor(AlgorithmCosine, profile.GenderFemale, profile.InterestFashion)
	for _, f := range []float64{0, 1, 5, 10} {
		var v FeatureVector
		v[profile.GenderFemale] = f
		v[profile.InterestFashion] = 10 - f
		got := Score(spec, v)
		if got < 0 || got > 1 {
			t.Errorf("cosine score %v out of [0,1] for f=%v", got, f)
		}
	}
}

func TestScore_NoTerms(t *testing.T) {
	t.Parallel()

	if got := Score(ScoreSpec{Algorithm: AlgorithmLegacyProduct}, FeatureVector{}); got != 0 {
		t.Errorf("empty spec scored %v", got)
	}
}

func TestFamilyMembers(t *testing.T) {
	t.Parallel()

	for _, f := range []Family{FamilyNormalized, FamilyLegacy} {
		for _, alg := range f.Members() {
			if !alg.Valid() || alg.Family() != f {
				t.Errorf("member %s of %s is invalid or misfiled", alg, f)
			}
		}
	}
	if len(Algorithms()) != 6 {
		t.Errorf("Algorithms() returned %d entries", len(Algorithms()))
	}
	if Algorithm("nope").Valid() || Family("nope").Valid() {
		t.Error("unknown names reported valid")
	}
}

func TestMemoryCatalog_FiltersAndOrdering(t *testing.T) {
	t.Parallel()

	var tie FeatureVector
	tie[profile.InterestTravel] = 10

	catalog := NewMemoryCatalog(
		Product{ID: 5, Name: "Backpack", Price: 80, Features: tie},
		Product{ID: 2, Name: "Luggage tag", Price: 10, Features: tie},
		Product{ID: 9, Name: "Drone", Price: 700, Features: tie},
		Product{ID: 4, Name: "Map", Price: 100, Features: tie},
		Product{ID: 1, Name: "Cookbook", Price: 100},
	)

	spec := specFor(AlgorithmLinear, profile.InterestTravel)
	minPrice, maxPrice := 10.0, 100.0
	spec.MinPrice = &minPrice
	spec.MaxPrice = &maxPrice
	spec.ExcludeIDs = []int64{4}
	spec.Limit = 3

	got, err := catalog.FetchCandidates(context.Background(), spec)
	if err != nil {
		t.Fatal(err)
	}
	wantIDs := []int64{2, 5, 1}
	if len(got) != len(wantIDs) {
		t.Fatalf("got %d candidates, want %d: %+v", len(got), len(wantIDs), got)
	}
	for i, id := range wantIDs {
		if got[i].ProductID != id {
			t.Errorf("position %d = product %d, want %d", i, got[i].ProductID, id)
		}
	}
}
