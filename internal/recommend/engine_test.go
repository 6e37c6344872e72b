// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package recommend

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/giftmatch/internal/profile"
)

// mockCatalog records calls and returns canned candidates.
type mockCatalog struct {
	candidates []Candidate
	err        error
	calls      atomic.Int32
	lastSpec   ScoreSpec
}

func (m *mockCatalog) FetchCandidates(_ context.Context, spec ScoreSpec) ([]Candidate, error) {
	m.calls.Add(1)
	m.lastSpec = spec
	if m.err != nil {
		return nil, m.err
	}
	out := make([]Candidate, len(m.candidates))
	copy(out, m.candidates)
	return out, nil
}

func newTestEngine(t *testing.T, catalog CatalogReader) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig(), catalog, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func vectorOf(dims ...profile.Dimension) FeatureVector {
	var v FeatureVector
	for _, d := range dims {
		v[d] = 1
	}
	return v
}

func TestNewEngine(t *testing.T) {
	t.Parallel()

	if _, err := NewEngine(nil, &mockCatalog{}, zerolog.Nop()); err != nil {
		t.Errorf("nil config should use defaults: %v", err)
	}
	if _, err := NewEngine(nil, nil, zerolog.Nop()); !errors.Is(err, ErrNoCatalog) {
		t.Errorf("nil catalog error = %v, want ErrNoCatalog", err)
	}

	bad := DefaultConfig()
	bad.Normalize = 0
	if _, err := NewEngine(bad, &mockCatalog{}, zerolog.Nop()); err == nil {
		t.Error("zero normalize accepted")
	}
}

func TestEngine_DegenerateQuerySkipsCatalog(t *testing.T) {
	t.Parallel()

	catalog := &mockCatalog{candidates: []Candidate{{ProductID: 1, Score: 9}}}
	e := newTestEngine(t, catalog)

	for _, alg := range []Algorithm{AlgorithmLinear, AlgorithmCosine, AlgorithmInverseDistance, AlgorithmLegacyProduct} {
		resp, err := e.Recommend(context.Background(), Request{Algorithm: alg})
		if err != nil {
			t.Fatalf("%s: Recommend() error = %v", alg, err)
		}
		if !resp.Degenerate || len(resp.Candidates) != 0 {
			t.Errorf("%s: degenerate=%v candidates=%d", alg, resp.Degenerate, len(resp.Candidates))
		}
	}
	if catalog.calls.Load() != 0 {
		t.Errorf("catalog called %d times for degenerate queries", catalog.calls.Load())
	}
	if got := e.Stats().Degenerate; got != 4 {
		t.Errorf("Stats().Degenerate = %d, want 4", got)
	}
}

func TestEngine_StorageErrorPropagates(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	e := newTestEngine(t, &mockCatalog{err: cause})

	resp, err := e.Recommend(context.Background(), Request{Vector: vectorOf(profile.GenderMale)})
	if resp != nil {
		t.Errorf("partial response returned on error: %+v", resp)
	}
	var serr *StorageError
	if !errors.As(err, &serr) {
		t.Fatalf("error %T is not *StorageError", err)
	}
	if !errors.Is(err, cause) {
		t.Error("StorageError does not unwrap to the cause")
	}
}

func TestEngine_BuildSpec(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, &mockCatalog{})
	minBudget, maxBudget := 100.0, 400.0

	spec, ok := e.BuildSpec(Request{
		Vector:     vectorOf(profile.Age19To29, profile.GenderFemale, profile.OccasionBirthday, profile.InterestMusic),
		MinBudget:  &minBudget,
		MaxBudget:  &maxBudget,
		ExcludeIDs: []int64{7},
		Limit:      500,
	})
	if !ok {
		t.Fatal("BuildSpec reported degenerate")
	}
	if spec.Algorithm != AlgorithmLinear {
		t.Errorf("Algorithm = %s, want primary %s", spec.Algorithm, AlgorithmLinear)
	}
	if spec.Limit != DefaultConfig().MaxLimit {
		t.Errorf("Limit = %d, want clamp to %d", spec.Limit, DefaultConfig().MaxLimit)
	}
	wantWeights := []float64{2, 4, 1, 1}
	if len(spec.Terms) != len(wantWeights) {
		t.Fatalf("got %d terms, want %d", len(spec.Terms), len(wantWeights))
	}
	for i, term := range spec.Terms {
		if term.Weight != wantWeights[i] {
			t.Errorf("term %s weight = %v, want %v", term.Dimension, term.Weight, wantWeights[i])
		}
	}
	if spec.Offset != 0 {
		t.Errorf("normalized spec has offset %v", spec.Offset)
	}

	legacy, _ := e.BuildSpec(Request{Vector: vectorOf(profile.GenderMale, profile.InterestPets), Algorithm: AlgorithmLegacyBalanced})
	if legacy.Offset != LegacyOffset || legacy.Terms[0].Weight != 2 || legacy.Terms[1].Weight != 0.5 {
		t.Errorf("legacy balanced spec = %+v", legacy)
	}
}

func TestEngine_RecommendRanksAndTruncates(t *testing.T) {
	t.Parallel()

	catalog := &mockCatalog{candidates: []Candidate{
		{ProductID: 3, Score: 0.9}, {ProductID: 1, Score: 0.8}, {ProductID: 2, Score: 0.1},
	}}
	e := newTestEngine(t, catalog)

	resp, err := e.Recommend(context.Background(), Request{Vector: vectorOf(profile.InterestBooks), Limit: 2})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(resp.Candidates))
	}
	for i, c := range resp.Candidates {
		if c.Rank != i+1 {
			t.Errorf("candidate %d rank = %d", c.ProductID, c.Rank)
		}
	}
}

func TestEngine_UnknownAlgorithm(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, &mockCatalog{})
	if _, err := e.Recommend(context.Background(), Request{Vector: vectorOf(profile.GenderMale), Algorithm: "random"}); err == nil {
		t.Error("unknown algorithm accepted")
	}
}

func TestEngine_BlindTest(t *testing.T) {
	t.Parallel()

	catalog := NewMemoryCatalog(
		Product{ID: 1, Name: "Headphones", Price: 120, Features: vectorOf(profile.GenderMale, profile.InterestMusic).scaled(10)},
		Product{ID: 2, Name: "Novel", Price: 20, Features: vectorOf(profile.InterestBooks).scaled(10)},
		Product{ID: 3, Name: "Watch", Price: 900, Features: vectorOf(profile.GenderMale).scaled(8)},
	)
	e := newTestEngine(t, catalog)

	maxBudget := 500.0
	result, err := e.BlindTest(context.Background(), SlotInput{
		Age: "19_29", Gender: "male", Occasion: "birthday", Interests: []string{"music", "knitting"},
	}, nil, &maxBudget)
	if err != nil {
		t.Fatalf("BlindTest() error = %v", err)
	}
	if result.Family != FamilyNormalized {
		t.Errorf("Family = %s", result.Family)
	}
	for name, list := range map[string][]Candidate{"1": result.Algorithm1, "2": result.Algorithm2, "3": result.Algorithm3} {
		if len(list) == 0 || list[0].ProductID != 1 {
			t.Errorf("algorithm_%s top candidate = %+v, want product 1", name, list)
		}
		for _, c := range list {
			if c.ProductID == 3 {
				t.Errorf("algorithm_%s returned product above max budget", name)
			}
		}
	}
}

func TestEngine_BlindTestStorageError(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, &mockCatalog{err: errors.New("boom")})
	if _, err := e.BlindTest(context.Background(), SlotInput{Gender: "female"}, nil, nil); err == nil {
		t.Error("BlindTest swallowed a storage error")
	}
}

func (v FeatureVector) scaled(by float64) FeatureVector {
	for i := range v {
		v[i] *= by
	}
	return v
}
