// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package database

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/giftmatch/internal/profile"
	"github.com/tomtom215/giftmatch/internal/recommend"
)

func product(id int64, name string, price float64, female, age, birthday, music, books float64) recommend.Product {
	p := recommend.Product{ID: id, Name: name, Price: price}
	p.Features[profile.GenderFemale] = female
	p.Features[profile.Age19To29] = age
	p.Features[profile.OccasionBirthday] = birthday
	p.Features[profile.InterestMusic] = music
	p.Features[profile.InterestBooks] = books
	return p
}

func fixtureProducts() []recommend.Product {
	return []recommend.Product{
		product(1, "Vinyl Player", 50, 10, 8, 2, 6, 0),
		product(2, "Book Club Box", 120, 4, 10, 9, 3, 7),
		product(3, "Concert Ticket", 300, 0, 5, 10, 10, 10),
		product(4, "Scarf", 800, 7, 0, 0, 0, 1),
		product(5, "Gift Card", 20, 0, 0, 0, 0, 0),
		product(6, "Book Club Box Deluxe", 120, 4, 10, 9, 3, 7),
	}
}

func fixtureVector() recommend.FeatureVector {
	var v recommend.FeatureVector
	for _, d := range []profile.Dimension{profile.GenderFemale, profile.Age19To29, profile.OccasionBirthday, profile.InterestMusic, profile.InterestBooks} {
		v[d] = 1
	}
	return v
}

func seedFixtures(t *testing.T, db *DB) *recommend.MemoryCatalog {
	t.Helper()

	products := fixtureProducts()
	if _, err := db.InsertProducts(context.Background(), products); err != nil {
		t.Fatalf("InsertProducts() error: %v", err)
	}
	return recommend.NewMemoryCatalog(products...)
}

func TestFetchCandidates_MatchesInProcessScore(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	mem := seedFixtures(t, db)
	ctx := context.Background()

	engine, err := recommend.NewEngine(recommend.DefaultConfig(), mem, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error: %v", err)
	}

	for _, info := range recommend.Algorithms() {
		spec, ok := engine.BuildSpec(recommend.Request{Vector: fixtureVector(), Algorithm: info.Name, Limit: 50})
		if !ok {
			t.Fatalf("%s: spec unexpectedly degenerate", info.Name)
		}

		fromSQL, err := db.FetchCandidates(ctx, spec)
		if err != nil {
			t.Fatalf("%s: FetchCandidates() error: %v", info.Name, err)
		}
		fromMemory, err := mem.FetchCandidates(ctx, spec)
		if err != nil {
			t.Fatalf("%s: memory FetchCandidates() error: %v", info.Name, err)
		}

		if len(fromSQL) != len(fromMemory) {
			t.Fatalf("%s: %d SQL candidates, %d in-process", info.Name, len(fromSQL), len(fromMemory))
		}
		for i := range fromSQL {
			if fromSQL[i].ProductID != fromMemory[i].ProductID {
				t.Errorf("%s: position %d = product %d, in-process %d", info.Name, i, fromSQL[i].ProductID, fromMemory[i].ProductID)
			}
			if math.Abs(fromSQL[i].Score-fromMemory[i].Score) > 1e-9 {
				t.Errorf("%s: product %d score %v, in-process %v", info.Name, fromSQL[i].ProductID, fromSQL[i].Score, fromMemory[i].Score)
			}
		}
	}
}

func TestFetchCandidates_FiltersAndTieBreak(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	seedFixtures(t, db)

	minPrice, maxPrice := 100.0, 300.0
	spec := recommend.ScoreSpec{
		Algorithm:  recommend.AlgorithmLinear,
		Terms:      []recommend.Term{{Dimension: profile.InterestBooks, Weight: 1}},
		Normalize:  10,
		Epsilon:    1e-6,
		MinPrice:   &minPrice,
		MaxPrice:   &maxPrice,
		ExcludeIDs: []int64{3},
		Limit:      5,
	}

	got, err := db.FetchCandidates(context.Background(), spec)
	if err != nil {
		t.Fatalf("FetchCandidates() error: %v", err)
	}
	if len(got) != 2 || got[0].ProductID != 2 || got[1].ProductID != 6 {
		t.Fatalf("candidates = %+v, want products 2 then 6", got)
	}
	if got[0].Score != got[1].Score {
		t.Errorf("tied products scored %v and %v", got[0].Score, got[1].Score)
	}

	spec.MinPrice, spec.MaxPrice, spec.ExcludeIDs, spec.Limit = nil, nil, nil, 1
	got, err = db.FetchCandidates(context.Background(), spec)
	if err != nil {
		t.Fatalf("FetchCandidates() error: %v", err)
	}
	if len(got) != 1 || got[0].ProductID != 3 {
		t.Errorf("limit 1 = %+v, want product 3", got)
	}
}

func TestFetchCandidates_MissingFeaturesCountAsZero(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.Conn().ExecContext(ctx,
		`INSERT INTO product (id, name, price, created_at) VALUES (42, 'Mystery', 10, TIMESTAMP '2026-01-01 00:00:00')`)
	if err != nil {
		t.Fatalf("insert product: %v", err)
	}

	spec := recommend.ScoreSpec{
		Algorithm: recommend.AlgorithmLegacyProduct,
		Terms:     []recommend.Term{{Dimension: profile.GenderMale, Weight: 1}, {Dimension: profile.InterestArt, Weight: 1}},
		Offset:    recommend.LegacyOffset,
		Limit:     10,
	}
	got, err := db.FetchCandidates(ctx, spec)
	if err != nil {
		t.Fatalf("FetchCandidates() error: %v", err)
	}
	if len(got) != 1 || math.Abs(got[0].Score-0.01) > 1e-12 {
		t.Errorf("candidates = %+v, want one product scoring 0.01", got)
	}
}

func TestFetchCandidates_EmptyCatalog(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)

	spec := recommend.ScoreSpec{
		Algorithm: recommend.AlgorithmCosine,
		Terms:     []recommend.Term{{Dimension: profile.GenderMale, Weight: 4}},
		Normalize: 10,
		Epsilon:   1e-6,
		Limit:     10,
	}
	got, err := db.FetchCandidates(context.Background(), spec)
	if err != nil {
		t.Fatalf("FetchCandidates() error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("got %v, want empty non-nil slice", got)
	}
}

func TestBuildCandidateQuery_BindsEveryValue(t *testing.T) {
	t.Parallel()

	minPrice := 99.5
	spec := recommend.ScoreSpec{
		Algorithm:  recommend.AlgorithmInverseDistance,
		Terms:      []recommend.Term{{Dimension: profile.GenderFemale, Weight: 4}, {Dimension: profile.InterestPets, Weight: 1}},
		Normalize:  10,
		Epsilon:    1e-6,
		MinPrice:   &minPrice,
		ExcludeIDs: []int64{7, 8},
		Limit:      10,
	}

	q, args, err := buildCandidateQuery(spec)
	if err != nil {
		t.Fatalf("buildCandidateQuery() error: %v", err)
	}

	for _, literal := range []string{"99.5", "4 *", " 7", " 8"} {
		if strings.Contains(q, literal) {
			t.Errorf("query contains literal %q: %s", literal, q)
		}
	}
	for _, col := range []string{`f."gender_female"`, `f."interest_pets"`} {
		if !strings.Contains(q, col) {
			t.Errorf("query missing column %s", col)
		}
	}
	if !strings.HasSuffix(q, "ORDER BY score DESC, p.id ASC LIMIT ?") {
		t.Errorf("unexpected ordering clause: %s", q)
	}
	if got, want := strings.Count(q, "?"), len(args); got != want {
		t.Errorf("%d placeholders, %d args", got, want)
	}
}

func TestCompileScore_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		spec recommend.ScoreSpec
	}{
		{"no terms", recommend.ScoreSpec{Algorithm: recommend.AlgorithmLinear}},
		{"invalid dimension", recommend.ScoreSpec{Algorithm: recommend.AlgorithmLinear, Terms: []recommend.Term{{Dimension: profile.Dimension(99)}}}},
		{"unknown algorithm", recommend.ScoreSpec{Algorithm: "random", Terms: []recommend.Term{{Dimension: profile.GenderMale}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := compileScore(tt.spec); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := compileScore(recommend.ScoreSpec{}); !errors.Is(err, ErrEmptySpec) {
		t.Errorf("err = %v, want ErrEmptySpec", err)
	}
}

func TestInsertProducts_AssignsIDs(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	ids, err := db.InsertProducts(ctx, []recommend.Product{{Name: "A", Price: 1}, {Name: "B", Price: 2}})
	if err != nil {
		t.Fatalf("InsertProducts() error: %v", err)
	}
	if len(ids) != 2 || ids[0] == ids[1] || ids[0] == 0 {
		t.Errorf("ids = %v", ids)
	}

	n, err := db.CountProducts(ctx)
	if err != nil || n != 2 {
		t.Errorf("CountProducts() = %d, %v", n, err)
	}
}

func TestInsertProducts_MixedExplicitAndBlankIDs(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	ids, err := db.InsertProducts(ctx, []recommend.Product{
		{Name: "Vinyl", Price: 40},
		{ID: 1, Name: "Headphones", Price: 250},
		{ID: 5, Name: "Turntable", Price: 300},
	})
	if err != nil {
		t.Fatalf("InsertProducts() error: %v", err)
	}
	if want := []int64{6, 1, 5}; len(ids) != 3 || ids[0] != want[0] || ids[1] != want[1] || ids[2] != want[2] {
		t.Errorf("ids = %v, want %v", ids, want)
	}

	more, err := db.InsertProducts(ctx, []recommend.Product{{Name: "Speaker", Price: 90}})
	if err != nil {
		t.Fatalf("second InsertProducts() error: %v", err)
	}
	if len(more) != 1 || more[0] != 7 {
		t.Errorf("ids = %v, want [7]", more)
	}
}
