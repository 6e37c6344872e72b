// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package query

import (
	"testing"
)

func TestWhereBuilder_Empty(t *testing.T) {
	t.Parallel()

	wb := NewWhereBuilder()
	if !wb.IsEmpty() || wb.Count() != 0 {
		t.Error("Expected new builder to be empty")
	}

	whereClause, args := wb.Build()
	if whereClause != "1=1" {
		t.Errorf("Expected '1=1' for empty builder, got %q", whereClause)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestWhereBuilder_Filters(t *testing.T) {
	t.Parallel()

	lo, hi := 100.0, 250.0
	tests := []struct {
		name     string
		build    func(*WhereBuilder)
		expected string
		args     int
	}{
		{
			name:     "both price bounds",
			build:    func(wb *WhereBuilder) { wb.AddPriceRange("p.price", &lo, &hi) },
			expected: "p.price >= ? AND p.price <= ?",
			args:     2,
		},
		{
			name:     "upper bound only",
			build:    func(wb *WhereBuilder) { wb.AddPriceRange("p.price", nil, &hi) },
			expected: "p.price <= ?",
			args:     1,
		},
		{
			name:     "exclusions",
			build:    func(wb *WhereBuilder) { wb.AddNotIn("p.id", []int64{3, 9, 12}) },
			expected: "p.id NOT IN (?, ?, ?)",
			args:     3,
		},
		{
			name:     "empty exclusions",
			build:    func(wb *WhereBuilder) { wb.AddNotIn("p.id", nil) },
			expected: "1=1",
			args:     0,
		},
		{
			name: "chained",
			build: func(wb *WhereBuilder) {
				wb.AddPriceRange("p.price", &lo, nil).AddNotIn("p.id", []int64{1})
			},
			expected: "p.price >= ? AND p.id NOT IN (?)",
			args:     2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			wb := NewWhereBuilder()
			tt.build(wb)
			got, args := wb.Build()
			if got != tt.expected {
				t.Errorf("Build() = %q, want %q", got, tt.expected)
			}
			if len(args) != tt.args {
				t.Errorf("len(args) = %d, want %d", len(args), tt.args)
			}
		})
	}
}

func TestWhereBuilder_BuildWithPrefix(t *testing.T) {
	t.Parallel()

	lo := 5.0
	got, args := NewWhereBuilder().AddPriceRange("price", &lo, nil).BuildWithPrefix()
	if got != "WHERE price >= ?" {
		t.Errorf("BuildWithPrefix() = %q", got)
	}
	if len(args) != 1 || args[0] != 5.0 {
		t.Errorf("args = %v", args)
	}
}

func TestPlaceholders(t *testing.T) {
	t.Parallel()

	for n, want := range map[int]string{0: "", 1: "?", 3: "?, ?, ?"} {
		if got := Placeholders(n); got != want {
			t.Errorf("Placeholders(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestQuoteIdent(t *testing.T) {
	t.Parallel()

	if got := QuoteIdent("age_19_29"); got != `"age_19_29"` {
		t.Errorf("QuoteIdent = %s", got)
	}
	if got := QuoteIdent(`a"b`); got != `"a""b"` {
		t.Errorf("QuoteIdent = %s", got)
	}
}

func TestExpr_ArgsFollowTextOrder(t *testing.T) {
	t.Parallel()

	a := (&Expr{}).Float(2).Raw(" * x")
	b := (&Expr{}).Float(4).Raw(" * y")
	e := (&Expr{}).Raw("(").Join(" + ", []*Expr{a, b}).Raw(") / ").Float(10)

	if got, want := e.SQL(), "(CAST(? AS DOUBLE) * x + CAST(? AS DOUBLE) * y) / CAST(? AS DOUBLE)"; got != want {
		t.Errorf("SQL() = %q, want %q", got, want)
	}
	args := e.Args()
	if len(args) != 3 || args[0] != 2.0 || args[1] != 4.0 || args[2] != 10.0 {
		t.Errorf("Args() = %v", args)
	}
}
