// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

// Package query provides SQL building helpers for the database package.
// Every value goes through a placeholder; only identifiers chosen by the
// caller from a fixed whitelist are written into the SQL text.
package query

import (
	"strings"
)

// WhereBuilder constructs SQL WHERE clauses with parameterized arguments.
//
//	wb := query.NewWhereBuilder()
//	wb.AddPriceRange("p.price", minBudget, maxBudget)
//	wb.AddNotIn("p.id", shownIDs)
//	whereClause, args := wb.Build()
//	// p.price >= ? AND p.price <= ? AND p.id NOT IN (?, ?)
type WhereBuilder struct {
	clauses []string
	args    []interface{}
}

// NewWhereBuilder creates a new WhereBuilder instance.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{
		clauses: []string{},
		args:    []interface{}{},
	}
}

// AddClause adds a raw condition with its arguments.
func (wb *WhereBuilder) AddClause(clause string, args ...interface{}) *WhereBuilder {
	wb.clauses = append(wb.clauses, clause)
	wb.args = append(wb.args, args...)
	return wb
}

// AddPriceRange adds inclusive lower and upper bounds on column. Nil bounds
// are skipped.
func (wb *WhereBuilder) AddPriceRange(column string, minPrice, maxPrice *float64) *WhereBuilder {
	if minPrice != nil {
		wb.AddClause(column+" >= ?", *minPrice)
	}
	if maxPrice != nil {
		wb.AddClause(column+" <= ?", *maxPrice)
	}
	return wb
}

// AddNotIn excludes the given ids. An empty list adds nothing.
func (wb *WhereBuilder) AddNotIn(column string, ids []int64) *WhereBuilder {
	if len(ids) == 0 {
		return wb
	}
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return wb.AddClause(column+" NOT IN ("+Placeholders(len(ids))+")", args...)
}

// Build joins the clauses with AND. It returns ("1=1", []) when empty.
func (wb *WhereBuilder) Build() (string, []interface{}) {
	if len(wb.clauses) == 0 {
		return "1=1", []interface{}{}
	}
	return strings.Join(wb.clauses, " AND "), wb.args
}

// BuildWithPrefix returns the clause with a "WHERE " prefix.
func (wb *WhereBuilder) BuildWithPrefix() (string, []interface{}) {
	whereClause, args := wb.Build()
	return "WHERE " + whereClause, args
}

// Count returns the number of clauses added to the builder.
func (wb *WhereBuilder) Count() int {
	return len(wb.clauses)
}

// IsEmpty returns true if no clauses have been added.
func (wb *WhereBuilder) IsEmpty() bool {
	return len(wb.clauses) == 0
}

// Placeholders returns n comma-separated question marks.
func Placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}

// QuoteIdent double-quotes a SQL identifier. It is only applied to names
// from a fixed whitelist; embedded quotes are doubled regardless.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// Expr accumulates a SQL expression together with the arguments of its
// placeholders, in textual order.
type Expr struct {
	sb   strings.Builder
	args []interface{}
}

// Raw appends literal SQL text.
func (e *Expr) Raw(s string) *Expr {
	e.sb.WriteString(s)
	return e
}

// Float appends a bound DOUBLE parameter.
func (e *Expr) Float(v float64) *Expr {
	e.sb.WriteString("CAST(? AS DOUBLE)")
	e.args = append(e.args, v)
	return e
}

// Append appends another expression and its arguments.
func (e *Expr) Append(o *Expr) *Expr {
	e.sb.WriteString(o.sb.String())
	e.args = append(e.args, o.args...)
	return e
}

// Join appends parts separated by sep.
func (e *Expr) Join(sep string, parts []*Expr) *Expr {
	for i, p := range parts {
		if i > 0 {
			e.sb.WriteString(sep)
		}
		e.Append(p)
	}
	return e
}

// SQL returns the expression text.
func (e *Expr) SQL() string {
	return e.sb.String()
}

// Args returns the bound arguments.
func (e *Expr) Args() []interface{} {
	return e.args
}
