/*******************************************************************************
* Copyright (C) 2026 the Eclipse BaSyx Authors and Fraunhofer IESE
*
* Permission is hereby granted, free of charge, to any person obtaining
* a copy of this software and associated documentation files (the
* "Software"), to deal in the Software without restriction, including
* without limitation the rights to use, copy, modify, merge, publish,
* distribute, sublicense, and/or sell copies of the Software, and to
* permit persons to whom the Software is furnished to do so, subject to
* the following conditions:
*
* The above copyright notice and this permission notice shall be
* included in all copies or substantial portions of the Software.
*
* THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
* EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
* MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
* NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT HOLDERS BE
* LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER IN AN ACTION
* OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN CONNECTION
* WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*
* SPDX-License-Identifier: MIT
******************************************************************************/

// Package querybuilder provides a tiny, ORM-less SQL builder for the
// model-backed Postgres storage layer. It focuses on explicit, predictable
// SQL generation with parameter placeholders ($1, $2, ...) and accumulated
// args: readable builder API, deterministic output, no reflection.
package querybuilder

import (
	"fmt"
	"strings"

	"github.com/gravitycar/api-core/internal/fieldtypes"
	"github.com/gravitycar/api-core/internal/reqparse"
)

// SelectBuilder builds SELECT statements with a fluent API.
type SelectBuilder struct {
	columns []string
	table   string
	wheres  []string
	orderBy []string
	limit   *int
	offset  *int
	args    []interface{}
}

// NewSelect creates a new SelectBuilder over the given columns. Empty
// columns means "SELECT *".
func NewSelect(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: dedupe(columns)}
}

// From sets the base table for the query.
func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

// Where adds a WHERE predicate with $-placeholders; values are appended to
// args in call order.
func (b *SelectBuilder) Where(predicate string, values ...interface{}) *SelectBuilder {
	b.wheres = append(b.wheres, predicate)
	b.args = append(b.args, values...)
	return b
}

// OrderBy adds an ORDER BY expression.
func (b *SelectBuilder) OrderBy(expr string) *SelectBuilder {
	b.orderBy = append(b.orderBy, expr)
	return b
}

// Limit sets a LIMIT.
func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	b.limit = &n
	return b
}

// Offset sets an OFFSET.
func (b *SelectBuilder) Offset(n int) *SelectBuilder {
	b.offset = &n
	return b
}

// Args returns the accumulated argument values in placeholder order.
func (b *SelectBuilder) Args() []interface{} { return b.args }

// Build assembles the final SQL string with $N placeholders and the
// accumulated argument slice, in the order Postgres expects.
func (b *SelectBuilder) Build() (string, []interface{}) {
	if b.table == "" {
		panic("querybuilder: From(table) must be specified before Build()")
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	if len(b.columns) == 0 {
		sb.WriteString("*")
	} else {
		sb.WriteString(strings.Join(b.columns, ", "))
	}
	sb.WriteString(" FROM ")
	sb.WriteString(b.table)

	if len(b.wheres) > 0 {
		sb.WriteString("\nWHERE ")
		sb.WriteString(strings.Join(b.wheres, " AND "))
	}
	if len(b.orderBy) > 0 {
		sb.WriteString("\nORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, ", "))
	}
	if b.limit != nil {
		sb.WriteString(fmt.Sprintf("\nLIMIT %d", *b.limit))
	}
	if b.offset != nil {
		sb.WriteString(fmt.Sprintf("\nOFFSET %d", *b.offset))
	}

	return sb.String(), append([]interface{}(nil), b.args...)
}

// operatorSQL maps a unified filter operator to a predicate template with a
// single %s column placeholder; "?" stands in for the eventual $N argument
// placeholder inserted by ApplyFilter.
var operatorSQL = map[string]string{
	string(fieldtypes.OpEquals):             "%s = ?",
	string(fieldtypes.OpNotEquals):          "%s != ?",
	string(fieldtypes.OpContains):           "%s ILIKE ?",
	string(fieldtypes.OpStartsWith):         "%s ILIKE ?",
	string(fieldtypes.OpEndsWith):           "%s ILIKE ?",
	string(fieldtypes.OpGreaterThan):        "%s > ?",
	string(fieldtypes.OpGreaterThanOrEqual): "%s >= ?",
	string(fieldtypes.OpLessThan):           "%s < ?",
	string(fieldtypes.OpLessThanOrEqual):    "%s <= ?",
	string(fieldtypes.OpIsNull):             "%s IS NULL",
	string(fieldtypes.OpIsNotNull):          "%s IS NOT NULL",
}

// ApplyFilter appends one unified Filter as a WHERE predicate. Filters must
// already be validated against model metadata (internal/validate) before
// reaching here; ApplyFilter trusts Field and Operator and only guards
// against operators it does not recognize, which it silently skips rather
// than emit unsafe SQL.
func (b *SelectBuilder) ApplyFilter(f reqparse.Filter) *SelectBuilder {
	switch f.Operator {
	case string(fieldtypes.OpIn):
		return b.whereIn(f.Field, f.Value)
	case string(fieldtypes.OpBetween):
		return b.whereBetween(f.Field, f.Value)
	case string(fieldtypes.OpIsNull), string(fieldtypes.OpIsNotNull):
		b.wheres = append(b.wheres, fmt.Sprintf(operatorSQL[f.Operator], f.Field))
		return b
	}

	template, ok := operatorSQL[f.Operator]
	if !ok {
		return b
	}
	value := f.Value
	switch f.Operator {
	case string(fieldtypes.OpContains):
		value = "%" + fmt.Sprint(f.Value) + "%"
	case string(fieldtypes.OpStartsWith):
		value = fmt.Sprint(f.Value) + "%"
	case string(fieldtypes.OpEndsWith):
		value = "%" + fmt.Sprint(f.Value)
	}
	placeholder := fmt.Sprintf("$%d", len(b.args)+1)
	predicate := strings.Replace(fmt.Sprintf(template, f.Field), "?", placeholder, 1)
	b.wheres = append(b.wheres, predicate)
	b.args = append(b.args, value)
	return b
}

func (b *SelectBuilder) whereIn(column string, value interface{}) *SelectBuilder {
	values, ok := value.([]string)
	if !ok {
		if s, ok := value.(string); ok {
			values = []string{s}
		}
	}
	if len(values) == 0 {
		b.wheres = append(b.wheres, "1=0")
		return b
	}
	start := len(b.args) + 1
	ph := make([]string, len(values))
	for i := range values {
		ph[i] = fmt.Sprintf("$%d", start+i)
	}
	b.wheres = append(b.wheres, fmt.Sprintf("%s IN (%s)", column, strings.Join(ph, ", ")))
	for _, v := range values {
		b.args = append(b.args, v)
	}
	return b
}

func (b *SelectBuilder) whereBetween(column string, value interface{}) *SelectBuilder {
	values, ok := value.([]string)
	if !ok || len(values) != 2 {
		return b
	}
	start := len(b.args) + 1
	b.wheres = append(b.wheres, fmt.Sprintf("%s BETWEEN $%d AND $%d", column, start, start+1))
	b.args = append(b.args, values[0], values[1])
	return b
}

// ApplySort appends one unified Sort as an ORDER BY term.
func (b *SelectBuilder) ApplySort(s reqparse.Sort) *SelectBuilder {
	dir := "ASC"
	if s.Direction == reqparse.Desc {
		dir = "DESC"
	}
	return b.OrderBy(fmt.Sprintf("%s %s", s.Field, dir))
}

// ApplySearch OR-combines an ILIKE predicate per search field; a no-op when
// the search has no term or no fields (the validator clears both together).
func (b *SelectBuilder) ApplySearch(s reqparse.Search) *SelectBuilder {
	if s.Term == "" || len(s.Fields) == 0 {
		return b
	}
	var clauses []string
	pattern := searchPattern(s)
	for _, field := range s.Fields {
		placeholder := fmt.Sprintf("$%d", len(b.args)+1)
		clauses = append(clauses, fmt.Sprintf("%s ILIKE %s", field, placeholder))
		b.args = append(b.args, pattern)
	}
	b.wheres = append(b.wheres, "("+strings.Join(clauses, " OR ")+")")
	return b
}

func searchPattern(s reqparse.Search) string {
	switch s.Operator {
	case reqparse.SearchStartsWith:
		return s.Term + "%"
	case reqparse.SearchEndsWith:
		return "%" + s.Term
	case reqparse.SearchEquals:
		return s.Term
	default:
		return "%" + s.Term + "%"
	}
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
