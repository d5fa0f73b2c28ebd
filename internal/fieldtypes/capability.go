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

// Package fieldtypes holds the central, data-driven field-capability table
// (Design Note "Field-capability table"): per field-type tag, which filter
// and search operators apply, and whether the type is searchable by
// default. Both the filter/search validators and the OpenAPI emitter
// consume this table; neither hardcodes per-type switch statements.
package fieldtypes

// Tag identifies a model field's type.
type Tag string

const (
	Text     Tag = "Text"
	BigText  Tag = "BigText"
	Integer  Tag = "Integer"
	Float    Tag = "Float"
	Date     Tag = "Date"
	DateTime Tag = "DateTime"
	Enum     Tag = "Enum"
	Email    Tag = "Email"
	Password Tag = "Password"
	ID       Tag = "ID"
	Image    Tag = "Image"
	Boolean  Tag = "Boolean"
)

// Operator is a filter or search operator name.
type Operator string

const (
	OpEquals             Operator = "equals"
	OpNotEquals          Operator = "notEquals"
	OpContains           Operator = "contains"
	OpStartsWith         Operator = "startsWith"
	OpEndsWith           Operator = "endsWith"
	OpGreaterThan        Operator = "greaterThan"
	OpGreaterThanOrEqual Operator = "greaterThanOrEqual"
	OpLessThan           Operator = "lessThan"
	OpLessThanOrEqual    Operator = "lessThanOrEqual"
	OpIn                 Operator = "in"
	OpBetween            Operator = "between"
	OpIsNull             Operator = "isNull"
	OpIsNotNull          Operator = "isNotNull"
)

// Capability describes what a field type supports.
type Capability struct {
	FilterOperators     map[Operator]struct{}
	SearchOperators     map[Operator]struct{}
	DefaultlySearchable bool
	Description         string
}

func ops(os ...Operator) map[Operator]struct{} {
	m := make(map[Operator]struct{}, len(os))
	for _, o := range os {
		m[o] = struct{}{}
	}
	return m
}

// table is the central capability registry, keyed by type tag. Password
// fields carry no operators at all (§4.4: "never participate in filtering
// or search"); Image fields are filterable by identity but excluded from
// search (§4.5: "not Password/Image").
var table = map[Tag]Capability{
	Text: {
		FilterOperators: ops(OpEquals, OpNotEquals, OpContains, OpStartsWith, OpEndsWith, OpIn, OpIsNull, OpIsNotNull),
		SearchOperators: ops(OpContains, OpStartsWith, OpEndsWith, OpEquals),
		DefaultlySearchable: true,
		Description:     "short text",
	},
	BigText: {
		FilterOperators: ops(OpContains, OpIsNull, OpIsNotNull),
		SearchOperators: ops(OpContains),
		DefaultlySearchable: true,
		Description:     "long free-form text",
	},
	Integer: {
		FilterOperators: ops(OpEquals, OpNotEquals, OpGreaterThan, OpGreaterThanOrEqual, OpLessThan, OpLessThanOrEqual, OpIn, OpBetween, OpIsNull, OpIsNotNull),
		SearchOperators: map[Operator]struct{}{},
		Description:     "whole number",
	},
	Float: {
		FilterOperators: ops(OpEquals, OpNotEquals, OpGreaterThan, OpGreaterThanOrEqual, OpLessThan, OpLessThanOrEqual, OpBetween, OpIsNull, OpIsNotNull),
		SearchOperators: map[Operator]struct{}{},
		Description:     "floating-point number",
	},
	Date: {
		FilterOperators: ops(OpEquals, OpNotEquals, OpGreaterThan, OpGreaterThanOrEqual, OpLessThan, OpLessThanOrEqual, OpBetween, OpIsNull, OpIsNotNull),
		SearchOperators: map[Operator]struct{}{},
		Description:     "calendar date",
	},
	DateTime: {
		FilterOperators: ops(OpEquals, OpNotEquals, OpGreaterThan, OpGreaterThanOrEqual, OpLessThan, OpLessThanOrEqual, OpBetween, OpIsNull, OpIsNotNull),
		SearchOperators: map[Operator]struct{}{},
		Description:     "date and time",
	},
	Enum: {
		FilterOperators: ops(OpEquals, OpNotEquals, OpIn, OpIsNull, OpIsNotNull),
		SearchOperators: map[Operator]struct{}{},
		Description:     "fixed set of options",
	},
	Email: {
		FilterOperators: ops(OpEquals, OpNotEquals, OpContains, OpStartsWith, OpEndsWith, OpIsNull, OpIsNotNull),
		SearchOperators: ops(OpContains, OpEquals),
		DefaultlySearchable: true,
		Description:     "email address",
	},
	Password: {
		FilterOperators: map[Operator]struct{}{},
		SearchOperators: map[Operator]struct{}{},
		Description:     "secret credential, never filterable or searchable",
	},
	ID: {
		FilterOperators: ops(OpEquals, OpNotEquals, OpIn, OpIsNull, OpIsNotNull),
		SearchOperators: map[Operator]struct{}{},
		Description:     "primary/foreign key",
	},
	Image: {
		FilterOperators: ops(OpEquals, OpIsNull, OpIsNotNull),
		SearchOperators: map[Operator]struct{}{},
		Description:     "binary image reference, excluded from search",
	},
	Boolean: {
		FilterOperators: ops(OpEquals, OpNotEquals, OpIsNull, OpIsNotNull),
		SearchOperators: map[Operator]struct{}{},
		Description:     "true/false flag",
	},
}

// For returns the Capability for a type tag. Unknown tags return the zero
// value (no supported operators), which validators treat as "reject".
func For(tag Tag) (Capability, bool) {
	c, ok := table[tag]
	return c, ok
}

// SupportsFilter reports whether tag supports op as a filter operator.
func SupportsFilter(tag Tag, op Operator) bool {
	c, ok := table[tag]
	if !ok {
		return false
	}
	_, ok = c.FilterOperators[op]
	return ok
}

// SupportsSearch reports whether tag supports op as a search operator.
func SupportsSearch(tag Tag, op Operator) bool {
	c, ok := table[tag]
	if !ok {
		return false
	}
	_, ok = c.SearchOperators[op]
	return ok
}

// IsSearchableType reports whether fields of this type ever participate in
// full-text-style search (Password and Image never do).
func IsSearchableType(tag Tag) bool {
	if tag == Password || tag == Image {
		return false
	}
	c, ok := table[tag]
	if !ok {
		return false
	}
	return c.DefaultlySearchable || len(c.SearchOperators) > 0
}
