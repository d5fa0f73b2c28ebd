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

// Package reqparse implements the format-specific request parsers (§4.3):
// detection and normalization of AG-Grid, MUI DataGrid, structured, and
// simple query-parameter dialects into the unified ParsedRequest shape,
// plus the priority-ordered dispatcher.
package reqparse

import "regexp"

// DefaultPageSize and MaxPageSize are the pagination defaults shared by
// every parser (§4.3 "constants").
const (
	DefaultPageSize = 20
	MaxPageSize     = 1000
)

// RawParams is the raw, string-valued request parameter map a parser
// inspects. Values are strings as they arrive from query-string decoding;
// JSON-encoded values (sortModel, filterModel, filter maps) are carried as
// their JSON-source strings.
type RawParams map[string]string

var fieldNameAllowed = regexp.MustCompile(`[^A-Za-z0-9_.]`)

// SanitizeFieldName keeps only [A-Za-z0-9_.] characters, dropping everything
// else including spaces. Applied at the moment of emission, never at
// read-time (§4.3.6).
func SanitizeFieldName(name string) string {
	return fieldNameAllowed.ReplaceAllString(name, "")
}

// Pagination is the unified pagination sub-record.
type Pagination struct {
	Page     int
	PageSize int
	Offset   int
	Limit    int
}

// SortDirection is either "asc" or "desc".
type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// NormalizeDirection lowercases dir and defaults unknown values to asc.
func NormalizeDirection(dir string) SortDirection {
	switch SortDirection(toLower(dir)) {
	case Desc:
		return Desc
	default:
		return Asc
	}
}

func toLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// Sort is one entry in the unified sorting sequence.
type Sort struct {
	Field     string
	Direction SortDirection
	Priority  int // explicit ordering priority; 0 means "use slice order"
}

// Filter is one entry in the unified filters sequence. Value holds a
// scalar, a []string (for in/between), or nil (for isNull/isNotNull).
type Filter struct {
	Field    string
	Operator string
	Value    any
	// FieldType is populated by the filter validator (§4.4) once the filter
	// is confirmed against model metadata; empty until then.
	FieldType string
}

// SearchOperator constrains how Search.Term is matched against Search.Fields.
type SearchOperator string

const (
	SearchContains   SearchOperator = "contains"
	SearchStartsWith SearchOperator = "startsWith"
	SearchEndsWith   SearchOperator = "endsWith"
	SearchEquals     SearchOperator = "equals"
)

// Search is the unified search sub-record.
type Search struct {
	Term     string
	Fields   []string
	Operator SearchOperator
}

// Meta carries provenance about how a request was parsed.
type Meta struct {
	DetectedFormat     string
	SourceParser       string
	OriginalParamCount int
	// PageSizeClamped is true when clampPageSize reduced the caller's
	// requested page size down to MaxPageSize (§4.3.6), as opposed to the
	// caller legitimately asking for exactly MaxPageSize.
	PageSizeClamped bool
}

// ParsedRequest is the canonical, dialect-independent request shape every
// handler consumes (§3 "ParsedRequest (unified)").
type ParsedRequest struct {
	Pagination Pagination
	Sorting    []Sort
	Filters    []Filter
	Search     Search
	Meta       Meta
}

// clampPageSize applies the §4.3.6 common constraints to a raw page size,
// returning the clamped value and whether a clamp-to-max warning should be
// logged by the caller.
func clampPageSize(size int) (clamped int, warn bool) {
	if size <= 0 {
		return DefaultPageSize, false
	}
	if size > MaxPageSize {
		return MaxPageSize, true
	}
	return size, false
}

func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
