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

package reqparse

import (
	"regexp"
	"sort"
	"strconv"
)

// AGGridParser recognizes the ag-grid server-side row model dialect
// (startRow/endRow pagination, sort[i][...] and filters[field][...]
// array-of-object query encoding).
type AGGridParser struct{}

func (AGGridParser) FormatName() string { return "ag-grid" }

func (AGGridParser) CanHandle(raw RawParams) bool {
	_, hasStart := raw["startRow"]
	_, hasEnd := raw["endRow"]
	return hasStart && hasEnd
}

var agSortKey = regexp.MustCompile(`^sort\[(\d+)\]\[(colId|sort)\]$`)
var agFilterKey = regexp.MustCompile(`^filters\[([^\]]+)\]\[(type|filter)\]$`)

// agOperatorMap translates ag-grid filter "type" values to unified
// operators; unrecognized types default to equals.
var agOperatorMap = map[string]string{
	"equals":             "equals",
	"notEqual":           "notEquals",
	"contains":           "contains",
	"notContains":        "notEquals",
	"startsWith":         "startsWith",
	"endsWith":           "endsWith",
	"lessThan":           "lessThan",
	"lessThanOrEqual":    "lessThanOrEqual",
	"greaterThan":        "greaterThan",
	"greaterThanOrEqual": "greaterThanOrEqual",
	"inRange":            "between",
	"blank":              "isNull",
	"notBlank":           "isNotNull",
}

func (AGGridParser) Parse(raw RawParams) ParsedRequest {
	startRow, _ := strconv.Atoi(raw["startRow"])
	endRow, _ := strconv.Atoi(raw["endRow"])
	pageSize := endRow - startRow
	if pageSize < 1 {
		pageSize = 1
	}
	pageSize, clamped := clampPageSize(pageSize)
	page := startRow/pageSize + 1
	page = clampPage(page)

	type sortEntry struct {
		idx   int
		field string
		dir   SortDirection
	}
	sortsByIdx := map[int]*sortEntry{}
	filterTypes := map[string]string{}
	filterValues := map[string]string{}

	for k, v := range raw {
		if m := agSortKey.FindStringSubmatch(k); m != nil {
			idx, _ := strconv.Atoi(m[1])
			e := sortsByIdx[idx]
			if e == nil {
				e = &sortEntry{idx: idx, dir: Asc}
				sortsByIdx[idx] = e
			}
			if m[2] == "colId" {
				e.field = v
			} else {
				e.dir = NormalizeDirection(v)
			}
			continue
		}
		if m := agFilterKey.FindStringSubmatch(k); m != nil {
			field := m[1]
			if m[2] == "type" {
				filterTypes[field] = v
			} else {
				filterValues[field] = v
			}
		}
	}

	var indices []int
	for idx := range sortsByIdx {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	var sorts []Sort
	for _, idx := range indices {
		e := sortsByIdx[idx]
		field := SanitizeFieldName(e.field)
		if field == "" {
			continue
		}
		sorts = append(sorts, Sort{Field: field, Direction: e.dir})
	}

	var filters []Filter
	var filterFields []string
	for field := range filterValues {
		filterFields = append(filterFields, field)
	}
	sort.Strings(filterFields)
	for _, field := range filterFields {
		value := filterValues[field]
		if value == "" {
			continue
		}
		opType := filterTypes[field]
		op, ok := agOperatorMap[opType]
		if !ok {
			op = "equals"
		}
		filters = append(filters, Filter{Field: SanitizeFieldName(field), Operator: op, Value: value})
	}

	term := raw["search"]
	if term == "" {
		term = raw["globalFilter"]
	}

	return ParsedRequest{
		Pagination: Pagination{Page: page, PageSize: pageSize, Offset: (page - 1) * pageSize, Limit: pageSize},
		Sorting:    sorts,
		Filters:    filters,
		Search:     Search{Term: term, Operator: SearchContains},
		Meta:       Meta{PageSizeClamped: clamped},
	}
}

// Encode reconstructs ag-grid-shaped raw parameters from a ParsedRequest,
// used by parser round-trip tests (§8).
func (AGGridParser) Encode(p ParsedRequest) RawParams {
	out := RawParams{}
	start := p.Pagination.Offset
	end := start + p.Pagination.PageSize
	out["startRow"] = strconv.Itoa(start)
	out["endRow"] = strconv.Itoa(end)
	for i, s := range p.Sorting {
		out["sort["+strconv.Itoa(i)+"][colId]"] = s.Field
		out["sort["+strconv.Itoa(i)+"][sort]"] = string(s.Direction)
	}
	for _, f := range p.Filters {
		out["filters["+f.Field+"][type]"] = f.Operator
		if v, ok := f.Value.(string); ok {
			out["filters["+f.Field+"][filter]"] = v
		}
	}
	if p.Search.Term != "" {
		out["search"] = p.Search.Term
	}
	return out
}
