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
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gravitycar/api-core/internal/fieldtypes"
)

// StructuredParser recognizes the JSON-object dialect: a "filter" object
// keyed by field name, a "sort" array with explicit priority, and an
// optional "search" object, alongside either page/pageSize or (taking
// precedence) startRow/endRow pagination.
type StructuredParser struct{}

func (StructuredParser) FormatName() string { return "structured" }

func (StructuredParser) CanHandle(raw RawParams) bool {
	if v, ok := raw["filter"]; ok {
		var m map[string]map[string]json.RawMessage
		if json.Unmarshal([]byte(v), &m) == nil {
			return true
		}
	}
	if v, ok := raw["sort"]; ok {
		var s []structuredSortItem
		if json.Unmarshal([]byte(v), &s) == nil {
			return true
		}
	}
	return false
}

// recognizedStructuredOperators is the fixed operator vocabulary §4.3.3
// accepts as a filter map key; any other key is an "invalid operator" and
// is dropped rather than guessed at.
var recognizedStructuredOperators = map[string]struct{}{
	string(fieldtypes.OpEquals):             {},
	string(fieldtypes.OpNotEquals):          {},
	string(fieldtypes.OpContains):           {},
	string(fieldtypes.OpStartsWith):         {},
	string(fieldtypes.OpEndsWith):           {},
	string(fieldtypes.OpGreaterThan):        {},
	string(fieldtypes.OpGreaterThanOrEqual): {},
	string(fieldtypes.OpLessThan):           {},
	string(fieldtypes.OpLessThanOrEqual):    {},
	string(fieldtypes.OpIn):                 {},
	string(fieldtypes.OpBetween):            {},
	string(fieldtypes.OpIsNull):             {},
	string(fieldtypes.OpIsNotNull):          {},
}

type structuredSortItem struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
	Priority  int    `json:"priority"`
}

type structuredSearch struct {
	Term     string   `json:"term"`
	Fields   []string `json:"fields"`
	Operator string   `json:"operator"`
}

func (StructuredParser) Parse(raw RawParams) ParsedRequest {
	var page, pageSize int
	if v, ok := raw["page"]; ok {
		page, _ = strconv.Atoi(v)
	}
	if v, ok := raw["pageSize"]; ok {
		pageSize, _ = strconv.Atoi(v)
	}
	pageSize, clamped := clampPageSize(pageSize)
	page = clampPage(page)
	offset := (page - 1) * pageSize

	// startRow/endRow, when present, take precedence over page/pageSize.
	if startRaw, ok := raw["startRow"]; ok {
		if endRaw, ok := raw["endRow"]; ok {
			startRow, _ := strconv.Atoi(startRaw)
			endRow, _ := strconv.Atoi(endRaw)
			size := endRow - startRow
			if size < 1 {
				size = 1
			}
			size, clamped = clampPageSize(size)
			pageSize = size
			page = clampPage(startRow/pageSize + 1)
			offset = startRow
		}
	}

	var sorts []Sort
	if v, ok := raw["sort"]; ok {
		var items []structuredSortItem
		if json.Unmarshal([]byte(v), &items) == nil {
			sort.SliceStable(items, func(i, j int) bool { return items[i].Priority < items[j].Priority })
			for _, it := range items {
				field := SanitizeFieldName(it.Field)
				if field == "" {
					continue
				}
				sorts = append(sorts, Sort{Field: field, Direction: NormalizeDirection(it.Direction), Priority: it.Priority})
			}
		}
	}

	var filters []Filter
	if v, ok := raw["filter"]; ok {
		var m map[string]map[string]json.RawMessage
		if json.Unmarshal([]byte(v), &m) == nil {
			fields := make([]string, 0, len(m))
			for f := range m {
				fields = append(fields, f)
			}
			sort.Strings(fields)
			for _, f := range fields {
				field := SanitizeFieldName(f)
				if field == "" {
					continue
				}
				ops := make([]string, 0, len(m[f]))
				for op := range m[f] {
					ops = append(ops, op)
				}
				sort.Strings(ops)
				for _, op := range ops {
					if _, recognized := recognizedStructuredOperators[op]; !recognized {
						continue
					}
					filters = append(filters, Filter{Field: field, Operator: op, Value: decodeStructuredValue(m[f][op], op)})
				}
			}
		}
	}

	search := Search{Operator: SearchContains}
	if v, ok := raw["search"]; ok {
		var s structuredSearch
		if json.Unmarshal([]byte(v), &s) == nil {
			search.Term = s.Term
			search.Fields = s.Fields
			if s.Operator != "" {
				search.Operator = SearchOperator(s.Operator)
			}
		} else {
			search.Term = v
		}
	}

	return ParsedRequest{
		Pagination: Pagination{Page: page, PageSize: pageSize, Offset: offset, Limit: pageSize},
		Sorting:    sorts,
		Filters:    filters,
		Search:     search,
		Meta:       Meta{PageSizeClamped: clamped},
	}
}

// decodeStructuredValue unmarshals a filter's JSON value, splitting it into
// a value list for in/between when the caller supplied a comma-separated
// string (§4.3.3 "in and between split comma-separated strings into value
// lists"); a JSON array is also accepted and coerced to []string for those
// two operators. Every other operator keeps its decoded JSON value as-is.
func decodeStructuredValue(raw json.RawMessage, op string) any {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	if op != string(fieldtypes.OpIn) && op != string(fieldtypes.OpBetween) {
		return v
	}
	switch t := v.(type) {
	case string:
		return splitCSV(t)
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			out = append(out, fmt.Sprintf("%v", item))
		}
		return out
	default:
		return v
	}
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Encode reconstructs structured-dialect raw parameters from a ParsedRequest.
func (StructuredParser) Encode(p ParsedRequest) RawParams {
	out := RawParams{}
	out["page"] = strconv.Itoa(p.Pagination.Page)
	out["pageSize"] = strconv.Itoa(p.Pagination.PageSize)

	if len(p.Sorting) > 0 {
		items := make([]structuredSortItem, 0, len(p.Sorting))
		for _, s := range p.Sorting {
			items = append(items, structuredSortItem{Field: s.Field, Direction: string(s.Direction), Priority: s.Priority})
		}
		if b, err := json.Marshal(items); err == nil {
			out["sort"] = string(b)
		}
	}

	if len(p.Filters) > 0 {
		m := map[string]map[string]any{}
		for _, f := range p.Filters {
			if m[f.Field] == nil {
				m[f.Field] = map[string]any{}
			}
			m[f.Field][f.Operator] = f.Value
		}
		if b, err := json.Marshal(m); err == nil {
			out["filter"] = string(b)
		}
	}

	if p.Search.Term != "" {
		if b, err := json.Marshal(structuredSearch{Term: p.Search.Term, Fields: p.Search.Fields, Operator: string(p.Search.Operator)}); err == nil {
			out["search"] = string(b)
		}
	}
	return out
}
