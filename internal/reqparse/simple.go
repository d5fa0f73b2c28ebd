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
	"sort"
	"strconv"
	"strings"
)

// SimpleParser is the always-applicable fallback dialect (§4.3.4): flat
// page/pageSize/sort/sortBy+sortOrder/search/search_fields keys, with any
// unrecognized key treated as an equals filter on that field.
type SimpleParser struct{}

func (SimpleParser) FormatName() string { return "simple" }

// CanHandle always returns true; SimpleParser is the terminal fallback in
// the dispatch chain.
func (SimpleParser) CanHandle(raw RawParams) bool { return true }

// reservedKeys are consumed by simple's own pagination/sort/search handling,
// belong to another dialect, or control response formatting — the union
// §4.3.4 specifies — and must never be inferred as equals filters.
var reservedKeys = map[string]struct{}{
	"page": {}, "pageSize": {}, "per_page": {}, "sort": {}, "sortBy": {}, "sortOrder": {},
	"search": {}, "q": {}, "search_fields": {}, "startRow": {}, "endRow": {},
	"filter": {}, "filterModel": {}, "sortModel": {}, "globalFilter": {},
	"include_total": {}, "include_available_filters": {}, "responseFormat": {}, "format": {},
}

func (SimpleParser) Parse(raw RawParams) ParsedRequest {
	page := 1
	if v, ok := raw["page"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			page = n
		}
	}
	pageSize := DefaultPageSize
	if v, ok := raw["pageSize"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			pageSize = n
		}
	} else if v, ok := raw["per_page"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			pageSize = n
		}
	}
	pageSize, clamped := clampPageSize(pageSize)
	page = clampPage(page)

	var sorts []Sort
	if v, ok := raw["sort"]; ok && v != "" {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			field := part
			dir := Asc
			if idx := strings.Index(part, ":"); idx >= 0 {
				field = part[:idx]
				dir = NormalizeDirection(part[idx+1:])
			}
			field = SanitizeFieldName(field)
			if field == "" {
				continue
			}
			sorts = append(sorts, Sort{Field: field, Direction: dir})
		}
	} else if v, ok := raw["sortBy"]; ok && v != "" {
		field := SanitizeFieldName(v)
		if field != "" {
			sorts = append(sorts, Sort{Field: field, Direction: NormalizeDirection(raw["sortOrder"])})
		}
	}

	var fields []string
	for k := range raw {
		if _, reserved := reservedKeys[k]; reserved {
			continue
		}
		fields = append(fields, k)
	}
	sort.Strings(fields)
	var filters []Filter
	for _, k := range fields {
		v := raw[k]
		if v == "" {
			continue
		}
		filters = append(filters, Filter{Field: SanitizeFieldName(k), Operator: "equals", Value: v})
	}

	term := raw["search"]
	if term == "" {
		term = raw["q"]
	}
	search := Search{Term: term, Operator: SearchContains}
	if v, ok := raw["search_fields"]; ok && v != "" {
		for _, f := range strings.Split(v, ",") {
			f = SanitizeFieldName(strings.TrimSpace(f))
			if f != "" {
				search.Fields = append(search.Fields, f)
			}
		}
	}

	return ParsedRequest{
		Pagination: Pagination{Page: page, PageSize: pageSize, Offset: (page - 1) * pageSize, Limit: pageSize},
		Sorting:    sorts,
		Filters:    filters,
		Search:     search,
		Meta:       Meta{PageSizeClamped: clamped},
	}
}

// Encode reconstructs simple-dialect raw parameters from a ParsedRequest.
func (SimpleParser) Encode(p ParsedRequest) RawParams {
	out := RawParams{}
	out["page"] = strconv.Itoa(p.Pagination.Page)
	out["pageSize"] = strconv.Itoa(p.Pagination.PageSize)

	if len(p.Sorting) > 0 {
		parts := make([]string, 0, len(p.Sorting))
		for _, s := range p.Sorting {
			if s.Direction == Desc {
				parts = append(parts, s.Field+":desc")
			} else {
				parts = append(parts, s.Field)
			}
		}
		out["sort"] = strings.Join(parts, ",")
	}

	for _, f := range p.Filters {
		if v, ok := f.Value.(string); ok {
			out[f.Field] = v
		}
	}

	if p.Search.Term != "" {
		out["search"] = p.Search.Term
	}
	if len(p.Search.Fields) > 0 {
		out["search_fields"] = strings.Join(p.Search.Fields, ",")
	}
	return out
}
