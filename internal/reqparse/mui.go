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
	"sort"
	"strconv"
)

// MUIParser recognizes the MUI X DataGrid dialect: JSON-encoded filterModel
// and sortModel query parameters, with 0-based page numbering.
type MUIParser struct{}

func (MUIParser) FormatName() string { return "mui" }

func (MUIParser) CanHandle(raw RawParams) bool {
	_, hasFilterModel := raw["filterModel"]
	_, hasSortModel := raw["sortModel"]
	return hasFilterModel || hasSortModel
}

type muiFilterItem struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

type muiFilterModel struct {
	Items         []muiFilterItem `json:"items"`
	LogicOperator string          `json:"logicOperator"`
}

type muiSortItem struct {
	Field string `json:"field"`
	Sort  string `json:"sort"`
}

// muiOperatorMap translates MUI's string/number/date operator vocabulary
// into the unified operator set.
var muiOperatorMap = map[string]string{
	"contains":    "contains",
	"equals":      "equals",
	"startsWith":  "startsWith",
	"endsWith":    "endsWith",
	"isEmpty":     "isNull",
	"isNotEmpty":  "isNotNull",
	"isAnyOf":     "in",
	"=":           "equals",
	"!=":          "notEquals",
	">":           "greaterThan",
	">=":          "greaterThanOrEqual",
	"<":           "lessThan",
	"<=":          "lessThanOrEqual",
	"is":          "equals",
	"not":         "notEquals",
	"after":       "greaterThan",
	"onOrAfter":   "greaterThanOrEqual",
	"before":      "lessThan",
	"onOrBefore":  "lessThanOrEqual",
}

func (MUIParser) Parse(raw RawParams) ParsedRequest {
	page := 0
	if v, ok := raw["page"]; ok {
		page, _ = strconv.Atoi(v)
	}
	pageSize := DefaultPageSize
	if v, ok := raw["pageSize"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			pageSize = n
		}
	}
	pageSize, clamped := clampPageSize(pageSize)
	internalPage := clampPage(page + 1)

	var sorts []Sort
	if raw["sortModel"] != "" {
		var items []muiSortItem
		if err := json.Unmarshal([]byte(raw["sortModel"]), &items); err == nil {
			for _, it := range items {
				field := SanitizeFieldName(it.Field)
				if field == "" {
					continue
				}
				sorts = append(sorts, Sort{Field: field, Direction: NormalizeDirection(it.Sort)})
			}
		}
	}

	var filters []Filter
	if raw["filterModel"] != "" {
		var top map[string]json.RawMessage
		if err := json.Unmarshal([]byte(raw["filterModel"]), &top); err == nil {
			if itemsRaw, hasItems := top["items"]; hasItems {
				// shape (a): {items: [{field, operator, value}, ...]}
				var items []muiFilterItem
				if json.Unmarshal(itemsRaw, &items) == nil {
					for _, it := range items {
						field := SanitizeFieldName(it.Field)
						if field == "" {
							continue
						}
						op, ok := muiOperatorMap[it.Operator]
						if !ok {
							op = "equals"
						}
						if op != "isNull" && op != "isNotNull" {
							if it.Value == nil || it.Value == "" {
								continue
							}
						}
						filters = append(filters, Filter{Field: field, Operator: op, Value: it.Value})
					}
				}
			} else {
				// shape (b) (§4.3.2): a flat field->value object expands to
				// one equals filter per key.
				fields := make([]string, 0, len(top))
				for f := range top {
					fields = append(fields, f)
				}
				sort.Strings(fields)
				for _, f := range fields {
					field := SanitizeFieldName(f)
					if field == "" {
						continue
					}
					var v any
					if json.Unmarshal(top[f], &v) != nil {
						continue
					}
					if v == nil || v == "" {
						continue
					}
					filters = append(filters, Filter{Field: field, Operator: "equals", Value: v})
				}
			}
		}
	}

	term := raw["search"]
	if term == "" {
		term = raw["q"]
	}

	return ParsedRequest{
		Pagination: Pagination{Page: internalPage, PageSize: pageSize, Offset: (internalPage - 1) * pageSize, Limit: pageSize},
		Sorting:    sorts,
		Filters:    filters,
		Search:     Search{Term: term, Operator: SearchContains},
		Meta:       Meta{PageSizeClamped: clamped},
	}
}

// Encode reconstructs MUI-shaped raw parameters from a ParsedRequest.
func (MUIParser) Encode(p ParsedRequest) RawParams {
	out := RawParams{}
	out["page"] = strconv.Itoa(p.Pagination.Page - 1)
	out["pageSize"] = strconv.Itoa(p.Pagination.PageSize)

	if len(p.Sorting) > 0 {
		items := make([]muiSortItem, 0, len(p.Sorting))
		for _, s := range p.Sorting {
			items = append(items, muiSortItem{Field: s.Field, Sort: string(s.Direction)})
		}
		if b, err := json.Marshal(items); err == nil {
			out["sortModel"] = string(b)
		}
	}

	if len(p.Filters) > 0 {
		items := make([]muiFilterItem, 0, len(p.Filters))
		for _, f := range p.Filters {
			op := f.Operator
			for muiOp, unified := range muiOperatorMap {
				if unified == f.Operator {
					op = muiOp
					break
				}
			}
			items = append(items, muiFilterItem{Field: f.Field, Operator: op, Value: f.Value})
		}
		if b, err := json.Marshal(muiFilterModel{Items: items}); err == nil {
			out["filterModel"] = string(b)
		}
	}

	if p.Search.Term != "" {
		out["search"] = p.Search.Term
	}
	return out
}
