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

// Package respond implements the response formatter (§4.9): re-shaping a
// handler's result and the request's unified metadata into the dialect the
// caller's parameters asked for. Every dialect is total over well-formed
// input; an unrecognized dialect name falls back to standard.
package respond

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/gravitycar/api-core/internal/reqparse"
)

// Dialect names the output shape a client asked for, derived from
// ParsedRequest.Meta.DetectedFormat plus any explicit override.
type Dialect string

const (
	Standard       Dialect = "standard"
	AGGrid         Dialect = "ag-grid"
	MUI            Dialect = "mui"
	TanStack       Dialect = "tanstack"
	SWR            Dialect = "swr"
	InfiniteScroll Dialect = "infinite-scroll"
	Cursor         Dialect = "cursor"
)

// dialectAliases maps a detected parser format name to its default output
// dialect; a handler or route may still override this explicitly.
var dialectAliases = map[string]Dialect{
	"ag-grid":    AGGrid,
	"mui":        MUI,
	"structured": Standard,
	"simple":     Standard,
}

// DialectFor resolves a ParsedRequest's detected format to a default output
// dialect, per §8 "Response formatter totality": unrecognized ⇒ standard.
func DialectFor(detectedFormat string) Dialect {
	if d, ok := dialectAliases[detectedFormat]; ok {
		return d
	}
	return Standard
}

// dialectNames maps every spelling a caller may pass in responseFormat/
// format to its Dialect, including the tanstack-query/react-query alias and
// the mui-datagrid long form §4.9 names.
var dialectNames = map[string]Dialect{
	"standard":        Standard,
	"ag-grid":         AGGrid,
	"aggrid":          AGGrid,
	"mui":             MUI,
	"mui-datagrid":    MUI,
	"tanstack-query":  TanStack,
	"tanstack":        TanStack,
	"react-query":     TanStack,
	"swr":             SWR,
	"infinite-scroll": InfiniteScroll,
	"infinite":        InfiniteScroll,
	"cursor":          Cursor,
}

// ResolveDialect implements §4.9's selection order: the caller's explicit
// responseFormat/format parameter wins when it names a recognized dialect;
// otherwise the dialect falls back to the one implied by the inbound
// parser's detected format, and finally to Standard.
func ResolveDialect(explicit string, detectedFormat string) Dialect {
	if d, ok := dialectNames[strings.ToLower(strings.TrimSpace(explicit))]; ok {
		return d
	}
	return DialectFor(detectedFormat)
}

// metaBlock is the shared {pagination,filters,sorting,search} description
// embedded verbatim or by reference across several dialects.
type metaBlock struct {
	Pagination reqparse.Pagination `json:"pagination"`
	Filters    []reqparse.Filter   `json:"filters"`
	Sorting    []reqparse.Sort     `json:"sorting"`
	Search     reqparse.Search     `json:"search"`
}

func buildMeta(p reqparse.ParsedRequest) metaBlock {
	return metaBlock{Pagination: p.Pagination, Filters: p.Filters, Sorting: p.Sorting, Search: p.Search}
}

// Format serializes data (expected to be a slice, but any JSON-marshalable
// value is accepted) into the shape dialect names, using p for pagination
// and query context. now is the response timestamp, supplied by the caller
// so formatting stays deterministic and testable. An unrecognized dialect
// falls back to Standard.
func Format(dialect Dialect, data any, p reqparse.ParsedRequest, now time.Time) map[string]any {
	switch dialect {
	case AGGrid:
		return formatAGGrid(data, p)
	case MUI:
		return formatMUI(data, p)
	case TanStack:
		return formatTanStack(data, p, now)
	case SWR:
		return formatSWR(data, p, now)
	case InfiniteScroll:
		return formatInfiniteScroll(data, p)
	case Cursor:
		return formatCursor(data, p)
	default:
		return formatStandard(data, p)
	}
}

func dataLen(data any) int {
	v, ok := data.([]any)
	if ok {
		return len(v)
	}
	if s, ok := asSlice(data); ok {
		return s
	}
	return 0
}

// asSlice best-efforts a length for typed slices passed by handlers
// (e.g. []User) using JSON round-tripping, since Go generics can't express
// "any slice type" without reflection; reflection is avoided here in favor
// of the same JSON marshal step the transport applies when writing the body.
func asSlice(data any) (int, bool) {
	b, err := json.Marshal(data)
	if err != nil {
		return 0, false
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return 0, false
	}
	return len(raw), true
}

func formatStandard(data any, p reqparse.ParsedRequest) map[string]any {
	return map[string]any{
		"success":    true,
		"data":       data,
		"meta":       buildMeta(p),
		"pagination": p.Pagination,
	}
}

func formatAGGrid(data any, p reqparse.ParsedRequest) map[string]any {
	n := dataLen(data)
	var lastRow any
	if n < p.Pagination.PageSize {
		lastRow = p.Pagination.Offset + n
	} else {
		lastRow = nil
	}
	return map[string]any{
		"success": true,
		"data":    data,
		"lastRow": lastRow,
	}
}

func formatMUI(data any, p reqparse.ParsedRequest) map[string]any {
	n := dataLen(data)
	hasNext := n >= p.Pagination.PageSize
	return map[string]any{
		"success":  true,
		"data":     data,
		"rowCount": n,
		"meta": map[string]any{
			"page":            p.Pagination.Page,
			"pageSize":        p.Pagination.PageSize,
			"total":           n,
			"hasNextPage":     hasNext,
			"hasPreviousPage": p.Pagination.Page > 1,
		},
	}
}

func formatTanStack(data any, p reqparse.ParsedRequest, now time.Time) map[string]any {
	n := dataLen(data)
	hasNext := n >= p.Pagination.PageSize
	hasPrev := p.Pagination.Page > 1
	links := map[string]any{
		"first": 1,
		"last":  nil,
		"self":  p.Pagination.Page,
	}
	if hasPrev {
		links["prev"] = p.Pagination.Page - 1
	} else {
		links["prev"] = nil
	}
	if hasNext {
		links["next"] = p.Pagination.Page + 1
	} else {
		links["next"] = nil
	}
	return map[string]any{
		"success":   true,
		"data":      data,
		"meta":      buildMeta(p),
		"links":     links,
		"timestamp": now.UTC().Format(time.RFC3339),
	}
}

func formatSWR(data any, p reqparse.ParsedRequest, now time.Time) map[string]any {
	n := dataLen(data)
	hasMore := n >= p.Pagination.PageSize
	return map[string]any{
		"success": true,
		"data":    data,
		"meta":    buildMeta(p),
		"pagination": map[string]any{
			"current": p.Pagination.Page,
			"size":    p.Pagination.PageSize,
			"total":   n,
			"hasMore": hasMore,
		},
		"cache_key": CacheKey(p),
		"timestamp": now.UTC().Format(time.RFC3339),
	}
}

func formatInfiniteScroll(data any, p reqparse.ParsedRequest) map[string]any {
	n := dataLen(data)
	hasNext := n >= p.Pagination.PageSize
	var nextCursor any
	if hasNext {
		nextCursor = p.Pagination.Offset + n
	} else {
		nextCursor = nil
	}
	return map[string]any{
		"success": true,
		"data":    data,
		"pagination": map[string]any{
			"hasNextPage": hasNext,
			"nextCursor":  nextCursor,
			"pageSize":    p.Pagination.PageSize,
		},
	}
}

func formatCursor(data any, p reqparse.ParsedRequest) map[string]any {
	n := dataLen(data)
	hasNext := n >= p.Pagination.PageSize
	hasPrev := p.Pagination.Page > 1
	var start, end any
	if n > 0 {
		start = p.Pagination.Offset
		end = p.Pagination.Offset + n - 1
	}
	return map[string]any{
		"success": true,
		"data":    data,
		"pageInfo": map[string]any{
			"hasNextPage":     hasNext,
			"hasPreviousPage": hasPrev,
			"startCursor":     start,
			"endCursor":       end,
		},
	}
}

// CacheKey computes swr's deterministic cache key: a sha256 hash over the
// pagination, filters, sorting, and search that produced the page, encoded
// as a stable query string so field order never changes the digest.
func CacheKey(p reqparse.ParsedRequest) string {
	values := url.Values{}
	values.Set("page", fmt.Sprintf("%d", p.Pagination.Page))
	values.Set("pageSize", fmt.Sprintf("%d", p.Pagination.PageSize))

	filters := append([]reqparse.Filter(nil), p.Filters...)
	sort.Slice(filters, func(i, j int) bool { return filters[i].Field < filters[j].Field })
	for _, f := range filters {
		values.Add("filter", fmt.Sprintf("%s:%s:%v", f.Field, f.Operator, f.Value))
	}

	sorts := append([]reqparse.Sort(nil), p.Sorting...)
	for _, s := range sorts {
		values.Add("sort", fmt.Sprintf("%s:%s", s.Field, s.Direction))
	}

	if p.Search.Term != "" {
		values.Set("search", p.Search.Term)
		values.Set("searchOp", string(p.Search.Operator))
	}

	sum := sha256.Sum256([]byte(values.Encode()))
	return hex.EncodeToString(sum[:])
}
