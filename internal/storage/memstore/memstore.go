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

// Package memstore implements storage.Store entirely in memory, for tests
// and for models with no durable backing. Filters, sorts and search are
// applied in Go against a snapshot of each table's rows rather than pushed
// down to a query engine.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/gravitycar/api-core/internal/apierrors"
	"github.com/gravitycar/api-core/internal/fieldtypes"
	"github.com/gravitycar/api-core/internal/reqparse"
	"github.com/gravitycar/api-core/internal/storage"
)

func errRecordAlreadyExists(table, id string) error {
	return apierrors.New(apierrors.BadRequest, "record already exists").WithContext("table", table).WithContext("id", id)
}

func errRecordNotFound(table, id string) error {
	return apierrors.New(apierrors.RouteNotFound, "record not found").WithContext("table", table).WithContext("id", id)
}

// Store is an in-memory storage.Store, one map of rows per table.
type Store struct {
	mu     sync.RWMutex
	tables map[string]map[string]storage.Row
}

var _ storage.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{tables: make(map[string]map[string]storage.Row)}
}

// Seed preloads table with rows keyed by idColumn, for tests and fixtures.
func (s *Store) Seed(table, idColumn string, rows []storage.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.tableLocked(table)
	for _, row := range rows {
		id := fmt.Sprint(row[idColumn])
		t[id] = row
	}
}

func (s *Store) tableLocked(table string) map[string]storage.Row {
	t, ok := s.tables[table]
	if !ok {
		t = make(map[string]storage.Row)
		s.tables[table] = t
	}
	return t
}

func (s *Store) List(ctx context.Context, table string, filters []reqparse.Filter, sorts []reqparse.Sort, search reqparse.Search, limit, offset int) ([]storage.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, canceled(err)
	}
	rows := s.matching(table, filters, search)
	applySort(rows, sorts)
	return paginate(rows, limit, offset), nil
}

func (s *Store) Count(ctx context.Context, table string, filters []reqparse.Filter, search reqparse.Search) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, canceled(err)
	}
	return len(s.matching(table, filters, search)), nil
}

func (s *Store) Get(ctx context.Context, table, idColumn, id string) (storage.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, canceled(err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.tables[table][id]
	if !ok {
		return nil, errRecordNotFound(table, id)
	}
	return cloneRow(row), nil
}

func (s *Store) Create(ctx context.Context, table string, values storage.Row) (storage.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, canceled(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.tableLocked(table)
	id := fmt.Sprint(values["id"])
	if _, exists := t[id]; exists && id != "<nil>" {
		return nil, errRecordAlreadyExists(table, id)
	}
	row := cloneRow(values)
	t[id] = row
	return cloneRow(row), nil
}

func (s *Store) Update(ctx context.Context, table, idColumn, id string, values storage.Row) (storage.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, canceled(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.tableLocked(table)
	existing, ok := t[id]
	if !ok {
		return nil, errRecordNotFound(table, id)
	}
	merged := cloneRow(existing)
	for k, v := range values {
		merged[k] = v
	}
	t[id] = merged
	return cloneRow(merged), nil
}

func (s *Store) Delete(ctx context.Context, table, idColumn, id string) error {
	if err := ctx.Err(); err != nil {
		return canceled(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.tableLocked(table)
	if _, ok := t[id]; !ok {
		return errRecordNotFound(table, id)
	}
	delete(t, id)
	return nil
}

func (s *Store) matching(table string, filters []reqparse.Filter, search reqparse.Search) []storage.Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []storage.Row
	for _, row := range s.tables[table] {
		if rowMatchesFilters(row, filters) && rowMatchesSearch(row, search) {
			out = append(out, cloneRow(row))
		}
	}
	return out
}

func rowMatchesFilters(row storage.Row, filters []reqparse.Filter) bool {
	for _, f := range filters {
		if !rowMatchesFilter(row, f) {
			return false
		}
	}
	return true
}

func rowMatchesFilter(row storage.Row, f reqparse.Filter) bool {
	actual := row[f.Field]
	switch f.Operator {
	case string(fieldtypes.OpIsNull):
		return actual == nil
	case string(fieldtypes.OpIsNotNull):
		return actual != nil
	case string(fieldtypes.OpEquals):
		return fmt.Sprint(actual) == fmt.Sprint(f.Value)
	case string(fieldtypes.OpNotEquals):
		return fmt.Sprint(actual) != fmt.Sprint(f.Value)
	case string(fieldtypes.OpContains):
		return strings.Contains(strings.ToLower(fmt.Sprint(actual)), strings.ToLower(fmt.Sprint(f.Value)))
	case string(fieldtypes.OpStartsWith):
		return strings.HasPrefix(strings.ToLower(fmt.Sprint(actual)), strings.ToLower(fmt.Sprint(f.Value)))
	case string(fieldtypes.OpEndsWith):
		return strings.HasSuffix(strings.ToLower(fmt.Sprint(actual)), strings.ToLower(fmt.Sprint(f.Value)))
	case string(fieldtypes.OpIn):
		values, _ := f.Value.([]string)
		for _, v := range values {
			if fmt.Sprint(actual) == v {
				return true
			}
		}
		return false
	default:
		return true
	}
}

func rowMatchesSearch(row storage.Row, search reqparse.Search) bool {
	if search.Term == "" || len(search.Fields) == 0 {
		return true
	}
	term := strings.ToLower(search.Term)
	for _, field := range search.Fields {
		value := strings.ToLower(fmt.Sprint(row[field]))
		switch search.Operator {
		case reqparse.SearchStartsWith:
			if strings.HasPrefix(value, term) {
				return true
			}
		case reqparse.SearchEndsWith:
			if strings.HasSuffix(value, term) {
				return true
			}
		case reqparse.SearchEquals:
			if value == term {
				return true
			}
		default:
			if strings.Contains(value, term) {
				return true
			}
		}
	}
	return false
}

func applySort(rows []storage.Row, sorts []reqparse.Sort) {
	if len(sorts) == 0 {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		for _, s := range sorts {
			a, b := fmt.Sprint(rows[i][s.Field]), fmt.Sprint(rows[j][s.Field])
			if a == b {
				continue
			}
			if s.Direction == reqparse.Desc {
				return a > b
			}
			return a < b
		}
		return false
	})
}

func paginate(rows []storage.Row, limit, offset int) []storage.Row {
	if offset >= len(rows) {
		return []storage.Row{}
	}
	end := offset + limit
	if limit <= 0 || end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

func cloneRow(row storage.Row) storage.Row {
	out := make(storage.Row, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}

func canceled(err error) error {
	return apierrors.New(apierrors.RequestCanceled, "request canceled").WithContext("cause", err.Error())
}
