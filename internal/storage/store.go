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

// Package storage defines the persistence collaborator contract consumed
// by model controllers. internal/storage/postgres implements it against a
// real database via lib/pq; internal/storage/memstore implements it
// in-memory for tests and for models with no durable backing.
package storage

import (
	"context"

	"github.com/gravitycar/api-core/internal/reqparse"
)

// Row is one persisted record, keyed by column name.
type Row map[string]any

// Store is the persistence contract a model controller depends on. All
// operations are context-aware so the router's cancellation propagates
// through to the query layer (§5).
type Store interface {
	List(ctx context.Context, table string, filters []reqparse.Filter, sorts []reqparse.Sort, search reqparse.Search, limit, offset int) ([]Row, error)
	Count(ctx context.Context, table string, filters []reqparse.Filter, search reqparse.Search) (int, error)
	Get(ctx context.Context, table, idColumn, id string) (Row, error)
	Create(ctx context.Context, table string, values Row) (Row, error)
	Update(ctx context.Context, table, idColumn, id string, values Row) (Row, error)
	Delete(ctx context.Context, table, idColumn, id string) error
}
