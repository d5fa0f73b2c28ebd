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

// Package postgres implements storage.Store against a real Postgres
// database via database/sql and lib/pq, building every query through
// internal/storage/querybuilder rather than hand-assembled SQL strings.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/gravitycar/api-core/internal/apierrors"
	"github.com/gravitycar/api-core/internal/config"
	"github.com/gravitycar/api-core/internal/reqparse"
	"github.com/gravitycar/api-core/internal/storage"
	"github.com/gravitycar/api-core/internal/storage/querybuilder"
)

var _ storage.Store = (*Connector)(nil)

// Connector is a storage.Store backed by *sql.DB.
type Connector struct {
	db *sql.DB
}

// Open establishes a connection pool per cfg and verifies connectivity with
// a Ping against ctx.
func Open(ctx context.Context, cfg config.PostgresConfig) (*Connector, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConnections)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Connector{db: db}, nil
}

// Close releases the underlying connection pool.
func (c *Connector) Close() error { return c.db.Close() }

// List runs a filtered, sorted, paginated SELECT over table.
func (c *Connector) List(ctx context.Context, table string, filters []reqparse.Filter, sorts []reqparse.Sort, search reqparse.Search, limit, offset int) ([]storage.Row, error) {
	b := querybuilder.NewSelect().From(table)
	for _, f := range filters {
		b.ApplyFilter(f)
	}
	b.ApplySearch(search)
	for _, s := range sorts {
		b.ApplySort(s)
	}
	b.Limit(limit).Offset(offset)

	query, args := b.Build()
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapSQLErr(ctx, "list", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// Count runs the same filter/search predicate as List but as a COUNT(*).
func (c *Connector) Count(ctx context.Context, table string, filters []reqparse.Filter, search reqparse.Search) (int, error) {
	b := querybuilder.NewSelect("COUNT(*) AS count").From(table)
	for _, f := range filters {
		b.ApplyFilter(f)
	}
	b.ApplySearch(search)

	query, args := b.Build()
	var count int
	if err := c.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, wrapSQLErr(ctx, "count", err)
	}
	return count, nil
}

// Get fetches a single row by its identifying column.
func (c *Connector) Get(ctx context.Context, table, idColumn, id string) (storage.Row, error) {
	query, args := querybuilder.NewSelect().From(table).Where(idColumn+" = $1", id).Build()
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapSQLErr(ctx, "get", err)
	}
	defer rows.Close()
	result, err := scanRows(rows)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, apierrors.New(apierrors.RouteNotFound, "record not found").WithContext("table", table).WithContext("id", id)
	}
	return result[0], nil
}

// Create inserts values into table and returns the inserted row, relying on
// RETURNING * to avoid a second round trip.
func (c *Connector) Create(ctx context.Context, table string, values storage.Row) (storage.Row, error) {
	columns, placeholders, args := insertParts(values)
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *", table, columns, placeholders)

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapSQLErr(ctx, "create", err)
	}
	defer rows.Close()
	result, err := scanRows(rows)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, apierrors.Wrap(apierrors.Internal, "insert returned no row", nil)
	}
	return result[0], nil
}

// Update applies values to the row identified by idColumn=id and returns
// the updated row.
func (c *Connector) Update(ctx context.Context, table, idColumn, id string, values storage.Row) (storage.Row, error) {
	setClause, args := updateParts(values)
	args = append(args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d RETURNING *", table, setClause, idColumn, len(args))

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapSQLErr(ctx, "update", err)
	}
	defer rows.Close()
	result, err := scanRows(rows)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, apierrors.New(apierrors.RouteNotFound, "record not found").WithContext("table", table).WithContext("id", id)
	}
	return result[0], nil
}

// Delete removes the row identified by idColumn=id.
func (c *Connector) Delete(ctx context.Context, table, idColumn, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", table, idColumn)
	res, err := c.db.ExecContext(ctx, query, id)
	if err != nil {
		return wrapSQLErr(ctx, "delete", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapSQLErr(ctx, "delete", err)
	}
	if n == 0 {
		return apierrors.New(apierrors.RouteNotFound, "record not found").WithContext("table", table).WithContext("id", id)
	}
	return nil
}

func scanRows(rows *sql.Rows) ([]storage.Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, apierrors.Wrap(apierrors.Internal, "read result columns", err)
	}

	var out []storage.Row
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, apierrors.Wrap(apierrors.Internal, "scan row", err)
		}
		row := storage.Row{}
		for i, col := range columns {
			row[col] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apierrors.Wrap(apierrors.Internal, "iterate rows", err)
	}
	return out, nil
}

func insertParts(values storage.Row) (columns, placeholders string, args []any) {
	var cols []string
	var phs []string
	for k, v := range values {
		cols = append(cols, k)
		phs = append(phs, fmt.Sprintf("$%d", len(args)+1))
		args = append(args, v)
	}
	return joinComma(cols), joinComma(phs), args
}

func updateParts(values storage.Row) (setClause string, args []any) {
	var sets []string
	for k, v := range values {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", k, len(args)))
	}
	return joinComma(sets), args
}

func joinComma(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}

func wrapSQLErr(ctx context.Context, op string, err error) error {
	if ctx.Err() != nil {
		return apierrors.New(apierrors.RequestCanceled, "request canceled during "+op)
	}
	return apierrors.Wrap(apierrors.Internal, "postgres "+op+" failed", err)
}
