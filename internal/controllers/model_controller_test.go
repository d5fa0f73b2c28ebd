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

package controllers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitycar/api-core/internal/fieldtypes"
	"github.com/gravitycar/api-core/internal/metadata"
	"github.com/gravitycar/api-core/internal/reqparse"
	"github.com/gravitycar/api-core/internal/routing"
	"github.com/gravitycar/api-core/internal/storage"
	"github.com/gravitycar/api-core/internal/storage/memstore"
)

func usersModel() metadata.Model {
	return metadata.Model{
		Name:  "Users",
		Table: "users",
		Fields: []metadata.FieldDescriptor{
			{Name: "id", Type: fieldtypes.ID, IsDBField: true},
			{Name: "email", Type: fieldtypes.Email, IsDBField: true},
			{Name: "password", Type: fieldtypes.Password, IsDBField: true},
			{Name: "display_name", Type: fieldtypes.Text, IsDBField: true},
		},
	}
}

func newRequest(ctx context.Context, pathParams map[string]string, raw reqparse.RawParams) *routing.Request {
	return &routing.Request{
		Ctx:        ctx,
		PathParams: pathParams,
		Raw:        raw,
		Parsed: reqparse.ParsedRequest{
			Pagination: reqparse.Pagination{Page: 1, PageSize: reqparse.DefaultPageSize, Offset: 0, Limit: reqparse.DefaultPageSize},
		},
	}
}

func TestListReturnsStoredRowsAsAnySlice(t *testing.T) {
	store := memstore.New()
	store.Seed("users", "id", []storage.Row{
		{"id": "1", "email": "a@example.com", "password": "secret", "display_name": "Alice"},
	})
	c := NewModelController(usersModel(), store, "id")

	result, err := c.List(newRequest(context.Background(), nil, nil))
	require.NoError(t, err)

	rows, ok := result.([]any)
	require.True(t, ok)
	require.Len(t, rows, 1)
}

func TestReadStripsPasswordField(t *testing.T) {
	store := memstore.New()
	store.Seed("users", "id", []storage.Row{
		{"id": "1", "email": "a@example.com", "password": "secret", "display_name": "Alice"},
	})
	c := NewModelController(usersModel(), store, "id")

	result, err := c.Read(newRequest(context.Background(), map[string]string{"id": "1"}, nil))
	require.NoError(t, err)

	row, ok := result.(storage.Row)
	require.True(t, ok)
	assert.Equal(t, "Alice", row["display_name"])
	_, hasPassword := row["password"]
	assert.False(t, hasPassword, "expected password to be stripped from the response")
}

func TestReadMissingIDReturnsError(t *testing.T) {
	store := memstore.New()
	c := NewModelController(usersModel(), store, "id")

	_, err := c.Read(newRequest(context.Background(), nil, nil))
	assert.Error(t, err)
}

func TestCreatePersistsOnlyPersistentFields(t *testing.T) {
	store := memstore.New()
	c := NewModelController(usersModel(), store, "id")

	raw := reqparse.RawParams{
		"id":           "1",
		"email":        "a@example.com",
		"password":     "secret",
		"display_name": "Alice",
		"bogus":        "ignored",
	}
	result, err := c.Create(newRequest(context.Background(), nil, raw))
	require.NoError(t, err)

	row, ok := result.(storage.Row)
	require.True(t, ok)
	assert.Equal(t, "Alice", row["display_name"])
	_, hasPassword := row["password"]
	assert.False(t, hasPassword)

	stored, err := store.Get(context.Background(), "users", "id", "1")
	require.NoError(t, err)
	assert.Equal(t, "secret", stored["password"], "password should still be persisted, only stripped from responses")

	_, hasBogus := stored["bogus"]
	assert.False(t, hasBogus, "unknown fields should be silently dropped, not persisted")
}

func TestCreateWithNoWritableFieldsFails(t *testing.T) {
	store := memstore.New()
	c := NewModelController(usersModel(), store, "id")

	_, err := c.Create(newRequest(context.Background(), nil, reqparse.RawParams{"bogus": "ignored"}))
	assert.Error(t, err)
}

func TestUpdateMergesPathIDWithBodyFields(t *testing.T) {
	store := memstore.New()
	store.Seed("users", "id", []storage.Row{
		{"id": "1", "email": "a@example.com", "password": "secret", "display_name": "Alice"},
	})
	c := NewModelController(usersModel(), store, "id")

	req := newRequest(context.Background(), map[string]string{"id": "1"}, reqparse.RawParams{"display_name": "Alicia"})
	result, err := c.Update(req)
	require.NoError(t, err)

	row, ok := result.(storage.Row)
	require.True(t, ok)
	assert.Equal(t, "Alicia", row["display_name"])
}

func TestDeleteReturnsConfirmationBody(t *testing.T) {
	store := memstore.New()
	store.Seed("users", "id", []storage.Row{{"id": "1", "display_name": "Alice"}})
	c := NewModelController(usersModel(), store, "id")

	result, err := c.Delete(newRequest(context.Background(), map[string]string{"id": "1"}, nil))
	require.NoError(t, err)

	body, ok := result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "1", body["id"])
	assert.Equal(t, true, body["deleted"])

	_, err = store.Get(context.Background(), "users", "id", "1")
	assert.Error(t, err, "expected row to be gone after delete")
}

func TestDefaultAPIRoutesDeclaresConventionalCRUDShape(t *testing.T) {
	routes := DefaultAPIRoutes("Products")
	require.Len(t, routes, 5)

	byMethodAndPath := map[string]metadata.RouteDeclaration{}
	for _, r := range routes {
		byMethodAndPath[r.Method+" "+r.Path] = r
	}

	list, ok := byMethodAndPath["GET /Products"]
	require.True(t, ok)
	assert.Equal(t, "list", list.APIMethod)

	read, ok := byMethodAndPath["GET /Products/?"]
	require.True(t, ok)
	assert.Equal(t, "read", read.APIMethod)
	assert.Equal(t, []string{"", "id"}, read.ParameterNames)

	del, ok := byMethodAndPath["DELETE /Products/?"]
	require.True(t, ok)
	assert.Equal(t, "delete", del.APIMethod)
}
