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

// Package controllers binds generic CRUD handlers to a model's metadata and
// a storage.Store, so any registered model gets list/read/create/update/
// delete for free without a hand-written controller per model.
package controllers

import (
	"fmt"

	"github.com/gravitycar/api-core/internal/apierrors"
	"github.com/gravitycar/api-core/internal/metadata"
	"github.com/gravitycar/api-core/internal/reqparse"
	"github.com/gravitycar/api-core/internal/routing"
	"github.com/gravitycar/api-core/internal/storage"
)

// ModelController adapts one metadata.Model onto a storage.Store, producing
// the HandlerFuncs the route registry binds list/read/create/update/delete
// to. The model's APIRoutes (declared in its metadata) determine which of
// these are actually reachable; unused Bind targets are simply never called.
type ModelController struct {
	model    metadata.Model
	store    storage.Store
	idColumn string
}

// NewModelController builds a controller for model, persisting through
// store. idColumn is the column used to address individual records
// (conventionally "id").
func NewModelController(model metadata.Model, store storage.Store, idColumn string) *ModelController {
	if idColumn == "" {
		idColumn = "id"
	}
	return &ModelController{model: model, store: store, idColumn: idColumn}
}

// BindAll registers this controller's handlers on b under its model's name,
// for the five conventional API methods (list, read, create, update,
// delete). Models that only declare some of these routes simply never
// dispatch to the unused ones.
func (c *ModelController) BindAll(b *routing.Builder) *routing.Builder {
	return b.
		Bind(c.model.Name, "list", c.List).
		Bind(c.model.Name, "read", c.Read).
		Bind(c.model.Name, "create", c.Create).
		Bind(c.model.Name, "update", c.Update).
		Bind(c.model.Name, "delete", c.Delete)
}

func (c *ModelController) List(req *routing.Request) (any, error) {
	p := req.Parsed
	rows, err := c.store.List(req.Ctx, c.model.Table, p.Filters, p.Sorting, p.Search, p.Pagination.PageSize, p.Pagination.Offset)
	if err != nil {
		return nil, err
	}
	for i, r := range rows {
		rows[i] = stripSecrets(c.model, r)
	}
	return rowsToAny(rows), nil
}

func (c *ModelController) Read(req *routing.Request) (any, error) {
	id := req.Param("id")
	if id == "" {
		return nil, apierrors.New(apierrors.MissingParameter, "missing required parameter: id")
	}
	row, err := c.store.Get(req.Ctx, c.model.Table, c.idColumn, id)
	if err != nil {
		return nil, err
	}
	return stripSecrets(c.model, row), nil
}

func (c *ModelController) Create(req *routing.Request) (any, error) {
	values, err := c.bodyForWrite(req)
	if err != nil {
		return nil, err
	}
	row, err := c.store.Create(req.Ctx, c.model.Table, values)
	if err != nil {
		return nil, err
	}
	return stripSecrets(c.model, row), nil
}

func (c *ModelController) Update(req *routing.Request) (any, error) {
	id := req.Param("id")
	if id == "" {
		return nil, apierrors.New(apierrors.MissingParameter, "missing required parameter: id")
	}
	values, err := c.bodyForWrite(req)
	if err != nil {
		return nil, err
	}
	row, err := c.store.Update(req.Ctx, c.model.Table, c.idColumn, id, values)
	if err != nil {
		return nil, err
	}
	return stripSecrets(c.model, row), nil
}

func (c *ModelController) Delete(req *routing.Request) (any, error) {
	id := req.Param("id")
	if id == "" {
		return nil, apierrors.New(apierrors.MissingParameter, "missing required parameter: id")
	}
	if err := c.store.Delete(req.Ctx, c.model.Table, c.idColumn, id); err != nil {
		return nil, err
	}
	return map[string]any{"id": id, "deleted": true}, nil
}

// bodyForWrite extracts writable field values from the request's merged
// params, restricted to fields the model declares as persistent. It
// deliberately ignores unknown keys rather than rejecting the request: the
// same silent-drop posture the filter/search validators use.
func (c *ModelController) bodyForWrite(req *routing.Request) (storage.Row, error) {
	merged := req.Merged()
	values := storage.Row{}
	for _, f := range c.model.Fields {
		if !f.IsDBField {
			continue
		}
		if v, ok := merged[f.Name]; ok && v != "" {
			values[f.Name] = v
		}
	}
	if len(values) == 0 {
		return nil, apierrors.New(apierrors.BadRequest, "no writable fields supplied")
	}
	return values, nil
}

// stripSecrets removes Password-tagged fields from a row before it reaches
// the response formatter. List, Read, Create and Update apply it to every
// row they return, since the store hands back all stored columns.
func stripSecrets(model metadata.Model, row storage.Row) storage.Row {
	out := make(storage.Row, len(row))
	for k, v := range row {
		if f, ok := model.FieldByName(k); ok && f.Type == "Password" {
			continue
		}
		out[k] = v
	}
	return out
}

func rowsToAny(rows []storage.Row) []any {
	out := make([]any, len(rows))
	for i, r := range rows {
		out[i] = r
	}
	return out
}

// DefaultAPIRoutes returns the conventional REST route declarations for a
// model: list/create on the collection, read/update/delete on /{id}. Models
// can instead declare a custom APIRoutes set in their metadata.Model.
func DefaultAPIRoutes(modelName string) []metadata.RouteDeclaration {
	base := fmt.Sprintf("/%s", modelName)
	withID := base + "/?"
	return []metadata.RouteDeclaration{
		{Method: "GET", Path: base, APIClass: modelName, APIMethod: "list", ParameterNames: []string{""}},
		{Method: "POST", Path: base, APIClass: modelName, APIMethod: "create", ParameterNames: []string{""}},
		{Method: "GET", Path: withID, APIClass: modelName, APIMethod: "read", ParameterNames: []string{"", "id"}},
		{Method: "PUT", Path: withID, APIClass: modelName, APIMethod: "update", ParameterNames: []string{"", "id"}},
		{Method: "DELETE", Path: withID, APIClass: modelName, APIMethod: "delete", ParameterNames: []string{"", "id"}},
	}
}
