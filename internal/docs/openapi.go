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

// Package docs generates an OpenAPI 3.0 document from the live model
// metadata and route registry, and serves it alongside a Swagger UI. Unlike
// the teacher's statically-authored spec files, here the document reflects
// whatever models are registered at startup.
package docs

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gravitycar/api-core/internal/fieldtypes"
	"github.com/gravitycar/api-core/internal/metadata"
)

// Document is a minimal OpenAPI 3.0 document, expressed as plain maps so it
// marshals directly to JSON without a dedicated schema-object dependency.
type Document map[string]any

// Info carries the document-level metadata injected into the generated spec.
type Info struct {
	Title        string
	Version      string
	ContactName  string
	ContactEmail string
	ContactURL   string
	ServerURL    string
}

// Generate builds an OpenAPI document covering every model the engine knows
// about, deriving request/response schemas from each model's field
// descriptors and CRUD paths from its declared routes.
func Generate(info Info, models *metadata.Engine) Document {
	paths := map[string]any{}
	schemas := map[string]any{}

	for _, name := range models.AvailableModels() {
		model, _ := models.ModelMetadata(name)
		schemas[name] = schemaForModel(model)
		mergePaths(paths, pathsForModel(model))
	}

	doc := Document{
		"openapi": "3.0.3",
		"info":    infoBlock(info),
		"paths":   paths,
		"components": map[string]any{
			"schemas": schemas,
			"securitySchemes": map[string]any{
				"bearerAuth": map[string]any{
					"type":   "http",
					"scheme": "bearer",
				},
			},
		},
	}
	if info.ServerURL != "" {
		doc["servers"] = []any{map[string]any{"url": info.ServerURL}}
	}
	return doc
}

func infoBlock(info Info) map[string]any {
	block := map[string]any{
		"title":   info.Title,
		"version": info.Version,
	}
	if info.ContactName != "" || info.ContactEmail != "" || info.ContactURL != "" {
		contact := map[string]any{}
		if info.ContactName != "" {
			contact["name"] = info.ContactName
		}
		if info.ContactEmail != "" {
			contact["email"] = info.ContactEmail
		}
		if info.ContactURL != "" {
			contact["url"] = info.ContactURL
		}
		block["contact"] = contact
	}
	return block
}

// schemaForModel maps each declared field to a JSON Schema fragment keyed
// by fieldtypes.Tag, skipping Password fields entirely (never part of a
// response schema, per the filter/search validators' posture on secrets).
func schemaForModel(model metadata.Model) map[string]any {
	properties := map[string]any{}
	var required []string
	for _, f := range model.Fields {
		if f.Type == fieldtypes.Password {
			continue
		}
		properties[f.Name] = propertyForField(f)
		if f.Name == "id" {
			required = append(required, f.Name)
		}
	}
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func propertyForField(f metadata.FieldDescriptor) map[string]any {
	prop := map[string]any{}
	switch f.Type {
	case fieldtypes.Integer:
		prop["type"] = "integer"
	case fieldtypes.Float:
		prop["type"] = "number"
	case fieldtypes.Boolean:
		prop["type"] = "boolean"
	case fieldtypes.Date:
		prop["type"] = "string"
		prop["format"] = "date"
	case fieldtypes.DateTime:
		prop["type"] = "string"
		prop["format"] = "date-time"
	case fieldtypes.Enum:
		prop["type"] = "string"
		if len(f.Options) > 0 {
			opts := make([]any, len(f.Options))
			for i, o := range f.Options {
				opts[i] = o
			}
			prop["enum"] = opts
		}
	case fieldtypes.Email:
		prop["type"] = "string"
		prop["format"] = "email"
	case fieldtypes.Image:
		prop["type"] = "string"
		prop["description"] = "object storage key"
	default:
		prop["type"] = "string"
	}
	if f.Description != "" {
		prop["description"] = f.Description
	}
	return prop
}

// pathsForModel derives OpenAPI path items from a model's declared routes,
// grouping by URL template (with {id} substituted for the wildcard token)
// and HTTP method.
func pathsForModel(model metadata.Model) map[string]any {
	out := map[string]any{}
	for _, route := range model.APIRoutes {
		template := toOpenAPIPath(route.Path, route.ParameterNames)
		item, _ := out[template].(map[string]any)
		if item == nil {
			item = map[string]any{}
			out[template] = item
		}
		item[strings.ToLower(route.Method)] = operationFor(model, route)
	}
	return out
}

func toOpenAPIPath(path string, paramNames []string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, seg := range segments {
		if seg == "?" && i < len(paramNames) && paramNames[i] != "" {
			segments[i] = "{" + paramNames[i] + "}"
		}
	}
	return "/" + strings.Join(segments, "/")
}

func operationFor(model metadata.Model, route metadata.RouteDeclaration) map[string]any {
	op := map[string]any{
		"summary":     fmt.Sprintf("%s.%s", model.Name, route.APIMethod),
		"operationId": fmt.Sprintf("%s_%s", model.Name, route.APIMethod),
		"tags":        []any{model.Name},
		"responses": map[string]any{
			"200": map[string]any{
				"description": "success",
				"content": map[string]any{
					"application/json": map[string]any{
						"schema": map[string]any{"$ref": "#/components/schemas/" + model.Name},
					},
				},
			},
			"default": map[string]any{"description": "error envelope"},
		},
	}
	if !routeIsPublic(route) {
		op["security"] = []any{map[string]any{"bearerAuth": []any{}}}
	}
	var params []any
	for _, name := range route.ParameterNames {
		if name == "" {
			continue
		}
		params = append(params, map[string]any{
			"name":     name,
			"in":       "path",
			"required": true,
			"schema":   map[string]any{"type": "string"},
		})
	}
	if len(params) > 0 {
		op["parameters"] = params
	}
	return op
}

func routeIsPublic(route metadata.RouteDeclaration) bool {
	if len(route.AllowedRoles) == 0 {
		return true
	}
	for _, r := range route.AllowedRoles {
		if r == "*" {
			return true
		}
	}
	return false
}

func mergePaths(dst, src map[string]any) {
	for k, v := range src {
		dst[k] = v
	}
}

// SortedModelNames is a small helper for callers (e.g. index pages) that
// want a stable model listing.
func SortedModelNames(models *metadata.Engine) []string {
	names := models.AvailableModels()
	sort.Strings(names)
	return names
}
