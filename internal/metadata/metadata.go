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

// Package metadata defines the model-metadata records consumed (not owned)
// by the request-resolution pipeline, and a concrete in-memory engine
// implementing the §6 "Metadata engine" / "Model factory" collaborator
// contracts so the pipeline is runnable end-to-end. A production deployment
// would swap this for an engine backed by real schema storage without
// touching the pipeline.
package metadata

import "github.com/gravitycar/api-core/internal/fieldtypes"

// FieldDescriptor describes one field of a model.
type FieldDescriptor struct {
	Name        string
	Type        fieldtypes.Tag
	IsDBField   bool
	Options     []string // enum options, only meaningful when Type == Enum
	Description string
}

// RouteDeclaration is a route read from a model's apiRoutes metadata, prior
// to registry validation (see routing.Route for the validated record).
type RouteDeclaration struct {
	Method        string
	Path          string
	APIClass      string
	APIMethod     string
	ParameterNames []string
	AllowedRoles  []string
	RBACAction    string
}

// Model is the metadata for a single registered model.
type Model struct {
	Name             string
	DisplayName      string
	Table            string
	Fields           []FieldDescriptor // ordered, per §3 "ordered map of field name -> field descriptor"
	RolesAndActions  map[string][]string
	APIRoutes        []RouteDeclaration
}

// FieldByName looks up a field descriptor by name.
func (m Model) FieldByName(name string) (FieldDescriptor, bool) {
	for _, f := range m.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}

// SearchableFields returns the fields that are searchable by default:
// persistent, of a default-searchable type, never Password/Image.
func (m Model) SearchableFields() []string {
	var out []string
	for _, f := range m.Fields {
		if !f.IsDBField {
			continue
		}
		if fieldtypes.IsSearchableType(f.Type) {
			out = append(out, f.Name)
		}
	}
	return out
}

// Engine is the metadata engine / model factory collaborator (§6).
type Engine struct {
	models map[string]Model
	order  []string
}

// NewEngine builds an Engine from a fixed set of models, discovered once at
// startup per the Route Registry's discovery step (§4.2).
func NewEngine(models ...Model) *Engine {
	e := &Engine{models: make(map[string]Model, len(models))}
	for _, m := range models {
		e.models[m.Name] = m
		e.order = append(e.order, m.Name)
	}
	return e
}

// AvailableModels returns the names of every registered model, in
// registration order.
func (e *Engine) AvailableModels() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// ModelMetadata returns the metadata for name, or false if unknown.
func (e *Engine) ModelMetadata(name string) (Model, bool) {
	m, ok := e.models[name]
	return m, ok
}

// RolesAndActions implements rbac.PermissionLookup: it resolves a model's
// declared role->actions table by name, or nil if the model (or its table)
// is not registered.
func (e *Engine) RolesAndActions(component string) map[string][]string {
	m, ok := e.models[component]
	if !ok {
		return nil
	}
	return m.RolesAndActions
}
