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

package routing

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/gravitycar/api-core/internal/apierrors"
	"github.com/gravitycar/api-core/internal/metadata"
	"github.com/gravitycar/api-core/internal/scorer"
)

// ControllerRegistrar is implemented by explicit controllers that declare
// routes outside of model metadata (§4.2 discovery source (a)).
type ControllerRegistrar interface {
	// ControllerName identifies the handler class for route resolution.
	ControllerName() string
	RegisterRoutes() []metadata.RouteDeclaration
}

// HandlerFunc is the concrete handler a Route resolves to. Controllers
// register one per (class, method) pair at discovery time.
type HandlerFunc func(*Request) (any, error)

// handlerKey identifies a handler by class+method, matching Route's
// HandlerClass/HandlerMethod.
type handlerKey struct{ class, method string }

// Registry is the immutable, read-only-after-build route index (§3, §4.2).
// Callers never mutate a Registry directly; a reload builds a fresh one
// with Builder.Build and installs it via Holder.Swap.
type Registry struct {
	byMethodLength map[string]map[int][]Route // method -> pathLength -> routes
	byMethod       map[string][]Route         // method -> all routes, any length (fallback)
	handlers       map[handlerKey]HandlerFunc
}

// Builder accumulates controllers and models before calling Build.
type Builder struct {
	controllers []ControllerRegistrar
	models      []metadata.Model
	handlers    map[handlerKey]HandlerFunc
}

// NewBuilder creates an empty registry Builder.
func NewBuilder() *Builder {
	return &Builder{handlers: map[handlerKey]HandlerFunc{}}
}

// WithController registers a controller for discovery.
func (b *Builder) WithController(c ControllerRegistrar) *Builder {
	b.controllers = append(b.controllers, c)
	return b
}

// WithModel registers a model (and its apiRoutes) for discovery.
func (b *Builder) WithModel(m metadata.Model) *Builder {
	b.models = append(b.models, m)
	return b
}

// Bind associates a (class, method) pair with its concrete handler
// implementation. Discovery validates that every declared route has a
// bound handler.
func (b *Builder) Bind(class, method string, fn HandlerFunc) *Builder {
	b.handlers[handlerKey{class, method}] = fn
	return b
}

// Build runs discovery (§4.2) over every registered controller and model,
// validates each route, and indexes the result. Discovery errors fail fast
// as *apierrors.Error-wrapped InvalidRouteDefinition via the returned error.
func (b *Builder) Build() (*Registry, error) {
	reg := &Registry{
		byMethodLength: map[string]map[int][]Route{},
		byMethod:       map[string][]Route{},
		handlers:       b.handlers,
	}

	add := func(decl metadata.RouteDeclaration, modelName string) error {
		route, err := validate(decl, modelName)
		if err != nil {
			return err
		}
		if _, ok := reg.handlers[handlerKey{route.HandlerClass, route.HandlerMethod}]; !ok {
			return fmt.Errorf("invalid route definition: no handler bound for %s.%s", route.HandlerClass, route.HandlerMethod)
		}
		if reg.byMethodLength[route.Method] == nil {
			reg.byMethodLength[route.Method] = map[int][]Route{}
		}
		length := len(route.PathComponents)
		reg.byMethodLength[route.Method][length] = append(reg.byMethodLength[route.Method][length], route)
		reg.byMethod[route.Method] = append(reg.byMethod[route.Method], route)
		return nil
	}

	for _, c := range b.controllers {
		for _, decl := range c.RegisterRoutes() {
			if decl.APIClass == "" {
				decl.APIClass = c.ControllerName()
			}
			if err := add(decl, ""); err != nil {
				return nil, apierrors.Wrap(apierrors.InvalidRouteDefinition, "route discovery failed", err)
			}
		}
	}

	for _, m := range b.models {
		for _, decl := range m.APIRoutes {
			if err := add(decl, m.Name); err != nil {
				return nil, apierrors.Wrap(apierrors.InvalidRouteDefinition, "route discovery failed", err)
			}
		}
	}

	return reg, nil
}

// validate rejects a route declaration per §4.2 "Validation" and converts
// it into an immutable Route.
func validate(decl metadata.RouteDeclaration, modelName string) (Route, error) {
	if decl.Method == "" || decl.Path == "" || decl.APIClass == "" || decl.APIMethod == "" {
		return Route{}, fmt.Errorf("invalid route definition: missing method, path, apiClass, or apiMethod")
	}
	if _, ok := AllowedMethods[decl.Method]; !ok {
		return Route{}, fmt.Errorf("invalid route definition: unsupported method %q", decl.Method)
	}
	if !strings.HasPrefix(decl.Path, "/") {
		return Route{}, fmt.Errorf("invalid route definition: path %q must start with /", decl.Path)
	}
	components := scorer.SplitPath(decl.Path)
	if len(decl.ParameterNames) != len(components) {
		return Route{}, fmt.Errorf("invalid route definition: parameterNames count %d != path component count %d for %s", len(decl.ParameterNames), len(components), decl.Path)
	}
	return Route{
		Method:         decl.Method,
		Path:           decl.Path,
		PathComponents: components,
		ParameterNames: append([]string(nil), decl.ParameterNames...),
		HandlerClass:   decl.APIClass,
		HandlerMethod:  decl.APIMethod,
		ModelName:      modelName,
		AllowedRoles:   append([]string(nil), decl.AllowedRoles...),
		RBACAction:     decl.RBACAction,
	}, nil
}

// FindBest implements the §4.2 lookup contract: parse the path, look up
// (method, length), score each candidate, and return the highest scorer.
// If the primary length bucket yields no positive score, fall back to
// scoring every route registered for the method regardless of length, to
// permit wildcard-prefix matches across lengths.
func (reg *Registry) FindBest(method, path string) (Route, bool) {
	client := scorer.SplitPath(path)

	if bucket, ok := reg.byMethodLength[method]; ok {
		if candidates, ok := bucket[len(client)]; ok {
			if route, ok := bestOf(client, candidates); ok {
				return route, true
			}
		}
	}
	return bestOf(client, reg.byMethod[method])
}

func bestOf(client []string, candidates []Route) (Route, bool) {
	best := Route{}
	bestScore := 0
	found := false
	for _, r := range candidates {
		s := scorer.Score(client, r.PathComponents)
		if s > bestScore {
			bestScore = s
			best = r
			found = true
		}
	}
	return best, found
}

// Handler returns the bound HandlerFunc for a route, if any.
func (reg *Registry) Handler(route Route) (HandlerFunc, bool) {
	fn, ok := reg.handlers[handlerKey{route.HandlerClass, route.HandlerMethod}]
	return fn, ok
}

// Holder wraps an atomic pointer to a Registry (Design Note "Static
// singletons for the registry"): the registry is built once, and hot reload
// swaps the pointer atomically rather than mutating live state.
type Holder struct {
	ptr atomic.Pointer[Registry]
}

// NewHolder wraps an already-built Registry.
func NewHolder(reg *Registry) *Holder {
	h := &Holder{}
	h.ptr.Store(reg)
	return h
}

// Load returns the currently active Registry.
func (h *Holder) Load() *Registry { return h.ptr.Load() }

// Swap atomically replaces the active Registry, e.g. after a Builder.Build
// triggered by a hot-reload request.
func (h *Holder) Swap(reg *Registry) { h.ptr.Store(reg) }
