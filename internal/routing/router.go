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
	"time"

	"github.com/gravitycar/api-core/internal/apierrors"
	"github.com/gravitycar/api-core/internal/corelog"
	"github.com/gravitycar/api-core/internal/metadata"
	"github.com/gravitycar/api-core/internal/rbac"
	"github.com/gravitycar/api-core/internal/reqparse"
	"github.com/gravitycar/api-core/internal/respond"
	"github.com/gravitycar/api-core/internal/validate"
)

// Outcome is everything the HTTP transport layer needs to write a response:
// a status code and a pre-serialized body map.
type Outcome struct {
	Status int
	Body   map[string]any
}

// Router is the request orchestrator (§4.7): it owns every pipeline
// collaborator and drives an already-routed request through authorize ->
// parse -> validate -> invoke -> format, in that order. Route lookup
// (Registry.FindBest) is done by the caller before Handle.
type Router struct {
	holder          *Holder
	models          *metadata.Engine
	dispatcher      *reqparse.Dispatcher
	filterValidator *validate.FilterValidator
	searchValidator *validate.SearchValidator
	gate            *rbac.Gate
	log             *corelog.Logger
	now             func() time.Time
	exposeDetails   bool
}

// NewRouter wires the pipeline collaborators. exposeDetails mirrors the
// config flag errors.exposeDetailedErrors (§7): when false, Internal and
// HandlerError responses never carry their underlying message or context.
func NewRouter(holder *Holder, models *metadata.Engine, gate *rbac.Gate, log *corelog.Logger, exposeDetails bool) *Router {
	return &Router{
		holder:          holder,
		models:          models,
		dispatcher:      reqparse.NewDispatcher(log),
		filterValidator: validate.NewFilterValidator(log),
		searchValidator: validate.NewSearchValidator(log),
		gate:            gate,
		log:             log,
		now:             time.Now,
		exposeDetails:   exposeDetails,
	}
}

// Handle runs one request through the pipeline after route lookup.
// req.Route, req.PathParams and req.Raw are filled in already; the caller
// (an HTTP handler adapter) owns finding the route and decoding them.
func (rt *Router) Handle(req *Request) Outcome {
	select {
	case <-req.Ctx.Done():
		return rt.errorOutcome(apierrors.New(apierrors.RequestCanceled, "request canceled or deadline exceeded"))
	default:
	}

	route := req.Route
	model, hasModel := metadata.Model{}, false
	if route.ModelName != "" && rt.models != nil {
		model, hasModel = rt.models.ModelMetadata(route.ModelName)
	}

	if err := rt.authorize(route, req); err != nil {
		return rt.errorOutcome(err)
	}

	if missing := missingRequiredParams(route, req); missing != "" {
		return rt.errorOutcome(apierrors.New(apierrors.MissingParameter, "missing required parameter: "+missing))
	}

	merged := req.Merged()
	parsed := rt.dispatcher.Dispatch(merged)
	if hasModel {
		parsed.Filters = rt.filterValidator.Validate(model, parsed.Filters)
		parsed.Search = rt.searchValidator.Validate(model, parsed.Search)
	}
	req.Parsed = parsed

	handler, ok := rt.holder.Load().Handler(route)
	if !ok {
		return rt.errorOutcome(apierrors.New(apierrors.RouteNotFound, "no handler bound for route"))
	}

	result, err := rt.invoke(handler, req)
	if err != nil {
		return rt.errorOutcome(err)
	}

	explicitFormat := merged["responseFormat"]
	if explicitFormat == "" {
		explicitFormat = merged["format"]
	}
	dialect := respond.ResolveDialect(explicitFormat, parsed.Meta.DetectedFormat)
	body := respond.Format(dialect, result, parsed, rt.now())
	return Outcome{Status: 200, Body: body}
}

// invoke calls the handler and converts a panic or cancellation into a
// typed pipeline error rather than letting either escape to the transport
// layer (§5 "cancellation propagation", §7 "propagation policy").
func (rt *Router) invoke(handler HandlerFunc, req *Request) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = apierrors.New(apierrors.HandlerError, "handler panicked").WithContext("recovered", r)
			if rt.log != nil {
				rt.log.With("route", req.Route.Path).Error("handler panic", err)
			}
		}
	}()

	select {
	case <-req.Ctx.Done():
		return nil, apierrors.New(apierrors.RequestCanceled, "request canceled before handler invocation")
	default:
	}

	result, err = handler(req)
	if err != nil {
		if req.Ctx.Err() != nil {
			return nil, apierrors.New(apierrors.RequestCanceled, "request canceled during handler invocation")
		}
		wrapped := apierrors.As(err)
		if rt.log != nil {
			rt.log.With("route", req.Route.Path, "subject", req.Subject).Error("handler error", wrapped)
		}
		return nil, wrapped
	}
	return result, nil
}

func (rt *Router) authorize(route Route, req *Request) error {
	info := rbac.RouteInfo{
		Public:           route.IsPublic(),
		Method:           route.Method,
		RBACAction:       route.RBACAction,
		ModelName:        route.ModelName,
		HandlerClass:     route.HandlerClass,
		TerminalWildcard: route.TerminalIsWildcard(),
		AllowedRoles:     route.AllowedRoles,
	}
	return rt.gate.Authorize(info, req.Subject, req.Roles)
}

func missingRequiredParams(route Route, req *Request) string {
	for _, name := range route.ParameterNames {
		if name == "" {
			continue
		}
		if _, ok := req.PathParams[name]; !ok {
			return name
		}
	}
	return ""
}

func (rt *Router) errorOutcome(err error) Outcome {
	apiErr := apierrors.As(err)
	return Outcome{Status: apiErr.Status, Body: asMap(apierrors.ToEnvelope(apiErr, rt.exposeDetails))}
}

func asMap(env apierrors.Envelope) map[string]any {
	return map[string]any{
		"success":   env.Success,
		"status":    env.Status,
		"error":     env.Error,
		"timestamp": env.Timestamp,
	}
}
