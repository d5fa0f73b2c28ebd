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
	"context"

	"github.com/gravitycar/api-core/internal/reqparse"
)

// Request is the orchestrator's internal call record (§4.7 step 4, §5):
// everything a handler needs, already merged and validated by the router
// before the handler is invoked. Handlers never touch *http.Request
// directly, which keeps them host-transport-agnostic and trivially testable.
type Request struct {
	Ctx context.Context

	Route Route

	// PathParams holds values extracted from the matched path components,
	// keyed by Route.ParameterNames entries (§4.7 step 4a).
	PathParams map[string]string

	// Raw is the original, unmerged query-string parameter map, retained for
	// diagnostics and for parsers that need to see untouched input.
	Raw reqparse.RawParams

	// Parsed is the dispatcher's unified parse of the merged parameter set
	// (path params overlaid with query params, §4.7 step 4b; path params
	// win on key collision since they are the more specific source).
	Parsed reqparse.ParsedRequest

	// Subject and Roles identify the authenticated caller, populated by
	// authentication middleware before the router's authorization step runs.
	// Both are empty for unauthenticated (public-route) requests.
	Subject string
	Roles   []string

	CorrelationID string
}

// Merged returns the path params overlaid with the raw query params, path
// params taking precedence on key collision (§4.7 step 4, Design Note
// "Parameter merge precedence").
func (r *Request) Merged() reqparse.RawParams {
	out := make(reqparse.RawParams, len(r.Raw)+len(r.PathParams))
	for k, v := range r.Raw {
		out[k] = v
	}
	for k, v := range r.PathParams {
		if k == "" {
			continue
		}
		out[k] = v
	}
	return out
}

// Param returns a path parameter by name, matching against
// Route.ParameterNames, or "" if absent.
func (r *Request) Param(name string) string {
	return r.PathParams[name]
}
