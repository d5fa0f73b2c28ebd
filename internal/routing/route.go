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

// Package routing implements the route registry and router (§4.2, §4.7):
// discovery from model metadata and controller registrations, validation,
// scoring-based lookup, and request orchestration.
package routing

// AllowedMethods is the set of HTTP methods a Route may declare.
var AllowedMethods = map[string]struct{}{
	"GET": {}, "POST": {}, "PUT": {}, "DELETE": {}, "PATCH": {},
}

// Route is an immutable record binding an HTTP method and path pattern to a
// handler, per §3. ParameterNames has exactly one entry per path component;
// an empty string means "don't extract this position".
type Route struct {
	Method         string
	Path           string
	PathComponents []string
	ParameterNames []string
	HandlerClass   string
	HandlerMethod  string
	ModelName      string // non-empty when the handler targets a model
	AllowedRoles   []string
	RBACAction     string // overrides the method->action mapping when set
}

// IsPublic reports whether the route requires no authorization: missing,
// empty, or containing "*" roles all mean public (§4.6 step 1).
func (r Route) IsPublic() bool {
	if len(r.AllowedRoles) == 0 {
		return true
	}
	for _, role := range r.AllowedRoles {
		if role == "*" {
			return true
		}
	}
	return false
}

// TerminalIsWildcard reports whether the route's last path component is the
// wildcard token, used by the default GET->list/read inference (§4.6 step 2,
// Design Note "Method-to-action mapping").
func (r Route) TerminalIsWildcard() bool {
	if len(r.PathComponents) == 0 {
		return false
	}
	return r.PathComponents[len(r.PathComponents)-1] == "?"
}
