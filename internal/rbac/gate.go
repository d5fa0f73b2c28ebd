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

// Package rbac implements the authorization gate (§4.6): public-route
// short-circuiting, method-to-action inference, and two-tier role
// checking against a route's declared AllowedRoles and a model's
// rolesAndActions permission table. Every failure mode, including an
// unexpected panic from a faulty PermissionLookup, resolves to Forbidden
// rather than silently granting access (Design Note "Authorization
// fail-secure").
package rbac

import (
	"github.com/gravitycar/api-core/internal/apierrors"
)

// PermissionLookup resolves a component's fine-grained role->actions
// table, typically backed by metadata.Model.RolesAndActions. A nil map
// return means "no fine-grained table declared"; the coarse AllowedRoles
// check on the route is then authoritative.
type PermissionLookup interface {
	RolesAndActions(component string) map[string][]string
}

// RouteInfo is the subset of a routing.Route the gate needs to decide
// access. Defined locally rather than depending on package routing, so the
// router (which must depend on rbac) never creates an import cycle.
type RouteInfo struct {
	Public           bool
	Method           string
	RBACAction       string
	ModelName        string
	HandlerClass     string
	TerminalWildcard bool
	AllowedRoles     []string
}

// Gate is the authorization collaborator the router consults before
// invoking a handler.
type Gate struct {
	lookup PermissionLookup
}

// NewGate builds a Gate backed by lookup. lookup may be nil, in which case
// only the route's own AllowedRoles are enforced.
func NewGate(lookup PermissionLookup) *Gate {
	return &Gate{lookup: lookup}
}

// Authorize implements §4.6 steps 1-6: public short-circuit, unauthenticated
// rejection, action inference, component derivation, and role/permission
// checking. Returns nil on success or an *apierrors.Error with Kind
// Unauthenticated or Forbidden.
func (g *Gate) Authorize(route RouteInfo, subject string, roles []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = apierrors.New(apierrors.Forbidden, "authorization check failed").
				WithContext("panic", r)
		}
	}()

	if route.Public {
		return nil
	}
	if subject == "" {
		return apierrors.New(apierrors.Unauthenticated, "authentication required")
	}

	action := resolveAction(route)
	component := componentFor(route)

	if len(route.AllowedRoles) > 0 && !roleInList(roles, route.AllowedRoles) {
		return apierrors.New(apierrors.Forbidden, "role not permitted for this route").
			WithContext("component", component).WithContext("required_action", action)
	}

	if g.lookup == nil {
		return nil
	}
	table := g.lookup.RolesAndActions(component)
	if table == nil {
		return nil
	}
	if !roleHasAction(table, roles, action) {
		return apierrors.New(apierrors.Forbidden, "role lacks permission for this action").
			WithContext("component", component).WithContext("required_action", action)
	}
	return nil
}

// resolveAction implements the method-to-action mapping (Design Note
// "Method-to-action mapping"): RBACAction always wins when declared;
// otherwise GET infers list/read from TerminalIsWildcard, and the other
// verbs map one-to-one.
func resolveAction(route RouteInfo) string {
	if route.RBACAction != "" {
		return route.RBACAction
	}
	switch route.Method {
	case "GET":
		if route.TerminalWildcard {
			return "read"
		}
		return "list"
	case "POST":
		return "create"
	case "PUT", "PATCH":
		return "update"
	case "DELETE":
		return "delete"
	default:
		return "access"
	}
}

// componentFor derives the permission-table key for a route: the model
// name when the route targets a model, otherwise the handler class.
func componentFor(route RouteInfo) string {
	if route.ModelName != "" {
		return route.ModelName
	}
	return route.HandlerClass
}

func roleInList(roles, allowed []string) bool {
	for _, r := range roles {
		for _, a := range allowed {
			if r == a {
				return true
			}
		}
	}
	return false
}

// roleHasAction honors a "*" entry as an all-actions grant for that role
// (§3 "rolesAndActions" value may be ["*"]).
func roleHasAction(table map[string][]string, roles []string, action string) bool {
	for _, r := range roles {
		for _, a := range table[r] {
			if a == action || a == "*" {
				return true
			}
		}
	}
	return false
}
