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

package main

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/gravitycar/api-core/internal/rbac"
	"github.com/gravitycar/api-core/internal/reqparse"
	"github.com/gravitycar/api-core/internal/routing"
)

// mountDynamicRoutes registers a single chi catch-all that defers every
// method/path combination to the route registry's scoring-based lookup,
// since routes are discovered from model metadata at startup rather than
// declared one-by-one against chi directly.
func mountDynamicRoutes(mux *chi.Mux, holder *routing.Holder, router *routing.Router, verifier rbac.TokenVerifier) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		route, ok := holder.Load().FindBest(r.Method, r.URL.Path)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]any{
				"success": false,
				"error":   map[string]any{"message": "no route matches " + r.Method + " " + r.URL.Path},
			})
			return
		}

		req := &routing.Request{
			Ctx:        r.Context(),
			Route:      route,
			PathParams: pathParams(route, r.URL.Path),
			Raw:        rawParams(r),
		}

		if subject, roles, err := authenticate(r, verifier); err == nil {
			req.Subject = subject
			req.Roles = roles
		}

		outcome := router.Handle(req)
		writeJSON(w, outcome.Status, outcome.Body)
	}

	mux.HandleFunc("/*", handler)
}

// pathParams re-walks a route's path template against the concrete request
// path, extracting one value per non-empty ParameterNames entry.
func pathParams(route routing.Route, path string) map[string]string {
	segments := splitNonEmpty(path)
	out := map[string]string{}
	for i, name := range route.ParameterNames {
		if name == "" || i >= len(segments) {
			continue
		}
		out[name] = segments[i]
	}
	return out
}

func splitNonEmpty(path string) []string {
	raw := strings.Split(path, "/")
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func rawParams(r *http.Request) reqparse.RawParams {
	out := reqparse.RawParams{}
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			out[key] = values[0]
		}
	}
	return out
}

func authenticate(r *http.Request, verifier rbac.TokenVerifier) (string, []string, error) {
	header := r.Header.Get("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	identity, err := verifier.Verify(r.Context(), token)
	if err != nil {
		return "", nil, err
	}
	return identity.Subject, identity.Roles, nil
}

func writeJSON(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
