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

package validate

import (
	"fmt"
	"strings"

	"github.com/gravitycar/api-core/internal/corelog"
	"github.com/gravitycar/api-core/internal/fieldtypes"
	"github.com/gravitycar/api-core/internal/metadata"
	"github.com/gravitycar/api-core/internal/reqparse"
)

// SearchValidator intersects a requested search against a model's
// searchable-field set and the operators its fields actually support.
type SearchValidator struct {
	log *corelog.Logger
}

// NewSearchValidator builds a SearchValidator that logs drops via log.
func NewSearchValidator(log *corelog.Logger) *SearchValidator {
	return &SearchValidator{log: log}
}

// Validate narrows search.Fields to the intersection of the requested
// fields (or, if none were requested, the model's full searchable set) and
// the model's searchable fields, and clears the term entirely if no field
// survives or the term is empty after trimming (§4.5). The operator falls
// back to contains if no surviving field supports the requested one.
func (v *SearchValidator) Validate(model metadata.Model, search reqparse.Search) reqparse.Search {
	term := parseSearchTerm(search.Term)
	if term == "" {
		return reqparse.Search{}
	}

	searchable := model.SearchableFields()
	searchableSet := make(map[string]struct{}, len(searchable))
	for _, f := range searchable {
		searchableSet[f] = struct{}{}
	}

	requested := search.Fields
	if len(requested) == 0 {
		requested = searchable
	}

	var fields []string
	for _, f := range requested {
		if _, ok := searchableSet[f]; !ok {
			v.dropField(model.Name, f, "not a searchable field")
			continue
		}
		fields = append(fields, f)
	}

	if len(fields) == 0 {
		v.dropField(model.Name, "*", "no requested field is searchable for this model")
		return reqparse.Search{}
	}

	op := search.Operator
	if !anyFieldSupportsOperator(model, fields, op) {
		v.dropOperator(model.Name, op)
		op = reqparse.SearchContains
	}

	return reqparse.Search{Term: term, Fields: fields, Operator: op}
}

func anyFieldSupportsOperator(model metadata.Model, fields []string, op reqparse.SearchOperator) bool {
	for _, name := range fields {
		field, ok := model.FieldByName(name)
		if !ok {
			continue
		}
		if fieldtypes.SupportsSearch(field.Type, fieldtypes.Operator(op)) {
			return true
		}
	}
	return false
}

// parseSearchTerm trims surrounding whitespace and collapses internal
// whitespace runs to single spaces, matching how search terms are compared
// against stored values.
func parseSearchTerm(term string) string {
	fields := strings.Fields(term)
	return strings.Join(fields, " ")
}

func (v *SearchValidator) dropField(modelName, field, reason string) {
	if v.log == nil {
		return
	}
	v.log.With("model", modelName, "field", field).Warn(fmt.Sprintf("dropped search field: %s", reason))
}

func (v *SearchValidator) dropOperator(modelName string, op reqparse.SearchOperator) {
	if v.log == nil {
		return
	}
	v.log.With("model", modelName, "operator", string(op)).Warn("search operator unsupported by any surviving field, falling back to contains")
}
