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

// Package validate implements the filter-criteria and search-engine
// validators (§4.4, §4.5): both intersect a parsed request against a
// model's field-capability catalog and silently drop anything the model
// does not support, logging each drop for observability rather than
// failing the request.
package validate

import (
	"fmt"

	"github.com/gravitycar/api-core/internal/corelog"
	"github.com/gravitycar/api-core/internal/fieldtypes"
	"github.com/gravitycar/api-core/internal/metadata"
	"github.com/gravitycar/api-core/internal/reqparse"
)

// SupportedFilter describes one field's filter capability, as exposed by
// getSupportedFilters for documentation and client introspection.
type SupportedFilter struct {
	Field     string
	Type      fieldtypes.Tag
	Operators []fieldtypes.Operator
}

// FilterValidator intersects requested filters against a model's catalog.
type FilterValidator struct {
	log *corelog.Logger
}

// NewFilterValidator builds a FilterValidator that logs drops via log. A nil
// log silences drop diagnostics.
func NewFilterValidator(log *corelog.Logger) *FilterValidator {
	return &FilterValidator{log: log}
}

// SupportedFilters returns the catalog of fields and operators a model
// accepts for filtering (§4.4 "getSupportedFilters"): persistent fields
// whose type carries at least one filter operator. Password fields are
// never included.
func SupportedFilters(model metadata.Model) []SupportedFilter {
	var out []SupportedFilter
	for _, f := range model.Fields {
		if !f.IsDBField || f.Type == fieldtypes.Password {
			continue
		}
		cap, ok := fieldtypes.For(f.Type)
		if !ok || len(cap.FilterOperators) == 0 {
			continue
		}
		ops := make([]fieldtypes.Operator, 0, len(cap.FilterOperators))
		for op := range cap.FilterOperators {
			ops = append(ops, op)
		}
		out = append(out, SupportedFilter{Field: f.Name, Type: f.Type, Operators: ops})
	}
	return out
}

// Validate drops every filter that does not pass the model's capability
// catalog: unknown field, non-persistent field, Password field, unsupported
// operator for the field's type, or (for Enum fields) a value outside the
// declared option set. Surviving filters have FieldType populated from the
// model. Every drop is logged at Warn, never surfaced to the caller as an
// error (§4.4 "silently drop, log for observability").
func (v *FilterValidator) Validate(model metadata.Model, filters []reqparse.Filter) []reqparse.Filter {
	var kept []reqparse.Filter
	for _, f := range filters {
		field, ok := model.FieldByName(f.Field)
		if !ok {
			v.drop(model.Name, f, "unknown field")
			continue
		}
		if !field.IsDBField {
			v.drop(model.Name, f, "non-persistent field")
			continue
		}
		if field.Type == fieldtypes.Password {
			v.drop(model.Name, f, "password fields are never filterable")
			continue
		}
		op := fieldtypes.Operator(f.Operator)
		if !fieldtypes.SupportsFilter(field.Type, op) {
			v.drop(model.Name, f, fmt.Sprintf("operator %q unsupported for type %s", f.Operator, field.Type))
			continue
		}
		if field.Type == fieldtypes.Enum && len(field.Options) > 0 {
			if !enumValueAllowed(field.Options, op, f.Value) {
				v.drop(model.Name, f, "value outside declared enum options")
				continue
			}
		}
		f.FieldType = string(field.Type)
		kept = append(kept, f)
	}
	return kept
}

func enumValueAllowed(options []string, op fieldtypes.Operator, value any) bool {
	switch op {
	case fieldtypes.OpIsNull, fieldtypes.OpIsNotNull:
		return true
	case fieldtypes.OpIn:
		values, ok := value.([]string)
		if !ok {
			if s, ok := value.(string); ok {
				values = []string{s}
			} else {
				return false
			}
		}
		for _, v := range values {
			if !contains(options, v) {
				return false
			}
		}
		return true
	default:
		s, ok := value.(string)
		if !ok {
			return false
		}
		return contains(options, s)
	}
}

func contains(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}

func (v *FilterValidator) drop(modelName string, f reqparse.Filter, reason string) {
	if v.log == nil {
		return
	}
	v.log.With("model", modelName, "field", f.Field, "operator", f.Operator).
		Warn(fmt.Sprintf("dropped filter: %s", reason))
}
