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

package reqparse

import "github.com/gravitycar/api-core/internal/corelog"

// Parser is implemented by every format-specific parser (Design Note
// "Polymorphic parsers"): an applicability predicate and a transform, plus
// a name used for Meta.SourceParser and logging.
type Parser interface {
	CanHandle(raw RawParams) bool
	Parse(raw RawParams) ParsedRequest
	FormatName() string
}

// Dispatcher tries parsers in priority order and returns the first
// applicable one's result (§4.3.5). Simple always matches, so Dispatcher
// never fails to produce a ParsedRequest.
type Dispatcher struct {
	parsers []Parser
	log     *corelog.Logger
}

// NewDispatcher builds the default dispatch chain: AG-Grid > MUI >
// structured > simple (§8 "Parser detection priority").
func NewDispatcher(log *corelog.Logger) *Dispatcher {
	return &Dispatcher{
		parsers: []Parser{
			AGGridParser{},
			MUIParser{},
			StructuredParser{},
			SimpleParser{},
		},
		log: log,
	}
}

// Dispatch selects the highest-priority applicable parser and returns its
// normalized result, with Meta populated from the chosen parser and the
// original raw parameter count.
func (d *Dispatcher) Dispatch(raw RawParams) ParsedRequest {
	for _, p := range d.parsers {
		if p.CanHandle(raw) {
			parsed := p.Parse(raw)
			clamped := parsed.Meta.PageSizeClamped
			parsed.Meta.DetectedFormat = p.FormatName()
			parsed.Meta.SourceParser = p.FormatName()
			parsed.Meta.OriginalParamCount = len(raw)
			parsed.Meta.PageSizeClamped = clamped
			if clamped && d.log != nil {
				d.log.Warn("page size clamped to maximum")
			}
			return parsed
		}
	}
	// SimpleParser.CanHandle always returns true, so this is unreachable,
	// but fail soft rather than panic if the chain is ever reconfigured.
	parsed := SimpleParser{}.Parse(raw)
	parsed.Meta.DetectedFormat = "simple"
	parsed.Meta.SourceParser = "simple"
	parsed.Meta.OriginalParamCount = len(raw)
	return parsed
}
