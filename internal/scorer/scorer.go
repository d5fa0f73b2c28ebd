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

// Package scorer implements the path scorer (§4.1): a pure function over two
// path-component sequences producing a numeric similarity, consumed by the
// route registry and router to pick the best matching route among literals
// and wildcards.
package scorer

import "strings"

// Wildcard is the single-segment token that matches any one path component.
const Wildcard = "?"

// SplitPath splits a path into its non-empty components. "" and "/" both
// yield the empty sequence.
func SplitPath(path string) []string {
	if path == "" || path == "/" {
		return nil
	}
	raw := strings.Split(path, "/")
	out := make([]string, 0, len(raw))
	for _, c := range raw {
		if c == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Score returns the similarity between a concrete client path and a
// registered path's components. It is 0 unless both sequences have equal
// length. Otherwise, for index i (0-based) of n components, the
// contribution is w(i)*m(i) where w(i) = n-i and m(i) is 2 for an exact
// literal match, 1 for a wildcard match, 0 otherwise.
func Score(clientComponents, registeredComponents []string) int {
	n := len(clientComponents)
	if n != len(registeredComponents) {
		return 0
	}
	score := 0
	for i := 0; i < n; i++ {
		w := n - i
		switch {
		case clientComponents[i] == registeredComponents[i]:
			score += w * 2
		case registeredComponents[i] == Wildcard:
			score += w * 1
		}
	}
	return score
}

// ScorePaths is a convenience wrapper that splits both raw paths before
// scoring.
func ScorePaths(clientPath, registeredPath string) int {
	return Score(SplitPath(clientPath), SplitPath(registeredPath))
}

// Candidate pairs a registered path's components with an opaque payload the
// caller wants to recover from BestMatch.
type Candidate[T any] struct {
	Components []string
	Value      T
}

// BestMatch returns the candidate with the highest score against client,
// breaking ties by earliest position in the slice. A zero score is not a
// match; BestMatch then returns the zero value and false.
func BestMatch[T any](client []string, candidates []Candidate[T]) (T, bool) {
	var best T
	bestScore := 0
	found := false
	for _, c := range candidates {
		s := Score(client, c.Components)
		if s > bestScore {
			bestScore = s
			best = c.Value
			found = true
		}
	}
	return best, found
}
