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

package rbac

import (
	"context"

	"github.com/gravitycar/api-core/internal/apierrors"
)

// Identity is the authenticated caller a TokenVerifier resolves a bearer
// token into.
type Identity struct {
	Subject string
	Roles   []string
}

// TokenVerifier is the seam where a real verifier (OIDC discovery + JWKS,
// a session store, an API-key table) plugs in. The router only depends on
// this interface, never on a concrete verification mechanism.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// StaticVerifier is a fixed token->identity table, suited to local
// development and tests. It never calls out to a network service.
type StaticVerifier struct {
	tokens map[string]Identity
}

// NewStaticVerifier builds a StaticVerifier from a fixed token table.
func NewStaticVerifier(tokens map[string]Identity) *StaticVerifier {
	return &StaticVerifier{tokens: tokens}
}

// Verify looks up token in the static table. An unknown or empty token is
// Unauthenticated, never silently anonymous.
func (v *StaticVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, apierrors.New(apierrors.Unauthenticated, "missing bearer token")
	}
	id, ok := v.tokens[token]
	if !ok {
		return Identity{}, apierrors.New(apierrors.Unauthenticated, "unrecognized bearer token")
	}
	return id, nil
}
