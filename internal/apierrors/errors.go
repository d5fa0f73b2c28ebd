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

// Package apierrors models the pipeline's error taxonomy as a closed set of
// tagged variants (see Design Note "Error taxonomy via tagged variants").
// HTTP status is a pure function of the Kind.
package apierrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// Kind identifies one of the error variants the request-resolution pipeline
// can surface.
type Kind string

const (
	RouteNotFound         Kind = "route_not_found"
	InvalidRouteDefinition Kind = "invalid_route_definition"
	MissingParameter      Kind = "missing_parameter"
	BadRequest            Kind = "bad_request"
	Unauthenticated       Kind = "unauthenticated"
	Forbidden             Kind = "forbidden"
	HandlerError          Kind = "handler_error"
	RequestCanceled       Kind = "request_canceled"
	Internal              Kind = "internal"
)

// StatusFor maps an error Kind to its HTTP status code. Pure function, no
// dependency on the error's context.
func StatusFor(k Kind) int {
	switch k {
	case RouteNotFound:
		return http.StatusNotFound
	case InvalidRouteDefinition:
		return http.StatusInternalServerError
	case MissingParameter, BadRequest:
		return http.StatusBadRequest
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case HandlerError:
		return http.StatusInternalServerError
	case RequestCanceled:
		return 499
	default:
		return http.StatusInternalServerError
	}
}

// Error is the concrete error type carried through the pipeline. Context
// carries structured data (e.g. required_action) surfaced in the wire
// envelope when detailed errors are exposed.
type Error struct {
	Kind          Kind
	Message       string
	Context       map[string]any
	CorrelationID string
	Status        int
	cause         error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is/As.
func (e *Error) Unwrap() error { return e.cause }

// New builds an Error of the given Kind with an auto-assigned correlation ID.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Status: StatusFor(kind), CorrelationID: uuid.NewString()}
}

// Wrap attaches a Kind and message to an existing error, e.g. one surfaced
// by a handler or a collaborator.
func Wrap(kind Kind, message string, cause error) *Error {
	e := New(kind, message)
	e.cause = cause
	return e
}

// WithContext attaches structured context (e.g. {"required_action": "delete"})
// and returns the same Error for chaining.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = map[string]any{}
	}
	e.Context[key] = value
	return e
}

// WithStatus overrides the default status mapping, used when a HandlerError
// carries a more specific status (400/404/409/...) from its origin.
func (e *Error) WithStatus(status int) *Error {
	e.Status = status
	return e
}

// As attempts to view a generic error as an *Error, producing an Internal
// wrapper (status 500, message sanitized) when it isn't already one.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var target *Error
	if ok := errors.As(err, &target); ok {
		return target
	}
	return Wrap(Internal, "internal error", err)
}
