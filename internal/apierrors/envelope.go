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

package apierrors

import "time"

// Envelope is the wire shape for every failed response, per §4.9/§7:
// {success:false, status, error:{message,type,code,context?}, timestamp}.
type Envelope struct {
	Success   bool           `json:"success"`
	Status    int            `json:"status"`
	Error     EnvelopeError  `json:"error"`
	Timestamp string         `json:"timestamp"`
}

// EnvelopeError carries the user-facing error description.
type EnvelopeError struct {
	Message string         `json:"message"`
	Type    string         `json:"type"`
	Code    string         `json:"code"`
	Context map[string]any `json:"context,omitempty"`
}

// ToEnvelope renders err as the wire error envelope. When exposeDetails is
// false, the message is replaced with a generic, sanitized description for
// Internal and HandlerError kinds and Context is dropped — no stack traces
// or internal details ever leave the process in that mode.
func ToEnvelope(err error, exposeDetails bool) Envelope {
	e := As(err)
	msg := e.Message
	ctx := e.Context
	if !exposeDetails && (e.Kind == Internal || e.Kind == HandlerError) {
		msg = "an internal error occurred"
		ctx = nil
	}
	return Envelope{
		Success: false,
		Status:  e.Status,
		Error: EnvelopeError{
			Message: msg,
			Type:    string(e.Kind),
			Code:    e.CorrelationID,
			Context: ctx,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
