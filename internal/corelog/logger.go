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

// Package corelog provides centralized structured logging for the request
// resolution pipeline.
package corelog

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// Logger writes leveled, contextual log lines. The zero value is not usable;
// construct one with New.
type Logger struct {
	out    *log.Logger
	fields []string
}

// New creates a Logger writing to stderr, prefixed with the given component tag.
func New(component string) *Logger {
	return &Logger{out: log.New(os.Stderr, fmt.Sprintf("[%s] ", component), log.LstdFlags)}
}

// With returns a child Logger carrying additional key=value context that is
// appended to every subsequent line. The receiver is left unmodified.
func (l *Logger) With(kv ...string) *Logger {
	child := &Logger{out: l.out, fields: append(append([]string{}, l.fields...), kv...)}
	return child
}

func (l *Logger) line(level, msg string) string {
	var b strings.Builder
	b.WriteString(level)
	b.WriteString(": ")
	b.WriteString(msg)
	for i := 0; i+1 < len(l.fields); i += 2 {
		fmt.Fprintf(&b, " %s=%v", l.fields[i], l.fields[i+1])
	}
	return b.String()
}

// Info logs an informational message.
func (l *Logger) Info(msg string) { l.out.Print(l.line("INFO", msg)) }

// Warn logs a warning message.
func (l *Logger) Warn(msg string) { l.out.Print(l.line("WARN", msg)) }

// Error logs an error with context.
func (l *Logger) Error(context string, err error) {
	if err == nil {
		return
	}
	l.out.Print(l.line("ERROR", context+": "+err.Error()))
}

// Debug logs a debug-level message.
func (l *Logger) Debug(msg string) { l.out.Print(l.line("DEBUG", msg)) }
