// Copyright TouIST Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package diag implements the four-kind diagnostic taxonomy of spec.md §7:
// NameError, TypeError, ArityError and ShapeError, each carrying an optional
// source location, pushed to an append-only sink.
package diag

import (
	"fmt"

	"touist/internal/ast"
)

// Kind identifies the class of a diagnostic.
type Kind int

const (
	// NameErrorKind: a variable reference could not be resolved in either
	// environment.
	NameErrorKind Kind = iota
	// TypeErrorKind: an operator's operand(s) had an incompatible flavor.
	TypeErrorKind
	// ArityErrorKind: a bigand/bigor variable count did not match its set
	// count, or a generator over an empty set was configured to be fatal.
	ArityErrorKind
	// ShapeErrorKind: the AST was structurally invalid where a specific
	// node shape was expected. Should not occur with a well-formed parser.
	ShapeErrorKind
)

func (k Kind) String() string {
	switch k {
	case NameErrorKind:
		return "NameError"
	case TypeErrorKind:
		return "TypeError"
	case ArityErrorKind:
		return "ArityError"
	case ShapeErrorKind:
		return "ShapeError"
	default:
		return "Error"
	}
}

// Severity distinguishes diagnostics that abort the current pass from those
// that merely accumulate for later reporting.
type Severity int

const (
	// Warning diagnostics accumulate; evaluation continues.
	Warning Severity = iota
	// Fatal diagnostics abort the current top-level pass.
	Fatal
)

func (s Severity) String() string {
	if s == Fatal {
		return "error"
	}
	return "warning"
}

// Diagnostic is a single recorded issue.
type Diagnostic struct {
	Kind     Kind
	Severity Severity
	Message  string
	Loc      ast.Span
	HasLoc   bool
	// Detail optionally renders the offending sub-expression and its
	// resolved type, shown as an indented follow-up line.
	Detail string
}

// Error implements the error interface, formatting as
// file:start_line:start_col-end_col: severity: message
func (d Diagnostic) Error() string {
	var loc string

	if d.HasLoc {
		loc = fmt.Sprintf("%s:%d:%d-%d: ", d.Loc.Start.File, d.Loc.Start.Line, d.Loc.Start.Col, d.Loc.End.Col)
	}

	msg := fmt.Sprintf("%s%s: %s", loc, d.Severity, d.Message)
	if d.Detail != "" {
		msg += "\n\t" + d.Detail
	}

	return msg
}

// FatalError is returned up the call stack whenever a Fatal diagnostic is
// raised, so that Go's explicit error-return idiom can short-circuit the
// current pass. The diagnostic itself is simultaneously recorded in the Sink.
type FatalError struct{ Diagnostic Diagnostic }

func (e *FatalError) Error() string { return e.Diagnostic.Error() }

// Sink is an append-only collection of diagnostics produced during one
// evaluation run.
type Sink struct {
	diagnostics []Diagnostic
}

// NewSink constructs an empty sink.
func NewSink() *Sink {
	return &Sink{}
}

// Warn records a non-fatal diagnostic.
func (s *Sink) Warn(kind Kind, loc ast.Span, hasLoc bool, msg string, args ...any) {
	s.diagnostics = append(s.diagnostics, Diagnostic{
		Kind: kind, Severity: Warning, Message: fmt.Sprintf(msg, args...), Loc: loc, HasLoc: hasLoc,
	})
}

// Fatalf records a fatal diagnostic and returns it wrapped as an error, for
// the caller to propagate immediately.
func (s *Sink) Fatalf(kind Kind, loc ast.Span, hasLoc bool, msg string, args ...any) error {
	d := Diagnostic{Kind: kind, Severity: Fatal, Message: fmt.Sprintf(msg, args...), Loc: loc, HasLoc: hasLoc}
	s.diagnostics = append(s.diagnostics, d)

	return &FatalError{Diagnostic: d}
}

// All returns every diagnostic recorded so far, in emission order.
func (s *Sink) All() []Diagnostic {
	return s.diagnostics
}

// HasFatal reports whether any recorded diagnostic is Fatal.
func (s *Sink) HasFatal() bool {
	for _, d := range s.diagnostics {
		if d.Severity == Fatal {
			return true
		}
	}

	return false
}
