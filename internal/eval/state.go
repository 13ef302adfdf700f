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

// Package eval implements the expression and formula evaluators of spec.md
// §4.2 and §4.4: name/computed-name resolution, arithmetic/boolean/set/range
// folding, bigand/bigor generator instantiation, cardinality-constraint
// expansion and set-indexed proposition expansion.
package eval

import (
	"touist/internal/diag"
	"touist/internal/env"
)

// Config holds the driver options recognised by the evaluator (spec.md §6),
// passed explicitly rather than read from package globals, per Design Notes
// §9: this makes reentrant evaluation safe by construction.
type Config struct {
	// SMTMode permits arithmetic comparisons and numeric variables inside
	// formulas; formulas may retain linear-arithmetic nodes in the output.
	SMTMode bool
	// CheckOnly truncates Range to a singleton, truncates set iteration to
	// the first element, and expands cardinality constraints to a dummy
	// proposition. Set by the CLI's --check-only flag.
	CheckOnly bool
	// EmptyGeneratorIsFatal resolves the open question of spec.md §9: by
	// default a bigand/bigor over an empty set is a Warning yielding the
	// neutral element (Top/Bottom); set true to make it a Fatal ArityError
	// instead, matching the earlier revision's behavior.
	EmptyGeneratorIsFatal bool
}

// State is the explicit evaluation context threaded through every pass: the
// global environment (populated once from top-level Affects), the
// diagnostic sink, and the run's Config. A State must not be reused across
// concurrent evaluations (spec.md §5: reentrant evaluation is forbidden).
type State struct {
	Config Config
	Global *env.Global
	Sink   *diag.Sink
	// dummyCounter numbers the placeholder propositions synthesised for
	// cardinality constraints in check-only mode, so repeated constraints
	// within one run don't collide.
	dummyCounter int
}

// NewState constructs a fresh State with an empty global environment, ready
// to process top-level Affect declarations.
func NewState(cfg Config) *State {
	return &State{Config: cfg, Global: env.NewGlobal(), Sink: diag.NewSink()}
}
