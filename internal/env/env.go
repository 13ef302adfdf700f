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

// Package env implements the two-scope name resolution of spec.md §4.1: an
// immutable, stack-shaped local environment (populated by bigand/bigor/let
// bodies) and a mutable, map-shaped global environment (populated once per
// run from top-level Affect declarations). Local lookup always takes
// precedence over global lookup.
package env

import "touist/internal/ast"

// Binding pairs a resolved value with the location of the declaration (or
// reference) that produced it, for use in diagnostics.
type Binding struct {
	Value ast.Node
	Loc   ast.Span
	HasLoc bool
}

// entry is one frame of the local environment stack.
type entry struct {
	name string
	bind Binding
}

// Local is an immutable, most-recent-first stack of name bindings. The zero
// value is a valid empty environment. Local is passed by value: extending it
// (via Push) never mutates the caller's copy, mirroring the reference
// semantics of an argument-passed environment in spec.md §3.
type Local struct {
	frames []entry
}

// Push returns a new Local with (name, bind) shadowing any existing entry of
// the same name.
func (l Local) Push(name string, bind Binding) Local {
	nframes := make([]entry, len(l.frames)+1)
	copy(nframes, l.frames)
	nframes[len(l.frames)] = entry{name, bind}

	return Local{nframes}
}

// Lookup searches the local stack most-recent-first.
func (l Local) Lookup(name string) (Binding, bool) {
	for i := len(l.frames) - 1; i >= 0; i-- {
		if l.frames[i].name == name {
			return l.frames[i].bind, true
		}
	}

	return Binding{}, false
}

// Global is a mutable, hash-keyed environment populated once per translation
// run by processing every top-level Affect before formulas are evaluated.
// Later declarations (in source order) overwrite earlier ones with the same
// canonical name.
type Global struct {
	table map[string]Binding
}

// NewGlobal constructs an empty global environment.
func NewGlobal() *Global {
	return &Global{table: make(map[string]Binding)}
}

// Set writes (or overwrites) a binding, in source order.
func (g *Global) Set(name string, bind Binding) {
	g.table[name] = bind
}

// Lookup searches the global table.
func (g *Global) Lookup(name string) (Binding, bool) {
	b, ok := g.table[name]
	return b, ok
}

// Env bundles a Local and a Global for resolution: local is always tried
// first, per spec.md §3's invariant.
type Env struct {
	Local  Local
	Global *Global
}

// Resolve looks up name first in Local, then in Global.
func (e Env) Resolve(name string) (Binding, bool) {
	if b, ok := e.Local.Lookup(name); ok {
		return b, true
	}

	return e.Global.Lookup(name)
}

// WithLocal returns a copy of e with a new binding pushed onto Local.
func (e Env) WithLocal(name string, bind Binding) Env {
	return Env{Local: e.Local.Push(name, bind), Global: e.Global}
}
