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

// Package ast defines the tagged-variant AST shared by every pass of the
// TouIST core: the expression/formula evaluator, the CNF converter and the
// clause emitter all operate over the Node interface defined here.
package ast

// Node is implemented by every AST constructor. It carries no behaviour of
// its own; passes type-switch over the concrete constructors below.
type Node interface {
	isNode()
}

// Pos identifies a single point in a source file, as produced by the
// (external) lexer/parser.
type Pos struct {
	Line   int
	Col    int
	Offset int
	File   string
}

// Span is a pair of positions bracketing a source construct.
type Span struct {
	Start Pos
	End   Pos
}

// Located wraps a node with its source span. Every non-leaf user-visible
// node produced by the parser is wrapped in a Located; passes peel it with
// Peel before pattern-matching and re-attach it (via the returned span) when
// reporting diagnostics.
type Located struct {
	X    Node
	Span Span
}

func (*Located) isNode() {}

// Paren is a transparent grouping node; it affects nothing semantically but
// is preserved so diagnostics can point at exactly what the user wrote.
type Paren struct{ X Node }

func (*Paren) isNode() {}

// Peel strips any chain of Located/Paren wrappers from n, returning the
// innermost node together with the span of the nearest enclosing Located
// wrapper (if any). Callers that need a location for a diagnostic should use
// the returned span; callers that don't care can ignore it.
func Peel(n Node) (inner Node, span Span, hasSpan bool) {
	for {
		switch v := n.(type) {
		case *Located:
			span = v.Span
			hasSpan = true
			n = v.X
		case *Paren:
			n = v.X
		default:
			return n, span, hasSpan
		}
	}
}

// ============================================================================
// Literals
// ============================================================================

// Int is an integer literal or value.
type Int struct{ Value int }

func (*Int) isNode() {}

// Float is a floating-point literal or value.
type Float struct{ Value float64 }

func (*Float) isNode() {}

// Bool is a boolean literal or value.
type Bool struct{ Value bool }

func (*Bool) isNode() {}

// Prop is a named, already-materialised proposition. It is both a value (in
// expression position) and a formula leaf (in formula position).
type Prop struct{ Name string }

func (*Prop) isNode() {}

// Top is the formula constant "true".
type Top struct{}

func (*Top) isNode() {}

// Bottom is the formula constant "false".
type Bottom struct{}

func (*Bottom) isNode() {}

// ============================================================================
// Variables and unexpanded propositions
// ============================================================================

// Var is a variable reference such as $v or $v(a,b). Indices is nil for an
// unparameterised reference.
type Var struct {
	Prefix  string
	Indices []Node
}

func (*Var) isNode() {}

// UnexpProp is a proposition reference awaiting index expansion, such as
// p(a,b,c) or the set-indexed p([a,b],c). It is never present once the
// formula evaluator has finished.
type UnexpProp struct {
	Name    string
	Indices []Node
}

func (*UnexpProp) isNode() {}

// ============================================================================
// Arithmetic
// ============================================================================

// Neg is unary arithmetic negation.
type Neg struct{ X Node }

func (*Neg) isNode() {}

// Add is binary addition.
type Add struct{ X, Y Node }

func (*Add) isNode() {}

// Sub is binary subtraction.
type Sub struct{ X, Y Node }

func (*Sub) isNode() {}

// Mul is binary multiplication.
type Mul struct{ X, Y Node }

func (*Mul) isNode() {}

// Div is binary division (integer-truncating on ints, IEEE-754 on floats).
type Div struct{ X, Y Node }

func (*Div) isNode() {}

// Mod is integer modulo.
type Mod struct{ X, Y Node }

func (*Mod) isNode() {}

// Sqrt is the square root conversion.
type Sqrt struct{ X Node }

func (*Sqrt) isNode() {}

// ToInt converts a float to an int.
type ToInt struct{ X Node }

func (*ToInt) isNode() {}

// ToFloat converts an int to a float.
type ToFloat struct{ X Node }

func (*ToFloat) isNode() {}

// Abs is absolute value.
type Abs struct{ X Node }

func (*Abs) isNode() {}

// ============================================================================
// Boolean / formula connectives
// ============================================================================

// Not is boolean/formula negation.
type Not struct{ X Node }

func (*Not) isNode() {}

// And is boolean/formula conjunction.
type And struct{ X, Y Node }

func (*And) isNode() {}

// Or is boolean/formula disjunction.
type Or struct{ X, Y Node }

func (*Or) isNode() {}

// Xor is boolean/formula exclusive-or.
type Xor struct{ X, Y Node }

func (*Xor) isNode() {}

// Implies is material implication.
type Implies struct{ X, Y Node }

func (*Implies) isNode() {}

// Equiv is material biconditional.
type Equiv struct{ X, Y Node }

func (*Equiv) isNode() {}

// If is a conditional expression; exactly one branch is evaluated.
type If struct{ Cond, Then, Else Node }

func (*If) isNode() {}

// ============================================================================
// Comparisons
// ============================================================================

// Eq is equality comparison.
type Eq struct{ X, Y Node }

func (*Eq) isNode() {}

// Neq is disequality comparison.
type Neq struct{ X, Y Node }

func (*Neq) isNode() {}

// Lt is strict less-than.
type Lt struct{ X, Y Node }

func (*Lt) isNode() {}

// Leq is less-than-or-equal.
type Leq struct{ X, Y Node }

func (*Leq) isNode() {}

// Gt is strict greater-than.
type Gt struct{ X, Y Node }

func (*Gt) isNode() {}

// Geq is greater-than-or-equal.
type Geq struct{ X, Y Node }

func (*Geq) isNode() {}

// ============================================================================
// Sets
// ============================================================================

// SetKind distinguishes the three concrete flavors of an evaluated set value
// (SetVal) plus the polymorphic empty set; see package values.
type SetKind int

const (
	// SetInt is a set of integers.
	SetInt SetKind = iota
	// SetFloat is a set of floats.
	SetFloat
	// SetProp is a set of proposition names.
	SetProp
	// SetEmptyPoly is the polymorphic empty set, resolved at each binary
	// set operation against the flavor of its sibling operand.
	SetEmptyPoly
)

// SetVal is the AST-level embedding of a fully-evaluated typed set value
// (e.g. the result of evaluating a set expression).
type SetVal struct {
	Kind  SetKind
	Ints  []int
	Flts  []float64
	Props []string
}

func (*SetVal) isNode() {}

// SetDecl constructs a set value from an explicit list of element
// expressions, e.g. [1,2,3].
type SetDecl struct{ Elems []Node }

func (*SetDecl) isNode() {}

// Range is the inclusive range constructor [a..b].
type Range struct{ Lo, Hi Node }

func (*Range) isNode() {}

// Union is set union.
type Union struct{ X, Y Node }

func (*Union) isNode() {}

// Inter is set intersection.
type Inter struct{ X, Y Node }

func (*Inter) isNode() {}

// Diff is set difference.
type Diff struct{ X, Y Node }

func (*Diff) isNode() {}

// Subset tests whether X is a subset of Y.
type Subset struct{ X, Y Node }

func (*Subset) isNode() {}

// In tests set membership: Elem is a member of Set.
type In struct{ Elem, Set Node }

func (*In) isNode() {}

// Card is set cardinality.
type Card struct{ X Node }

func (*Card) isNode() {}

// IsEmpty tests set emptiness.
type IsEmpty struct{ X Node }

func (*IsEmpty) isNode() {}

// ============================================================================
// Generators
// ============================================================================

// Bigand is the conjunctive generator: for each combination of elements
// drawn from Sets and bound to Vars (nested, the first variable varying
// slowest), evaluate Body (filtered by the optional When guard) and fold the
// results with And.
type Bigand struct {
	Vars []string
	Sets []Node
	When Node // nil if absent
	Body Node
}

func (*Bigand) isNode() {}

// Bigor is the disjunctive generator; same shape as Bigand but folds with Or.
type Bigor struct {
	Vars []string
	Sets []Node
	When Node
	Body Node
}

func (*Bigor) isNode() {}

// ============================================================================
// Bindings
// ============================================================================

// Let binds Var to the (evaluated) Value for the scope of Body.
type Let struct {
	Var   string
	Value Node
	Body  Node
}

func (*Let) isNode() {}

// Affect is a top-level assignment into the global environment.
type Affect struct {
	Var   string
	Value Node
}

func (*Affect) isNode() {}

// TouistCode is the top-level list of statements (Affects and formulas) that
// make up a translation unit.
type TouistCode struct{ Stmts []Node }

func (*TouistCode) isNode() {}

// ============================================================================
// Cardinality constraints
// ============================================================================

// Exact(N, Set) holds when exactly N elements of Set are true.
type Exact struct{ N, Set Node }

func (*Exact) isNode() {}

// Atleast(N, Set) holds when at least N elements of Set are true.
type Atleast struct{ N, Set Node }

func (*Atleast) isNode() {}

// Atmost(N, Set) holds when at most N elements of Set are true.
type Atmost struct{ N, Set Node }

func (*Atmost) isNode() {}
