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

// Package cnf implements the Tseytin-style CNF converter of spec.md §4.8: a
// bottom-up rewrite from a pure propositional formula (Prop, Not, And, Or,
// Implies, Equiv, Xor, Top, Bottom) to a conjunction of disjunctions of
// literals, introducing fresh auxiliary propositions to keep the result
// linear in the size of the input, following the recursive context-threading
// rewrite style of pkg/corset/compiler/typing.go.
package cnf

import (
	"fmt"

	"touist/internal/ast"
)

// Converter holds the fresh auxiliary-proposition counter for one CNF pass.
// Per spec.md §5, this counter is process-local and reset at the start of
// every pass; a Converter must not be reused across unrelated formulas.
type Converter struct {
	counter int
}

// NewConverter returns a converter with its fresh-name counter reset.
func NewConverter() *Converter {
	return &Converter{}
}

// ToCNF converts a pure propositional formula to CNF. The caller is
// responsible for ensuring f contains no UnexpProp, Var, generators,
// cardinality constraints or other constructs the expression/formula
// evaluator is responsible for eliminating first.
func (c *Converter) ToCNF(f ast.Node) (ast.Node, error) {
	out, err := c.convert(f)
	if err != nil {
		return nil, err
	}

	// Defensive re-pass: the rewrites below already propagate Top/Bottom
	// out of every non-root position, but a second pass is cheap insurance
	// per spec.md §4.8's explicit "re-apply once" instruction.
	if hasNestedConstant(out) {
		out, err = c.convert(out)
		if err != nil {
			return nil, err
		}
	}

	return c.encodeRootConstant(out), nil
}

// convert is the bottom-up rewrite. It assumes its input is built only from
// the nine node kinds named in spec.md §4.8's input contract.
func (c *Converter) convert(n ast.Node) (ast.Node, error) {
	switch x := n.(type) {
	case *ast.Prop:
		return x, nil

	case *ast.Top:
		return x, nil

	case *ast.Bottom:
		return x, nil

	case *ast.Not:
		return c.convertNot(x.X)

	case *ast.And:
		xc, err := c.convert(x.X)
		if err != nil {
			return nil, err
		}

		yc, err := c.convert(x.Y)
		if err != nil {
			return nil, err
		}

		return simplifyAnd(xc, yc), nil

	case *ast.Or:
		xc, err := c.convert(x.X)
		if err != nil {
			return nil, err
		}

		yc, err := c.convert(x.Y)
		if err != nil {
			return nil, err
		}

		return c.combineOr(xc, yc)

	case *ast.Implies:
		return c.convert(&ast.Or{X: &ast.Not{X: x.X}, Y: x.Y})

	case *ast.Equiv:
		return c.convert(&ast.And{
			X: &ast.Implies{X: x.X, Y: x.Y},
			Y: &ast.Implies{X: x.Y, Y: x.X},
		})

	case *ast.Xor:
		return c.convert(&ast.And{
			X: &ast.Or{X: x.X, Y: x.Y},
			Y: &ast.Or{X: &ast.Not{X: x.X}, Y: &ast.Not{X: x.Y}},
		})

	default:
		return nil, fmt.Errorf("cnf: unexpected node of type %T in formula position", n)
	}
}

// convertNot pushes a negation inward via De Morgan and double-negation
// elimination, then converts the result.
func (c *Converter) convertNot(x ast.Node) (ast.Node, error) {
	switch v := x.(type) {
	case *ast.Not:
		return c.convert(v.X)

	case *ast.Top:
		return &ast.Bottom{}, nil

	case *ast.Bottom:
		return &ast.Top{}, nil

	case *ast.Prop:
		return &ast.Not{X: v}, nil

	case *ast.And:
		return c.convert(&ast.Or{X: &ast.Not{X: v.X}, Y: &ast.Not{X: v.Y}})

	case *ast.Or:
		return c.convert(&ast.And{X: &ast.Not{X: v.X}, Y: &ast.Not{X: v.Y}})

	case *ast.Implies:
		return c.convert(&ast.And{X: v.X, Y: &ast.Not{X: v.Y}})

	case *ast.Equiv:
		return c.convert(&ast.Xor{X: v.X, Y: v.Y})

	case *ast.Xor:
		return c.convert(&ast.Equiv{X: v.X, Y: v.Y})

	default:
		return nil, fmt.Errorf("cnf: unexpected node of type %T under negation", x)
	}
}

// simplifyAnd applies the non-root Top/Bottom identities for conjunction.
func simplifyAnd(xc, yc ast.Node) ast.Node {
	if isBottom(xc) || isBottom(yc) {
		return &ast.Bottom{}
	}

	if isTop(xc) {
		return yc
	}

	if isTop(yc) {
		return xc
	}

	return &ast.And{X: xc, Y: yc}
}

// combineOr applies the non-root Top/Bottom identities for disjunction,
// then push_lit when one side is a literal, falling back to Tseytin
// encoding when both sides are themselves non-trivial CNF.
func (c *Converter) combineOr(xc, yc ast.Node) (ast.Node, error) {
	if isTop(xc) || isTop(yc) {
		return &ast.Top{}, nil
	}

	if isBottom(xc) {
		return yc, nil
	}

	if isBottom(yc) {
		return xc, nil
	}

	if isLiteral(xc) {
		return pushLit(xc, yc), nil
	}

	if isLiteral(yc) {
		return pushLit(yc, xc), nil
	}

	return c.tseytinOr(xc, yc), nil
}

// pushLit implements the push_lit operation of spec.md §4.8: l ∨ c, where c
// is CNF, distributes l into every conjunct of c.
func pushLit(l, c ast.Node) ast.Node {
	if a, ok := c.(*ast.And); ok {
		return &ast.And{X: pushLit(l, a.X), Y: pushLit(l, a.Y)}
	}

	return &ast.Or{X: l, Y: c}
}

// tseytinOr implements the Tseytin encoding of spec.md §4.8 for Or(x, y)
// where neither x nor y is a single literal: two fresh auxiliaries α, β are
// introduced, yielding (α ∨ β) ∧ (¬α ∨ x) ∧ (¬β ∨ y) with the negated
// auxiliary pushed into every clause of x and y respectively.
func (c *Converter) tseytinOr(x, y ast.Node) ast.Node {
	alpha := c.fresh()
	beta := c.fresh()

	xReified := pushLit(&ast.Not{X: alpha}, x)
	yReified := pushLit(&ast.Not{X: beta}, y)

	return &ast.And{
		X: &ast.And{X: &ast.Or{X: alpha, Y: beta}, Y: xReified},
		Y: yReified,
	}
}

// fresh allocates a new Tseytin auxiliary proposition, named "&<n>" per
// spec.md §3 so it can never collide with a user-declared name.
func (c *Converter) fresh() *ast.Prop {
	c.counter++
	return &ast.Prop{Name: fmt.Sprintf("&%d", c.counter)}
}

// encodeRootConstant encodes a root-level Top or Bottom using a fresh
// auxiliary, since DIMACS has no way to express the constants directly.
func (c *Converter) encodeRootConstant(n ast.Node) ast.Node {
	if isTop(n) {
		a := c.fresh()
		return &ast.Or{X: a, Y: &ast.Not{X: a}}
	}

	if isBottom(n) {
		a := c.fresh()
		return &ast.And{X: a, Y: &ast.Not{X: a}}
	}

	return n
}

func isTop(n ast.Node) bool {
	_, ok := n.(*ast.Top)
	return ok
}

func isBottom(n ast.Node) bool {
	_, ok := n.(*ast.Bottom)
	return ok
}

// isLiteral reports whether n is a Prop or the negation of a Prop.
func isLiteral(n ast.Node) bool {
	switch v := n.(type) {
	case *ast.Prop:
		return true
	case *ast.Not:
		_, ok := v.X.(*ast.Prop)
		return ok
	default:
		return false
	}
}

// hasNestedConstant reports whether Top or Bottom occurs anywhere below the
// root of n.
func hasNestedConstant(n ast.Node) bool {
	switch v := n.(type) {
	case *ast.And:
		return containsConstant(v.X) || containsConstant(v.Y)
	case *ast.Or:
		return containsConstant(v.X) || containsConstant(v.Y)
	case *ast.Not:
		return containsConstant(v.X)
	default:
		return false
	}
}

func containsConstant(n ast.Node) bool {
	switch v := n.(type) {
	case *ast.Top, *ast.Bottom:
		return true
	case *ast.And:
		return containsConstant(v.X) || containsConstant(v.Y)
	case *ast.Or:
		return containsConstant(v.X) || containsConstant(v.Y)
	case *ast.Not:
		return containsConstant(v.X)
	default:
		return false
	}
}
