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
package eval

import (
	"touist/internal/ast"
	"touist/internal/diag"
	"touist/internal/env"
)

// EvalTopLevel processes a translation unit, per spec.md §3/§4.4/§5: every
// top-level Affect is evaluated and written into the global environment
// first (in source order, later overwriting earlier), then every remaining
// top-level statement is evaluated as a formula and conjoined.
func (st *State) EvalTopLevel(code *ast.TouistCode) (ast.Node, error) {
	top := env.Env{Global: st.Global}

	for _, stmt := range code.Stmts {
		inner, _, _ := ast.Peel(stmt)

		affect, ok := inner.(*ast.Affect)
		if !ok {
			continue
		}

		v, err := st.evalExpr(affect.Value, top)
		if err != nil {
			return nil, err
		}

		_, span, hasLoc := ast.Peel(affect.Value)
		st.Global.Set(affect.Var, env.Binding{Value: v, Loc: span, HasLoc: hasLoc})
	}

	var formulas []ast.Node

	for _, stmt := range code.Stmts {
		inner, _, _ := ast.Peel(stmt)

		if _, ok := inner.(*ast.Affect); ok {
			continue
		}

		v, err := st.evalFormula(stmt, top)
		if err != nil {
			return nil, err
		}

		formulas = append(formulas, v)
	}

	if len(formulas) == 0 {
		return &ast.Top{}, nil
	}

	return foldConnective(true, formulas), nil
}

// evalFormula walks a formula-shaped node and returns a normalised formula:
// generators expanded, cardinality constraints expanded, Top/Bottom
// propagated eagerly, per spec.md §4.4.
func (st *State) evalFormula(n ast.Node, e env.Env) (ast.Node, error) {
	inner, span, hasLoc := ast.Peel(n)

	switch x := inner.(type) {
	case *ast.Top:
		return inner, nil

	case *ast.Bottom:
		return inner, nil

	case *ast.Prop:
		return inner, nil

	case *ast.UnexpProp:
		v, err := st.expandProp(x.Name, x.Indices, e, span, hasLoc)
		if err != nil {
			return nil, err
		}

		p, ok := v.(*ast.Prop)
		if !ok {
			return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc,
				"set-indexed proposition used directly as a formula leaf")
		}

		return p, nil

	case *ast.Var:
		return st.evalFormulaVar(x, e, span, hasLoc)

	case *ast.Not:
		v, err := st.evalFormula(x.X, e)
		if err != nil {
			return nil, err
		}

		switch v.(type) {
		case *ast.Top:
			return &ast.Bottom{}, nil
		case *ast.Bottom:
			return &ast.Top{}, nil
		default:
			return &ast.Not{X: v}, nil
		}

	case *ast.And:
		xv, err := st.evalFormula(x.X, e)
		if err != nil {
			return nil, err
		}

		yv, err := st.evalFormula(x.Y, e)
		if err != nil {
			return nil, err
		}

		if isBottom(xv) || isBottom(yv) {
			return &ast.Bottom{}, nil
		}

		if isTop(xv) {
			return yv, nil
		}

		if isTop(yv) {
			return xv, nil
		}

		return &ast.And{X: xv, Y: yv}, nil

	case *ast.Or:
		xv, err := st.evalFormula(x.X, e)
		if err != nil {
			return nil, err
		}

		yv, err := st.evalFormula(x.Y, e)
		if err != nil {
			return nil, err
		}

		if isTop(xv) || isTop(yv) {
			return &ast.Top{}, nil
		}

		if isBottom(xv) {
			return yv, nil
		}

		if isBottom(yv) {
			return xv, nil
		}

		return &ast.Or{X: xv, Y: yv}, nil

	case *ast.Implies:
		xv, err := st.evalFormula(x.X, e)
		if err != nil {
			return nil, err
		}

		yv, err := st.evalFormula(x.Y, e)
		if err != nil {
			return nil, err
		}

		if isBottom(xv) || isTop(yv) {
			return &ast.Top{}, nil
		}

		if isTop(xv) {
			return yv, nil
		}

		if isBottom(yv) {
			return &ast.Not{X: xv}, nil
		}

		return &ast.Implies{X: xv, Y: yv}, nil

	case *ast.Xor:
		xv, err := st.evalFormula(x.X, e)
		if err != nil {
			return nil, err
		}

		yv, err := st.evalFormula(x.Y, e)
		if err != nil {
			return nil, err
		}

		return &ast.Xor{X: xv, Y: yv}, nil

	case *ast.Equiv:
		xv, err := st.evalFormula(x.X, e)
		if err != nil {
			return nil, err
		}

		yv, err := st.evalFormula(x.Y, e)
		if err != nil {
			return nil, err
		}

		return &ast.Equiv{X: xv, Y: yv}, nil

	case *ast.If:
		cond, err := st.evalBool(x.Cond, e)
		if err != nil {
			return nil, err
		}

		if cond {
			return st.evalFormula(x.Then, e)
		}

		return st.evalFormula(x.Else, e)

	case *ast.Bigand:
		return st.evalGenerator(true, x.Vars, x.Sets, x.When, x.Body, e, span, hasLoc)

	case *ast.Bigor:
		return st.evalGenerator(false, x.Vars, x.Sets, x.When, x.Body, e, span, hasLoc)

	case *ast.Exact:
		return st.evalCardinality(exactKind, x.N, x.Set, e, span, hasLoc)

	case *ast.Atleast:
		return st.evalCardinality(atleastKind, x.N, x.Set, e, span, hasLoc)

	case *ast.Atmost:
		return st.evalCardinality(atmostKind, x.N, x.Set, e, span, hasLoc)

	case *ast.Let:
		v, err := st.evalExpr(x.Value, e)
		if err != nil {
			return nil, err
		}

		e2 := e.WithLocal(x.Var, env.Binding{Value: v, Loc: span, HasLoc: hasLoc})

		return st.evalFormula(x.Body, e2)

	case *ast.Eq, *ast.Neq, *ast.Lt, *ast.Leq, *ast.Gt, *ast.Geq:
		return st.evalFormulaComparison(inner, e, span, hasLoc)

	case *ast.Neg, *ast.Add, *ast.Sub, *ast.Mul, *ast.Div, *ast.Mod, *ast.Sqrt, *ast.ToInt, *ast.ToFloat, *ast.Abs:
		return st.evalFormulaArith(inner, e, span, hasLoc)

	default:
		return nil, st.Sink.Fatalf(diag.ShapeErrorKind, span, hasLoc, "unexpected node in formula position")
	}
}

func isTop(n ast.Node) bool {
	_, ok := n.(*ast.Top)
	return ok
}

func isBottom(n ast.Node) bool {
	_, ok := n.(*ast.Bottom)
	return ok
}

// evalFormulaVar expands a variable reference in formula position, per
// spec.md §4.4 items 1-2: a Prop-valued resolution is substituted directly;
// an Int/Float resolution is permitted only in smt-mode; failing direct
// resolution, the computed-name fallback retries with just the prefix,
// composing the indices onto whatever proposition name that resolves to.
func (st *State) evalFormulaVar(x *ast.Var, e env.Env, span ast.Span, hasLoc bool) (ast.Node, error) {
	name, err := st.expandVarName(x.Prefix, x.Indices, e)
	if err != nil {
		return nil, err
	}

	if b, ok := e.Resolve(name); ok {
		switch v := b.Value.(type) {
		case *ast.Prop:
			return v, nil
		case *ast.Int, *ast.Float:
			if st.Config.SMTMode {
				return v, nil
			}

			return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc,
				"variable %q holds a number, which is not valid in formula position outside smt-mode", name)
		default:
			return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc,
				"variable %q does not hold a proposition", name)
		}
	}

	if len(x.Indices) > 0 {
		if b2, ok := e.Resolve(x.Prefix); ok {
			if p, ok := b2.Value.(*ast.Prop); ok {
				v, err := st.expandProp(p.Name, x.Indices, e, span, hasLoc)
				if err != nil {
					return nil, err
				}

				if pr, ok := v.(*ast.Prop); ok {
					return pr, nil
				}

				return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc,
					"set-indexed computed proposition used directly as a formula leaf")
			}
		}
	}

	return nil, st.Sink.Fatalf(diag.NameErrorKind, span, hasLoc, "undeclared variable %q", name)
}

// tryFoldLiteral attempts to evaluate n as an expression using a scratch
// diagnostic sink, so a failed fold (expected whenever n is not yet fully
// literal) does not pollute the real diagnostic sink. It succeeds only when
// the result is an Int, Float or Bool.
func (st *State) tryFoldLiteral(n ast.Node, e env.Env) (ast.Node, bool) {
	scratch := diag.NewSink()
	saved := st.Sink
	st.Sink = scratch
	v, err := st.evalExpr(n, e)
	st.Sink = saved

	if err != nil {
		return nil, false
	}

	switch v.(type) {
	case *ast.Int, *ast.Float, *ast.Bool:
		return v, true
	default:
		return nil, false
	}
}

// evalFormulaArith folds an arithmetic node appearing directly in formula
// position when both operands reduce to numeric literals; otherwise, per
// spec.md §4.4 item 4, it is left structurally in place for an SMT back-end
// (and is a TypeError outside smt-mode).
func (st *State) evalFormulaArith(n ast.Node, e env.Env, span ast.Span, hasLoc bool) (ast.Node, error) {
	if v, ok := st.tryFoldLiteral(n, e); ok {
		return v, nil
	}

	if st.Config.SMTMode {
		return n, nil
	}

	return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "arithmetic expression requires smt-mode in formula position")
}

// evalFormulaComparison folds a comparison node appearing directly in
// formula position to Top/Bottom when it reduces to a literal boolean;
// otherwise (smt-mode only) it is left structurally in place.
func (st *State) evalFormulaComparison(n ast.Node, e env.Env, span ast.Span, hasLoc bool) (ast.Node, error) {
	if v, ok := st.tryFoldLiteral(n, e); ok {
		if b, ok := v.(*ast.Bool); ok {
			if b.Value {
				return &ast.Top{}, nil
			}

			return &ast.Bottom{}, nil
		}
	}

	if st.Config.SMTMode {
		return n, nil
	}

	return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "comparison expression requires smt-mode in formula position")
}
