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
	"math"

	"touist/internal/ast"
	"touist/internal/diag"
	"touist/internal/env"
	"touist/internal/values"
)

// evalExpr folds a node expected to evaluate to a scalar/set value,
// returning a value-shaped node (Int, Float, Bool, Prop or SetVal). On a
// type mismatch it emits a TypeError at the (peeled) location of n.
func (st *State) evalExpr(n ast.Node, e env.Env) (ast.Node, error) {
	inner, span, hasLoc := ast.Peel(n)

	switch x := inner.(type) {
	case *ast.Int, *ast.Float, *ast.Bool, *ast.Prop, *ast.SetVal:
		return inner, nil

	case *ast.Var:
		name, err := st.expandVarName(x.Prefix, x.Indices, e)
		if err != nil {
			return nil, err
		}

		b, err := st.resolve(name, e, span, hasLoc)
		if err != nil {
			return nil, err
		}

		return b.Value, nil

	case *ast.Neg:
		return st.evalArithUnary(x.X, e, span, hasLoc, func(v int) int { return -v }, func(v float64) float64 { return -v })

	case *ast.Add:
		return st.evalArithBinary(x.X, x.Y, e, span, hasLoc, "+", func(a, b int) int { return a + b }, func(a, b float64) float64 { return a + b })

	case *ast.Sub:
		return st.evalArithBinary(x.X, x.Y, e, span, hasLoc, "-", func(a, b int) int { return a - b }, func(a, b float64) float64 { return a - b })

	case *ast.Mul:
		return st.evalArithBinary(x.X, x.Y, e, span, hasLoc, "*", func(a, b int) int { return a * b }, func(a, b float64) float64 { return a * b })

	case *ast.Div:
		return st.evalDiv(x.X, x.Y, e, span, hasLoc)

	case *ast.Mod:
		return st.evalMod(x.X, x.Y, e, span, hasLoc)

	case *ast.Sqrt:
		return st.evalFloatUnary(x.X, e, span, hasLoc, math.Sqrt)

	case *ast.Abs:
		return st.evalArithUnary(x.X, e, span, hasLoc, func(v int) int {
			if v < 0 {
				return -v
			}
			return v
		}, math.Abs)

	case *ast.ToInt:
		v, err := st.evalExpr(x.X, e)
		if err != nil {
			return nil, err
		}

		f, ok := v.(*ast.Float)
		if !ok {
			return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "to_int expects a float operand")
		}

		return &ast.Int{Value: int(f.Value)}, nil

	case *ast.ToFloat:
		v, err := st.evalExpr(x.X, e)
		if err != nil {
			return nil, err
		}

		i, ok := v.(*ast.Int)
		if !ok {
			return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "to_float expects an int operand")
		}

		return &ast.Float{Value: float64(i.Value)}, nil

	case *ast.Not:
		b, err := st.evalBool(x.X, e)
		if err != nil {
			return nil, err
		}

		return &ast.Bool{Value: !b}, nil

	case *ast.And:
		return st.evalBoolBinary(x.X, x.Y, e, func(a, b bool) bool { return a && b })

	case *ast.Or:
		return st.evalBoolBinary(x.X, x.Y, e, func(a, b bool) bool { return a || b })

	case *ast.Xor:
		return st.evalBoolBinary(x.X, x.Y, e, func(a, b bool) bool { return a != b })

	case *ast.Implies:
		return st.evalBoolBinary(x.X, x.Y, e, func(a, b bool) bool { return !a || b })

	case *ast.Equiv:
		return st.evalBoolBinary(x.X, x.Y, e, func(a, b bool) bool { return a == b })

	case *ast.If:
		cond, err := st.evalBool(x.Cond, e)
		if err != nil {
			return nil, err
		}

		if cond {
			return st.evalExpr(x.Then, e)
		}

		return st.evalExpr(x.Else, e)

	case *ast.Eq:
		return st.evalCompareEq(x.X, x.Y, e, span, hasLoc, true)

	case *ast.Neq:
		return st.evalCompareEq(x.X, x.Y, e, span, hasLoc, false)

	case *ast.Lt:
		return st.evalOrder(x.X, x.Y, e, span, hasLoc, func(a, b int) bool { return a < b }, func(a, b float64) bool { return a < b })

	case *ast.Leq:
		return st.evalOrder(x.X, x.Y, e, span, hasLoc, func(a, b int) bool { return a <= b }, func(a, b float64) bool { return a <= b })

	case *ast.Gt:
		return st.evalOrder(x.X, x.Y, e, span, hasLoc, func(a, b int) bool { return a > b }, func(a, b float64) bool { return a > b })

	case *ast.Geq:
		return st.evalOrder(x.X, x.Y, e, span, hasLoc, func(a, b int) bool { return a >= b }, func(a, b float64) bool { return a >= b })

	case *ast.Range:
		return st.evalRange(x.Lo, x.Hi, e, span, hasLoc)

	case *ast.SetDecl:
		return st.evalSetDecl(x.Elems, e, span, hasLoc)

	case *ast.Union:
		return st.evalSetBinary(x.X, x.Y, e, span, hasLoc, values.Union)

	case *ast.Inter:
		return st.evalSetBinary(x.X, x.Y, e, span, hasLoc, values.Inter)

	case *ast.Diff:
		return st.evalSetBinary(x.X, x.Y, e, span, hasLoc, values.Diff)

	case *ast.Subset:
		return st.evalSetPredicate(x.X, x.Y, e, span, hasLoc, values.Subset)

	case *ast.In:
		return st.evalIn(x.Elem, x.Set, e, span, hasLoc)

	case *ast.Card:
		s, err := st.evalSet(x.X, e, span, hasLoc)
		if err != nil {
			return nil, err
		}

		return &ast.Int{Value: s.Card()}, nil

	case *ast.IsEmpty:
		s, err := st.evalSet(x.X, e, span, hasLoc)
		if err != nil {
			return nil, err
		}

		return &ast.Bool{Value: s.IsEmpty()}, nil

	case *ast.UnexpProp:
		return st.expandProp(x.Name, x.Indices, e, span, hasLoc)

	default:
		return nil, st.Sink.Fatalf(diag.ShapeErrorKind, span, hasLoc, "unexpected node in expression position")
	}
}

func (st *State) evalBool(n ast.Node, e env.Env) (bool, error) {
	v, err := st.evalExpr(n, e)
	if err != nil {
		return false, err
	}

	b, ok := v.(*ast.Bool)
	if !ok {
		_, span, hasLoc := ast.Peel(n)
		return false, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "expected a boolean value")
	}

	return b.Value, nil
}

func (st *State) evalBoolBinary(xn, yn ast.Node, e env.Env, fn func(a, b bool) bool) (ast.Node, error) {
	a, err := st.evalBool(xn, e)
	if err != nil {
		return nil, err
	}

	b, err := st.evalBool(yn, e)
	if err != nil {
		return nil, err
	}

	return &ast.Bool{Value: fn(a, b)}, nil
}

func (st *State) evalArithUnary(xn ast.Node, e env.Env, span ast.Span, hasLoc bool, onInt func(int) int, onFloat func(float64) float64) (ast.Node, error) {
	v, err := st.evalExpr(xn, e)
	if err != nil {
		return nil, err
	}

	switch n := v.(type) {
	case *ast.Int:
		return &ast.Int{Value: onInt(n.Value)}, nil
	case *ast.Float:
		return &ast.Float{Value: onFloat(n.Value)}, nil
	default:
		return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "expected a numeric operand")
	}
}

func (st *State) evalFloatUnary(xn ast.Node, e env.Env, span ast.Span, hasLoc bool, fn func(float64) float64) (ast.Node, error) {
	v, err := st.evalExpr(xn, e)
	if err != nil {
		return nil, err
	}

	f, ok := v.(*ast.Float)
	if !ok {
		return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "sqrt expects a float operand")
	}

	return &ast.Float{Value: fn(f.Value)}, nil
}

func (st *State) evalArithBinary(xn, yn ast.Node, e env.Env, span ast.Span, hasLoc bool, op string,
	onInt func(a, b int) int, onFloat func(a, b float64) float64) (ast.Node, error) {
	x, err := st.evalExpr(xn, e)
	if err != nil {
		return nil, err
	}

	y, err := st.evalExpr(yn, e)
	if err != nil {
		return nil, err
	}

	switch a := x.(type) {
	case *ast.Int:
		b, ok := y.(*ast.Int)
		if !ok {
			return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "mixed int/float operands to %q", op)
		}

		return &ast.Int{Value: onInt(a.Value, b.Value)}, nil
	case *ast.Float:
		b, ok := y.(*ast.Float)
		if !ok {
			return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "mixed int/float operands to %q", op)
		}

		return &ast.Float{Value: onFloat(a.Value, b.Value)}, nil
	default:
		return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "expected numeric operands to %q", op)
	}
}

func (st *State) evalDiv(xn, yn ast.Node, e env.Env, span ast.Span, hasLoc bool) (ast.Node, error) {
	x, err := st.evalExpr(xn, e)
	if err != nil {
		return nil, err
	}

	y, err := st.evalExpr(yn, e)
	if err != nil {
		return nil, err
	}

	switch a := x.(type) {
	case *ast.Int:
		b, ok := y.(*ast.Int)
		if !ok {
			return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "mixed int/float operands to \"/\"")
		}

		if b.Value == 0 {
			return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "division by zero")
		}

		return &ast.Int{Value: a.Value / b.Value}, nil
	case *ast.Float:
		b, ok := y.(*ast.Float)
		if !ok {
			return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "mixed int/float operands to \"/\"")
		}

		return &ast.Float{Value: a.Value / b.Value}, nil
	default:
		return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "expected numeric operands to \"/\"")
	}
}

func (st *State) evalMod(xn, yn ast.Node, e env.Env, span ast.Span, hasLoc bool) (ast.Node, error) {
	x, err := st.evalExpr(xn, e)
	if err != nil {
		return nil, err
	}

	y, err := st.evalExpr(yn, e)
	if err != nil {
		return nil, err
	}

	a, aok := x.(*ast.Int)
	b, bok := y.(*ast.Int)

	if !aok || !bok {
		return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "mod requires integer operands")
	}

	if b.Value == 0 {
		return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "modulo by zero")
	}

	return &ast.Int{Value: a.Value % b.Value}, nil
}

func (st *State) evalOrder(xn, yn ast.Node, e env.Env, span ast.Span, hasLoc bool,
	onInt func(a, b int) bool, onFloat func(a, b float64) bool) (ast.Node, error) {
	x, err := st.evalExpr(xn, e)
	if err != nil {
		return nil, err
	}

	y, err := st.evalExpr(yn, e)
	if err != nil {
		return nil, err
	}

	switch a := x.(type) {
	case *ast.Int:
		b, ok := y.(*ast.Int)
		if !ok {
			return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "comparing int to non-int")
		}

		return &ast.Bool{Value: onInt(a.Value, b.Value)}, nil
	case *ast.Float:
		b, ok := y.(*ast.Float)
		if !ok {
			return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "comparing float to non-float")
		}

		return &ast.Bool{Value: onFloat(a.Value, b.Value)}, nil
	default:
		return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "ordering comparison requires numeric operands")
	}
}

// evalCompareEq implements Equal/Not_equal: numeric, proposition-name and
// set-flavor equality, as spec.md §4.2 describes. Comparing int to float is
// a type error (no implicit promotion).
func (st *State) evalCompareEq(xn, yn ast.Node, e env.Env, span ast.Span, hasLoc bool, wantEqual bool) (ast.Node, error) {
	x, err := st.evalExpr(xn, e)
	if err != nil {
		return nil, err
	}

	y, err := st.evalExpr(yn, e)
	if err != nil {
		return nil, err
	}

	var eq bool

	switch a := x.(type) {
	case *ast.Int:
		b, ok := y.(*ast.Int)
		if !ok {
			return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "comparing int to non-int")
		}

		eq = a.Value == b.Value
	case *ast.Float:
		b, ok := y.(*ast.Float)
		if !ok {
			return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "comparing float to non-float")
		}

		eq = a.Value == b.Value
	case *ast.Bool:
		b, ok := y.(*ast.Bool)
		if !ok {
			return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "comparing bool to non-bool")
		}

		eq = a.Value == b.Value
	case *ast.Prop:
		b, ok := y.(*ast.Prop)
		if !ok {
			return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "comparing proposition to non-proposition")
		}

		eq = a.Name == b.Name
	case *ast.SetVal:
		xs := setValToSet(a)
		ys, ok := y.(*ast.SetVal)
		if !ok {
			return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "comparing set to non-set")
		}

		xs = values.Promote(xs, setValToSet(ys))
		ySet := values.Promote(setValToSet(ys), xs)

		eq, err = values.Equal(xs, ySet)
		if err != nil {
			return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "%s", err)
		}
	default:
		return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "unsupported operand type for comparison")
	}

	if !wantEqual {
		eq = !eq
	}

	return &ast.Bool{Value: eq}, nil
}

func (st *State) evalRange(lon, hin ast.Node, e env.Env, span ast.Span, hasLoc bool) (ast.Node, error) {
	lo, err := st.evalExpr(lon, e)
	if err != nil {
		return nil, err
	}

	hi, err := st.evalExpr(hin, e)
	if err != nil {
		return nil, err
	}

	switch a := lo.(type) {
	case *ast.Int:
		b, ok := hi.(*ast.Int)
		if !ok {
			return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "mixed int/float bounds in range")
		}

		if st.Config.CheckOnly {
			return setFromInts(values.NewIntSet(a.Value)), nil
		}

		var elems []int
		for v := a.Value; v <= b.Value; v++ {
			elems = append(elems, v)
		}

		return setFromInts(values.NewIntSet(elems...)), nil
	case *ast.Float:
		b, ok := hi.(*ast.Float)
		if !ok {
			return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "mixed int/float bounds in range")
		}

		if st.Config.CheckOnly {
			return setFromFloats(values.NewFloatSet(a.Value)), nil
		}

		var elems []float64
		for v := a.Value; v <= a.Value+math.Floor(b.Value-a.Value); v += 1.0 {
			elems = append(elems, v)
		}

		return setFromFloats(values.NewFloatSet(elems...)), nil
	default:
		return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "range bounds must be numeric")
	}
}

func (st *State) evalSetDecl(elemNodes []ast.Node, e env.Env, span ast.Span, hasLoc bool) (ast.Node, error) {
	if len(elemNodes) == 0 {
		return &ast.SetVal{Kind: ast.SetEmptyPoly}, nil
	}

	var ints []int
	var floats []float64
	var props []string
	kind := -1

	for _, en := range elemNodes {
		v, err := st.evalExpr(en, e)
		if err != nil {
			return nil, err
		}

		switch n := v.(type) {
		case *ast.Int:
			if kind != -1 && kind != int(ast.SetInt) {
				return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "set literal has mixed element types")
			}
			kind = int(ast.SetInt)
			ints = append(ints, n.Value)
		case *ast.Float:
			if kind != -1 && kind != int(ast.SetFloat) {
				return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "set literal has mixed element types")
			}
			kind = int(ast.SetFloat)
			floats = append(floats, n.Value)
		case *ast.Prop:
			if kind != -1 && kind != int(ast.SetProp) {
				return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "set literal has mixed element types")
			}
			kind = int(ast.SetProp)
			props = append(props, n.Name)
		default:
			return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "set elements must be int, float or proposition")
		}
	}

	switch ast.SetKind(kind) {
	case ast.SetInt:
		return setFromInts(values.NewIntSet(ints...)), nil
	case ast.SetFloat:
		return setFromFloats(values.NewFloatSet(floats...)), nil
	default:
		return setFromProps(values.NewPropSet(props...)), nil
	}
}

func (st *State) evalSet(n ast.Node, e env.Env, span ast.Span, hasLoc bool) (values.Set, error) {
	v, err := st.evalExpr(n, e)
	if err != nil {
		return nil, err
	}

	sv, ok := v.(*ast.SetVal)
	if !ok {
		return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "expected a set value")
	}

	return setValToSet(sv), nil
}

func (st *State) evalSetBinary(xn, yn ast.Node, e env.Env, span ast.Span, hasLoc bool,
	op func(x, y values.Set) (values.Set, error)) (ast.Node, error) {
	xs, err := st.evalSet(xn, e, span, hasLoc)
	if err != nil {
		return nil, err
	}

	ys, err := st.evalSet(yn, e, span, hasLoc)
	if err != nil {
		return nil, err
	}

	xs, ys = values.Promote(xs, ys), values.Promote(ys, xs)

	result, err := op(xs, ys)
	if err != nil {
		return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "%s", err)
	}

	return setFromValues(result), nil
}

func (st *State) evalSetPredicate(xn, yn ast.Node, e env.Env, span ast.Span, hasLoc bool,
	pred func(x, y values.Set) (bool, error)) (ast.Node, error) {
	xs, err := st.evalSet(xn, e, span, hasLoc)
	if err != nil {
		return nil, err
	}

	ys, err := st.evalSet(yn, e, span, hasLoc)
	if err != nil {
		return nil, err
	}

	xs, ys = values.Promote(xs, ys), values.Promote(ys, xs)

	ok, err := pred(xs, ys)
	if err != nil {
		return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "%s", err)
	}

	return &ast.Bool{Value: ok}, nil
}

func (st *State) evalIn(elemn, setn ast.Node, e env.Env, span ast.Span, hasLoc bool) (ast.Node, error) {
	elem, err := st.evalExpr(elemn, e)
	if err != nil {
		return nil, err
	}

	s, err := st.evalSet(setn, e, span, hasLoc)
	if err != nil {
		return nil, err
	}

	switch v := elem.(type) {
	case *ast.Int:
		is, ok := values.Promote(s, values.NewIntSet()).(*values.IntSet)
		if !ok {
			return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "membership element flavor does not match set flavor")
		}

		return &ast.Bool{Value: is.Contains(v.Value)}, nil
	case *ast.Float:
		fs, ok := values.Promote(s, values.NewFloatSet()).(*values.FloatSet)
		if !ok {
			return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "membership element flavor does not match set flavor")
		}

		return &ast.Bool{Value: fs.Contains(v.Value)}, nil
	case *ast.Prop:
		ps, ok := values.Promote(s, values.NewPropSet()).(*values.PropSet)
		if !ok {
			return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "membership element flavor does not match set flavor")
		}

		return &ast.Bool{Value: ps.Contains(v.Name)}, nil
	default:
		return nil, st.Sink.Fatalf(diag.TypeErrorKind, span, hasLoc, "membership element must be int, float or proposition")
	}
}

// ----------------------------------------------------------------------------
// ast.SetVal <-> values.Set bridging
// ----------------------------------------------------------------------------

func setFromInts(s *values.IntSet) *ast.SetVal   { return &ast.SetVal{Kind: ast.SetInt, Ints: s.Elems()} }
func setFromFloats(s *values.FloatSet) *ast.SetVal {
	return &ast.SetVal{Kind: ast.SetFloat, Flts: s.Elems()}
}
func setFromProps(s *values.PropSet) *ast.SetVal {
	return &ast.SetVal{Kind: ast.SetProp, Props: s.Elems()}
}

func setFromValues(s values.Set) *ast.SetVal {
	switch v := s.(type) {
	case *values.IntSet:
		return setFromInts(v)
	case *values.FloatSet:
		return setFromFloats(v)
	case *values.PropSet:
		return setFromProps(v)
	default:
		return &ast.SetVal{Kind: ast.SetEmptyPoly}
	}
}

func setValToSet(v *ast.SetVal) values.Set {
	switch v.Kind {
	case ast.SetInt:
		return values.NewIntSet(v.Ints...)
	case ast.SetFloat:
		return values.NewFloatSet(v.Flts...)
	case ast.SetProp:
		return values.NewPropSet(v.Props...)
	default:
		return values.EmptySet{}
	}
}
