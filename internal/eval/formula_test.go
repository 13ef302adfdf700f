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
	"testing"

	"touist/internal/ast"
	"touist/internal/diag"
	"touist/internal/env"
	"touist/internal/testutil"
)

func prop(name string) ast.Node { return &ast.Prop{Name: name} }

func emptyEnv(st *State) env.Env { return env.Env{Global: st.Global} }

// Scenario 3 of spec.md §8: bigand $i in [1..3]: p($i) end expands to
// p(1) ∧ p(2) ∧ p(3).
func TestBigandOverRangeExpandsInOrder(t *testing.T) {
	st := NewState(Config{})

	formula := &ast.Bigand{
		Vars: []string{"$i"},
		Sets: []ast.Node{&ast.Range{Lo: &ast.Int{Value: 1}, Hi: &ast.Int{Value: 3}}},
		Body: &ast.UnexpProp{Name: "p", Indices: []ast.Node{&ast.Var{Prefix: "$i"}}},
	}

	code := &ast.TouistCode{Stmts: []ast.Node{formula}}

	result, err := st.EvalTopLevel(code)
	testutil.Equal(t, nil, err)

	want := &ast.And{X: &ast.And{X: prop("p(1)"), Y: prop("p(2)")}, Y: prop("p(3)")}
	testutil.Equal(t, want, result)
}

// Scenario 4 of spec.md §8: the when-guard filters to p(3) ∧ p(4) ∧ p(5).
func TestBigandWithWhenGuard(t *testing.T) {
	st := NewState(Config{})

	formula := &ast.Bigand{
		Vars: []string{"$i"},
		Sets: []ast.Node{&ast.Range{Lo: &ast.Int{Value: 1}, Hi: &ast.Int{Value: 5}}},
		When: &ast.Gt{X: &ast.Var{Prefix: "$i"}, Y: &ast.Int{Value: 2}},
		Body: &ast.UnexpProp{Name: "p", Indices: []ast.Node{&ast.Var{Prefix: "$i"}}},
	}

	code := &ast.TouistCode{Stmts: []ast.Node{formula}}

	result, err := st.EvalTopLevel(code)
	testutil.Equal(t, nil, err)

	want := &ast.And{X: &ast.And{X: prop("p(3)"), Y: prop("p(4)")}, Y: prop("p(5)")}
	testutil.Equal(t, want, result)
}

// Scenario 5 of spec.md §8: $F=[a,b,c] bigand $f in $F: bigand $i in [1..2]:
// $f($i) end end expands to a(1) ∧ a(2) ∧ b(1) ∧ b(2) ∧ c(1) ∧ c(2).
func TestNestedBigandWithComputedName(t *testing.T) {
	st := NewState(Config{})

	affect := &ast.Affect{
		Var:   "$F",
		Value: &ast.SetDecl{Elems: []ast.Node{prop("a"), prop("b"), prop("c")}},
	}

	inner := &ast.Bigand{
		Vars: []string{"$i"},
		Sets: []ast.Node{&ast.Range{Lo: &ast.Int{Value: 1}, Hi: &ast.Int{Value: 2}}},
		Body: &ast.Var{Prefix: "$f", Indices: []ast.Node{&ast.Var{Prefix: "$i"}}},
	}

	outer := &ast.Bigand{
		Vars: []string{"$f"},
		Sets: []ast.Node{&ast.Var{Prefix: "$F"}},
		Body: inner,
	}

	code := &ast.TouistCode{Stmts: []ast.Node{affect, outer}}

	result, err := st.EvalTopLevel(code)
	testutil.Equal(t, nil, err)

	want := foldConnective(true, []ast.Node{
		foldConnective(true, []ast.Node{prop("a(1)"), prop("a(2)")}),
		foldConnective(true, []ast.Node{prop("b(1)"), prop("b(2)")}),
		foldConnective(true, []ast.Node{prop("c(1)"), prop("c(2)")}),
	})
	testutil.Equal(t, want, result)
}

// Scenario 8 of spec.md §8: bigand $i in []: p($i) end emits a warning and
// yields Top.
func TestBigandOverEmptySetWarnsAndYieldsTop(t *testing.T) {
	st := NewState(Config{})

	formula := &ast.Bigand{
		Vars: []string{"$i"},
		Sets: []ast.Node{&ast.SetDecl{}},
		Body: &ast.UnexpProp{Name: "p", Indices: []ast.Node{&ast.Var{Prefix: "$i"}}},
	}

	code := &ast.TouistCode{Stmts: []ast.Node{formula}}

	result, err := st.EvalTopLevel(code)
	testutil.Equal(t, nil, err)
	testutil.Equal(t, &ast.Top{}, result)
	testutil.False(t, st.Sink.HasFatal())
	testutil.HasKind(t, st.Sink, diag.ArityErrorKind, diag.Warning)
}

func TestBigorOverEmptySetYieldsBottom(t *testing.T) {
	st := NewState(Config{})

	formula := &ast.Bigor{
		Vars: []string{"$i"},
		Sets: []ast.Node{&ast.SetDecl{}},
		Body: &ast.UnexpProp{Name: "p", Indices: []ast.Node{&ast.Var{Prefix: "$i"}}},
	}

	code := &ast.TouistCode{Stmts: []ast.Node{formula}}

	result, err := st.EvalTopLevel(code)
	testutil.Equal(t, nil, err)
	testutil.Equal(t, &ast.Bottom{}, result)
}

func TestEmptyGeneratorIsFatalWhenConfigured(t *testing.T) {
	st := NewState(Config{EmptyGeneratorIsFatal: true})

	formula := &ast.Bigand{
		Vars: []string{"$i"},
		Sets: []ast.Node{&ast.SetDecl{}},
		Body: &ast.UnexpProp{Name: "p", Indices: []ast.Node{&ast.Var{Prefix: "$i"}}},
	}

	code := &ast.TouistCode{Stmts: []ast.Node{formula}}

	_, err := st.EvalTopLevel(code)
	testutil.True(t, err != nil)
	testutil.True(t, st.Sink.HasFatal())
}

func TestTopBottomShortCircuitInAndOr(t *testing.T) {
	st := NewState(Config{})
	e := emptyEnv(st)

	v, err := st.evalFormula(&ast.And{X: &ast.Top{}, Y: prop("a")}, e)
	testutil.Equal(t, nil, err)
	testutil.Equal(t, prop("a"), v)

	v, err = st.evalFormula(&ast.And{X: &ast.Bottom{}, Y: prop("a")}, e)
	testutil.Equal(t, nil, err)
	testutil.Equal(t, &ast.Bottom{}, v)

	v, err = st.evalFormula(&ast.Or{X: &ast.Top{}, Y: prop("a")}, e)
	testutil.Equal(t, nil, err)
	testutil.Equal(t, &ast.Top{}, v)

	v, err = st.evalFormula(&ast.Implies{X: &ast.Bottom{}, Y: prop("a")}, e)
	testutil.Equal(t, nil, err)
	testutil.Equal(t, &ast.Top{}, v)
}

func TestNotTopAndNotBottom(t *testing.T) {
	st := NewState(Config{})
	e := emptyEnv(st)

	v, err := st.evalFormula(&ast.Not{X: &ast.Top{}}, e)
	testutil.Equal(t, nil, err)
	testutil.Equal(t, &ast.Bottom{}, v)

	v, err = st.evalFormula(&ast.Not{X: &ast.Bottom{}}, e)
	testutil.Equal(t, nil, err)
	testutil.Equal(t, &ast.Top{}, v)
}
