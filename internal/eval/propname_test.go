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
	"touist/internal/testutil"
)

// Two scalar indices produce a single Prop, named by joining the rendered
// indices with commas.
func TestExpandPropWithScalarIndices(t *testing.T) {
	st := NewState(Config{})
	e := emptyEnv(st)

	v, err := st.expandProp("p", []ast.Node{&ast.Int{Value: 1}, &ast.Int{Value: 2}}, e, ast.Span{}, false)
	testutil.Equal(t, nil, err)
	testutil.Equal(t, &ast.Prop{Name: "p(1,2)"}, v)
}

// p([a,b],c) expands to the Cartesian product of the set index against the
// scalar index: p(a,c), p(b,c).
func TestExpandPropSetIndexedCartesianProduct(t *testing.T) {
	st := NewState(Config{})
	e := emptyEnv(st)

	setIndex := &ast.SetDecl{Elems: []ast.Node{prop("a"), prop("b")}}
	v, err := st.expandProp("p", []ast.Node{setIndex, prop("c")}, e, ast.Span{}, false)
	testutil.Equal(t, nil, err)

	sv, ok := v.(*ast.SetVal)
	testutil.True(t, ok)
	testutil.Equal(t, ast.SetProp, sv.Kind)
	testutil.Equal(t, []string{"p(a,c)", "p(b,c)"}, sv.Props)
}

// Two set indices multiply out fully: p([a,b],[1,2]) -> p(a,1), p(a,2),
// p(b,1), p(b,2), earliest index varies slowest.
func TestExpandPropTwoSetIndices(t *testing.T) {
	st := NewState(Config{})
	e := emptyEnv(st)

	xs := &ast.SetDecl{Elems: []ast.Node{prop("a"), prop("b")}}
	ys := &ast.Range{Lo: &ast.Int{Value: 1}, Hi: &ast.Int{Value: 2}}

	v, err := st.expandProp("p", []ast.Node{xs, ys}, e, ast.Span{}, false)
	testutil.Equal(t, nil, err)

	sv, ok := v.(*ast.SetVal)
	testutil.True(t, ok)
	testutil.Equal(t, []string{"p(a,1)", "p(a,2)", "p(b,1)", "p(b,2)"}, sv.Props)
}

func TestExpandPropWithNoIndicesIsBarePropName(t *testing.T) {
	st := NewState(Config{})
	e := emptyEnv(st)

	v, err := st.expandProp("q", nil, e, ast.Span{}, false)
	testutil.Equal(t, nil, err)
	testutil.Equal(t, &ast.Prop{Name: "q"}, v)
}
