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
package cnf

import (
	"testing"

	"touist/internal/ast"
	"touist/internal/testutil"
)

func p(name string) *ast.Prop { return &ast.Prop{Name: name} }

// Scenario 6 of spec.md §8: (a or b) and not(c or d) is already a
// conjunction of disjunctions of literals once De Morgan is applied, so no
// Tseytin auxiliary is introduced.
func TestConvertDeMorganNoAuxiliaries(t *testing.T) {
	f := &ast.And{
		X: &ast.Or{X: p("a"), Y: p("b")},
		Y: &ast.Not{X: &ast.Or{X: p("c"), Y: p("d")}},
	}

	out, err := NewConverter().ToCNF(f)
	testutil.Equal(t, nil, err)

	want := &ast.And{
		X: &ast.Or{X: p("a"), Y: p("b")},
		Y: &ast.And{X: &ast.Not{X: p("c")}, Y: &ast.Not{X: p("d")}},
	}
	testutil.Equal(t, want, out)
}

// Scenario 7 of spec.md §8: (a and b) or (c and d) needs two Tseytin
// auxiliaries, since neither disjunct is a single literal.
func TestConvertOrOfTwoConjunctionsIntroducesAuxiliaries(t *testing.T) {
	f := &ast.Or{
		X: &ast.And{X: p("a"), Y: p("b")},
		Y: &ast.And{X: p("c"), Y: p("d")},
	}

	out, err := NewConverter().ToCNF(f)
	testutil.Equal(t, nil, err)

	alpha, beta := p("&1"), p("&2")
	want := &ast.And{
		X: &ast.And{
			X: &ast.Or{X: alpha, Y: beta},
			Y: &ast.And{X: &ast.Or{X: &ast.Not{X: alpha}, Y: p("a")}, Y: &ast.Or{X: &ast.Not{X: alpha}, Y: p("b")}},
		},
		Y: &ast.And{X: &ast.Or{X: &ast.Not{X: beta}, Y: p("c")}, Y: &ast.Or{X: &ast.Not{X: beta}, Y: p("d")}},
	}
	testutil.Equal(t, want, out)
}

// A single literal side is combined via push_lit, not Tseytin: l ∨ (c1∧c2)
// distributes to (l∨c1)∧(l∨c2) with no fresh auxiliaries.
func TestConvertPushLitAvoidsAuxiliaries(t *testing.T) {
	f := &ast.Or{X: p("a"), Y: &ast.And{X: p("b"), Y: p("c")}}

	out, err := NewConverter().ToCNF(f)
	testutil.Equal(t, nil, err)

	want := &ast.And{X: &ast.Or{X: p("a"), Y: p("b")}, Y: &ast.Or{X: p("a"), Y: p("c")}}
	testutil.Equal(t, want, out)
}

// A root-level Top has no DIMACS representation, so it is encoded as a
// fresh auxiliary disjoined with its own negation (a tautological clause).
func TestConvertRootTopEncodesAsTautology(t *testing.T) {
	out, err := NewConverter().ToCNF(&ast.Top{})
	testutil.Equal(t, nil, err)

	aux := p("&1")
	testutil.Equal(t, &ast.Or{X: aux, Y: &ast.Not{X: aux}}, out)
}

// A root-level Bottom is encoded as an unsatisfiable clause pair over a
// fresh auxiliary.
func TestConvertRootBottomEncodesAsContradiction(t *testing.T) {
	out, err := NewConverter().ToCNF(&ast.Bottom{})
	testutil.Equal(t, nil, err)

	aux := p("&1")
	testutil.Equal(t, &ast.And{X: aux, Y: &ast.Not{X: aux}}, out)
}

// Equiv reduces to a pair of implications, each rewritten to a clause of
// pure Not/Prop literals.
func TestConvertEquivReducesToImpliesBothWays(t *testing.T) {
	f := &ast.Equiv{X: p("a"), Y: p("b")}

	out, err := NewConverter().ToCNF(f)
	testutil.Equal(t, nil, err)

	want := &ast.And{
		X: &ast.Or{X: &ast.Not{X: p("a")}, Y: p("b")},
		Y: &ast.Or{X: &ast.Not{X: p("b")}, Y: p("a")},
	}
	testutil.Equal(t, want, out)
}

func TestConvertDoubleNegationCancels(t *testing.T) {
	out, err := NewConverter().ToCNF(&ast.Not{X: &ast.Not{X: p("a")}})
	testutil.Equal(t, nil, err)
	testutil.Equal(t, p("a"), out)
}

func TestIsLiteralRecognisesPropAndNegatedProp(t *testing.T) {
	testutil.True(t, isLiteral(p("a")))
	testutil.True(t, isLiteral(&ast.Not{X: p("a")}))
	testutil.False(t, isLiteral(&ast.And{X: p("a"), Y: p("b")}))
}
