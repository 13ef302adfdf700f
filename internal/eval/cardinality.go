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
	"fmt"

	"touist/internal/ast"
	"touist/internal/env"
)

// cardinalityKind distinguishes the three constraint shapes.
type cardinalityKind int

const (
	exactKind cardinalityKind = iota
	atleastKind
	atmostKind
)

// evalCardinality expands Exact/Atleast/Atmost into a propositional
// template over the elements of S, per spec.md §4.6. In check-only mode it
// expands to a single dummy proposition instead, to avoid the combinatorial
// blow-up during type checking.
func (st *State) evalCardinality(kind cardinalityKind, nNode, setNode ast.Node, e env.Env, span ast.Span, hasLoc bool) (ast.Node, error) {
	nVal, err := st.evalExpr(nNode, e)
	if err != nil {
		return nil, err
	}

	n, ok := nVal.(*ast.Int)
	if !ok {
		return nil, fmt.Errorf("cardinality constraint requires an integer count")
	}

	s, err := st.evalSet(setNode, e, span, hasLoc)
	if err != nil {
		return nil, err
	}

	props := enumeratePropNames(s)

	if st.Config.CheckOnly {
		st.dummyCounter++
		return &ast.Prop{Name: fmt.Sprintf("dummy_card_%d", st.dummyCounter)}, nil
	}

	switch kind {
	case exactKind:
		return exactFormula(n.Value, props), nil
	case atleastKind:
		return atleastFormula(n.Value, props), nil
	default:
		return atmostFormula(n.Value, props), nil
	}
}

func enumeratePropNames(s interface{ Card() int }) []string {
	type propsetLike interface{ Elems() []string }
	if ps, ok := s.(propsetLike); ok {
		return ps.Elems()
	}

	return nil
}

// exactFormula builds Exact(n, props): the disjunction over every n-subset T
// of props of (AND of T) AND (AND of NOT(props \ T)).
func exactFormula(n int, props []string) ast.Node {
	combos := combinations(props, n)

	if len(combos) == 0 {
		return &ast.Bottom{}
	}

	var disjuncts []ast.Node

	for _, t := range combos {
		inT := make(map[string]bool, len(t))
		for _, p := range t {
			inT[p] = true
		}

		var conjuncts []ast.Node

		for _, p := range props {
			if inT[p] {
				conjuncts = append(conjuncts, &ast.Prop{Name: p})
			} else {
				conjuncts = append(conjuncts, &ast.Not{X: &ast.Prop{Name: p}})
			}
		}

		disjuncts = append(disjuncts, foldAndEmptyTop(conjuncts))
	}

	return foldOrEmptyBottom(disjuncts)
}

// atleastFormula builds Atleast(n, props): disjunction over every n-subset T
// of the conjunction of T's elements.
func atleastFormula(n int, props []string) ast.Node {
	combos := combinations(props, n)

	if len(combos) == 0 {
		return &ast.Bottom{}
	}

	var disjuncts []ast.Node

	for _, t := range combos {
		var conjuncts []ast.Node

		for _, p := range t {
			conjuncts = append(conjuncts, &ast.Prop{Name: p})
		}

		disjuncts = append(disjuncts, foldAndEmptyTop(conjuncts))
	}

	return foldOrEmptyBottom(disjuncts)
}

// atmostFormula builds Atmost(n, props): disjunction over every (k-n)-subset
// F of the conjunction of the negations of F's elements. When n exceeds
// len(props) every assignment qualifies and the result is Top.
func atmostFormula(n int, props []string) ast.Node {
	k := len(props)
	if n > k {
		return &ast.Top{}
	}

	combos := combinations(props, k-n)

	if len(combos) == 0 {
		return &ast.Bottom{}
	}

	var disjuncts []ast.Node

	for _, f := range combos {
		var conjuncts []ast.Node

		for _, p := range f {
			conjuncts = append(conjuncts, &ast.Not{X: &ast.Prop{Name: p}})
		}

		disjuncts = append(disjuncts, foldAndEmptyTop(conjuncts))
	}

	return foldOrEmptyBottom(disjuncts)
}

func foldAndEmptyTop(nodes []ast.Node) ast.Node {
	if len(nodes) == 0 {
		return &ast.Top{}
	}

	result := nodes[0]
	for _, n := range nodes[1:] {
		result = &ast.And{X: result, Y: n}
	}

	return result
}

func foldOrEmptyBottom(nodes []ast.Node) ast.Node {
	if len(nodes) == 0 {
		return &ast.Bottom{}
	}

	result := nodes[0]
	for _, n := range nodes[1:] {
		result = &ast.Or{X: result, Y: n}
	}

	return result
}

// combinations returns every k-element subset of items (order preserved
// within each subset), or nil if k is out of [0, len(items)] range.
func combinations(items []string, k int) [][]string {
	if k < 0 || k > len(items) {
		return nil
	}

	if k == 0 {
		return [][]string{{}}
	}

	var out [][]string

	var rec func(start int, chosen []string)
	rec = func(start int, chosen []string) {
		if len(chosen) == k {
			cp := make([]string, k)
			copy(cp, chosen)
			out = append(out, cp)

			return
		}

		remaining := k - len(chosen)
		for i := start; i <= len(items)-remaining; i++ {
			rec(i+1, append(chosen, items[i]))
		}
	}

	rec(0, nil)

	return out
}
