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
	"strings"

	"touist/internal/ast"
	"touist/internal/env"
	"touist/internal/values"
)

// expandProp materialises the name(s) denoted by a proposition reference
// such as p(a,b,c) or the set-indexed p([a,b],c), per spec.md §4.7. Each
// index position is evaluated; a scalar index contributes a singleton
// sequence, a set index contributes its enumerated elements. The Cartesian
// product of these sequences yields either a single Prop (no index was a
// set) or a PropSet of the materialised names.
func (st *State) expandProp(name string, indices []ast.Node, e env.Env, span ast.Span, hasLoc bool) (ast.Node, error) {
	if len(indices) == 0 {
		return &ast.Prop{Name: name}, nil
	}

	sequences := make([][]string, len(indices))
	anySet := false

	for i, idx := range indices {
		v, err := st.evalExpr(idx, e)
		if err != nil {
			return nil, err
		}

		seq, isSet, err := st.indexSequence(v, span, hasLoc)
		if err != nil {
			return nil, err
		}

		sequences[i] = seq
		anySet = anySet || isSet
	}

	combos := cartesianProduct(sequences)

	names := make([]string, len(combos))
	for i, combo := range combos {
		names[i] = name + "(" + strings.Join(combo, ",") + ")"
	}

	if !anySet {
		return &ast.Prop{Name: names[0]}, nil
	}

	return setFromProps(values.NewPropSet(names...)), nil
}

// indexSequence renders an evaluated index position into its ordered
// sequence of string renderings: a singleton for a scalar, or the
// set's enumerated elements (in the flavor's natural order) for a set.
func (st *State) indexSequence(v ast.Node, span ast.Span, hasLoc bool) (seq []string, isSet bool, err error) {
	switch n := v.(type) {
	case *ast.SetVal:
		switch n.Kind {
		case ast.SetInt:
			out := make([]string, len(n.Ints))
			for i, e := range n.Ints {
				out[i] = values.RenderInt(e)
			}

			return out, true, nil
		case ast.SetFloat:
			out := make([]string, len(n.Flts))
			for i, e := range n.Flts {
				out[i] = values.RenderFloat(e)
			}

			return out, true, nil
		case ast.SetProp:
			return append([]string{}, n.Props...), true, nil
		default:
			return nil, true, nil
		}
	default:
		rendered, err := renderIndex(st, v)
		if err != nil {
			return nil, false, err
		}

		return []string{rendered}, false, nil
	}
}

// cartesianProduct builds the product of a list of sequences, preserving
// left-to-right, earliest-varies-slowest ordering.
func cartesianProduct(sequences [][]string) [][]string {
	combos := [][]string{{}}

	for _, seq := range sequences {
		var next [][]string

		for _, combo := range combos {
			for _, v := range seq {
				nc := make([]string, len(combo)+1)
				copy(nc, combo)
				nc[len(combo)] = v
				next = append(next, nc)
			}
		}

		combos = next
	}

	return combos
}
