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
	"touist/internal/values"
)

// evalGenerator instantiates a bigand (isAnd) or bigor (!isAnd) over
// parallel vars/sets lists, per spec.md §4.5.
func (st *State) evalGenerator(isAnd bool, vars []string, sets []ast.Node, when ast.Node, body ast.Node,
	e env.Env, span ast.Span, hasLoc bool) (ast.Node, error) {
	if len(vars) != len(sets) {
		return nil, st.Sink.Fatalf(diag.ArityErrorKind, span, hasLoc,
			"generator has %d variable(s) but %d set(s)", len(vars), len(sets))
	}

	return st.evalGeneratorStep(isAnd, vars, sets, when, body, e, span, hasLoc)
}

func (st *State) evalGeneratorStep(isAnd bool, vars []string, sets []ast.Node, when ast.Node, body ast.Node,
	e env.Env, span ast.Span, hasLoc bool) (ast.Node, error) {
	s, err := st.evalSet(sets[0], e, span, hasLoc)
	if err != nil {
		return nil, err
	}

	elems := enumerateElements(s)
	if st.Config.CheckOnly && len(elems) > 1 {
		elems = elems[:1]
	}

	innermost := len(vars) == 1

	var kept []ast.Node

	for _, elem := range elems {
		e2 := e.WithLocal(vars[0], env.Binding{Value: elem, Loc: span, HasLoc: hasLoc})

		if innermost {
			keep := true

			if when != nil {
				keep, err = st.evalBool(when, e2)
				if err != nil {
					return nil, err
				}
			}

			if !keep {
				continue
			}

			v, err := st.evalFormula(body, e2)
			if err != nil {
				return nil, err
			}

			kept = append(kept, v)
		} else {
			v, err := st.evalGeneratorStep(isAnd, vars[1:], sets[1:], when, body, e2, span, hasLoc)
			if err != nil {
				return nil, err
			}

			kept = append(kept, v)
		}
	}

	if len(kept) == 0 {
		if st.Config.EmptyGeneratorIsFatal {
			return nil, st.Sink.Fatalf(diag.ArityErrorKind, span, hasLoc, "generator over an empty set produced nothing")
		}

		st.Sink.Warn(diag.ArityErrorKind, span, hasLoc, "generator over an empty set produced nothing; using the neutral element")

		if isAnd {
			return &ast.Top{}, nil
		}

		return &ast.Bottom{}, nil
	}

	return foldConnective(isAnd, kept), nil
}

// foldConnective combines a non-empty list of formulas with And (isAnd) or
// Or, left-associatively.
func foldConnective(isAnd bool, nodes []ast.Node) ast.Node {
	result := nodes[0]

	for _, n := range nodes[1:] {
		if isAnd {
			result = &ast.And{X: result, Y: n}
		} else {
			result = &ast.Or{X: result, Y: n}
		}
	}

	return result
}

// enumerateElements returns the elements of a set as value nodes, in the
// flavor's natural deterministic order: integers ascending, floats
// ascending, propositions lexicographically.
func enumerateElements(s values.Set) []ast.Node {
	switch v := s.(type) {
	case *values.IntSet:
		elems := v.Elems()
		out := make([]ast.Node, len(elems))

		for i, e := range elems {
			out[i] = &ast.Int{Value: e}
		}

		return out
	case *values.FloatSet:
		elems := v.Elems()
		out := make([]ast.Node, len(elems))

		for i, e := range elems {
			out[i] = &ast.Float{Value: e}
		}

		return out
	case *values.PropSet:
		elems := v.Elems()
		out := make([]ast.Node, len(elems))

		for i, e := range elems {
			out[i] = &ast.Prop{Name: e}
		}

		return out
	default:
		return nil
	}
}
