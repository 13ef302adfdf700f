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
	"touist/internal/diag"
	"touist/internal/env"
	"touist/internal/values"
)

// resolve looks up name, local env first then global, failing with a
// NameError citing loc (the variable's own reference location).
func (st *State) resolve(name string, e env.Env, loc ast.Span, hasLoc bool) (env.Binding, error) {
	if b, ok := e.Resolve(name); ok {
		return b, nil
	}

	return env.Binding{}, st.Sink.Fatalf(diag.NameErrorKind, loc, hasLoc, "undeclared variable %q", name)
}

// expandVarName computes the canonical lookup key / materialised
// proposition name for a (prefix, indices) pair, per spec.md §4.1: with no
// indices it is the prefix alone; otherwise prefix(v1, v2, …) where each vi
// is the rendering of evaluating index i in env.
func (st *State) expandVarName(prefix string, indices []ast.Node, e env.Env) (string, error) {
	if len(indices) == 0 {
		return prefix, nil
	}

	rendered := make([]string, len(indices))

	for i, idx := range indices {
		v, err := st.evalExpr(idx, e)
		if err != nil {
			return "", err
		}

		s, err := renderIndex(st, v)
		if err != nil {
			return "", err
		}

		rendered[i] = s
	}

	return prefix + "(" + strings.Join(rendered, ",") + ")", nil
}

// renderIndex renders a single evaluated index value: integers as decimals,
// floats via values.RenderFloat (always with a decimal point or an
// exponent), propositions by their name.
func renderIndex(st *State, v ast.Node) (string, error) {
	switch n := v.(type) {
	case *ast.Int:
		return values.RenderInt(n.Value), nil
	case *ast.Float:
		return values.RenderFloat(n.Value), nil
	case *ast.Prop:
		return n.Name, nil
	default:
		return "", st.Sink.Fatalf(diag.TypeErrorKind, ast.Span{}, false,
			"index must be an int, float or proposition")
	}
}
