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
package main

import "touist/internal/ast"

// example is a named AST, embedded directly as a builder function rather
// than parsed from source text, since the lexer/parser remains an external
// collaborator (spec.md §1). These mirror the concrete scenarios of
// spec.md §8.
type example struct {
	name        string
	description string
	build       func() ast.Node
}

var examples = []example{
	{
		name:        "exact",
		description: `exact(1,[a,b,c])`,
		build: func() ast.Node {
			return &ast.Exact{
				N:   &ast.Int{Value: 1},
				Set: &ast.SetDecl{Elems: []ast.Node{propRef("a"), propRef("b"), propRef("c")}},
			}
		},
	},
	{
		name:        "bigand-range",
		description: `bigand $i in [1..3]: p($i) end`,
		build: func() ast.Node {
			return &ast.Bigand{
				Vars: []string{"$i"},
				Sets: []ast.Node{&ast.Range{Lo: &ast.Int{Value: 1}, Hi: &ast.Int{Value: 3}}},
				Body: &ast.UnexpProp{Name: "p", Indices: []ast.Node{&ast.Var{Prefix: "$i"}}},
			}
		},
	},
	{
		name:        "bigand-when",
		description: `bigand $i in [1..5] when $i > 2: p($i) end`,
		build: func() ast.Node {
			return &ast.Bigand{
				Vars: []string{"$i"},
				Sets: []ast.Node{&ast.Range{Lo: &ast.Int{Value: 1}, Hi: &ast.Int{Value: 5}}},
				When: &ast.Gt{X: &ast.Var{Prefix: "$i"}, Y: &ast.Int{Value: 2}},
				Body: &ast.UnexpProp{Name: "p", Indices: []ast.Node{&ast.Var{Prefix: "$i"}}},
			}
		},
	},
	{
		name:        "bigand-empty",
		description: `bigand $i in []: p($i) end`,
		build: func() ast.Node {
			return &ast.Bigand{
				Vars: []string{"$i"},
				Sets: []ast.Node{&ast.SetDecl{}},
				Body: &ast.UnexpProp{Name: "p", Indices: []ast.Node{&ast.Var{Prefix: "$i"}}},
			}
		},
	},
	{
		name:        "or-and-not",
		description: `(a or b) and not (c or d)`,
		build: func() ast.Node {
			return &ast.And{
				X: &ast.Or{X: propRef("a"), Y: propRef("b")},
				Y: &ast.Not{X: &ast.Or{X: propRef("c"), Y: propRef("d")}},
			}
		},
	},
	{
		name:        "and-or-and",
		description: `(a and b) or (c and d)`,
		build: func() ast.Node {
			return &ast.Or{
				X: &ast.And{X: propRef("a"), Y: propRef("b")},
				Y: &ast.And{X: propRef("c"), Y: propRef("d")},
			}
		},
	},
}

func propRef(name string) ast.Node { return &ast.Prop{Name: name} }

func findExample(name string) (example, bool) {
	for _, e := range examples {
		if e.name == name {
			return e, true
		}
	}

	return example{}, false
}
