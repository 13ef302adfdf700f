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

import (
	"fmt"

	"touist/internal/ast"
)

// render is a minimal, demo-only formula printer. The real pretty-printer
// stays an external collaborator (spec.md §1); this exists only so the CLI
// subcommands have something to show.
func render(n ast.Node) string {
	inner, _, _ := ast.Peel(n)

	switch x := inner.(type) {
	case *ast.Top:
		return "top"
	case *ast.Bottom:
		return "bottom"
	case *ast.Prop:
		return x.Name
	case *ast.Int:
		return fmt.Sprintf("%d", x.Value)
	case *ast.Float:
		return fmt.Sprintf("%g", x.Value)
	case *ast.Not:
		return "not " + render(x.X)
	case *ast.And:
		return "(" + render(x.X) + " and " + render(x.Y) + ")"
	case *ast.Or:
		return "(" + render(x.X) + " or " + render(x.Y) + ")"
	case *ast.Implies:
		return "(" + render(x.X) + " => " + render(x.Y) + ")"
	case *ast.Equiv:
		return "(" + render(x.X) + " <=> " + render(x.Y) + ")"
	case *ast.Xor:
		return "(" + render(x.X) + " xor " + render(x.Y) + ")"
	default:
		return fmt.Sprintf("<%T>", inner)
	}
}
