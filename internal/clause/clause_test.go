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
package clause

import (
	"bytes"
	"testing"

	"touist/internal/ast"
	"touist/internal/testutil"
)

func prop(name string) *ast.Prop { return &ast.Prop{Name: name} }

func TestTableAssignsStableIncreasingIDs(t *testing.T) {
	tb := NewTable()

	testutil.Equal(t, 1, tb.ID("a"))
	testutil.Equal(t, 2, tb.ID("b"))
	testutil.Equal(t, 1, tb.ID("a"))

	name, ok := tb.Name(2)
	testutil.True(t, ok)
	testutil.Equal(t, "b", name)

	_, ok = tb.Name(3)
	testutil.False(t, ok)
	testutil.Equal(t, 2, tb.Len())
}

// (a∨b) ∧ ¬c collects into two clauses, assigning ids in first-encounter
// order: a=1, b=2, c=3.
func TestCollectWalksAndOrChains(t *testing.T) {
	f := &ast.And{X: &ast.Or{X: prop("a"), Y: prop("b")}, Y: &ast.Not{X: prop("c")}}

	clauses, tb, err := Collect(f)
	testutil.Equal(t, nil, err)
	testutil.Equal(t, 2, len(clauses))
	testutil.Equal(t, Clause{1, 2}, clauses[0])
	testutil.Equal(t, Clause{-3}, clauses[1])
	testutil.Equal(t, 3, tb.Len())
}

// A single clause (no top-level And) still collects as one clause.
func TestCollectSingleClauseNoAnd(t *testing.T) {
	f := &ast.Or{X: prop("a"), Y: &ast.Not{X: prop("b")}}

	clauses, _, err := Collect(f)
	testutil.Equal(t, nil, err)
	testutil.Equal(t, 1, len(clauses))
	testutil.Equal(t, Clause{1, -2}, clauses[0])
}

func TestCollectRejectsNestedConnectiveInClausePosition(t *testing.T) {
	f := &ast.Or{X: prop("a"), Y: &ast.And{X: prop("b"), Y: prop("c")}}

	_, _, err := Collect(f)
	testutil.True(t, err != nil)
}

func TestWriteDIMACSPreambleAndClauses(t *testing.T) {
	f := &ast.And{X: &ast.Or{X: prop("a"), Y: prop("b")}, Y: &ast.Not{X: prop("a")}}
	clauses, tb, err := Collect(f)
	testutil.Equal(t, nil, err)

	var buf bytes.Buffer
	err = WriteDIMACS(&buf, clauses, tb, false)
	testutil.Equal(t, nil, err)

	want := "p cnf 2 2\n1 2 0\n-1 0\n"
	testutil.Equal(t, want, buf.String())
}

func TestWriteDIMACSWithTableComments(t *testing.T) {
	f := &ast.Or{X: prop("a"), Y: prop("b")}
	clauses, tb, err := Collect(f)
	testutil.Equal(t, nil, err)

	var buf bytes.Buffer
	err = WriteDIMACS(&buf, clauses, tb, true)
	testutil.Equal(t, nil, err)

	want := "p cnf 2 1\nc a 1\nc b 2\n1 2 0\n"
	testutil.Equal(t, want, buf.String())
}

// Consecutive same-kind quantifiers merge into a single block; a change of
// kind opens a new one.
func TestPrefixMergesConsecutiveSameKindBlocks(t *testing.T) {
	p := NewPrefix()
	p.AddExistential([]int{1, 2})
	p.AddExistential([]int{3})
	p.AddUniversal([]int{4})

	testutil.Equal(t, 2, len(p.Blocks))
	testutil.Equal(t, []int{1, 2, 3}, p.Blocks[0].Vars)
	testutil.Equal(t, ForAll, p.Blocks[1].Kind)
}

// Tseytin auxiliaries are always bound existentially at the innermost scope.
func TestAddTseytinAuxiliariesBindsExistentialInnermost(t *testing.T) {
	p := NewPrefix()
	p.AddUniversal([]int{1})
	p.AddTseytinAuxiliaries([]int{2, 3})

	testutil.Equal(t, 2, len(p.Blocks))
	testutil.Equal(t, Exists, p.Blocks[1].Kind)
	testutil.Equal(t, []int{2, 3}, p.Blocks[1].Vars)
}

func TestWriteQDIMACSQuantifierLines(t *testing.T) {
	f := &ast.Or{X: prop("x"), Y: prop("y")}
	clauses, tb, err := Collect(f)
	testutil.Equal(t, nil, err)

	p := NewPrefix()
	p.AddUniversal([]int{1})
	p.AddExistential([]int{2})

	var buf bytes.Buffer
	err = WriteQDIMACS(&buf, clauses, tb, p)
	testutil.Equal(t, nil, err)

	want := "p cnf 2 1\na 1 0\ne 2 0\n1 2 0\n"
	testutil.Equal(t, want, buf.String())
}
