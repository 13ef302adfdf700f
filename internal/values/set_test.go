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
package values

import (
	"testing"

	"touist/internal/testutil"
)

func TestIntSetOrderingAndDedup(t *testing.T) {
	s := NewIntSet(3, 1, 2, 1, 3)
	testutil.Equal(t, []int{1, 2, 3}, s.Elems())
	testutil.Equal(t, 3, s.Card())
}

func TestPropSetLexicographicOrder(t *testing.T) {
	s := NewPropSet("c", "a", "b")
	testutil.Equal(t, []string{"a", "b", "c"}, s.Elems())
}

func TestUnionWithEmptySetPromotion(t *testing.T) {
	empty := EmptySet{}
	ints := NewIntSet(1, 2)

	promoted := Promote(empty, ints)
	testutil.Equal(t, IntKind, promoted.Kind())

	union, err := Union(promoted, ints)
	testutil.Equal(t, nil, err)
	testutil.Equal(t, []int{1, 2}, union.(*IntSet).Elems())
}

func TestInterDiffSubsetWithPromotedEmptySet(t *testing.T) {
	ints := NewIntSet(1, 2)
	empty := Promote(EmptySet{}, ints)

	inter, err := Inter(empty, ints)
	testutil.Equal(t, nil, err)
	testutil.True(t, inter.IsEmpty())

	diff, err := Diff(ints, empty)
	testutil.Equal(t, nil, err)
	testutil.Equal(t, []int{1, 2}, diff.(*IntSet).Elems())

	sub, err := Subset(empty, ints)
	testutil.Equal(t, nil, err)
	testutil.True(t, sub)
}

func TestFlavorMismatchErrors(t *testing.T) {
	_, err := Union(NewIntSet(1), NewPropSet("a"))
	testutil.True(t, err != nil)
}

func TestRenderFloatAlwaysHasDecimalPoint(t *testing.T) {
	testutil.Equal(t, "1.0", RenderFloat(1))
	testutil.Equal(t, "1.5", RenderFloat(1.5))
}

func TestEqualIsElementWise(t *testing.T) {
	a := NewIntSet(1, 2, 3)
	b := NewIntSet(3, 2, 1)

	eq, err := Equal(a, b)
	testutil.Equal(t, nil, err)
	testutil.True(t, eq)
}
