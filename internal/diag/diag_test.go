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
package diag_test

import (
	"testing"

	"touist/internal/ast"
	"touist/internal/diag"
	"touist/internal/testutil"
)

func TestWarnDoesNotMarkFatal(t *testing.T) {
	s := diag.NewSink()
	s.Warn(diag.ArityErrorKind, ast.Span{}, false, "generator over an empty set produced nothing")

	testutil.False(t, s.HasFatal())
	testutil.Equal(t, 1, len(s.All()))
}

func TestFatalfMarksFatalAndReturnsError(t *testing.T) {
	s := diag.NewSink()
	err := s.Fatalf(diag.NameErrorKind, ast.Span{}, false, "undeclared variable %q", "$x")

	testutil.True(t, s.HasFatal())
	testutil.True(t, err != nil)

	var fe *diag.FatalError
	testutil.True(t, asFatalError(err, &fe))
	testutil.Equal(t, diag.NameErrorKind, fe.Diagnostic.Kind)
}

func TestErrorFormattingWithLocation(t *testing.T) {
	span := ast.Span{
		Start: ast.Pos{File: "example.touist", Line: 3, Col: 5},
		End:   ast.Pos{File: "example.touist", Line: 3, Col: 9},
	}

	d := diag.Diagnostic{Kind: diag.TypeErrorKind, Severity: diag.Fatal, Message: "bad flavor", Loc: span, HasLoc: true}
	testutil.Equal(t, "example.touist:3:5-9: error: bad flavor", d.Error())
}

func TestErrorFormattingWithoutLocation(t *testing.T) {
	d := diag.Diagnostic{Kind: diag.ArityErrorKind, Severity: diag.Warning, Message: "nothing produced"}
	testutil.Equal(t, "warning: nothing produced", d.Error())
}

func asFatalError(err error, target **diag.FatalError) bool {
	fe, ok := err.(*diag.FatalError)
	if !ok {
		return false
	}

	*target = fe

	return true
}
