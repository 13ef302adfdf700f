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

// Package testutil collects small stdlib-testing helpers shared across the
// package test suites, following pkg/util/assert's style of thin t.Errorf
// wrappers rather than a third-party assertion library.
package testutil

import (
	"reflect"
	"testing"

	"touist/internal/diag"
)

// Equal errors and fails the test immediately if actual is not deeply equal
// to expected.
func Equal(t *testing.T, expected, actual any, msg ...any) {
	t.Helper()

	if reflect.DeepEqual(expected, actual) {
		return
	}

	t.Errorf("expected: %#v, actual: %#v", expected, actual)

	if len(msg) != 0 {
		t.Errorf(msg[0].(string), msg[1:]...)
	}

	t.FailNow()
}

// True errors and fails the test immediately if condition is false.
func True(t *testing.T, condition bool, msg ...any) {
	t.Helper()

	if condition {
		return
	}

	t.Errorf("condition is false")

	if len(msg) != 0 {
		t.Errorf(msg[0].(string), msg[1:]...)
	}

	t.FailNow()
}

// False errors and fails the test immediately if condition is true.
func False(t *testing.T, condition bool, msg ...any) {
	t.Helper()

	if !condition {
		return
	}

	t.Errorf("condition is true")

	if len(msg) != 0 {
		t.Errorf(msg[0].(string), msg[1:]...)
	}

	t.FailNow()
}

// NoFatal fails the test if the sink recorded any Fatal diagnostic, printing
// every diagnostic for context.
func NoFatal(t *testing.T, sink *diag.Sink) {
	t.Helper()

	if !sink.HasFatal() {
		return
	}

	for _, d := range sink.All() {
		t.Logf("diagnostic: %s", d.Error())
	}

	t.Fatal("expected no fatal diagnostics")
}

// HasKind fails the test unless at least one recorded diagnostic has the
// given kind and severity.
func HasKind(t *testing.T, sink *diag.Sink, kind diag.Kind, severity diag.Severity) {
	t.Helper()

	for _, d := range sink.All() {
		if d.Kind == kind && d.Severity == severity {
			return
		}
	}

	for _, d := range sink.All() {
		t.Logf("diagnostic: %s", d.Error())
	}

	t.Fatalf("expected a %s %s diagnostic, found none", severity, kind)
}
