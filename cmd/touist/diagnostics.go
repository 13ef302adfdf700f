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
	"os"

	"github.com/segmentio/encoding/json"

	"touist/internal/diag"
)

// diagnosticView is the JSON-friendly projection of a diag.Diagnostic,
// kept separate from the library type so internal/diag never needs to know
// about a serialisation format.
type diagnosticView struct {
	Kind     string `json:"kind"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
}

func (d diagnosticView) String() string {
	if d.File == "" {
		return fmt.Sprintf("%s: %s: %s", d.Severity, d.Kind, d.Message)
	}

	return fmt.Sprintf("%s:%d: %s: %s: %s", d.File, d.Line, d.Severity, d.Kind, d.Message)
}

func toDiagnosticViews(ds []diag.Diagnostic) []diagnosticView {
	out := make([]diagnosticView, len(ds))

	for i, d := range ds {
		v := diagnosticView{
			Kind:     d.Kind.String(),
			Severity: d.Severity.String(),
			Message:  d.Message,
		}

		if d.HasLoc {
			v.File = d.Loc.Start.File
			v.Line = d.Loc.Start.Line
		}

		out[i] = v
	}

	return out
}

func printDiagnosticsJSON(diags []diagnosticView) {
	enc := json.NewEncoder(os.Stdout)
	if err := enc.Encode(diags); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}
