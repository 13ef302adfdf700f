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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// rootCmd is a demonstration harness over the evaluator/CNF converter/clause
// emitter library: it is not the production driver. File I/O, exit-code
// contracts and LaTeX output remain out of scope per spec.md §1.
var rootCmd = &cobra.Command{
	Use:   "touist",
	Short: "A core for the TouIST propositional modelling language.",
	Long:  "Demonstration CLI over the evaluator, CNF converter and clause emitter.",
}

func init() {
	rootCmd.PersistentFlags().Bool("smt", false, "enable smt-mode: permit numeric leaves inside formulas")
	rootCmd.PersistentFlags().Bool("check-only", false, "expand only enough of the formula to type-check it")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().Bool("json", false, "emit diagnostics as JSON instead of plain text")
}

// getFlag fetches a bool flag, printing the error and exiting with status 2
// on misuse, following
// the teacher's pkg/cmd/util.go getFlag helper.
func getFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return v
}

// configureLogging sets the logrus level from --verbose, mirroring
// pkg/cmd/compile.go's "if GetFlag(cmd, "verbose") { log.SetLevel(...) }".
func configureLogging(cmd *cobra.Command) {
	if getFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

// exitOnDiagnostics prints every recorded diagnostic and exits 1 if any is
// fatal, in plain text or JSON depending on --json.
func exitOnDiagnostics(cmd *cobra.Command, diags []diagnosticView, hasFatal bool) {
	if getFlag(cmd, "json") {
		printDiagnosticsJSON(diags)
	} else {
		for _, d := range diags {
			fmt.Println(d.String())
		}
	}

	if hasFatal {
		os.Exit(1)
	}
}
