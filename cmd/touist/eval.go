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

	"touist/internal/ast"
	"touist/internal/eval"
)

var evalCmd = &cobra.Command{
	Use:   "eval <example>",
	Short: "run the formula evaluator over one of the embedded examples and print the normalised formula",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)

		ex, ok := findExample(args[0])
		if !ok {
			fmt.Printf("no such example %q\n", args[0])
			os.Exit(2)
		}

		log.Debugf("evaluating example %q: %s", ex.name, ex.description)

		st := eval.NewState(eval.Config{
			SMTMode:               getFlag(cmd, "smt"),
			CheckOnly:             getFlag(cmd, "check-only"),
			EmptyGeneratorIsFatal: false,
		})

		code := &ast.TouistCode{Stmts: []ast.Node{ex.build()}}

		result, err := st.EvalTopLevel(code)

		diags := toDiagnosticViews(st.Sink.All())
		exitOnDiagnostics(cmd, diags, err != nil)

		fmt.Println(render(result))
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)
}
