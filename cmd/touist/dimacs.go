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

	"github.com/spf13/cobra"

	"touist/internal/ast"
	"touist/internal/clause"
	"touist/internal/cnf"
	"touist/internal/eval"
)

var dimacsCmd = &cobra.Command{
	Use:   "dimacs <example>",
	Short: "run the full pipeline over an embedded example and print DIMACS clauses plus the name table",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)

		ex, ok := findExample(args[0])
		if !ok {
			fmt.Printf("no such example %q\n", args[0])
			os.Exit(2)
		}

		st := eval.NewState(eval.Config{
			SMTMode:   getFlag(cmd, "smt"),
			CheckOnly: getFlag(cmd, "check-only"),
		})

		code := &ast.TouistCode{Stmts: []ast.Node{ex.build()}}

		formula, err := st.EvalTopLevel(code)

		diags := toDiagnosticViews(st.Sink.All())
		exitOnDiagnostics(cmd, diags, err != nil)

		c, err := cnf.NewConverter().ToCNF(formula)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		clauses, table, err := clause.Collect(c)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		if err := clause.WriteDIMACS(os.Stdout, clauses, table, true); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(dimacsCmd)
}
