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

// Package clause implements the clause emitter of spec.md §4.9: it converts
// a CNF AST into integer-keyed clauses plus a name<->id table, and writes the
// DIMACS/QDIMACS textual forms. The split between Table/Clause (the
// in-memory model) and the Write* functions (its serialised form) mirrors
// pkg/binfile's separation of an in-memory trace model from its encoding.
package clause

import (
	"fmt"
	"io"

	"touist/internal/ast"
)

// Table assigns a unique positive integer to each distinct proposition name
// on first encounter, and records both directions of the mapping.
type Table struct {
	nameToID map[string]int
	idToName []string // idToName[i-1] is the name of id i
}

// NewTable returns an empty name<->id table.
func NewTable() *Table {
	return &Table{nameToID: make(map[string]int)}
}

// ID returns name's id, assigning the next unused one if name is new.
func (t *Table) ID(name string) int {
	if id, ok := t.nameToID[name]; ok {
		return id
	}

	t.idToName = append(t.idToName, name)
	id := len(t.idToName)
	t.nameToID[name] = id

	return id
}

// Name returns the proposition name bound to id, if any.
func (t *Table) Name(id int) (string, bool) {
	if id < 1 || id > len(t.idToName) {
		return "", false
	}

	return t.idToName[id-1], true
}

// Len returns the number of distinct propositions seen so far.
func (t *Table) Len() int { return len(t.idToName) }

// Clause is one disjunction of literals, each a signed variable id (negative
// for a negated literal), in the order encountered.
type Clause []int

// Collect walks a CNF AST (And/Or/Not/Prop, with Top/Bottom already encoded
// away by the converter) and returns its clauses plus the name table built
// while walking it.
func Collect(n ast.Node) ([]Clause, *Table, error) {
	t := NewTable()

	var clauses []Clause

	var walkAnd func(n ast.Node) error
	walkAnd = func(n ast.Node) error {
		if a, ok := n.(*ast.And); ok {
			if err := walkAnd(a.X); err != nil {
				return err
			}

			return walkAnd(a.Y)
		}

		cl, err := collectClause(n, t)
		if err != nil {
			return err
		}

		clauses = append(clauses, cl)

		return nil
	}

	if err := walkAnd(n); err != nil {
		return nil, nil, err
	}

	return clauses, t, nil
}

func collectClause(n ast.Node, t *Table) (Clause, error) {
	var lits Clause

	var walkOr func(n ast.Node) error
	walkOr = func(n ast.Node) error {
		if o, ok := n.(*ast.Or); ok {
			if err := walkOr(o.X); err != nil {
				return err
			}

			return walkOr(o.Y)
		}

		lit, err := literalInt(n, t)
		if err != nil {
			return err
		}

		lits = append(lits, lit)

		return nil
	}

	if err := walkOr(n); err != nil {
		return nil, err
	}

	return lits, nil
}

func literalInt(n ast.Node, t *Table) (int, error) {
	switch x := n.(type) {
	case *ast.Prop:
		return t.ID(x.Name), nil
	case *ast.Not:
		p, ok := x.X.(*ast.Prop)
		if !ok {
			return 0, fmt.Errorf("clause: negation of a non-proposition literal in CNF position")
		}

		return -t.ID(p.Name), nil
	default:
		return 0, fmt.Errorf("clause: unexpected node of type %T in clause position", n)
	}
}

// WriteDIMACS writes the SAT DIMACS form: a "p cnf <vars> <clauses>"
// preamble, one optional "c <name> <id>" comment line per proposition when
// withTable is set (per spec.md §6, the table is mixed into the CNF stream
// as comment lines when requested), then one line per clause terminated by
// "0".
func WriteDIMACS(w io.Writer, clauses []Clause, t *Table, withTable bool) error {
	if _, err := fmt.Fprintf(w, "p cnf %d %d\n", t.Len(), len(clauses)); err != nil {
		return err
	}

	if withTable {
		for id := 1; id <= t.Len(); id++ {
			name, _ := t.Name(id)

			if _, err := fmt.Fprintf(w, "c %s %d\n", name, id); err != nil {
				return err
			}
		}
	}

	for _, cl := range clauses {
		if err := writeClauseLine(w, cl); err != nil {
			return err
		}
	}

	return nil
}

func writeClauseLine(w io.Writer, cl Clause) error {
	for _, lit := range cl {
		if _, err := fmt.Fprintf(w, "%d ", lit); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, "0")

	return err
}

// QuantKind distinguishes a universal from an existential quantifier block.
type QuantKind int

const (
	// Exists marks an existential ("e") quantifier block.
	Exists QuantKind = iota
	// ForAll marks a universal ("a") quantifier block.
	ForAll
)

func (k QuantKind) letter() string {
	if k == ForAll {
		return "a"
	}

	return "e"
}

// Block is one maximal run of consecutive same-kind quantified variables.
type Block struct {
	Kind QuantKind
	Vars []int
}

// Prefix is the QBF prenex quantifier prefix: an ordered list of blocks,
// outermost first, per spec.md §4.9. Quantifier *source* syntax is out of
// scope (spec.md §1 Non-goals); callers build a Prefix directly.
type Prefix struct {
	Blocks []Block
}

// NewPrefix returns an empty quantifier prefix.
func NewPrefix() *Prefix {
	return &Prefix{}
}

// AddBlock appends vars to the prefix, merging into the last block if it is
// already of the same kind (consecutive same-kind quantifiers group into one
// block, per spec.md §4.9).
func (p *Prefix) AddBlock(kind QuantKind, vars []int) {
	if len(vars) == 0 {
		return
	}

	if n := len(p.Blocks); n > 0 && p.Blocks[n-1].Kind == kind {
		p.Blocks[n-1].Vars = append(p.Blocks[n-1].Vars, vars...)
		return
	}

	p.Blocks = append(p.Blocks, Block{Kind: kind, Vars: vars})
}

// AddExistential appends an existentially-quantified variable block.
func (p *Prefix) AddExistential(vars []int) { p.AddBlock(Exists, vars) }

// AddUniversal appends a universally-quantified variable block.
func (p *Prefix) AddUniversal(vars []int) { p.AddBlock(ForAll, vars) }

// AddTseytinAuxiliaries binds ids at the innermost scope as existentials,
// per spec.md §4.9/§9: merging into a trailing existential block if one is
// already innermost, otherwise opening a new one.
func (p *Prefix) AddTseytinAuxiliaries(ids []int) {
	p.AddExistential(ids)
}

// WriteQDIMACS writes the QBF QDIMACS form: the DIMACS preamble, then one
// "a"/"e" line per quantifier block (each terminated by "0"), then the
// clauses.
func WriteQDIMACS(w io.Writer, clauses []Clause, t *Table, prefix *Prefix) error {
	if _, err := fmt.Fprintf(w, "p cnf %d %d\n", t.Len(), len(clauses)); err != nil {
		return err
	}

	for _, b := range prefix.Blocks {
		if _, err := fmt.Fprintf(w, "%s", b.Kind.letter()); err != nil {
			return err
		}

		for _, v := range b.Vars {
			if _, err := fmt.Fprintf(w, " %d", v); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintln(w, " 0"); err != nil {
			return err
		}
	}

	for _, cl := range clauses {
		if err := writeClauseLine(w, cl); err != nil {
			return err
		}
	}

	return nil
}
