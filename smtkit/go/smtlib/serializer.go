// Copyright 2010-2025 Google LLC
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package smtlib

import (
	"fmt"
	"strings"

	"github.com/google/smtkit/smtkit/go/expr"
)

// Serializer writes assertions for one solver session. It remembers the sort each leaf was
// declared with so that every leaf is declared exactly once and used with a single sort.
type Serializer struct {
	declared map[string]expr.Sort
	order    []string
}

// NewSerializer returns a serializer with nothing declared.
func NewSerializer() *Serializer {
	return &Serializer{declared: make(map[string]expr.Sort)}
}

// Declared returns the sort a leaf was declared with.
func (s *Serializer) Declared(name string) (expr.Sort, bool) {
	sort, ok := s.declared[name]
	return sort, ok
}

// DeclaredNames returns the declared leaves in declaration order.
func (s *Serializer) DeclaredNames() []string {
	return append([]string(nil), s.order...)
}

// Reset forgets every declaration.
func (s *Serializer) Reset() {
	clear(s.declared)
	s.order = nil
}

// Assertion returns the commands asserting `e`: a declaration for each leaf not declared yet,
// followed by the assert command, each on its own line. Leaf sorts are inferred from how the leaves
// are used; a leaf used both as a Boolean and as an integer, in `e` or in an earlier assertion, is
// an ErrTypeMismatch. Nothing is declared when an error is returned.
func (s *Serializer) Assertion(e *expr.Expr) (string, error) {
	inf := inference{prior: s.declared, leaves: make(map[string]expr.Sort), seen: make(map[*expr.Expr]expr.Sort)}
	if err := inf.visit(e, expr.SortBool); err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, name := range inf.order {
		decl, err := declaration(name, inf.leaves[name])
		if err != nil {
			return "", err
		}
		sb.WriteString(decl)
		sb.WriteByte('\n')
	}
	sb.WriteString("(assert ")
	if err := writeTerm(&sb, e); err != nil {
		return "", err
	}
	sb.WriteString(")\n")

	for _, name := range inf.order {
		s.declared[name] = inf.leaves[name]
		s.order = append(s.order, name)
	}
	return sb.String(), nil
}

// Term returns the SMT-LIB text of `e` without declaring anything.
func Term(e *expr.Expr) (string, error) {
	var sb strings.Builder
	if err := writeTerm(&sb, e); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func declaration(name string, sort expr.Sort) (string, error) {
	sym, err := Symbol(name)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(declare-fun %s () %v)", sym, sort), nil
}

// inference assigns a sort to every leaf of one assertion.
type inference struct {
	prior  map[string]expr.Sort
	leaves map[string]expr.Sort
	order  []string
	seen   map[*expr.Expr]expr.Sort
}

// visit checks that `e` can be used where a term of sort `want` is expected.
func (inf *inference) visit(e *expr.Expr, want expr.Sort) error {
	if got, ok := inf.seen[e]; ok && got == want {
		return nil
	}
	inf.seen[e] = want

	switch e.Op() {
	case expr.OpIdentity:
		return inf.leaf(e.Name(), want)
	case expr.OpConst:
		if want != expr.SortInt {
			return fmt.Errorf("constant %v used as %v: %w", e.Name(), want, expr.ErrTypeMismatch)
		}
		return nil
	}

	if got := e.Sort(); got != expr.SortAny && got != want {
		return fmt.Errorf("%q is %v, used as %v: %w", e.Name(), got, want, expr.ErrTypeMismatch)
	}
	for i := range e.NumChildren() {
		if err := inf.visit(e.Child(i), operandSort(e.Op(), i, want)); err != nil {
			return err
		}
	}
	return nil
}

func (inf *inference) leaf(name string, want expr.Sort) error {
	if got, ok := inf.prior[name]; ok {
		if got != want {
			return fmt.Errorf("%q was declared %v, used as %v: %w", name, got, want, expr.ErrTypeMismatch)
		}
		return nil
	}
	got, ok := inf.leaves[name]
	if !ok {
		inf.leaves[name] = want
		inf.order = append(inf.order, name)
		return nil
	}
	if got != want {
		return fmt.Errorf("%q is used both as %v and as %v: %w", name, got, want, expr.ErrTypeMismatch)
	}
	return nil
}

// operandSort returns the sort expected of operand `i` of `op` when the node itself is expected
// to have sort `result`.
func operandSort(op expr.Op, i int, result expr.Sort) expr.Sort {
	switch op {
	case expr.OpNot, expr.OpAnd, expr.OpOr, expr.OpXor, expr.OpIff, expr.OpImplies:
		return expr.SortBool
	case expr.OpEq, expr.OpNe, expr.OpLe, expr.OpLt, expr.OpGe, expr.OpGt,
		expr.OpAdd, expr.OpSub, expr.OpNeg, expr.OpMul:
		return expr.SortInt
	case expr.OpIte:
		if i == 0 {
			return expr.SortBool
		}
		return result
	case expr.OpIdentity, expr.OpConst:
	}
	return expr.SortAny
}

// keyword returns the SMT-LIB function symbol of a compound operator.
func keyword(op expr.Op) string {
	switch op {
	case expr.OpNot:
		return "not"
	case expr.OpAnd:
		return "and"
	case expr.OpOr:
		return "or"
	case expr.OpXor:
		return "xor"
	case expr.OpIff, expr.OpEq:
		return "="
	case expr.OpImplies:
		return "=>"
	case expr.OpIte:
		return "ite"
	case expr.OpNe:
		return "distinct"
	case expr.OpLe:
		return "<="
	case expr.OpLt:
		return "<"
	case expr.OpGe:
		return ">="
	case expr.OpGt:
		return ">"
	case expr.OpAdd:
		return "+"
	case expr.OpSub, expr.OpNeg:
		return "-"
	case expr.OpMul:
		return "*"
	case expr.OpIdentity, expr.OpConst:
	}
	return ""
}

func writeTerm(sb *strings.Builder, e *expr.Expr) error {
	switch e.Op() {
	case expr.OpIdentity:
		sym, err := Symbol(e.Name())
		if err != nil {
			return err
		}
		sb.WriteString(sym)
		return nil
	case expr.OpConst:
		v, _ := e.Value().Int()
		sb.WriteString(numeral(v))
		return nil
	}
	// A one-operand n-ary application is its operand.
	if e.NumChildren() == 1 && e.Op() != expr.OpNot && e.Op() != expr.OpNeg {
		return writeTerm(sb, e.Child(0))
	}
	sb.WriteByte('(')
	sb.WriteString(keyword(e.Op()))
	for i := range e.NumChildren() {
		sb.WriteByte(' ')
		if err := writeTerm(sb, e.Child(i)); err != nil {
			return err
		}
	}
	sb.WriteByte(')')
	return nil
}
