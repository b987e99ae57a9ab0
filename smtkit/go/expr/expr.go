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


// Package expr builds symbolic Boolean and integer expressions for SMT solvers.
//
// An `Expr` is either a named leaf (an identity created through a `Registry`), an integer
// constant, or an operator applied to an ordered list of child expressions. The shape of an
// expression is fixed when it is built; only its value annotation changes, when a model returned
// by a solver is assigned to it.
//
// Leaves are untyped: whether a leaf is a Boolean or an integer is inferred from how it is used
// when the expression is serialized. Operators check the sorts they can see at construction time
// and report `ErrArityMismatch` or `ErrTypeMismatch` immediately.
package expr

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Op is the operator tag of an expression.
type Op uint8

// The closed set of operators.
const (
	OpIdentity Op = iota
	OpConst
	OpNot
	OpAnd
	OpOr
	OpXor
	OpIff
	OpImplies
	OpIte
	OpEq
	OpNe
	OpLe
	OpLt
	OpGe
	OpGt
	OpAdd
	OpSub
	OpNeg
	OpMul
)

var opNames = [...]string{
	OpIdentity: "identity",
	OpConst:    "const",
	OpNot:      "not",
	OpAnd:      "and",
	OpOr:       "or",
	OpXor:      "xor",
	OpIff:      "iff",
	OpImplies:  "implies",
	OpIte:      "ite",
	OpEq:       "eq",
	OpNe:       "ne",
	OpLe:       "le",
	OpLt:       "lt",
	OpGe:       "ge",
	OpGt:       "gt",
	OpAdd:      "add",
	OpSub:      "sub",
	OpNeg:      "neg",
	OpMul:      "mul",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "Op(" + strconv.Itoa(int(o)) + ")"
}

// Commutative returns true if the order of the operands does not change the meaning of `o`.
func (o Op) Commutative() bool {
	switch o {
	case OpAnd, OpOr, OpXor, OpIff, OpEq, OpNe, OpAdd, OpMul:
		return true
	}
	return false
}

// IsComparison returns true for the integer comparison operators.
func (o Op) IsComparison() bool {
	return o >= OpEq && o <= OpGt
}

// IsLeaf returns true for identities and constants.
func (o Op) IsLeaf() bool {
	return o == OpIdentity || o == OpConst
}

// arity returns the minimum and maximum number of operands of `o`. A maximum of -1 means
// unbounded.
func (o Op) arity() (int, int) {
	switch o {
	case OpIdentity, OpConst:
		return 0, 0
	case OpNot, OpNeg:
		return 1, 1
	case OpIff, OpImplies, OpEq, OpNe, OpLe, OpLt, OpGe, OpGt, OpSub:
		return 2, 2
	case OpIte:
		return 3, 3
	case OpAnd, OpOr, OpXor, OpAdd, OpMul:
		return 1, -1
	}
	return 0, 0
}

// Sort is the type of an expression.
type Sort uint8

const (
	// SortAny is the sort of a leaf whose type has not been fixed by its use.
	SortAny Sort = iota
	// SortBool is the Boolean sort.
	SortBool
	// SortInt is the integer sort.
	SortInt
)

func (s Sort) String() string {
	switch s {
	case SortBool:
		return "Bool"
	case SortInt:
		return "Int"
	}
	return "Any"
}

// accepts returns true if an operand of sort `got` can be used where `s` is expected.
func (s Sort) accepts(got Sort) bool {
	return got == SortAny || s == SortAny || got == s
}

// Expr is a node of an expression tree.
type Expr struct {
	op       Op
	children []*Expr
	name     string
	sort     Sort
	value    Value
}

// Op returns the operator of the expression.
func (e *Expr) Op() Op {
	return e.op
}

// Name returns the display name of the expression. It is user supplied for identities, the
// decimal text for constants, and a structural summary otherwise.
func (e *Expr) Name() string {
	return e.name
}

// Sort returns the sort known at construction time.
func (e *Expr) Sort() Sort {
	return e.sort
}

// Value returns the value annotation of the expression.
func (e *Expr) Value() Value {
	return e.value
}

// IsLeaf returns true if the expression has no children.
func (e *Expr) IsLeaf() bool {
	return e.op.IsLeaf()
}

// NumChildren returns the number of operands.
func (e *Expr) NumChildren() int {
	return len(e.children)
}

// Child returns the i-th operand.
func (e *Expr) Child(i int) *Expr {
	return e.children[i]
}

// Children returns a copy of the operands, in construction order.
func (e *Expr) Children() []*Expr {
	return slices.Clone(e.children)
}

func (e *Expr) String() string {
	return e.name
}

func newIdentity(name string) *Expr {
	return &Expr{op: OpIdentity, name: name, sort: SortAny}
}

// Int returns the integer constant `v`.
func Int(v int64) *Expr {
	return &Expr{op: OpConst, name: strconv.FormatInt(v, 10), sort: SortInt, value: IntValue(v)}
}

// operandSorts returns the sort expected of each operand and the result sort of `op` applied to
// `children`. The children count has already been checked.
func operandSorts(op Op, children []*Expr) ([]Sort, Sort, error) {
	want := make([]Sort, len(children))
	switch op {
	case OpNot, OpAnd, OpOr, OpXor, OpIff, OpImplies:
		for i := range want {
			want[i] = SortBool
		}
		return want, SortBool, nil
	case OpEq, OpNe, OpLe, OpLt, OpGe, OpGt:
		for i := range want {
			want[i] = SortInt
		}
		return want, SortBool, nil
	case OpAdd, OpSub, OpNeg, OpMul:
		for i := range want {
			want[i] = SortInt
		}
		return want, SortInt, nil
	case OpIte:
		then, els := children[1].sort, children[2].sort
		if !then.accepts(els) {
			return nil, SortAny, fmt.Errorf("ite branches %q (%v) and %q (%v): %w", children[1].name, then, children[2].name, els, ErrTypeMismatch)
		}
		branch := then
		if branch == SortAny {
			branch = els
		}
		return []Sort{SortBool, branch, branch}, branch, nil
	}
	return nil, SortAny, fmt.Errorf("operator %v: %w", op, ErrArityMismatch)
}

// Combine applies `op` to `children`. It returns ErrArityMismatch if the number of children does
// not match the operator (or a child is nil), and ErrTypeMismatch if a child has a sort the
// operator cannot accept. Leaves are not built with Combine: use Variable and Int.
func Combine(op Op, children ...*Expr) (*Expr, error) {
	if op.IsLeaf() {
		return nil, fmt.Errorf("%v is a leaf operator, use Variable or Int: %w", op, ErrArityMismatch)
	}
	lo, hi := op.arity()
	if len(children) < lo || (hi >= 0 && len(children) > hi) {
		if lo == hi {
			return nil, fmt.Errorf("%v takes %d operands, got %d: %w", op, lo, len(children), ErrArityMismatch)
		}
		return nil, fmt.Errorf("%v takes at least %d operands, got %d: %w", op, lo, len(children), ErrArityMismatch)
	}
	for i, c := range children {
		if c == nil {
			return nil, fmt.Errorf("%v operand %d is nil: %w", op, i, ErrArityMismatch)
		}
	}
	want, sort, err := operandSorts(op, children)
	if err != nil {
		return nil, err
	}
	for i, c := range children {
		if !want[i].accepts(c.sort) {
			return nil, fmt.Errorf("%v operand %d %q is %v, want %v: %w", op, i, c.name, c.sort, want[i], ErrTypeMismatch)
		}
	}
	return &Expr{
		op:       op,
		children: slices.Clone(children),
		name:     summaryName(op, children),
		sort:     sort,
	}, nil
}

// summaryName returns `op(a, b, ...)`. Operand names of commutative operators are sorted so that
// the name does not depend on the order of the operands.
func summaryName(op Op, children []*Expr) string {
	names := make([]string, len(children))
	for i, c := range children {
		names[i] = c.name
	}
	if op.Commutative() {
		slices.Sort(names)
	}
	return op.String() + "(" + strings.Join(names, ", ") + ")"
}

func mustCombine(op Op, children ...*Expr) *Expr {
	e, err := Combine(op, children...)
	if err != nil {
		panic(err)
	}
	return e
}

func prepend(first *Expr, rest []*Expr) []*Expr {
	return append([]*Expr{first}, rest...)
}

// The helpers below fix the operand count in their signature and panic if an operand has the
// wrong sort. Use Combine to get an error instead.

// Not returns the negation of `e`.
func Not(e *Expr) *Expr { return mustCombine(OpNot, e) }

// And returns the conjunction of its operands.
func And(first *Expr, rest ...*Expr) *Expr { return mustCombine(OpAnd, prepend(first, rest)...) }

// Or returns the disjunction of its operands.
func Or(first *Expr, rest ...*Expr) *Expr { return mustCombine(OpOr, prepend(first, rest)...) }

// Xor returns the exclusive or of its operands: true iff an odd number of them are true.
func Xor(first *Expr, rest ...*Expr) *Expr { return mustCombine(OpXor, prepend(first, rest)...) }

// Iff returns `a <=> b`.
func Iff(a, b *Expr) *Expr { return mustCombine(OpIff, a, b) }

// Implies returns `a => b`.
func Implies(a, b *Expr) *Expr { return mustCombine(OpImplies, a, b) }

// Ite returns `if cond then a else b`.
func Ite(cond, a, b *Expr) *Expr { return mustCombine(OpIte, cond, a, b) }

// Eq returns `a == b` over integers.
func Eq(a, b *Expr) *Expr { return mustCombine(OpEq, a, b) }

// Ne returns `a != b` over integers.
func Ne(a, b *Expr) *Expr { return mustCombine(OpNe, a, b) }

// Le returns `a <= b`.
func Le(a, b *Expr) *Expr { return mustCombine(OpLe, a, b) }

// Lt returns `a < b`.
func Lt(a, b *Expr) *Expr { return mustCombine(OpLt, a, b) }

// Ge returns `a >= b`.
func Ge(a, b *Expr) *Expr { return mustCombine(OpGe, a, b) }

// Gt returns `a > b`.
func Gt(a, b *Expr) *Expr { return mustCombine(OpGt, a, b) }

// Add returns the sum of its operands.
func Add(first *Expr, rest ...*Expr) *Expr { return mustCombine(OpAdd, prepend(first, rest)...) }

// Sub returns `a - b`.
func Sub(a, b *Expr) *Expr { return mustCombine(OpSub, a, b) }

// Neg returns `-e`.
func Neg(e *Expr) *Expr { return mustCombine(OpNeg, e) }

// Mul returns the product of its operands.
func Mul(first *Expr, rest ...*Expr) *Expr { return mustCombine(OpMul, prepend(first, rest)...) }
