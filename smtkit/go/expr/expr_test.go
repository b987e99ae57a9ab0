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


package expr

import (
	"errors"
	"testing"
)

func newVars(t *testing.T, names ...string) []*Expr {
	t.Helper()
	r := NewRegistry(DuplicateError)
	var out []*Expr
	for _, n := range names {
		v, err := r.Variable(n)
		if err != nil {
			t.Fatalf("Variable(%q) returned with unexpected error %v", n, err)
		}
		out = append(out, v)
	}
	return out
}

func TestCombine_Arity(t *testing.T) {
	v := newVars(t, "a", "b", "c")
	a, b, c := v[0], v[1], v[2]
	testCases := []struct {
		name     string
		op       Op
		children []*Expr
		wantErr  error
	}{
		{name: "NotOne", op: OpNot, children: []*Expr{a}},
		{name: "NotTwo", op: OpNot, children: []*Expr{a, b}, wantErr: ErrArityMismatch},
		{name: "NotNone", op: OpNot, wantErr: ErrArityMismatch},
		{name: "AndOne", op: OpAnd, children: []*Expr{a}},
		{name: "AndMany", op: OpAnd, children: []*Expr{a, b, c}},
		{name: "AndNone", op: OpAnd, wantErr: ErrArityMismatch},
		{name: "OrNone", op: OpOr, wantErr: ErrArityMismatch},
		{name: "ImpliesThree", op: OpImplies, children: []*Expr{a, b, c}, wantErr: ErrArityMismatch},
		{name: "IffTwo", op: OpIff, children: []*Expr{a, b}},
		{name: "IteThree", op: OpIte, children: []*Expr{a, b, c}},
		{name: "IteTwo", op: OpIte, children: []*Expr{a, b}, wantErr: ErrArityMismatch},
		{name: "LtOne", op: OpLt, children: []*Expr{a}, wantErr: ErrArityMismatch},
		{name: "NilChild", op: OpAnd, children: []*Expr{a, nil}, wantErr: ErrArityMismatch},
		{name: "Identity", op: OpIdentity, wantErr: ErrArityMismatch},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			got, err := Combine(test.op, test.children...)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("Combine(%v) returned error %v, want %v", test.op, err, test.wantErr)
			}
			if test.wantErr == nil && got.NumChildren() != len(test.children) {
				t.Errorf("NumChildren() = %v, want %v", got.NumChildren(), len(test.children))
			}
		})
	}
}

func TestCombine_Sort(t *testing.T) {
	v := newVars(t, "x", "y", "p")
	x, y, p := v[0], v[1], v[2]
	testCases := []struct {
		name     string
		op       Op
		children []*Expr
		wantSort Sort
		wantErr  error
	}{
		{name: "AndOfLeaves", op: OpAnd, children: []*Expr{x, y}, wantSort: SortBool},
		{name: "AndOfConstant", op: OpAnd, children: []*Expr{p, Int(3)}, wantErr: ErrTypeMismatch},
		{name: "LtOfLeaves", op: OpLt, children: []*Expr{x, y}, wantSort: SortBool},
		{name: "LtOfConjunction", op: OpLt, children: []*Expr{And(x, y), Int(3)}, wantErr: ErrTypeMismatch},
		{name: "AddOfConstants", op: OpAdd, children: []*Expr{Int(1), Int(2)}, wantSort: SortInt},
		{name: "NotOfSum", op: OpNot, children: []*Expr{Add(x, Int(1))}, wantErr: ErrTypeMismatch},
		{name: "IteIntBranch", op: OpIte, children: []*Expr{p, x, Int(1)}, wantSort: SortInt},
		{name: "IteUntypedBranches", op: OpIte, children: []*Expr{p, x, y}, wantSort: SortAny},
		{name: "IteMixedBranches", op: OpIte, children: []*Expr{p, Lt(x, y), Int(1)}, wantErr: ErrTypeMismatch},
		{name: "IteIntCondition", op: OpIte, children: []*Expr{Int(0), x, y}, wantErr: ErrTypeMismatch},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			got, err := Combine(test.op, test.children...)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("Combine(%v) returned error %v, want %v", test.op, err, test.wantErr)
			}
			if err == nil && got.Sort() != test.wantSort {
				t.Errorf("Sort() = %v, want %v", got.Sort(), test.wantSort)
			}
		})
	}
}

func TestHelpers_PanicOnSortError(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrTypeMismatch) {
			t.Errorf("And(Int(1)) panicked with %v, want %v", r, ErrTypeMismatch)
		}
	}()
	And(Int(1))
}

func TestExpr_Name(t *testing.T) {
	v := newVars(t, "a", "b", "x")
	a, b, x := v[0], v[1], v[2]
	testCases := []struct {
		name string
		e    *Expr
		want string
	}{
		{name: "Leaf", e: a, want: "a"},
		{name: "Constant", e: Int(-4), want: "-4"},
		{name: "CommutativeSorted", e: Or(b, a), want: "or(a, b)"},
		{name: "NonCommutativeKeepsOrder", e: Implies(b, a), want: "implies(b, a)"},
		{name: "Nested", e: And(Or(a, Not(b)), Not(a)), want: "and(not(a), or(a, not(b)))"},
		{name: "Comparison", e: Le(Int(1), x), want: "le(1, x)"},
		{name: "Arithmetic", e: Ne(Sub(x, Int(2)), Neg(x)), want: "ne(neg(x), sub(x, 2))"},
		{name: "Ite", e: Ite(a, x, Int(0)), want: "ite(a, x, 0)"},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			if got := test.e.Name(); got != test.want {
				t.Errorf("Name() = %q, want %q", got, test.want)
			}
		})
	}
}

func TestExpr_ChildrenIsACopy(t *testing.T) {
	v := newVars(t, "a", "b")
	e := And(v[0], v[1])
	c := e.Children()
	c[0] = v[1]
	if e.Child(0) != v[0] {
		t.Errorf("modifying Children() changed the expression")
	}
}

func TestOp_String(t *testing.T) {
	if got, want := OpImplies.String(), "implies"; got != want {
		t.Errorf("OpImplies.String() = %q, want %q", got, want)
	}
	if got, want := Op(200).String(), "Op(200)"; got != want {
		t.Errorf("Op(200).String() = %q, want %q", got, want)
	}
}
