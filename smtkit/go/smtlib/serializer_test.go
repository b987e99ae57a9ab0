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
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/smtkit/smtkit/go/expr"
)

func newVars(t *testing.T, names ...string) []*expr.Expr {
	t.Helper()
	r := expr.NewRegistry(expr.DuplicateError)
	vars := make([]*expr.Expr, len(names))
	for i, n := range names {
		v, err := r.Variable(n)
		if err != nil {
			t.Fatalf("Variable(%q) returned with unexpected error %v", n, err)
		}
		vars[i] = v
	}
	return vars
}

func TestSerializer_Assertion(t *testing.T) {
	v := newVars(t, "p", "q", "x", "y")
	p, q, x, y := v[0], v[1], v[2], v[3]
	testCases := []struct {
		name string
		e    *expr.Expr
		want string
	}{
		{
			name: "Boolean",
			e:    expr.Or(expr.Not(p), expr.Implies(p, q)),
			want: "(declare-fun p () Bool)\n(declare-fun q () Bool)\n(assert (or (not p) (=> p q)))\n",
		},
		{
			name: "Comparison",
			e:    expr.And(expr.Le(expr.Int(1), x), expr.Ne(x, y)),
			want: "(declare-fun x () Int)\n(declare-fun y () Int)\n(assert (and (<= 1 x) (distinct x y)))\n",
		},
		{
			name: "Arithmetic",
			e:    expr.Ne(expr.Sub(x, y), expr.Add(expr.Int(-2), expr.Neg(y), expr.Mul(expr.Int(3), x))),
			want: "(declare-fun x () Int)\n(declare-fun y () Int)\n(assert (distinct (- x y) (+ (- 2) (- y) (* 3 x))))\n",
		},
		{
			name: "Iff",
			e:    expr.Iff(p, expr.Xor(q, p)),
			want: "(declare-fun p () Bool)\n(declare-fun q () Bool)\n(assert (= p (xor q p)))\n",
		},
		{
			name: "IteBranchesTakeContextSort",
			e:    expr.Lt(expr.Ite(p, x, y), expr.Int(0)),
			want: "(declare-fun p () Bool)\n(declare-fun x () Int)\n(declare-fun y () Int)\n(assert (< (ite p x y) 0))\n",
		},
		{
			name: "IteOfBooleans",
			e:    expr.Ite(p, q, expr.Not(q)),
			want: "(declare-fun p () Bool)\n(declare-fun q () Bool)\n(assert (ite p q (not q)))\n",
		},
		{
			name: "SingleOperand",
			e:    expr.And(expr.Gt(x, expr.Int(2))),
			want: "(declare-fun x () Int)\n(assert (> x 2))\n",
		},
		{
			name: "BareLeaf",
			e:    p,
			want: "(declare-fun p () Bool)\n(assert p)\n",
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			got, err := NewSerializer().Assertion(test.e)
			if err != nil {
				t.Fatalf("Assertion(%v) returned with unexpected error %v", test.e, err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Assertion(%v) returned with unexpected diff (-want+got):\n%s", test.e, diff)
			}
		})
	}
}

func TestSerializer_DeclaresOnce(t *testing.T) {
	v := newVars(t, "x", "y")
	x, y := v[0], v[1]
	s := NewSerializer()
	if _, err := s.Assertion(expr.Lt(x, y)); err != nil {
		t.Fatalf("Assertion() returned with unexpected error %v", err)
	}
	got, err := s.Assertion(expr.Ge(x, expr.Int(0)))
	if err != nil {
		t.Fatalf("Assertion() returned with unexpected error %v", err)
	}
	if want := "(assert (>= x 0))\n"; got != want {
		t.Errorf("second Assertion() = %q, want %q", got, want)
	}
	if diff := cmp.Diff([]string{"x", "y"}, s.DeclaredNames()); diff != "" {
		t.Errorf("DeclaredNames() returned with unexpected diff (-want+got):\n%s", diff)
	}
	if sort, ok := s.Declared("y"); !ok || sort != expr.SortInt {
		t.Errorf("Declared(y) = (%v, %v), want (Int, true)", sort, ok)
	}
	s.Reset()
	if _, ok := s.Declared("x"); ok {
		t.Errorf("Declared(x) after Reset() reported a declaration")
	}
}

func TestSerializer_TypeMismatch(t *testing.T) {
	v := newVars(t, "a", "x")
	a, x := v[0], v[1]
	testCases := []struct {
		name  string
		prior *expr.Expr
		e     *expr.Expr
	}{
		{name: "WithinAssertion", e: expr.And(a, expr.Lt(a, expr.Int(3)))},
		{name: "AgainstEarlierDeclaration", prior: expr.Not(a), e: expr.Eq(a, expr.Int(1))},
		{name: "IntegerRoot", e: expr.Add(x, expr.Int(1))},
		{name: "IteMixedUse", e: expr.And(expr.Ite(a, x, x), expr.Lt(x, expr.Int(1)))},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			s := NewSerializer()
			if test.prior != nil {
				if _, err := s.Assertion(test.prior); err != nil {
					t.Fatalf("Assertion(%v) returned with unexpected error %v", test.prior, err)
				}
			}
			before := s.DeclaredNames()
			if _, err := s.Assertion(test.e); !errors.Is(err, expr.ErrTypeMismatch) {
				t.Errorf("Assertion(%v) returned error %v, want %v", test.e, err, expr.ErrTypeMismatch)
			}
			if diff := cmp.Diff(before, s.DeclaredNames()); diff != "" {
				t.Errorf("failed Assertion(%v) changed declarations (-want+got):\n%s", test.e, diff)
			}
		})
	}
}

func TestSerializer_QuotesSymbols(t *testing.T) {
	v := newVars(t, "queen 1", "assert")
	s := NewSerializer()
	got, err := s.Assertion(expr.Eq(v[0], v[1]))
	if err != nil {
		t.Fatalf("Assertion() returned with unexpected error %v", err)
	}
	want := "(declare-fun |queen 1| () Int)\n(declare-fun |assert| () Int)\n(assert (= |queen 1| |assert|))\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Assertion() returned with unexpected diff (-want+got):\n%s", diff)
	}

	bad := newVars(t, "a|b")
	if _, err := NewSerializer().Assertion(bad[0]); !errors.Is(err, ErrInvalidSymbol) {
		t.Errorf("Assertion(a|b) returned error %v, want %v", err, ErrInvalidSymbol)
	}
}

func TestCommands(t *testing.T) {
	got, err := GetValue([]string{"q_0", "x y"})
	if err != nil {
		t.Fatalf("GetValue() returned with unexpected error %v", err)
	}
	if want := "(get-value (q_0 |x y|))"; got != want {
		t.Errorf("GetValue() = %q, want %q", got, want)
	}
	if _, err := GetValue(nil); err == nil {
		t.Errorf("GetValue(nil) returned no error")
	}
	if got, want := SetOption(":produce-models", "true"), "(set-option :produce-models true)"; got != want {
		t.Errorf("SetOption() = %q, want %q", got, want)
	}
	if got, want := SetOption("random-seed", "7"), "(set-option :random-seed 7)"; got != want {
		t.Errorf("SetOption() = %q, want %q", got, want)
	}
}

func TestTerm(t *testing.T) {
	v := newVars(t, "x")
	got, err := Term(expr.Eq(v[0], expr.Int(-9223372036854775808)))
	if err != nil {
		t.Fatalf("Term() returned with unexpected error %v", err)
	}
	if want := "(= x (- 9223372036854775808))"; got != want {
		t.Errorf("Term() = %q, want %q", got, want)
	}
}
