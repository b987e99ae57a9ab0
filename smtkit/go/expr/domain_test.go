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
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDomain_FromValues(t *testing.T) {
	testCases := []struct {
		values []int64
		want   []ClosedInterval
	}{
		{values: nil, want: nil},
		{values: []int64{4}, want: []ClosedInterval{{4, 4}}},
		{values: []int64{3, 1, 2, 2}, want: []ClosedInterval{{1, 3}}},
		{values: []int64{1, 2, 3, 5, 4, 6, 10, 12, 11, 15, 8}, want: []ClosedInterval{{1, 6}, {8, 8}, {10, 12}, {15, 15}}},
	}

	for _, test := range testCases {
		got := FromValues(test.values).Intervals()
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("FromValues(%v) returned with unexpected diff (-want+got):\n%s", test.values, diff)
		}
	}
}

func TestDomain_FromIntervals(t *testing.T) {
	testCases := []struct {
		name      string
		intervals []ClosedInterval
		want      []ClosedInterval
	}{
		{name: "DropsEmpty", intervals: []ClosedInterval{{5, 1}, {2, 3}}, want: []ClosedInterval{{2, 3}}},
		{name: "MergesOverlapping", intervals: []ClosedInterval{{4, 9}, {0, 5}}, want: []ClosedInterval{{0, 9}}},
		{name: "MergesAdjacent", intervals: []ClosedInterval{{0, 1}, {2, 3}}, want: []ClosedInterval{{0, 3}}},
		{name: "KeepsGaps", intervals: []ClosedInterval{{7, 8}, {0, 1}}, want: []ClosedInterval{{0, 1}, {7, 8}}},
		{name: "Unbounded", intervals: []ClosedInterval{{0, math.MaxInt64}, {5, math.MaxInt64}}, want: []ClosedInterval{{0, math.MaxInt64}}},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			got := FromIntervals(test.intervals).Intervals()
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("FromIntervals(%v) returned with unexpected diff (-want+got):\n%s", test.intervals, diff)
			}
		})
	}
}

func TestDomain_Accessors(t *testing.T) {
	d := FromValues([]int64{0, 1, 2, 5, 9, 10})
	if got := d.String(); got != "[0,2][5,5][9,10]" {
		t.Errorf("String() = %q, want [0,2][5,5][9,10]", got)
	}
	if lo, ok := d.Min(); !ok || lo != 0 {
		t.Errorf("Min() = (%v, %v), want (0, true)", lo, ok)
	}
	if hi, ok := d.Max(); !ok || hi != 10 {
		t.Errorf("Max() = (%v, %v), want (10, true)", hi, ok)
	}
	for v, want := range map[int64]bool{-1: false, 0: true, 2: true, 3: false, 5: true, 8: false, 10: true, 11: false} {
		if got := d.Contains(v); got != want {
			t.Errorf("Contains(%v) = %v, want %v", v, got, want)
		}
	}
	if _, ok := NewDomain(3, 1).Min(); ok {
		t.Errorf("NewDomain(3, 1).Min() reported a value for an empty domain")
	}
}

func TestInDomain(t *testing.T) {
	v := newVars(t, "x")
	x := v[0]
	testCases := []struct {
		name string
		d    Domain
		want string
	}{
		{name: "Single", d: NewDomain(4, 4), want: "eq(4, x)"},
		{name: "Interval", d: NewDomain(1, 8), want: "and(le(1, x), le(x, 8))"},
		{name: "LowerBoundOnly", d: NewDomain(0, math.MaxInt64), want: "le(0, x)"},
		{name: "Union", d: FromValues([]int64{1, 2, 7}), want: "or(and(le(1, x), le(x, 2)), eq(7, x))"},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			got, err := InDomain(x, test.d)
			if err != nil {
				t.Fatalf("InDomain(x, %v) returned with unexpected error %v", test.d, err)
			}
			if got.Name() != test.want {
				t.Errorf("InDomain(x, %v) = %q, want %q", test.d, got.Name(), test.want)
			}
		})
	}

	if _, err := InDomain(x, NewDomain(1, 0)); err == nil {
		t.Errorf("InDomain(x, empty) returned no error")
	}
}

func TestInDomain_Evaluates(t *testing.T) {
	v := newVars(t, "x")
	x := v[0]
	d := FromValues([]int64{-3, 0, 1, 2, 40})
	c, err := InDomain(x, d)
	if err != nil {
		t.Fatalf("InDomain() returned with unexpected error %v", err)
	}
	for n := int64(-5); n <= 45; n++ {
		Assign(map[string]Value{"x": IntValue(n)}, c)
		got, _ := c.Value().Bool()
		if got != d.Contains(n) {
			t.Errorf("InDomain(x, %v) with x = %v evaluates to %v, want %v", d, n, got, d.Contains(n))
		}
	}
}

func TestBroadcast(t *testing.T) {
	r := NewRegistry(DuplicateError)
	q, err := r.VariableArray("q", 3)
	if err != nil {
		t.Fatalf("VariableArray(q, 3) returned with unexpected error %v", err)
	}
	got, err := Broadcast(OpLe, Scalar(Int(1)), q.Flat())
	if err != nil {
		t.Fatalf("Broadcast(OpLe, 1, q) returned with unexpected error %v", err)
	}
	var names []string
	for _, e := range got {
		names = append(names, e.Name())
	}
	if diff := cmp.Diff([]string{"le(1, q_0)", "le(1, q_1)", "le(1, q_2)"}, names); diff != "" {
		t.Errorf("Broadcast(OpLe, 1, q) returned with unexpected diff (-want+got):\n%s", diff)
	}

	pairs, err := Broadcast(OpNe, q.Flat(), []*Expr{Int(0), Int(1), Int(2)})
	if err != nil {
		t.Fatalf("Broadcast(OpNe, q, consts) returned with unexpected error %v", err)
	}
	if got := pairs[2].Name(); got != "ne(2, q_2)" {
		t.Errorf("Broadcast(OpNe, q, consts)[2] = %q, want ne(2, q_2)", got)
	}

	if _, err := Broadcast(OpLe, q.Flat(), []*Expr{Int(0), Int(1)}); !errors.Is(err, ErrArityMismatch) {
		t.Errorf("Broadcast() with lengths 3 and 2 returned error %v, want %v", err, ErrArityMismatch)
	}
	if _, err := Broadcast(OpNot, q.Flat(), q.Flat()); !errors.Is(err, ErrArityMismatch) {
		t.Errorf("Broadcast(OpNot) returned error %v, want %v", err, ErrArityMismatch)
	}
	if _, err := Broadcast(OpAnd, Scalar(Int(1)), q.Flat()); !errors.Is(err, ErrArityMismatch) {
		t.Errorf("Broadcast(OpAnd) returned error %v, want %v", err, ErrArityMismatch)
	}
}

func TestAllDifferent(t *testing.T) {
	r := NewRegistry(DuplicateError)
	q, err := r.VariableArray("q", 4)
	if err != nil {
		t.Fatalf("VariableArray(q, 4) returned with unexpected error %v", err)
	}
	c, err := AllDifferent(q.Flat())
	if err != nil {
		t.Fatalf("AllDifferent() returned with unexpected error %v", err)
	}
	if got := c.NumChildren(); got != 6 {
		t.Errorf("AllDifferent() of 4 has %v pairs, want 6", got)
	}
	if _, err := AllDifferent(q.Flat()[:1]); !errors.Is(err, ErrArityMismatch) {
		t.Errorf("AllDifferent() of 1 returned error %v, want %v", err, ErrArityMismatch)
	}
}
