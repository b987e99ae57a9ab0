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

import "fmt"

// Scalar returns `e` as a collection of one expression, for use with Broadcast.
func Scalar(e *Expr) []*Expr {
	return []*Expr{e}
}

// Broadcast applies the binary operator `op` element-wise to `lhs` and `rhs`. A collection of
// length 1 is repeated to the length of the other one, so
//
//	Broadcast(OpLe, Scalar(Int(1)), q)
//
// returns `1 <= q[i]` for every i. Collections of different lengths greater than 1 are rejected
// with ErrArityMismatch.
func Broadcast(op Op, lhs, rhs []*Expr) ([]*Expr, error) {
	if lo, hi := op.arity(); lo != 2 || hi != 2 {
		return nil, fmt.Errorf("%v is not a binary operator: %w", op, ErrArityMismatch)
	}
	n := max(len(lhs), len(rhs))
	if len(lhs) == 0 || len(rhs) == 0 {
		n = 0
	} else if (len(lhs) != n && len(lhs) != 1) || (len(rhs) != n && len(rhs) != 1) {
		return nil, fmt.Errorf("cannot broadcast %d and %d operands: %w", len(lhs), len(rhs), ErrArityMismatch)
	}
	out := make([]*Expr, n)
	for i := range n {
		a, b := lhs[0], rhs[0]
		if len(lhs) > 1 {
			a = lhs[i]
		}
		if len(rhs) > 1 {
			b = rhs[i]
		}
		e, err := Combine(op, a, b)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = e
	}
	return out, nil
}

// AllDifferent returns the conjunction of `xs[i] != xs[j]` for every pair i < j. It needs at least
// two expressions.
func AllDifferent(xs []*Expr) (*Expr, error) {
	if len(xs) < 2 {
		return nil, fmt.Errorf("AllDifferent needs at least 2 operands, got %d: %w", len(xs), ErrArityMismatch)
	}
	var pairs []*Expr
	for i := range xs {
		for j := i + 1; j < len(xs); j++ {
			ne, err := Combine(OpNe, xs[i], xs[j])
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, ne)
		}
	}
	return Combine(OpAnd, pairs...)
}
