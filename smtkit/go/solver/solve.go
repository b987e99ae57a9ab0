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


package solver

import (
	"context"

	"github.com/google/smtkit/smtkit/go/expr"
)

// Solve asserts `constraints` on a fresh session and checks them. When they are satisfiable it
// returns the model over every variable they use and also stores it, with the derived values of
// every subexpression, into the expression trees. An unknown answer is returned with an error
// wrapping ErrSolverIndeterminate.
func Solve(ctx context.Context, cfg Config, constraints ...*expr.Expr) (Status, Model, error) {
	var (
		st Status
		m  Model
	)
	err := With(ctx, cfg, func(s *Session) error {
		if err := s.Assert(constraints...); err != nil {
			return err
		}
		var err error
		if st, err = s.CheckSat(ctx); err != nil {
			return err
		}
		switch st {
		case Unknown:
			return ErrSolverIndeterminate
		case Unsat:
			return nil
		}
		m, err = s.Model(ctx, expr.Leaves(constraints...)...)
		return err
	})
	if err != nil {
		return st, nil, err
	}
	if m != nil {
		expr.ClearValues(constraints...)
		expr.Assign(m, constraints...)
	}
	return st, m, nil
}
