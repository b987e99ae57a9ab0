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


// The simple_smt_program command solves a small problem with a time limit and prints the values of
// every subexpression.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	log "github.com/golang/glog"

	"github.com/google/smtkit/smtkit/go/expr"
	"github.com/google/smtkit/smtkit/go/solver"
)

var (
	backend   = flag.String("backend", string(solver.BackendZ3), "solver backend: z3 or cvc5")
	timeLimit = flag.Duration("time_limit", 10*time.Second, "time limit of each solver call")
)

func simpleSmtProgram() error {
	cfg := solver.DefaultConfig(solver.Backend(*backend))
	cfg.Timeout = *timeLimit

	x, err := expr.Variable("x")
	if err != nil {
		return err
	}
	y, err := expr.Variable("y")
	if err != nil {
		return err
	}
	p, err := expr.Variable("p")
	if err != nil {
		return err
	}

	constraints := []*expr.Expr{
		expr.Ne(x, y),
		expr.Implies(p, expr.Eq(expr.Add(x, y), expr.Int(3))),
		expr.Ite(p, expr.Le(x, expr.Int(2)), expr.Lt(x, expr.Int(0))),
	}

	st, _, err := solver.Solve(context.Background(), cfg, constraints...)
	if err != nil {
		return fmt.Errorf("failed to solve the model: %w", err)
	}

	fmt.Printf("Status: %v\n", st)
	if st != solver.Sat {
		fmt.Println("No solution found.")
		return nil
	}
	for _, c := range constraints {
		fmt.Print(c.Render(1))
	}

	return nil
}

func main() {
	flag.Parse()
	if err := simpleSmtProgram(); err != nil {
		log.Exitf("simpleSmtProgram returned with error: %v", err)
	}
}
