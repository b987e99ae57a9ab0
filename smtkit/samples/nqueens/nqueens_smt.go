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


// The nqueens_smt command enumerates every solution of the N-queens problem with an SMT solver.
package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	log "github.com/golang/glog"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/google/smtkit/smtkit/go/expr"
	"github.com/google/smtkit/smtkit/go/solver"
)

var (
	boardSize  = flag.Int("n", 8, "size of the board")
	limit      = flag.Int("limit", 0, "stop after this many solutions, 0 for all")
	printLimit = flag.Int("print", 3, "number of boards to print")
	configPath = flag.String("config", "", "YAML solver config; overrides -backend")
	backend    = flag.String("backend", string(solver.BackendZ3), "solver backend: z3 or cvc5")
	jsonOut    = flag.Bool("json", false, "print the solutions as JSON")
)

func solverConfig() (solver.Config, error) {
	if *configPath != "" {
		return solver.LoadConfig(*configPath)
	}
	cfg := solver.DefaultConfig(solver.Backend(*backend))
	return cfg, cfg.Validate()
}

func nQueensSmt() error {
	cfg, err := solverConfig()
	if err != nil {
		return err
	}

	// There is one variable per column of the board. Its value is the row, from 1 to
	// `boardSize`, of the queen in that column.
	queens, err := expr.VariableArray("q", *boardSize)
	if err != nil {
		return fmt.Errorf("failed to create the queens: %w", err)
	}
	q := queens.Flat()
	n := int64(*boardSize)

	lower, err := expr.Broadcast(expr.OpLe, expr.Scalar(expr.Int(1)), q)
	if err != nil {
		return err
	}
	upper, err := expr.Broadcast(expr.OpLe, q, expr.Scalar(expr.Int(n)))
	if err != nil {
		return err
	}
	constraints := append(lower, upper...)

	// All queens are in different rows.
	rows, err := expr.AllDifferent(q)
	if err != nil {
		return err
	}
	constraints = append(constraints, rows)

	// No two queens are on the same diagonal.
	for i := range q {
		for j := i + 1; j < len(q); j++ {
			d := expr.Int(int64(j - i))
			constraints = append(constraints, expr.Ne(expr.Sub(q[i], q[j]), d), expr.Ne(expr.Sub(q[j], q[i]), d))
		}
	}

	var en *solver.Enumeration
	err = solver.With(context.Background(), cfg, func(s *solver.Session) error {
		if err := s.Assert(constraints...); err != nil {
			return err
		}
		var err error
		en, err = s.Enumerate(context.Background(), q, solver.EnumerateOptions{Limit: *limit}, func(sol solver.Solution) bool {
			if !*jsonOut && *printLimit > 0 {
				*printLimit--
				printBoard(sol.Ints())
			}
			return true
		})
		return err
	})
	if err != nil {
		if en != nil {
			log.Errorf("stopped after %d solutions", len(en.Solutions))
		}
		return fmt.Errorf("failed to enumerate the solutions: %w", err)
	}

	if *jsonOut {
		st, err := en.Proto()
		if err != nil {
			return err
		}
		fmt.Println(protojson.Format(st))
		return nil
	}
	fmt.Printf("Number of solutions found: %d (%v)\n", len(en.Solutions), en.Stop)
	return nil
}

func printBoard(rows []int64) {
	for r := int64(1); r <= int64(len(rows)); r++ {
		var sb strings.Builder
		for _, row := range rows {
			if row == r {
				sb.WriteString("Q")
			} else {
				sb.WriteString("_")
			}
		}
		fmt.Println(sb.String())
	}
	fmt.Println()
}

func main() {
	flag.Parse()
	if err := nQueensSmt(); err != nil {
		log.Exitf("nQueensSmt returned with error: %v", err)
	}
}
