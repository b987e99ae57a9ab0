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


// The search_for_all_solutions_smt command is an example for how to search for all solutions.
package main

import (
	"context"
	"flag"
	"fmt"

	log "github.com/golang/glog"

	"github.com/google/smtkit/smtkit/go/expr"
	"github.com/google/smtkit/smtkit/go/solver"
)

var configPath = flag.String("config", "", "YAML solver config; the default runs z3")

func searchForAllSolutionsSmt() error {
	cfg := solver.DefaultConfig(solver.BackendZ3)
	if *configPath != "" {
		var err error
		if cfg, err = solver.LoadConfig(*configPath); err != nil {
			return err
		}
	}

	domain := expr.NewDomain(0, 2)
	vars := make([]*expr.Expr, 0, 3)
	var constraints []*expr.Expr
	for _, name := range []string{"x", "y", "z"} {
		v, err := expr.Variable(name)
		if err != nil {
			return err
		}
		in, err := expr.InDomain(v, domain)
		if err != nil {
			return err
		}
		vars = append(vars, v)
		constraints = append(constraints, in)
	}
	constraints = append(constraints, expr.Ne(vars[0], vars[1]))

	en, err := solver.Enumerate(context.Background(), cfg, constraints, vars, solver.EnumerateOptions{})
	if err != nil {
		return fmt.Errorf("failed to enumerate the solutions: %w", err)
	}
	for i, s := range en.Solutions {
		vs := s.Ints()
		fmt.Printf("Solution %v: x = %v, y = %v, z = %v\n", i, vs[0], vs[1], vs[2])
	}

	fmt.Println("Number of solutions found: ", len(en.Solutions))

	return nil
}

func main() {
	flag.Parse()
	if err := searchForAllSolutionsSmt(); err != nil {
		log.Exitf("searchForAllSolutionsSmt returned with error: %v", err)
	}
}
