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
	"fmt"
	"slices"
	"strings"

	log "github.com/golang/glog"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/google/smtkit/smtkit/go/expr"
	"github.com/google/smtkit/smtkit/go/smtlib"
)

// StopReason tells why an enumeration ended.
type StopReason int

const (
	// StopExhausted means the solver answered unsat: every solution was found.
	StopExhausted StopReason = iota
	// StopLimit means EnumerateOptions.Limit solutions were found. More may exist.
	StopLimit
	// StopError means the enumeration was aborted by an error.
	StopError
	// StopCallback means the emit callback asked to stop.
	StopCallback
)

func (r StopReason) String() string {
	switch r {
	case StopExhausted:
		return "exhausted"
	case StopLimit:
		return "limit"
	case StopError:
		return "error"
	case StopCallback:
		return "callback"
	}
	return "unknown"
}

// EnumerateOptions bounds an enumeration.
type EnumerateOptions struct {
	// Limit is the largest number of solutions to find. Zero means no limit.
	Limit int
}

// Solution is one assignment of the decision variables.
type Solution struct {
	names  []string
	values Model
}

// Names returns the decision variables in enumeration order.
func (s Solution) Names() []string {
	return slices.Clone(s.names)
}

// Len returns the number of decision variables.
func (s Solution) Len() int {
	return len(s.names)
}

// Value returns the value of a decision variable.
func (s Solution) Value(name string) (expr.Value, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Model returns a copy of the assignment.
func (s Solution) Model() Model {
	m := make(Model, len(s.values))
	for k, v := range s.values {
		m[k] = v
	}
	return m
}

// Ints returns the values in variable order. Booleans are 0 or 1.
func (s Solution) Ints() []int64 {
	return lo.Map(s.names, func(n string, _ int) int64 {
		v := s.values[n]
		if b, ok := v.Bool(); ok {
			return lo.Ternary[int64](b, 1, 0)
		}
		i, _ := v.Int()
		return i
	})
}

// Key returns `name=value` pairs in variable order. Two solutions over the same variables are
// equal iff their keys are equal.
func (s Solution) Key() string {
	parts := lo.Map(s.names, func(n string, _ int) string {
		return n + "=" + s.values[n].String()
	})
	return strings.Join(parts, " ")
}

func (s Solution) String() string {
	return "{" + s.Key() + "}"
}

func (s Solution) asMap() map[string]any {
	m := make(map[string]any, len(s.names))
	for _, n := range s.names {
		v := s.values[n]
		if b, ok := v.Bool(); ok {
			m[n] = b
		} else if i, ok := v.Int(); ok {
			m[n] = i
		}
	}
	return m
}

// AsStruct returns the solution as a protobuf Struct keyed by variable name.
func (s Solution) AsStruct() (*structpb.Struct, error) {
	return structpb.NewStruct(s.asMap())
}

// Enumeration is the outcome of an enumeration. It is returned along with any error, holding the
// solutions found before the error.
type Enumeration struct {
	Solutions []Solution
	Stop      StopReason
}

// Proto returns the enumeration as a protobuf Struct with the fields `stop`, `count` and
// `solutions`.
func (e *Enumeration) Proto() (*structpb.Struct, error) {
	sols := make([]any, len(e.Solutions))
	for i, s := range e.Solutions {
		sols[i] = s.asMap()
	}
	return structpb.NewStruct(map[string]any{
		"stop":      e.Stop.String(),
		"count":     len(e.Solutions),
		"solutions": sols,
	})
}

// BlockingClause returns the disjunction, over `vars`, of "the variable differs from its value in
// `m`". It holds for every assignment except `m`.
func BlockingClause(vars []*expr.Expr, m Model) (*expr.Expr, error) {
	lits := make([]*expr.Expr, 0, len(vars))
	for _, v := range vars {
		val := m[v.Name()]
		if b, ok := val.Bool(); ok {
			if b {
				lits = append(lits, expr.Not(v))
			} else {
				lits = append(lits, v)
			}
			continue
		}
		i, ok := val.Int()
		if !ok {
			return nil, fmt.Errorf("blocking clause: no value for %q: %w", v.Name(), ErrNoModel)
		}
		lit, err := expr.Combine(expr.OpNe, v, expr.Int(i))
		if err != nil {
			return nil, err
		}
		lits = append(lits, lit)
	}
	return expr.Combine(expr.OpOr, lits...)
}

// Enumerate finds the distinct assignments of `vars` that satisfy the assertions of the session.
// After each solution it asserts a blocking clause excluding it, so the assertions of the session
// grow. `emit`, if not nil, is called with each solution and returning false stops the
// enumeration. The returned Enumeration is never nil, also when an error is returned.
func (s *Session) Enumerate(ctx context.Context, vars []*expr.Expr, opts EnumerateOptions, emit func(Solution) bool) (*Enumeration, error) {
	en := &Enumeration{Stop: StopError}
	if opts.Limit < 0 {
		return en, fmt.Errorf("negative enumeration limit %d: %w", opts.Limit, ErrInvalidConfig)
	}
	vars = lo.UniqBy(vars, func(v *expr.Expr) string { return v.Name() })
	names := lo.Map(vars, func(v *expr.Expr, _ int) string { return v.Name() })
	seen := make(map[string]bool)

	for {
		st, err := s.CheckSat(ctx)
		if err != nil {
			return en, fmt.Errorf("after %d solutions: %w", len(en.Solutions), err)
		}
		switch st {
		case Unsat:
			en.Stop = StopExhausted
			return en, nil
		case Unknown:
			return en, fmt.Errorf("after %d solutions: %w", len(en.Solutions), ErrSolverIndeterminate)
		}

		var m Model
		if len(vars) > 0 {
			if m, err = s.Model(ctx, vars...); err != nil {
				return en, fmt.Errorf("after %d solutions: %w", len(en.Solutions), err)
			}
		}
		sol := Solution{names: names, values: m}
		key := sol.Key()
		if seen[key] {
			return en, s.fail(&ProtocolError{
				Command: smtlib.CheckSat,
				Err:     fmt.Errorf("solution %s returned again after it was blocked", sol),
			})
		}
		seen[key] = true
		en.Solutions = append(en.Solutions, sol)
		recordSolution(ctx, s.cfg.Backend)
		log.V(1).Infof("%s solution #%d: %v", s.cfg.Backend, len(en.Solutions), sol)

		if emit != nil && !emit(sol) {
			en.Stop = StopCallback
			return en, nil
		}
		if opts.Limit > 0 && len(en.Solutions) >= opts.Limit {
			en.Stop = StopLimit
			return en, nil
		}
		if len(vars) == 0 {
			en.Stop = StopExhausted
			return en, nil
		}
		block, err := BlockingClause(vars, m)
		if err != nil {
			return en, err
		}
		if err := s.Assert(block); err != nil {
			return en, fmt.Errorf("asserting blocking clause: %w", err)
		}
	}
}

// Enumerate opens a session, asserts `constraints` and enumerates the assignments of `vars`. The
// returned Enumeration is never nil.
func Enumerate(ctx context.Context, cfg Config, constraints, vars []*expr.Expr, opts EnumerateOptions) (*Enumeration, error) {
	en := &Enumeration{Stop: StopError}
	err := With(ctx, cfg, func(s *Session) error {
		if err := s.Assert(constraints...); err != nil {
			return err
		}
		var err error
		en, err = s.Enumerate(ctx, vars, opts, nil)
		return err
	})
	return en, err
}

// Problem is one independent enumeration for EnumerateAll.
type Problem struct {
	Constraints []*expr.Expr
	Vars        []*expr.Expr
	Options     EnumerateOptions
}

// EnumerateAll runs one session per problem, at most Config.MaxSessions at a time. The first error
// cancels the other enumerations. The result holds one Enumeration per problem, in order, along
// with the first error.
func EnumerateAll(ctx context.Context, cfg Config, problems []Problem) ([]*Enumeration, error) {
	results := make([]*Enumeration, len(problems))
	g, gctx := errgroup.WithContext(ctx)
	if cfg.MaxSessions > 0 {
		g.SetLimit(cfg.MaxSessions)
	}
	for i, p := range problems {
		g.Go(func() error {
			en, err := Enumerate(gctx, cfg, p.Constraints, p.Vars, p.Options)
			results[i] = en
			if err != nil {
				return fmt.Errorf("problem %d: %w", i, err)
			}
			return nil
		})
	}
	err := g.Wait()
	return results, err
}
