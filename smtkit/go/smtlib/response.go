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
	"fmt"
	"strconv"
	"strings"

	"github.com/google/smtkit/smtkit/go/expr"
)

// Binding is one `(name value)` pair of a get-value reply.
type Binding struct {
	Name  string
	Value expr.Value
}

// asError returns a *SolverError if `s` is an `(error "...")` reply.
func asError(s *SExpr) error {
	if s.Kind != KindList || len(s.List) != 2 || !s.List[0].IsAtom("error") {
		return nil
	}
	return &SolverError{Msg: s.List[1].Atom}
}

// ParseStatus parses the reply to check-sat.
func ParseStatus(text string) (Status, error) {
	switch strings.TrimSpace(text) {
	case "sat":
		return Sat, nil
	case "unsat":
		return Unsat, nil
	case "unknown":
		return Unknown, nil
	}
	if s, err := Parse(text); err == nil {
		if err := asError(s); err != nil {
			return Unknown, err
		}
	}
	return Unknown, fmt.Errorf("check-sat reply %q: %w", strings.TrimSpace(text), ErrSyntax)
}

// ParseValues parses the reply to get-value, keeping the order of the reply.
func ParseValues(text string) ([]Binding, error) {
	s, err := Parse(text)
	if err != nil {
		return nil, err
	}
	if err := asError(s); err != nil {
		return nil, err
	}
	if s.Kind != KindList {
		return nil, fmt.Errorf("get-value reply %v is not a list: %w", s, ErrSyntax)
	}
	bindings := make([]Binding, 0, len(s.List))
	for _, pair := range s.List {
		if pair.Kind != KindList || len(pair.List) != 2 || pair.List[0].Kind != KindAtom {
			return nil, fmt.Errorf("get-value entry %v: %w", pair, ErrSyntax)
		}
		v, err := parseValue(pair.List[1])
		if err != nil {
			return nil, fmt.Errorf("value of %s: %w", pair.List[0].Atom, err)
		}
		bindings = append(bindings, Binding{Name: pair.List[0].Atom, Value: v})
	}
	return bindings, nil
}

func parseValue(s *SExpr) (expr.Value, error) {
	switch {
	case s.IsAtom("true"):
		return expr.BoolValue(true), nil
	case s.IsAtom("false"):
		return expr.BoolValue(false), nil
	case s.Kind == KindAtom && isNumeral(s.Atom):
		v, err := strconv.ParseInt(s.Atom, 10, 64)
		if err != nil {
			return expr.Value{}, fmt.Errorf("%v: %w", err, ErrSyntax)
		}
		return expr.IntValue(v), nil
	case s.Kind == KindList && len(s.List) == 2 && s.List[0].IsAtom("-") && s.List[1].Kind == KindAtom && isNumeral(s.List[1].Atom):
		v, err := strconv.ParseInt("-"+s.List[1].Atom, 10, 64)
		if err != nil {
			return expr.Value{}, fmt.Errorf("%v: %w", err, ErrSyntax)
		}
		return expr.IntValue(v), nil
	}
	return expr.Value{}, fmt.Errorf("unsupported value %v: %w", s, ErrSyntax)
}

// FormatValue returns the SMT-LIB text of a Boolean or integer value.
func FormatValue(v expr.Value) string {
	if b, ok := v.Bool(); ok {
		return strconv.FormatBool(b)
	}
	if i, ok := v.Int(); ok {
		return numeral(i)
	}
	return ""
}
