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
	"fmt"
)

var (
	// ErrInvalidSymbol is returned for names that cannot be written as SMT-LIB symbols.
	ErrInvalidSymbol = errors.New("invalid SMT-LIB symbol")
	// ErrSyntax is returned when solver output cannot be parsed.
	ErrSyntax = errors.New("malformed SMT-LIB response")
	// ErrUndeclared is returned when a value is requested for a constant no assertion declared.
	ErrUndeclared = errors.New("undeclared constant")
)

// SolverError is an `(error "...")` reply.
type SolverError struct {
	Msg string
}

func (e *SolverError) Error() string {
	return fmt.Sprintf("solver error: %s", e.Msg)
}
