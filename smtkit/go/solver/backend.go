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
	"fmt"
	"slices"
)

// Backend names a supported solver.
type Backend string

const (
	// BackendZ3 runs `z3 -in -smt2`.
	BackendZ3 Backend = "z3"
	// BackendCVC5 runs `cvc5 --lang=smt2 --incremental --produce-models`.
	BackendCVC5 Backend = "cvc5"
)

type invocation struct {
	command string
	args    []string
}

var invocations = map[Backend]invocation{
	BackendZ3:   {command: "z3", args: []string{"-in", "-smt2"}},
	BackendCVC5: {command: "cvc5", args: []string{"--lang=smt2", "--incremental", "--produce-models"}},
}

// Backends returns the supported backends.
func Backends() []Backend {
	return []Backend{BackendZ3, BackendCVC5}
}

// Known returns true if `b` is a supported backend.
func (b Backend) Known() bool {
	_, ok := invocations[b]
	return ok
}

// DefaultCommand returns the executable name and the flags the backend runs with in interactive,
// model-producing mode.
func (b Backend) DefaultCommand() (string, []string, error) {
	inv, ok := invocations[b]
	if !ok {
		return "", nil, fmt.Errorf("unknown backend %q, want one of %v: %w", string(b), Backends(), ErrInvalidConfig)
	}
	return inv.command, slices.Clone(inv.args), nil
}
