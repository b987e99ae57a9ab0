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
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	log "github.com/golang/glog"
)

// DuplicatePolicy selects what a Registry does when a leaf name is registered twice.
type DuplicatePolicy int

const (
	// DuplicateWarn logs a warning and creates the leaf anyway.
	DuplicateWarn DuplicatePolicy = iota
	// DuplicateIgnore creates the leaf silently.
	DuplicateIgnore
	// DuplicateError refuses to create the leaf and returns ErrDuplicateName.
	DuplicateError
)

func (p DuplicatePolicy) String() string {
	switch p {
	case DuplicateWarn:
		return "warn"
	case DuplicateIgnore:
		return "ignore"
	case DuplicateError:
		return "error"
	}
	return "DuplicatePolicy(" + strconv.Itoa(int(p)) + ")"
}

// Registry is the table of leaf names created so far. It only detects collisions: two leaves
// with the same name are still distinct expressions, and a solver session will see them as the
// same variable.
//
// A Registry is safe for concurrent use.
type Registry struct {
	mu     sync.Mutex
	names  map[string]struct{}
	policy DuplicatePolicy
}

// NewRegistry returns an empty registry with the given duplicate policy.
func NewRegistry(policy DuplicatePolicy) *Registry {
	return &Registry{names: make(map[string]struct{}), policy: policy}
}

// DefaultRegistry is the process-wide registry used by Variable and VariableArray. Tests that
// build unrelated models should call ResetRegistry between them.
var DefaultRegistry = NewRegistry(DuplicateWarn)

// ResetRegistry forgets every name in DefaultRegistry. The policy is kept.
func ResetRegistry() {
	DefaultRegistry.Reset()
}

// Reset forgets every registered name.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.names)
}

// Policy returns the duplicate policy.
func (r *Registry) Policy() DuplicatePolicy {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.policy
}

// SetPolicy changes the duplicate policy.
func (r *Registry) SetPolicy(p DuplicatePolicy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.policy = p
}

// Len returns the number of registered names.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.names)
}

// Register records `name` and returns true if it was already present. With the DuplicateError
// policy a duplicate is also reported as ErrDuplicateName; with DuplicateWarn it is logged.
func (r *Registry) Register(name string) (bool, error) {
	dups, err := r.registerAll([]string{name})
	return len(dups) > 0, err
}

// registerAll registers `names` as a unit: with the DuplicateError policy nothing is registered
// if any name is a duplicate. It returns the names that were already present.
func (r *Registry) registerAll(names []string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var dups []string
	for _, n := range names {
		if _, ok := r.names[n]; ok {
			dups = append(dups, n)
		}
	}
	if len(dups) > 0 {
		switch r.policy {
		case DuplicateError:
			return dups, fmt.Errorf("%q: %w", strings.Join(dups, ", "), ErrDuplicateName)
		case DuplicateWarn:
			for _, d := range dups {
				log.Warningf("variable name %q is already in use", d)
			}
		}
	}
	for _, n := range names {
		r.names[n] = struct{}{}
	}
	return dups, nil
}

// Variable registers `name` and returns a new leaf with no value.
func (r *Registry) Variable(name string) (*Expr, error) {
	if name == "" {
		return nil, errors.New("variable name must not be empty")
	}
	if _, err := r.registerAll([]string{name}); err != nil {
		return nil, err
	}
	return newIdentity(name), nil
}

// VariableArray returns an array of leaves of the given shape. Element names are `name` followed
// by the zero-based indices, e.g. `q_0_3` for the element at (0, 3).
func (r *Registry) VariableArray(name string, dims ...int) (*Array, error) {
	if name == "" {
		return nil, errors.New("variable name must not be empty")
	}
	if len(dims) == 0 {
		return nil, fmt.Errorf("variable array %q needs at least one dimension", name)
	}
	size := 1
	for _, d := range dims {
		if d < 0 {
			return nil, fmt.Errorf("variable array %q has negative dimension %d", name, d)
		}
		size *= d
	}
	names := make([]string, 0, size)
	idx := make([]int, len(dims))
	for range size {
		var sb strings.Builder
		sb.WriteString(name)
		for _, i := range idx {
			sb.WriteByte('_')
			sb.WriteString(strconv.Itoa(i))
		}
		names = append(names, sb.String())
		// Row-major increment.
		for k := len(idx) - 1; k >= 0; k-- {
			idx[k]++
			if idx[k] < dims[k] {
				break
			}
			idx[k] = 0
		}
	}
	if _, err := r.registerAll(names); err != nil {
		return nil, err
	}
	a := &Array{shape: slices.Clone(dims), elems: make([]*Expr, len(names))}
	for i, n := range names {
		a.elems[i] = newIdentity(n)
	}
	return a, nil
}

// Variable registers `name` in DefaultRegistry and returns a new leaf.
func Variable(name string) (*Expr, error) {
	return DefaultRegistry.Variable(name)
}

// VariableArray builds an array of leaves registered in DefaultRegistry.
func VariableArray(name string, dims ...int) (*Array, error) {
	return DefaultRegistry.VariableArray(name, dims...)
}
