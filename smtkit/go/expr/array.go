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
	"fmt"
	"slices"
)

// Array is a dense, row-major collection of independent leaves.
type Array struct {
	shape []int
	elems []*Expr
}

// Shape returns the dimensions of the array.
func (a *Array) Shape() []int {
	return slices.Clone(a.shape)
}

// Len returns the number of elements.
func (a *Array) Len() int {
	return len(a.elems)
}

// Flat returns the elements in row-major order.
func (a *Array) Flat() []*Expr {
	return slices.Clone(a.elems)
}

// At returns the element at the given indices. It panics if the number of indices does not match
// the shape or an index is out of range.
func (a *Array) At(idx ...int) *Expr {
	if len(idx) != len(a.shape) {
		panic(fmt.Sprintf("expr: At got %d indices for an array of rank %d", len(idx), len(a.shape)))
	}
	off := 0
	for k, i := range idx {
		if i < 0 || i >= a.shape[k] {
			panic(fmt.Sprintf("expr: index %d out of range [0, %d) in dimension %d", i, a.shape[k], k))
		}
		off = off*a.shape[k] + i
	}
	return a.elems[off]
}
