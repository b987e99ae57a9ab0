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
	"slices"

	"github.com/samber/lo"

	"github.com/google/smtkit/smtkit/go/expr"
)

// Model maps variable names to the values a solver chose for them.
type Model map[string]expr.Value

// Int returns the integer value of `name`.
func (m Model) Int(name string) (int64, bool) {
	return m[name].Int()
}

// Bool returns the Boolean value of `name`.
func (m Model) Bool(name string) (bool, bool) {
	return m[name].Bool()
}

// Names returns the variable names in sorted order.
func (m Model) Names() []string {
	names := lo.Keys(m)
	slices.Sort(names)
	return names
}
