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
	"iter"
	"strings"
)

const indentUnit = "  "

// Lines returns the rendering of the tree rooted at `e`, one line per node, depth first. Each line
// is the node name, followed by ` = value` when the node has a value, indented by `indent` plus
// the depth of the node. Lines are not newline terminated. The sequence can be iterated any
// number of times.
func (e *Expr) Lines(indent int) iter.Seq[string] {
	return func(yield func(string) bool) {
		e.lines(indent, yield)
	}
}

func (e *Expr) lines(depth int, yield func(string) bool) bool {
	line := strings.Repeat(indentUnit, depth) + e.name
	if e.value.IsSet() {
		line += " = " + e.value.String()
	}
	if !yield(line) {
		return false
	}
	for _, c := range e.children {
		if !c.lines(depth+1, yield) {
			return false
		}
	}
	return true
}

// Render returns the lines of `e` joined, each terminated by a newline.
func (e *Expr) Render(indent int) string {
	var sb strings.Builder
	for l := range e.Lines(indent) {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	return sb.String()
}
