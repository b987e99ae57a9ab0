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

// Equal reports whether `a` and `b` are structurally equal: same operator, value and name, and
// children that are equal as multisets. The storage order of children is ignored, also for
// non-commutative operators; their names still differ when their operands are swapped.
func Equal(a, b *Expr) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.op != b.op || a.value != b.value || a.name != b.name || len(a.children) != len(b.children) {
		return false
	}
	// Equal is an equivalence relation, so greedy matching finds a permutation if one exists.
	used := make([]bool, len(b.children))
	for _, ca := range a.children {
		found := false
		for j, cb := range b.children {
			if !used[j] && Equal(ca, cb) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
