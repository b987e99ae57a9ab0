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

// Evaluate computes the value of `e` from the values of its operands without storing anything.
// Nodes without a stored value are evaluated recursively. The result is unset if an operand that
// is needed is unset or holds a value of the wrong kind.
func Evaluate(e *Expr) Value {
	if e.value.IsSet() || e.IsLeaf() {
		return e.value
	}
	if e.op == OpIte {
		c, ok := Evaluate(e.children[0]).Bool()
		if !ok {
			return Value{}
		}
		if c {
			return Evaluate(e.children[1])
		}
		return Evaluate(e.children[2])
	}
	vals := make([]Value, len(e.children))
	for i, c := range e.children {
		vals[i] = Evaluate(c)
		if !vals[i].IsSet() {
			return Value{}
		}
	}
	return apply(e.op, vals)
}

// apply evaluates `op` on fully known operands. It does not handle OpIte.
func apply(op Op, vals []Value) Value {
	switch op {
	case OpNot, OpAnd, OpOr, OpXor, OpIff, OpImplies:
		bs := make([]bool, len(vals))
		for i, v := range vals {
			b, ok := v.Bool()
			if !ok {
				return Value{}
			}
			bs[i] = b
		}
		return BoolValue(applyBool(op, bs))
	case OpEq, OpNe, OpLe, OpLt, OpGe, OpGt, OpAdd, OpSub, OpNeg, OpMul:
		is := make([]int64, len(vals))
		for i, v := range vals {
			n, ok := v.Int()
			if !ok {
				return Value{}
			}
			is[i] = n
		}
		return applyInt(op, is)
	}
	return Value{}
}

func applyBool(op Op, bs []bool) bool {
	switch op {
	case OpNot:
		return !bs[0]
	case OpAnd:
		for _, b := range bs {
			if !b {
				return false
			}
		}
		return true
	case OpOr:
		for _, b := range bs {
			if b {
				return true
			}
		}
		return false
	case OpXor:
		odd := false
		for _, b := range bs {
			odd = odd != b
		}
		return odd
	case OpIff:
		return bs[0] == bs[1]
	case OpImplies:
		return !bs[0] || bs[1]
	}
	return false
}

func applyInt(op Op, is []int64) Value {
	switch op {
	case OpEq:
		return BoolValue(is[0] == is[1])
	case OpNe:
		return BoolValue(is[0] != is[1])
	case OpLe:
		return BoolValue(is[0] <= is[1])
	case OpLt:
		return BoolValue(is[0] < is[1])
	case OpGe:
		return BoolValue(is[0] >= is[1])
	case OpGt:
		return BoolValue(is[0] > is[1])
	case OpAdd:
		var s int64
		for _, n := range is {
			s += n
		}
		return IntValue(s)
	case OpSub:
		return IntValue(is[0] - is[1])
	case OpNeg:
		return IntValue(-is[0])
	case OpMul:
		p := int64(1)
		for _, n := range is {
			p *= n
		}
		return IntValue(p)
	}
	return Value{}
}

// Assign sets the value of every leaf under `roots` whose name is in `model`, then stores the
// value of every compound node that can be derived from its operands. Leaves missing from
// `model` keep their current value.
func Assign(model map[string]Value, roots ...*Expr) {
	seen := make(map[*Expr]bool)
	for _, r := range roots {
		assign(r, model, seen)
	}
}

func assign(e *Expr, model map[string]Value, seen map[*Expr]bool) {
	if seen[e] {
		return
	}
	seen[e] = true
	switch e.op {
	case OpConst:
		return
	case OpIdentity:
		if v, ok := model[e.name]; ok {
			e.value = v
		}
		return
	}
	for _, c := range e.children {
		assign(c, model, seen)
	}
	e.value = Value{}
	e.value = Evaluate(e)
}

// ClearValues removes the value of every identity and compound node under `roots`. Constants keep
// their value.
func ClearValues(roots ...*Expr) {
	seen := make(map[*Expr]bool)
	var clearRec func(e *Expr)
	clearRec = func(e *Expr) {
		if seen[e] {
			return
		}
		seen[e] = true
		if e.op != OpConst {
			e.value = Value{}
		}
		for _, c := range e.children {
			clearRec(c)
		}
	}
	for _, r := range roots {
		clearRec(r)
	}
}

// Leaves returns the identity leaves under `roots`, one per name, in depth-first order of first
// appearance.
func Leaves(roots ...*Expr) []*Expr {
	var out []*Expr
	names := make(map[string]bool)
	seen := make(map[*Expr]bool)
	var walk func(e *Expr)
	walk = func(e *Expr) {
		if seen[e] {
			return
		}
		seen[e] = true
		if e.op == OpIdentity {
			if !names[e.name] {
				names[e.name] = true
				out = append(out, e)
			}
			return
		}
		for _, c := range e.children {
			walk(c)
		}
	}
	for _, r := range roots {
		walk(r)
	}
	return out
}
