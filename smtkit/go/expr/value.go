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

import "strconv"

type valueKind uint8

const (
	unsetValue valueKind = iota
	boolValue
	intValue
)

// Value is the value annotation of an expression: unset, a Boolean, or an integer. The zero
// Value is unset, which is distinct from false.
type Value struct {
	kind valueKind
	b    bool
	i    int64
}

// BoolValue returns the Boolean value `b`.
func BoolValue(b bool) Value {
	return Value{kind: boolValue, b: b}
}

// IntValue returns the integer value `i`.
func IntValue(i int64) Value {
	return Value{kind: intValue, i: i}
}

// IsSet returns true if the value has been assigned.
func (v Value) IsSet() bool {
	return v.kind != unsetValue
}

// IsBool returns true if the value holds a Boolean.
func (v Value) IsBool() bool {
	return v.kind == boolValue
}

// IsInt returns true if the value holds an integer.
func (v Value) IsInt() bool {
	return v.kind == intValue
}

// Bool returns the Boolean held by the value, and false as second result if the value is not a
// Boolean.
func (v Value) Bool() (bool, bool) {
	return v.b, v.kind == boolValue
}

// Int returns the integer held by the value, and false as second result if the value is not an
// integer.
func (v Value) Int() (int64, bool) {
	return v.i, v.kind == intValue
}

// String returns "true", "false", the decimal integer, or "unset".
func (v Value) String() string {
	switch v.kind {
	case boolValue:
		return strconv.FormatBool(v.b)
	case intValue:
		return strconv.FormatInt(v.i, 10)
	}
	return "unset"
}
