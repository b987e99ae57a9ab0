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

import "errors"

var (
	// ErrArityMismatch is returned when an operator receives the wrong number of children.
	ErrArityMismatch = errors.New("wrong number of operands")
	// ErrTypeMismatch is returned when an operand has a sort the operator cannot accept, or when a
	// leaf is used both as a Boolean and as an integer.
	ErrTypeMismatch = errors.New("operand sort mismatch")
	// ErrDuplicateName is returned by a Registry with the DuplicateError policy when a leaf name is
	// registered twice.
	ErrDuplicateName = errors.New("duplicate variable name")
)
