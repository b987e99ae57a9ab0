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


// Package smtlib translates expression trees into SMT-LIB 2 commands and parses the replies of an
// SMT-LIB solver.
package smtlib

import (
	"fmt"
	"strconv"
	"strings"
)

// Status is the answer to a check-sat command.
type Status int

const (
	// Unknown means the solver gave up without deciding the assertions.
	Unknown Status = iota
	// Sat means the assertions have a model.
	Sat
	// Unsat means the assertions have no model.
	Unsat
)

func (s Status) String() string {
	switch s {
	case Sat:
		return "sat"
	case Unsat:
		return "unsat"
	}
	return "unknown"
}

// Commands without arguments.
const (
	CheckSat = "(check-sat)"
	Exit     = "(exit)"
)

// reserved lists the words that cannot be used as simple symbols.
var reserved = map[string]bool{
	"!": true, "_": true, "as": true, "BINARY": true, "DECIMAL": true, "exists": true, "HEXADECIMAL": true,
	"forall": true, "let": true, "match": true, "NUMERAL": true, "par": true, "STRING": true,
	"assert": true, "check-sat": true, "declare-fun": true, "declare-const": true, "define-fun": true,
	"exit": true, "get-value": true, "push": true, "pop": true, "set-option": true, "set-logic": true,
	"true": true, "false": true,
}

func isSymbolChar(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune("~!@$%^&*_-+=<>.?/", r)
}

func isSimpleSymbol(name string) bool {
	if name == "" || reserved[name] || (name[0] >= '0' && name[0] <= '9') {
		return false
	}
	for _, r := range name {
		if !isSymbolChar(r) {
			return false
		}
	}
	return true
}

// Symbol returns `name` as an SMT-LIB symbol, quoted with bars when it is not a simple symbol.
// Names containing a bar or a backslash cannot be written as a symbol.
func Symbol(name string) (string, error) {
	if isSimpleSymbol(name) {
		return name, nil
	}
	if name == "" || strings.ContainsAny(name, `|\`) {
		return "", fmt.Errorf("%q: %w", name, ErrInvalidSymbol)
	}
	return "|" + name + "|", nil
}

// SetOption returns the command setting the solver option `:name` to `value`.
func SetOption(name, value string) string {
	return "(set-option :" + strings.TrimPrefix(name, ":") + " " + value + ")"
}

// GetValue returns the command asking for the values of the named constants.
func GetValue(names []string) (string, error) {
	if len(names) == 0 {
		return "", fmt.Errorf("get-value needs at least one name: %w", ErrInvalidSymbol)
	}
	syms := make([]string, len(names))
	for i, n := range names {
		s, err := Symbol(n)
		if err != nil {
			return "", err
		}
		syms[i] = s
	}
	return "(get-value (" + strings.Join(syms, " ") + "))", nil
}

// numeral returns the SMT-LIB term for `v`. Negative integers are written as a negation since
// SMT-LIB numerals are unsigned.
func numeral(v int64) string {
	s := strconv.FormatInt(v, 10)
	if v < 0 {
		return "(- " + s[1:] + ")"
	}
	return s
}
