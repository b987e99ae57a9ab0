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


package smtlib

import (
	"fmt"
	"strings"
)

// Kind distinguishes the forms of an S-expression.
type Kind uint8

const (
	// KindAtom is a symbol, keyword or numeral. Quoted symbols are stored without their bars.
	KindAtom Kind = iota
	// KindString is a string literal, stored without its quotes.
	KindString
	// KindList is a parenthesized list.
	KindList
)

// SExpr is a parsed S-expression.
type SExpr struct {
	Kind Kind
	Atom string
	List []*SExpr
}

// IsAtom returns true if `s` is the atom `text`.
func (s *SExpr) IsAtom(text string) bool {
	return s != nil && s.Kind == KindAtom && s.Atom == text
}

func (s *SExpr) String() string {
	switch s.Kind {
	case KindString:
		return `"` + strings.ReplaceAll(s.Atom, `"`, `""`) + `"`
	case KindList:
		parts := make([]string, len(s.List))
		for i, c := range s.List {
			parts[i] = c.String()
		}
		return "(" + strings.Join(parts, " ") + ")"
	}
	if plainAtom(s.Atom) {
		return s.Atom
	}
	return "|" + s.Atom + "|"
}

// plainAtom returns true if `text` reads back as the same atom without bars.
func plainAtom(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range strings.TrimPrefix(text, ":") {
		if !isSymbolChar(r) {
			return false
		}
	}
	return true
}

func isNumeral(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

type tokenKind uint8

const (
	tokOpen tokenKind = iota
	tokClose
	tokAtom
	tokString
)

type token struct {
	kind tokenKind
	text string
}

// errIncomplete is returned by lex when the input ends inside a quoted symbol or a string.
var errIncomplete = fmt.Errorf("unterminated literal: %w", ErrSyntax)

func lex(text string) ([]token, error) {
	var toks []token
	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == ';':
			for i < len(text) && text[i] != '\n' {
				i++
			}
		case c == '(':
			toks = append(toks, token{kind: tokOpen})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokClose})
			i++
		case c == '|':
			end := strings.IndexByte(text[i+1:], '|')
			if end < 0 {
				return nil, errIncomplete
			}
			toks = append(toks, token{kind: tokAtom, text: text[i+1 : i+1+end]})
			i += end + 2
		case c == '"':
			var sb strings.Builder
			j := i + 1
			for {
				if j >= len(text) {
					return nil, errIncomplete
				}
				if text[j] == '"' {
					if j+1 < len(text) && text[j+1] == '"' {
						sb.WriteByte('"')
						j += 2
						continue
					}
					break
				}
				sb.WriteByte(text[j])
				j++
			}
			toks = append(toks, token{kind: tokString, text: sb.String()})
			i = j + 1
		default:
			j := i
			for j < len(text) && !strings.ContainsRune(" \t\n\r();|\"", rune(text[j])) {
				j++
			}
			toks = append(toks, token{kind: tokAtom, text: text[i:j]})
			i = j
		}
	}
	return toks, nil
}

// Complete returns true if `text` holds at least one S-expression and every list it opens is
// closed. It is used to decide whether a reply spanning several lines has been fully read.
func Complete(text string) bool {
	toks, err := lex(text)
	if err != nil || len(toks) == 0 {
		return false
	}
	depth := 0
	for _, t := range toks {
		switch t.kind {
		case tokOpen:
			depth++
		case tokClose:
			depth--
		}
	}
	return depth <= 0
}

// Parse parses `text`, which must hold exactly one S-expression.
func Parse(text string) (*SExpr, error) {
	toks, err := lex(text)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, fmt.Errorf("empty input: %w", ErrSyntax)
	}
	s, rest, err := parse(toks)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("trailing input after %v: %w", s, ErrSyntax)
	}
	return s, nil
}

// ParseAll parses every S-expression in `text`.
func ParseAll(text string) ([]*SExpr, error) {
	toks, err := lex(text)
	if err != nil {
		return nil, err
	}
	var all []*SExpr
	for len(toks) > 0 {
		var s *SExpr
		s, toks, err = parse(toks)
		if err != nil {
			return nil, err
		}
		all = append(all, s)
	}
	return all, nil
}

func parse(toks []token) (*SExpr, []token, error) {
	t := toks[0]
	switch t.kind {
	case tokAtom:
		return &SExpr{Kind: KindAtom, Atom: t.text}, toks[1:], nil
	case tokString:
		return &SExpr{Kind: KindString, Atom: t.text}, toks[1:], nil
	case tokClose:
		return nil, nil, fmt.Errorf("unexpected ')': %w", ErrSyntax)
	}
	list := &SExpr{Kind: KindList}
	toks = toks[1:]
	for {
		if len(toks) == 0 {
			return nil, nil, fmt.Errorf("unbalanced '(': %w", ErrSyntax)
		}
		if toks[0].kind == tokClose {
			return list, toks[1:], nil
		}
		var (
			child *SExpr
			err   error
		)
		child, toks, err = parse(toks)
		if err != nil {
			return nil, nil, err
		}
		list.List = append(list.List, child)
	}
}
