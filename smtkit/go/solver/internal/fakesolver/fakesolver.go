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


// Package fakesolver is a small SMT-LIB solver over finite domains, run as a subprocess by tests.
// It answers check-sat by backtracking over the declared variables in declaration order, trying
// values in increasing order, so the first model it finds is the lexicographically smallest one.
// Flags make it misbehave in the ways real solvers do.
package fakesolver

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/smtkit/smtkit/go/expr"
	"github.com/google/smtkit/smtkit/go/smtlib"
)

// Modes selected with -mode.
const (
	ModeNormal  = "normal"
	ModeUnknown = "unknown"
	ModeGarbage = "garbage"
	ModeHang    = "hang"
	ModeCrash   = "crash"
	ModeError   = "error"
	// ModeRepeat ignores assertions made after the last normal check-sat, so blocked models are
	// returned again.
	ModeRepeat = "repeat"
)

// CrashMessage is written to stderr before a crash.
const CrashMessage = "fakesolver: simulated crash"

type variable struct {
	name string
	sort string
}

type interp struct {
	lo, hi int64
	mode   string
	after  int

	vars    []variable
	index   map[string]int
	asserts []*smtlib.SExpr
	frozen  int
	checks  int
	model   []expr.Value

	out    *bufio.Writer
	stderr io.Writer
}

// Main runs the solver on `stdin` until (exit) or end of input and returns the exit code.
func Main(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("fakesolver", flag.ContinueOnError)
	fs.SetOutput(stderr)
	domain := fs.String("domain", "0:9", "integer domain, as lo:hi")
	mode := fs.String("mode", ModeNormal, "normal, unknown, garbage, hang, crash, error or repeat")
	after := fs.Int("after", 0, "number of check-sat commands answered normally before -mode applies")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	lo, hi, err := parseDomain(*domain)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	in := &interp{
		lo:     lo,
		hi:     hi,
		mode:   *mode,
		after:  *after,
		index:  make(map[string]int),
		frozen: -1,
		out:    bufio.NewWriter(stdout),
		stderr: stderr,
	}
	return in.run(stdin)
}

func parseDomain(text string) (int64, int64, error) {
	l, h, ok := strings.Cut(text, ":")
	if !ok {
		return 0, 0, fmt.Errorf("domain %q is not lo:hi", text)
	}
	lo, err := strconv.ParseInt(l, 10, 64)
	if err != nil {
		return 0, 0, err
	}
	hi, err := strconv.ParseInt(h, 10, 64)
	if err != nil {
		return 0, 0, err
	}
	if lo > hi {
		return 0, 0, fmt.Errorf("empty domain %q", text)
	}
	return lo, hi, nil
}

func (in *interp) run(stdin io.Reader) int {
	r := bufio.NewReader(stdin)
	var buf strings.Builder
	for {
		line, err := r.ReadString('\n')
		buf.WriteString(line)
		if smtlib.Complete(buf.String()) {
			cmds, perr := smtlib.ParseAll(buf.String())
			buf.Reset()
			if perr != nil {
				in.reply(errorReply(perr.Error()))
			}
			for _, c := range cmds {
				if code, exit := in.execute(c); exit {
					return code
				}
			}
		}
		if err != nil {
			return 0
		}
	}
}

func (in *interp) reply(text string) {
	in.out.WriteString(text)
	in.out.WriteByte('\n')
	in.out.Flush()
}

func errorReply(msg string) string {
	return (&smtlib.SExpr{Kind: smtlib.KindList, List: []*smtlib.SExpr{
		{Kind: smtlib.KindAtom, Atom: "error"},
		{Kind: smtlib.KindString, Atom: msg},
	}}).String()
}

// execute runs one command. It returns true when the process should exit.
func (in *interp) execute(c *smtlib.SExpr) (int, bool) {
	if c.Kind != smtlib.KindList || len(c.List) == 0 {
		in.reply(errorReply("expected a command"))
		return 0, false
	}
	switch head := c.List[0].Atom; head {
	case "set-option", "set-logic", "set-info":
	case "declare-fun":
		if len(c.List) != 4 || c.List[2].Kind != smtlib.KindList || len(c.List[2].List) != 0 {
			in.reply(errorReply("only constants can be declared"))
			return 0, false
		}
		in.declare(c.List[1].Atom, c.List[3].Atom)
	case "declare-const":
		if len(c.List) != 3 {
			in.reply(errorReply("malformed declare-const"))
			return 0, false
		}
		in.declare(c.List[1].Atom, c.List[2].Atom)
	case "assert":
		if len(c.List) != 2 {
			in.reply(errorReply("malformed assert"))
			return 0, false
		}
		in.asserts = append(in.asserts, c.List[1])
		in.model = nil
	case "check-sat":
		return in.checkSat()
	case "get-value":
		in.getValue(c)
	case "exit":
		return 0, true
	default:
		in.reply(errorReply("unsupported command " + head))
	}
	return 0, false
}

func (in *interp) declare(name, sort string) {
	if _, ok := in.index[name]; ok {
		in.reply(errorReply("constant " + name + " already declared"))
		return
	}
	if sort != "Int" && sort != "Bool" {
		in.reply(errorReply("unsupported sort " + sort))
		return
	}
	in.index[name] = len(in.vars)
	in.vars = append(in.vars, variable{name: name, sort: sort})
}

func (in *interp) checkSat() (int, bool) {
	in.checks++
	in.model = nil
	misbehave := in.mode != ModeNormal && in.checks > in.after
	if in.frozen < 0 || !misbehave {
		in.frozen = len(in.asserts)
	}
	if misbehave {
		switch in.mode {
		case ModeUnknown:
			in.reply("unknown")
			return 0, false
		case ModeGarbage:
			in.reply("banana")
			return 0, false
		case ModeHang:
			return 0, false
		case ModeCrash:
			fmt.Fprintln(in.stderr, CrashMessage)
			return 3, true
		case ModeError:
			in.reply(errorReply("simulated failure"))
			return 0, false
		case ModeRepeat:
			in.solve(in.asserts[:in.frozen])
			return 0, false
		}
	}
	in.solve(in.asserts)
	return 0, false
}

func (in *interp) solve(asserts []*smtlib.SExpr) {
	model, err := in.search(asserts)
	switch {
	case err != nil:
		in.reply(errorReply(err.Error()))
	case model == nil:
		in.reply("unsat")
	default:
		in.model = model
		in.reply("sat")
	}
}

// search returns the smallest satisfying assignment, or nil if there is none. Each assertion is
// checked as soon as the last variable it mentions is assigned.
func (in *interp) search(asserts []*smtlib.SExpr) ([]expr.Value, error) {
	byDepth := make([][]*smtlib.SExpr, len(in.vars)+1)
	for _, a := range asserts {
		d := in.depth(a)
		byDepth[d+1] = append(byDepth[d+1], a)
	}
	assignment := make([]expr.Value, len(in.vars))
	ok, err := in.holds(byDepth[0], assignment)
	if err != nil || !ok {
		return nil, err
	}
	var searchErr error
	var rec func(i int) bool
	rec = func(i int) bool {
		if i == len(in.vars) {
			return true
		}
		for _, v := range in.domain(in.vars[i]) {
			assignment[i] = v
			ok, err := in.holds(byDepth[i+1], assignment)
			if err != nil {
				searchErr = err
				return false
			}
			if ok && rec(i+1) {
				return true
			}
			if searchErr != nil {
				return false
			}
		}
		assignment[i] = expr.Value{}
		return false
	}
	if !rec(0) {
		return nil, searchErr
	}
	return assignment, nil
}

func (in *interp) domain(v variable) []expr.Value {
	if v.sort == "Bool" {
		return []expr.Value{expr.BoolValue(false), expr.BoolValue(true)}
	}
	vals := make([]expr.Value, 0, in.hi-in.lo+1)
	for i := in.lo; i <= in.hi; i++ {
		vals = append(vals, expr.IntValue(i))
	}
	return vals
}

// depth returns the largest index of a variable in `s`, or -1.
func (in *interp) depth(s *smtlib.SExpr) int {
	switch s.Kind {
	case smtlib.KindAtom:
		if i, ok := in.index[s.Atom]; ok {
			return i
		}
		return -1
	case smtlib.KindList:
		d := -1
		for _, c := range s.List[min(1, len(s.List)):] {
			d = max(d, in.depth(c))
		}
		return d
	}
	return -1
}

func (in *interp) holds(asserts []*smtlib.SExpr, a []expr.Value) (bool, error) {
	for _, s := range asserts {
		v, err := in.eval(s, a)
		if err != nil {
			return false, err
		}
		b, ok := v.Bool()
		if !ok {
			return false, fmt.Errorf("assertion %v is not Boolean", s)
		}
		if !b {
			return false, nil
		}
	}
	return true, nil
}

var errSort = errors.New("operand of the wrong sort")

func (in *interp) eval(s *smtlib.SExpr, a []expr.Value) (expr.Value, error) {
	switch s.Kind {
	case smtlib.KindString:
		return expr.Value{}, fmt.Errorf("unexpected string %v", s)
	case smtlib.KindAtom:
		switch s.Atom {
		case "true":
			return expr.BoolValue(true), nil
		case "false":
			return expr.BoolValue(false), nil
		}
		if i, ok := in.index[s.Atom]; ok {
			if i >= len(a) || !a[i].IsSet() {
				return expr.Value{}, fmt.Errorf("constant %s has no value", s.Atom)
			}
			return a[i], nil
		}
		if n, err := strconv.ParseInt(s.Atom, 10, 64); err == nil {
			return expr.IntValue(n), nil
		}
		return expr.Value{}, fmt.Errorf("unknown constant %s", s.Atom)
	}
	if len(s.List) < 2 || s.List[0].Kind != smtlib.KindAtom {
		return expr.Value{}, fmt.Errorf("malformed term %v", s)
	}
	args := make([]expr.Value, len(s.List)-1)
	for i, c := range s.List[1:] {
		v, err := in.eval(c, a)
		if err != nil {
			return expr.Value{}, err
		}
		args[i] = v
	}
	v, err := apply(s.List[0].Atom, args)
	if err != nil {
		return expr.Value{}, fmt.Errorf("%v: %w", s, err)
	}
	return v, nil
}

func bools(args []expr.Value) ([]bool, error) {
	out := make([]bool, len(args))
	for i, v := range args {
		b, ok := v.Bool()
		if !ok {
			return nil, errSort
		}
		out[i] = b
	}
	return out, nil
}

func ints(args []expr.Value) ([]int64, error) {
	out := make([]int64, len(args))
	for i, v := range args {
		n, ok := v.Int()
		if !ok {
			return nil, errSort
		}
		out[i] = n
	}
	return out, nil
}

func apply(fn string, args []expr.Value) (expr.Value, error) {
	switch fn {
	case "not", "and", "or", "xor", "=>":
		bs, err := bools(args)
		if err != nil {
			return expr.Value{}, err
		}
		return expr.BoolValue(logical(fn, bs)), nil
	case "=":
		for _, v := range args[1:] {
			if v != args[0] {
				return expr.BoolValue(false), nil
			}
		}
		return expr.BoolValue(true), nil
	case "distinct":
		for i := range args {
			for j := i + 1; j < len(args); j++ {
				if args[i] == args[j] {
					return expr.BoolValue(false), nil
				}
			}
		}
		return expr.BoolValue(true), nil
	case "ite":
		if len(args) != 3 {
			return expr.Value{}, errors.New("ite takes 3 operands")
		}
		c, ok := args[0].Bool()
		if !ok {
			return expr.Value{}, errSort
		}
		if c {
			return args[1], nil
		}
		return args[2], nil
	case "<=", "<", ">=", ">":
		ns, err := ints(args)
		if err != nil {
			return expr.Value{}, err
		}
		for i := 0; i+1 < len(ns); i++ {
			if !compare(fn, ns[i], ns[i+1]) {
				return expr.BoolValue(false), nil
			}
		}
		return expr.BoolValue(true), nil
	case "+", "-", "*":
		ns, err := ints(args)
		if err != nil {
			return expr.Value{}, err
		}
		return expr.IntValue(arith(fn, ns)), nil
	}
	return expr.Value{}, fmt.Errorf("unsupported function %s", fn)
}

func logical(fn string, bs []bool) bool {
	switch fn {
	case "not":
		return !bs[0]
	case "and":
		for _, b := range bs {
			if !b {
				return false
			}
		}
		return true
	case "or":
		for _, b := range bs {
			if b {
				return true
			}
		}
		return false
	case "xor":
		odd := false
		for _, b := range bs {
			odd = odd != b
		}
		return odd
	}
	// => is right associative.
	r := bs[len(bs)-1]
	for i := len(bs) - 2; i >= 0; i-- {
		r = !bs[i] || r
	}
	return r
}

func compare(fn string, a, b int64) bool {
	switch fn {
	case "<=":
		return a <= b
	case "<":
		return a < b
	case ">=":
		return a >= b
	}
	return a > b
}

func arith(fn string, ns []int64) int64 {
	if fn == "-" && len(ns) == 1 {
		return -ns[0]
	}
	r := ns[0]
	for _, n := range ns[1:] {
		switch fn {
		case "+":
			r += n
		case "-":
			r -= n
		case "*":
			r *= n
		}
	}
	return r
}

func (in *interp) getValue(c *smtlib.SExpr) {
	if in.model == nil {
		in.reply(errorReply("model is not available"))
		return
	}
	if len(c.List) != 2 || c.List[1].Kind != smtlib.KindList {
		in.reply(errorReply("malformed get-value"))
		return
	}
	var sb strings.Builder
	sb.WriteByte('(')
	for i, t := range c.List[1].List {
		v, err := in.eval(t, in.model)
		if err != nil {
			in.reply(errorReply(err.Error()))
			return
		}
		if i > 0 {
			sb.WriteString("\n ")
		}
		fmt.Fprintf(&sb, "(%v %s)", t, smtlib.FormatValue(v))
	}
	sb.WriteByte(')')
	in.reply(sb.String())
}
