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


// Package solver runs SMT-LIB solvers as subprocesses and enumerates the models of a set of
// constraints.
package solver

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"os/exec"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/golang/glog"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/google/smtkit/smtkit/go/expr"
	"github.com/google/smtkit/smtkit/go/smtlib"
)

const (
	// modelBatch is the largest number of names asked for in one get-value command.
	modelBatch = 64
	// stderrTail is the number of trailing stderr bytes kept for error reports.
	stderrTail = 4096
	// maxReplyLine bounds a single line of solver output.
	maxReplyLine = 16 << 20
	// exitSettle is how long a read that hit end of output waits for the process to exit, so that
	// its stderr is complete.
	exitSettle = 200 * time.Millisecond
)

// State is the lifecycle state of a session.
type State int32

const (
	// StateCreated is the state of a session whose process is not started.
	StateCreated State = iota
	// StateRunning is the state of a session that accepts commands.
	StateRunning
	// StateClosed is the state after Close.
	StateClosed
	// StateFailed is the state after a protocol error, a crash or a timeout. Only Close is
	// allowed.
	StateFailed
)

func (s State) String() string {
	names := []string{"created", "running", "closed", "failed"}
	if int(s) >= 0 && int(s) < len(names) {
		return names[s]
	}
	return "unknown"
}

// Session owns one solver process. Commands are serialized: at most one request is in flight at a
// time. A session is not meant to be shared by concurrent enumerations; open one per task.
type Session struct {
	cfg Config
	ser *smtlib.Serializer

	cmd     *exec.Cmd
	stdin   io.WriteCloser
	stdout  *os.File
	stderr  *tailBuffer
	lines   chan string
	done    chan struct{}
	exited  chan struct{}
	waitErr error
	killed  atomic.Bool

	mu        sync.Mutex
	state     atomic.Int32
	status    Status
	hasStatus bool
}

// Open starts the solver selected by `cfg` and returns a Running session. It returns an error
// wrapping ErrSolverUnavailable if the executable cannot be found or started.
func Open(ctx context.Context, cfg Config) (s *Session, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ctx, span := startSpan(ctx, "Open", cfg.Backend)
	defer span.End()
	defer func() {
		recordSpawn(ctx, cfg.Backend, err == nil)
		endSpan(span, err)
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	command, args, err := cfg.commandLine()
	if err != nil {
		return nil, err
	}
	path, err := exec.LookPath(command)
	if err != nil {
		log.Warningf("solver %s not found: %v", command, err)
		return nil, fmt.Errorf("%w: %s: %v", ErrSolverUnavailable, command, err)
	}

	sess := &Session{
		cfg:    cfg,
		ser:    smtlib.NewSerializer(),
		stderr: &tailBuffer{max: stderrTail},
		lines:  make(chan string, 16),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	sess.cmd = exec.Command(path, args...)
	if len(cfg.Env) > 0 {
		sess.cmd.Env = append(os.Environ(), cfg.Env...)
	}
	sess.cmd.Stderr = sess.stderr
	sess.cmd.WaitDelay = time.Second
	sess.stdin, err = sess.cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: stdin pipe: %v", ErrSolverUnavailable, err)
	}
	// Stdout is a plain pipe rather than cmd.StdoutPipe so that Wait does not close it while
	// the reader still drains it.
	stdout, pw, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("%w: stdout pipe: %v", ErrSolverUnavailable, err)
	}
	sess.cmd.Stdout = pw
	if err := sess.cmd.Start(); err != nil {
		pw.Close()
		stdout.Close()
		return nil, fmt.Errorf("%w: starting %s: %v", ErrSolverUnavailable, path, err)
	}
	pw.Close()
	sess.stdout = stdout

	go sess.readLoop()
	go func() {
		sess.waitErr = sess.cmd.Wait()
		close(sess.exited)
	}()
	sess.setState(StateRunning)
	log.V(1).Infof("started %s (pid %d): %s %s", cfg.Backend, sess.cmd.Process.Pid, path, strings.Join(args, " "))

	opts := []string{smtlib.SetOption("produce-models", "true")}
	for _, k := range slices.Sorted(maps.Keys(cfg.Options)) {
		opts = append(opts, smtlib.SetOption(k, cfg.Options[k]))
	}
	for _, o := range opts {
		if err := sess.send(o); err != nil {
			return nil, errors.Join(err, sess.Close())
		}
	}
	return sess, nil
}

// With opens a session, runs `fn` and closes the session, also when `fn` panics. The error of
// Close is joined to the error of `fn`.
func With(ctx context.Context, cfg Config, fn func(*Session) error) (err error) {
	s, err := Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, s.Close())
	}()
	return fn(s)
}

// State returns the lifecycle state of the session.
func (s *Session) State() State {
	return State(s.state.Load())
}

// Backend returns the backend the session was opened with.
func (s *Session) Backend() Backend {
	return s.cfg.Backend
}

func (s *Session) setState(st State) {
	s.state.Store(int32(st))
}

func (s *Session) require(op string) error {
	if st := s.State(); st != StateRunning {
		return fmt.Errorf("%s in %v session: %w", op, st, ErrSessionState)
	}
	return nil
}

// Assert sends the assertion of each expression, declaring the variables it uses first. A
// serialization error (for instance ErrTypeMismatch) leaves the session Running; expressions
// before the failing one stay asserted.
func (s *Session) Assert(exprs ...*expr.Expr) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require("assert"); err != nil {
		return err
	}
	for _, e := range exprs {
		text, err := s.ser.Assertion(e)
		if err != nil {
			return err
		}
		if err := s.send(text); err != nil {
			return err
		}
		s.hasStatus = false
	}
	return nil
}

// CheckSat asks whether the assertions are satisfiable. The call is bounded by `ctx` and by
// Config.Timeout; on expiry the process is killed, the session is Failed and the error wraps
// ErrSolverTimeout.
func (s *Session) CheckSat(ctx context.Context) (st Status, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require("check-sat"); err != nil {
		return Unknown, err
	}
	ctx, span := startSpan(ctx, "CheckSat", s.cfg.Backend)
	defer span.End()
	start := time.Now()
	defer func() {
		recordCheckSat(ctx, s.cfg.Backend, st, time.Since(start), err == nil)
		span.SetAttributes(attribute.String("smt.status", st.String()))
		endSpan(span, err)
	}()

	s.hasStatus = false
	if err := s.send(smtlib.CheckSat); err != nil {
		return Unknown, err
	}
	reply, err := s.readReply(ctx, smtlib.CheckSat)
	if err != nil {
		return Unknown, err
	}
	st, err = smtlib.ParseStatus(reply)
	if err != nil {
		return Unknown, s.fail(&ProtocolError{Command: smtlib.CheckSat, Reply: reply, Stderr: s.stderr.String(), Err: err})
	}
	s.status, s.hasStatus = st, true
	return st, nil
}

// Model returns the values of `vars` in the model found by the last CheckSat, which must have
// answered Sat with no assertion since. Every variable must have been declared by an assertion.
func (s *Session) Model(ctx context.Context, vars ...*expr.Expr) (m Model, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require("get-value"); err != nil {
		return nil, err
	}
	if !s.hasStatus {
		return nil, fmt.Errorf("no check-sat answer since the last assertion: %w", ErrNoModel)
	}
	if s.status != Sat {
		return nil, fmt.Errorf("last check-sat answered %v: %w", s.status, ErrNoModel)
	}
	sorts := make(map[string]expr.Sort, len(vars))
	for _, v := range vars {
		if v.Op() != expr.OpIdentity {
			return nil, fmt.Errorf("model value of %q: not a variable: %w", v.Name(), expr.ErrTypeMismatch)
		}
		sort, ok := s.ser.Declared(v.Name())
		if !ok {
			return nil, fmt.Errorf("model value of %q: %w", v.Name(), smtlib.ErrUndeclared)
		}
		sorts[v.Name()] = sort
	}
	names := lo.Uniq(lo.Map(vars, func(v *expr.Expr, _ int) string { return v.Name() }))

	ctx, span := startSpan(ctx, "Model", s.cfg.Backend)
	defer span.End()
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.Int("smt.variables", len(names)))

	m = make(Model, len(names))
	for _, batch := range lo.Chunk(names, modelBatch) {
		cmd, err := smtlib.GetValue(batch)
		if err != nil {
			return nil, err
		}
		if err := s.send(cmd); err != nil {
			return nil, err
		}
		reply, err := s.readReply(ctx, cmd)
		if err != nil {
			return nil, err
		}
		bindings, err := smtlib.ParseValues(reply)
		if err != nil {
			return nil, s.fail(&ProtocolError{Command: cmd, Reply: reply, Stderr: s.stderr.String(), Err: err})
		}
		for _, b := range bindings {
			m[b.Name] = b.Value
		}
		for _, n := range batch {
			if err := checkValue(n, m[n], sorts[n]); err != nil {
				return nil, s.fail(&ProtocolError{Command: cmd, Reply: reply, Err: err})
			}
		}
	}
	return m, nil
}

func checkValue(name string, v expr.Value, sort expr.Sort) error {
	switch {
	case !v.IsSet():
		return fmt.Errorf("no value for %q", name)
	case sort == expr.SortBool && !v.IsBool(), sort == expr.SortInt && !v.IsInt():
		return fmt.Errorf("value %v of %q is not of sort %v", v, name, sort)
	}
	return nil
}

// Close ends the session: it sends (exit) if the session is Running, closes the input of the
// process, and kills the process if it has not exited within the close grace period. Closing a
// closed session does nothing.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prior := s.State()
	switch prior {
	case StateClosed:
		return nil
	case StateCreated:
		s.setState(StateClosed)
		return nil
	case StateRunning:
		if _, err := io.WriteString(s.stdin, smtlib.Exit+"\n"); err != nil {
			log.V(1).Infof("sending (exit) to %s: %v", s.cfg.Backend, err)
		}
	}
	_ = s.stdin.Close()

	select {
	case <-s.exited:
	case <-time.After(s.cfg.closeGrace()):
		log.Warningf("%s did not exit within %v, killing it", s.cfg.Backend, s.cfg.closeGrace())
		s.kill()
		<-s.exited
	}
	close(s.done)
	_ = s.stdout.Close()
	s.setState(StateClosed)

	if prior == StateRunning && !s.killed.Load() && s.waitErr != nil {
		return fmt.Errorf("%s exited: %w", s.cfg.Backend, s.waitErr)
	}
	return nil
}

// send writes one command, or several newline-separated commands.
func (s *Session) send(cmd string) error {
	log.V(2).Infof("%s <- %s", s.cfg.Backend, strings.TrimRight(cmd, "\n"))
	if !strings.HasSuffix(cmd, "\n") {
		cmd += "\n"
	}
	if _, err := io.WriteString(s.stdin, cmd); err != nil {
		return s.fail(&ProtocolError{Command: firstLine(cmd), Stderr: s.stderr.String(), Err: err})
	}
	return nil
}

// readReply reads one S-expression, which may span several lines.
func (s *Session) readReply(ctx context.Context, command string) (string, error) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}
	var sb strings.Builder
	for {
		select {
		case line, ok := <-s.lines:
			if !ok {
				select {
				case <-s.exited:
				case <-time.After(exitSettle):
				}
				return "", s.fail(&ProtocolError{Command: command, Reply: sb.String(), Stderr: s.stderr.String(), Err: io.ErrUnexpectedEOF})
			}
			if sb.Len() == 0 && strings.TrimSpace(line) == "" {
				continue
			}
			sb.WriteString(line)
			sb.WriteByte('\n')
			if smtlib.Complete(sb.String()) {
				log.V(2).Infof("%s -> %s", s.cfg.Backend, strings.TrimSpace(sb.String()))
				return sb.String(), nil
			}
		case <-ctx.Done():
			return "", s.fail(fmt.Errorf("%s: %w: %w", command, ErrSolverTimeout, ctx.Err()))
		}
	}
}

func (s *Session) readLoop() {
	defer close(s.lines)
	sc := bufio.NewScanner(s.stdout)
	sc.Buffer(make([]byte, 0, 64*1024), maxReplyLine)
	for sc.Scan() {
		select {
		case s.lines <- sc.Text():
		case <-s.done:
			return
		}
	}
	if err := sc.Err(); err != nil {
		log.V(1).Infof("reading %s output: %v", s.cfg.Backend, err)
	}
}

// fail moves the session to Failed and kills the process.
func (s *Session) fail(err error) error {
	if State(s.state.Swap(int32(StateFailed))) != StateFailed {
		log.Errorf("%s session failed: %v", s.cfg.Backend, err)
		recordFailure(context.Background(), s.cfg.Backend)
	}
	s.kill()
	return err
}

func (s *Session) kill() {
	if s.cmd == nil || s.cmd.Process == nil {
		return
	}
	select {
	case <-s.exited:
		return
	default:
	}
	s.killed.Store(true)
	if err := s.cmd.Process.Kill(); err != nil {
		log.V(1).Infof("killing %s: %v", s.cfg.Backend, err)
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	return line
}

// tailBuffer keeps the last `max` bytes written to it.
type tailBuffer struct {
	mu  sync.Mutex
	max int
	buf []byte
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf = append(b.buf, p...)
	if over := len(b.buf) - b.max; over > 0 {
		b.buf = append(b.buf[:0], b.buf[over:]...)
	}
	return len(p), nil
}

func (b *tailBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.buf)
}
