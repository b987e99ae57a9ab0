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
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSolverUnavailable is returned when the solver executable cannot be found or started.
	ErrSolverUnavailable = errors.New("solver unavailable")
	// ErrProtocol is wrapped by every *ProtocolError.
	ErrProtocol = errors.New("solver protocol error")
	// ErrNoModel is returned when a model is requested without a preceding sat answer.
	ErrNoModel = errors.New("no model available")
	// ErrSolverTimeout is returned when a blocking call outlives its deadline. The solver process
	// is killed.
	ErrSolverTimeout = errors.New("solver timeout")
	// ErrSolverIndeterminate is returned when the solver answers unknown.
	ErrSolverIndeterminate = errors.New("solver returned unknown")
	// ErrSessionState is returned for operations that the session state does not allow.
	ErrSessionState = errors.New("invalid session state")
	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("invalid solver config")
)

// ProtocolError reports solver output that cannot be interpreted, or a solver that stopped
// answering. The session that returned it is Failed.
type ProtocolError struct {
	// Command is the command whose reply was being read.
	Command string
	// Reply is the raw reply, if any.
	Reply string
	// Stderr holds the last bytes the solver wrote to its standard error.
	Stderr string
	Err    error
}

func (e *ProtocolError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "solver protocol error after %s: %v", e.Command, e.Err)
	if e.Reply != "" {
		fmt.Fprintf(&sb, " (reply %q)", strings.TrimSpace(e.Reply))
	}
	if e.Stderr != "" {
		fmt.Fprintf(&sb, " (stderr %q)", strings.TrimSpace(e.Stderr))
	}
	return sb.String()
}

func (e *ProtocolError) Unwrap() []error {
	return []error{ErrProtocol, e.Err}
}
