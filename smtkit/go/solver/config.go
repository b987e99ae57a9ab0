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
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultCloseGrace is how long Close waits for the solver to exit before killing it.
const DefaultCloseGrace = 2 * time.Second

// Config selects and tunes the solver process of a session.
//
// A config file looks like:
//
//	backend: cvc5
//	timeout: 30s
//	options:
//	  random-seed: "7"
type Config struct {
	// Backend selects the default executable and flags.
	Backend Backend `yaml:"backend"`
	// Command overrides the executable of the backend.
	Command string `yaml:"command,omitempty"`
	// Args overrides the flags of the backend when not nil.
	Args []string `yaml:"args,omitempty"`
	// Env holds extra `KEY=value` entries added to the solver environment.
	Env []string `yaml:"env,omitempty"`
	// Timeout bounds every blocking call. Zero means no bound besides the caller's context.
	Timeout time.Duration `yaml:"timeout,omitempty"`
	// CloseGrace overrides DefaultCloseGrace.
	CloseGrace time.Duration `yaml:"close_grace,omitempty"`
	// Options are sent as set-option commands when the session opens, in key order.
	Options map[string]string `yaml:"options,omitempty"`
	// MaxSessions bounds the number of solver processes EnumerateAll runs at once. Zero means one
	// per problem.
	MaxSessions int `yaml:"max_sessions,omitempty"`
}

// DefaultConfig returns the config running `b` with its default command line.
func DefaultConfig(b Backend) Config {
	return Config{Backend: b}
}

// LoadConfig reads a YAML config file. Unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading solver config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes a YAML config. An empty document yields the z3 default config.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig(BackendZ3)
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parsing solver config: %v: %w", err, ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the config names a known backend and sane durations.
func (c Config) Validate() error {
	if !c.Backend.Known() {
		return fmt.Errorf("unknown backend %q, want one of %v: %w", string(c.Backend), Backends(), ErrInvalidConfig)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("negative timeout %v: %w", c.Timeout, ErrInvalidConfig)
	}
	if c.CloseGrace < 0 {
		return fmt.Errorf("negative close_grace %v: %w", c.CloseGrace, ErrInvalidConfig)
	}
	if c.MaxSessions < 0 {
		return fmt.Errorf("negative max_sessions %d: %w", c.MaxSessions, ErrInvalidConfig)
	}
	return nil
}

// commandLine returns the executable and flags to run.
func (c Config) commandLine() (string, []string, error) {
	command, args, err := c.Backend.DefaultCommand()
	if err != nil {
		return "", nil, err
	}
	if c.Command != "" {
		command = c.Command
	}
	if c.Args != nil {
		args = c.Args
	}
	return command, args, nil
}

func (c Config) closeGrace() time.Duration {
	if c.CloseGrace > 0 {
		return c.CloseGrace
	}
	return DefaultCloseGrace
}
