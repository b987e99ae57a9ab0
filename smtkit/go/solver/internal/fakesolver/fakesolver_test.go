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


package fakesolver

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func run(t *testing.T, input string, args ...string) (string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Main(args, strings.NewReader(input), &stdout, &stderr)
	return stdout.String(), code
}

func TestMain_Sessions(t *testing.T) {
	testCases := []struct {
		name  string
		args  []string
		input string
		want  string
	}{
		{
			name: "SmallestModel",
			args: []string{"-domain", "1:4"},
			input: `(set-option :produce-models true)
(declare-fun x () Int)
(declare-fun y () Int)
(assert (distinct x y))
(assert (< (+ x 1) y))
(check-sat)
(get-value (x y))
`,
			want: "sat\n((x 1)\n (y 3))\n",
		},
		{
			name: "Unsat",
			input: `(declare-fun x () Int)
(assert (and (= x 1) (= x 2)))
(check-sat)
`,
			want: "unsat\n",
		},
		{
			name: "Booleans",
			input: `(declare-fun |p q| () Bool)
(declare-fun r () Bool)
(assert (xor |p q| r))
(assert (=> r |p q|))
(check-sat)
(get-value (|p q| r))
`,
			want: "sat\n((|p q| true)\n (r false))\n",
		},
		{
			name: "NegativeValues",
			args: []string{"-domain", "-3:3"},
			input: `(declare-fun x () Int)
(assert (<= (* 2 x) (- 5)))
(check-sat)
(get-value (x (- x)))
`,
			want: "sat\n((x (- 3))\n ((- x) 3))\n",
		},
		{
			name: "ModelInvalidatedByAssert",
			input: `(declare-fun x () Int)
(assert (> x 3))
(check-sat)
(assert (> x 4))
(get-value (x))
`,
			want: "sat\n(error \"model is not available\")\n",
		},
		{
			name:  "ExitStopsReading",
			input: "(exit)\n(check-sat)\n",
			want:  "",
		},
		{
			name:  "UnsupportedCommand",
			input: "(push 1)\n",
			want:  "(error \"unsupported command push\")\n",
		},
		{
			name: "MultiLineCommand",
			input: `(declare-fun x
  () Int)
(assert (ite (> x 2)
  (= x 5) false))
(check-sat) (get-value (x))
`,
			want: "sat\n((x 5))\n",
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			got, code := run(t, test.input, test.args...)
			if code != 0 {
				t.Errorf("Main() returned exit code %d, want 0", code)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Main() wrote unexpected output (-want+got):\n%s", diff)
			}
		})
	}
}

func TestMain_Modes(t *testing.T) {
	const input = `(declare-fun x () Int)
(assert (> x 7))
(check-sat)
(get-value (x))
(assert (distinct x 8))
(check-sat)
(get-value (x))
`
	testCases := []struct {
		mode     string
		want     string
		wantCode int
	}{
		{mode: ModeNormal, want: "sat\n((x 8))\nsat\n((x 9))\n"},
		{mode: ModeUnknown, want: "sat\n((x 8))\nunknown\n(error \"model is not available\")\n"},
		{mode: ModeGarbage, want: "sat\n((x 8))\nbanana\n(error \"model is not available\")\n"},
		{mode: ModeHang, want: "sat\n((x 8))\n(error \"model is not available\")\n"},
		{mode: ModeCrash, want: "sat\n((x 8))\n", wantCode: 3},
		{mode: ModeError, want: "sat\n((x 8))\n(error \"simulated failure\")\n(error \"model is not available\")\n"},
		{mode: ModeRepeat, want: "sat\n((x 8))\nsat\n((x 8))\n"},
	}

	for _, test := range testCases {
		t.Run(test.mode, func(t *testing.T) {
			got, code := run(t, input, "-mode", test.mode, "-after", "1")
			if code != test.wantCode {
				t.Errorf("Main() returned exit code %d, want %d", code, test.wantCode)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Main() wrote unexpected output (-want+got):\n%s", diff)
			}
		})
	}
}

func TestMain_BadFlags(t *testing.T) {
	for _, args := range [][]string{{"-domain", "5"}, {"-domain", "3:1"}, {"-nope"}} {
		if _, code := run(t, "", args...); code != 2 {
			t.Errorf("Main(%v) returned exit code %d, want 2", args, code)
		}
	}
}
