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

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
)

// ClosedInterval is the interval `[Start,End]`. It is empty when Start > End.
type ClosedInterval struct {
	Start int64
	End   int64
}

// Domain is a finite union of integer intervals, kept sorted and with no two intervals overlapping
// or touching.
type Domain struct {
	intervals []ClosedInterval
}

// NewDomain returns the domain `[lo,hi]`, or the empty domain if lo > hi.
func NewDomain(lo, hi int64) Domain {
	if lo > hi {
		return Domain{}
	}
	return Domain{[]ClosedInterval{{lo, hi}}}
}

// FromValues returns the domain holding exactly `values`, which need not be sorted or distinct.
func FromValues(values []int64) Domain {
	itvs := make([]ClosedInterval, len(values))
	for i, v := range values {
		itvs[i] = ClosedInterval{v, v}
	}
	return FromIntervals(itvs)
}

// FromIntervals returns the union of `intervals`. Empty intervals are dropped.
func FromIntervals(intervals []ClosedInterval) Domain {
	var itvs []ClosedInterval
	for _, itv := range intervals {
		if itv.Start <= itv.End {
			itvs = append(itvs, itv)
		}
	}
	slices.SortFunc(itvs, func(a, b ClosedInterval) int {
		if a.Start != b.Start {
			if a.Start < b.Start {
				return -1
			}
			return 1
		}
		if a.End < b.End {
			return -1
		}
		if a.End > b.End {
			return 1
		}
		return 0
	})
	var merged []ClosedInterval
	for _, itv := range itvs {
		if n := len(merged); n > 0 {
			last := &merged[n-1]
			// last.End+1 would overflow at MaxInt64, which already covers everything after it.
			if last.End == math.MaxInt64 || last.End+1 >= itv.Start {
				last.End = max(last.End, itv.End)
				continue
			}
		}
		merged = append(merged, itv)
	}
	return Domain{merged}
}

// Intervals returns the intervals of the domain in increasing order.
func (d Domain) Intervals() []ClosedInterval {
	return slices.Clone(d.intervals)
}

// IsEmpty returns true if the domain has no value.
func (d Domain) IsEmpty() bool {
	return len(d.intervals) == 0
}

// Min returns the smallest value of the domain, and false if the domain is empty.
func (d Domain) Min() (int64, bool) {
	if len(d.intervals) == 0 {
		return 0, false
	}
	return d.intervals[0].Start, true
}

// Max returns the largest value of the domain, and false if the domain is empty.
func (d Domain) Max() (int64, bool) {
	if len(d.intervals) == 0 {
		return 0, false
	}
	return d.intervals[len(d.intervals)-1].End, true
}

// Contains returns true if `v` is in the domain.
func (d Domain) Contains(v int64) bool {
	_, found := slices.BinarySearchFunc(d.intervals, v, func(itv ClosedInterval, v int64) int {
		switch {
		case itv.End < v:
			return -1
		case itv.Start > v:
			return 1
		}
		return 0
	})
	return found
}

// String returns the domain as `[0,2][5,5]`.
func (d Domain) String() string {
	var sb strings.Builder
	for _, itv := range d.intervals {
		fmt.Fprintf(&sb, "[%d,%d]", itv.Start, itv.End)
	}
	return sb.String()
}

// InDomain returns the constraint `x in d`. Unbounded ends (math.MinInt64 and math.MaxInt64) are
// not constrained. The empty domain is rejected since it cannot be satisfied.
func InDomain(x *Expr, d Domain) (*Expr, error) {
	if d.IsEmpty() {
		return nil, errors.New("InDomain: empty domain")
	}
	var alts []*Expr
	for _, itv := range d.intervals {
		c, err := intervalConstraint(x, itv)
		if err != nil {
			return nil, err
		}
		alts = append(alts, c)
	}
	if len(alts) == 1 {
		return alts[0], nil
	}
	return Combine(OpOr, alts...)
}

func intervalConstraint(x *Expr, itv ClosedInterval) (*Expr, error) {
	if itv.Start == itv.End {
		return Combine(OpEq, x, Int(itv.Start))
	}
	var parts []*Expr
	if itv.Start != math.MinInt64 {
		p, err := Combine(OpLe, Int(itv.Start), x)
		if err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	if itv.End != math.MaxInt64 {
		p, err := Combine(OpLe, x, Int(itv.End))
		if err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	switch len(parts) {
	case 0:
		return Combine(OpGe, x, Int(math.MinInt64))
	case 1:
		return parts[0], nil
	}
	return Combine(OpAnd, parts...)
}
