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
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("smtkit.solver")
	meter  = otel.Meter("smtkit.solver")
)

var (
	solverSpawns    metric.Int64Counter
	checkSatLatency metric.Float64Histogram
	sessionFailures metric.Int64Counter
	solutionTotal   metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics creates the instruments. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		solverSpawns, err = meter.Int64Counter(
			"smt_solver_spawns_total",
			metric.WithDescription("Total number of solver processes started"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		checkSatLatency, err = meter.Float64Histogram(
			"smt_check_sat_duration_seconds",
			metric.WithDescription("Duration of check-sat commands"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		sessionFailures, err = meter.Int64Counter(
			"smt_session_failures_total",
			metric.WithDescription("Total number of sessions that entered the failed state"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		solutionTotal, err = meter.Int64Counter(
			"smt_solutions_total",
			metric.WithDescription("Total number of solutions enumerated"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

func startSpan(ctx context.Context, operation string, backend Backend) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Session."+operation,
		trace.WithAttributes(
			attribute.String("smt.operation", operation),
			attribute.String("smt.backend", string(backend)),
		),
	)
}

func recordSpawn(ctx context.Context, backend Backend, success bool) {
	if err := initMetrics(); err != nil {
		return
	}
	solverSpawns.Add(ctx, 1, metric.WithAttributes(
		attribute.String("backend", string(backend)),
		attribute.Bool("success", success),
	))
}

func recordCheckSat(ctx context.Context, backend Backend, status Status, d time.Duration, success bool) {
	if err := initMetrics(); err != nil {
		return
	}
	checkSatLatency.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("backend", string(backend)),
		attribute.String("status", status.String()),
		attribute.Bool("success", success),
	))
}

func recordFailure(ctx context.Context, backend Backend) {
	if err := initMetrics(); err != nil {
		return
	}
	sessionFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("backend", string(backend))))
}

func recordSolution(ctx context.Context, backend Backend) {
	if err := initMetrics(); err != nil {
		return
	}
	solutionTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("backend", string(backend))))
}
