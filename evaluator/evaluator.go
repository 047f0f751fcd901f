//
// Tencent is pleased to support the open source community by making trpc-agent-bench available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-bench is licensed under the Apache License Version 2.0.
//
//

// Package evaluator defines the evaluator contract shared by the
// deterministic matcher and the LLM judge.
package evaluator

import (
	"context"

	"trpc.group/trpc-go/trpc-agent-bench/metric"
	"trpc.group/trpc-go/trpc-agent-bench/status"
	"trpc.group/trpc-go/trpc-agent-bench/testcase"
)

// Evaluator scores one test case against one metric configuration.
type Evaluator interface {
	// Name returns the name of this evaluator.
	Name() string
	// Description returns a description of what this evaluator does.
	Description() string
	// Evaluate scores the test case. The case and its trace are read-only
	// for the duration of the call.
	Evaluate(ctx context.Context, tc *testcase.TestCase, evalMetric *metric.EvalMetric) (*EvaluateResult, error)
}

// EvaluateResult is the outcome of evaluating one case with one evaluator.
type EvaluateResult struct {
	// Score is the evaluator's normalized score in [0, 1].
	Score float64 `json:"score"`
	// Status classifies the score against the metric threshold.
	Status status.EvalStatus `json:"status"`
	// Reason is a human-readable account of how the score came to be.
	Reason string `json:"reason,omitempty"`
	// Flags records degraded-input conditions the score was computed under.
	Flags []string `json:"flags,omitempty"`
	// Rates holds the matcher's component rates keyed by their stable
	// field names. Empty for evaluators that do not produce rates.
	Rates map[string]float64 `json:"rates,omitempty"`
	// Rubric holds judge rubric dimensions on the 1-10 scale keyed by
	// their stable field names. Empty for deterministic evaluators.
	Rubric map[string]float64 `json:"rubric,omitempty"`
}

// StatusForScore classifies a score against the metric threshold.
func StatusForScore(score float64, evalMetric *metric.EvalMetric) status.EvalStatus {
	if evalMetric == nil {
		return status.EvalStatusUnknown
	}
	if score >= evalMetric.Threshold {
		return status.EvalStatusPassed
	}
	return status.EvalStatusFailed
}
