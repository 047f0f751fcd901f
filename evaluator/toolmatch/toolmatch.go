//
// Tencent is pleased to support the open source community by making trpc-agent-bench available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-bench is licensed under the Apache License Version 2.0.
//
//

// Package toolmatch provides deterministic tool usage evaluation over an
// execution trace.
package toolmatch

import (
	"context"
	"fmt"
	"strings"

	"trpc.group/trpc-go/trpc-agent-bench/evaluator"
	"trpc.group/trpc-go/trpc-agent-bench/metric"
	"trpc.group/trpc-go/trpc-agent-bench/status"
	"trpc.group/trpc-go/trpc-agent-bench/testcase"
)

// Result carries the five component rates for one trace, their composite,
// and the degraded-input flags they were computed under.
//
// All rates are in [0, 1] and oriented higher-is-better except
// ValidCallFailureRate, whose inverted form enters the composite.
type Result struct {
	ValidToolNameRate      float64  `json:"validToolNameRate"`
	InputSchemaCompliance  float64  `json:"inputSchemaCompliance"`
	ExecutionSuccessRate   float64  `json:"executionSuccessRate"`
	ValidCallFailureRate   float64  `json:"validCallFailureRate"`
	PlanningJSONCompliance float64  `json:"planningJsonCompliance"`
	Composite              float64  `json:"composite"`
	Flags                  []string `json:"flags,omitempty"`

	CallCount       int `json:"callCount"`
	ValidNameCount  int `json:"validNameCount"`
	CompliantCount  int `json:"compliantCount"`
	SuccessCount    int `json:"successCount"`
	ValidFailCount  int `json:"validFailCount"`
}

// Rates returns the five rates keyed by their stable field names, with the
// composite included.
func (r *Result) Rates() map[string]float64 {
	return map[string]float64{
		metric.RateValidToolName:          r.ValidToolNameRate,
		metric.RateInputSchemaCompliance:  r.InputSchemaCompliance,
		metric.RateExecutionSuccess:       r.ExecutionSuccessRate,
		metric.RateValidCallFailure:       r.ValidCallFailureRate,
		metric.RatePlanningJSONCompliance: r.PlanningJSONCompliance,
		metric.RateMatcherComposite:       r.Composite,
	}
}

// Evaluator computes the tool-match rates for a case.
type Evaluator struct{}

// New creates a new tool-match evaluator.
func New() *Evaluator {
	return &Evaluator{}
}

// Name returns the name of this evaluator.
func (e *Evaluator) Name() string {
	return "tool_match_score"
}

// Description returns a description of what this evaluator does.
func (e *Evaluator) Description() string {
	return "Computes normalized rates for tool name validity, schema compliance, " +
		"execution success, valid-call failure and planning output compliance"
}

// Evaluate computes the five rates for the case's execution trace.
func (e *Evaluator) Evaluate(ctx context.Context, tc *testcase.TestCase,
	evalMetric *metric.EvalMetric) (*evaluator.EvaluateResult, error) {
	if tc == nil {
		return nil, fmt.Errorf("test case is nil")
	}
	result, err := e.Measure(ctx, tc)
	if err != nil {
		return nil, err
	}
	evalStatus := status.EvalStatusNotEvaluated
	if evalMetric != nil {
		evalStatus = evaluator.StatusForScore(result.Composite, evalMetric)
	}
	return &evaluator.EvaluateResult{
		Score:  result.Composite,
		Status: evalStatus,
		Reason: e.describe(result),
		Flags:  result.Flags,
		Rates:  result.Rates(),
	}, nil
}

// Measure computes the raw component rates for the case's trace.
//
// A missing trace yields a neutral result: every rate is 0 and the
// no-trace flag is set. A trace with zero calls yields vacuous 1.0 for
// the rates whose denominator is empty, with the no-calls flag set.
func (e *Evaluator) Measure(_ context.Context, tc *testcase.TestCase) (*Result, error) {
	if tc == nil {
		return nil, fmt.Errorf("test case is nil")
	}
	if tc.Trace == nil {
		return &Result{
			// Every composite contribution is 0. The failure rate is the
			// inverted term, so its raw value is pinned to 1.
			ValidCallFailureRate: 1.0,
			Flags:                []string{metric.FlagNoTrace},
		}, nil
	}
	trace := tc.Trace
	result := &Result{
		PlanningJSONCompliance: trace.PlanningJSONCompliance,
		CallCount:              len(trace.ToolExecutions),
	}
	toolsKnown := len(tc.AvailableTools) > 0
	if !toolsKnown && result.CallCount > 0 {
		result.Flags = append(result.Flags, metric.FlagToolsUnavailable)
	}
	for _, exec := range trace.ToolExecutions {
		if exec == nil {
			continue
		}
		validName := true
		if toolsKnown {
			_, validName = tc.AvailableTools[exec.Tool]
		}
		if exec.Success {
			result.SuccessCount++
		}
		if !validName {
			continue
		}
		result.ValidNameCount++
		if !exec.Success {
			result.ValidFailCount++
		}
		if e.schemaCompliant(tc, exec) {
			result.CompliantCount++
		}
	}
	e.fillRates(result)
	result.Composite = composite(result)
	return result, nil
}

// fillRates derives the rates from the counters, applying vacuous defaults
// for empty denominators.
func (e *Evaluator) fillRates(result *Result) {
	if result.CallCount == 0 {
		result.ValidToolNameRate = 1.0
		result.ExecutionSuccessRate = 1.0
		result.Flags = append(result.Flags, metric.FlagNoCallsMade)
	} else {
		result.ValidToolNameRate = float64(result.ValidNameCount) / float64(result.CallCount)
		result.ExecutionSuccessRate = float64(result.SuccessCount) / float64(result.CallCount)
	}
	if result.ValidNameCount == 0 {
		result.InputSchemaCompliance = 1.0
		result.ValidCallFailureRate = 0.0
		if result.CallCount > 0 {
			result.Flags = append(result.Flags, metric.FlagNoValidCalls)
		}
	} else {
		result.InputSchemaCompliance = float64(result.CompliantCount) / float64(result.ValidNameCount)
		result.ValidCallFailureRate = float64(result.ValidFailCount) / float64(result.ValidNameCount)
	}
}

// composite averages the five rates with the failure rate inverted so that
// every term is higher-is-better.
func composite(r *Result) float64 {
	sum := r.ValidToolNameRate +
		r.InputSchemaCompliance +
		r.ExecutionSuccessRate +
		(1.0 - r.ValidCallFailureRate) +
		r.PlanningJSONCompliance
	return sum / 5.0
}

// schemaCompliant reports whether the call's parameters satisfy the declared
// input schema. Calls without a declaration or without a schema count as
// compliant, since there is nothing to violate.
func (e *Evaluator) schemaCompliant(tc *testcase.TestCase, exec *testcase.ToolExecution) bool {
	decl, ok := tc.AvailableTools[exec.Tool]
	if !ok || decl == nil || len(decl.InputSchema) == 0 {
		return true
	}
	err := validateSchema(decl.InputSchema, exec.Parameters)
	return err == nil
}

// describe renders the component rates for the result reason field.
func (e *Evaluator) describe(r *Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s=%.3f %s=%.3f %s=%.3f %s=%.3f %s=%.3f",
		metric.RateValidToolName, r.ValidToolNameRate,
		metric.RateInputSchemaCompliance, r.InputSchemaCompliance,
		metric.RateExecutionSuccess, r.ExecutionSuccessRate,
		metric.RateValidCallFailure, r.ValidCallFailureRate,
		metric.RatePlanningJSONCompliance, r.PlanningJSONCompliance)
	if len(r.Flags) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(r.Flags, "; "))
	}
	return b.String()
}
