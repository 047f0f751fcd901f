//
// Tencent is pleased to support the open source community by making trpc-agent-bench available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-bench is licensed under the Apache License Version 2.0.
//
//

package passatk

import (
	"fmt"

	"trpc.group/trpc-go/trpc-agent-bench/testcase"
)

// TaskOutcomes derives task-level outcomes from per-trial scores, marking a
// trial correct when its score meets the estimator threshold. The scores
// are normalized judge composites by default, but any pluggable correctness
// score in [0, 1] works.
func (e *Estimator) TaskOutcomes(scores []float64) (*testcase.TrialOutcomes, error) {
	if e.granularity != testcase.GranularityTask {
		return nil, fmt.Errorf("task outcomes requested on %q estimator", e.granularity)
	}
	return testcase.OutcomesFromScores(testcase.GranularityTask, scores, e.threshold)
}

// ToolOutcomes derives tool-level outcomes by matching each trial's called
// tool sequence against its expected tool calls.
func (e *Estimator) ToolOutcomes(trials []*testcase.TestCase) (*testcase.TrialOutcomes, error) {
	if e.granularity != testcase.GranularityTool {
		return nil, fmt.Errorf("tool outcomes requested on %q estimator", e.granularity)
	}
	results := make([]bool, len(trials))
	for i, trial := range trials {
		if trial == nil {
			continue
		}
		var executions []*testcase.ToolExecution
		if trial.Trace != nil {
			executions = trial.Trace.ToolExecutions
		}
		ok, _ := e.toolCalls.Match(executions, trial.ExpectedToolCalls)
		results[i] = ok
	}
	return testcase.NewTrialOutcomes(testcase.GranularityTool, results)
}

// ParameterOutcomes derives parameter-level outcomes. Correctness is
// binary: every expected call must be matched in order with passing
// parameters, with no partial credit.
func (e *Estimator) ParameterOutcomes(trials []*testcase.TestCase) (*testcase.TrialOutcomes, error) {
	if e.granularity != testcase.GranularityParameter {
		return nil, fmt.Errorf("parameter outcomes requested on %q estimator", e.granularity)
	}
	results := make([]bool, len(trials))
	for i, trial := range trials {
		if trial == nil {
			continue
		}
		results[i] = e.parametersMatch(trial)
	}
	return testcase.NewTrialOutcomes(testcase.GranularityParameter, results)
}

func (e *Estimator) parametersMatch(trial *testcase.TestCase) bool {
	var executions []*testcase.ToolExecution
	if trial.Trace != nil {
		executions = trial.Trace.ToolExecutions
	}
	if len(executions) != len(trial.ExpectedToolCalls) {
		return false
	}
	for i, expected := range trial.ExpectedToolCalls {
		actual := executions[i]
		if actual == nil || expected == nil {
			return false
		}
		if actual.Tool != expected.Name {
			return false
		}
		ok, err := e.params.Match(actual.Parameters, expected.Input)
		if err != nil || !ok {
			return false
		}
	}
	return true
}
