//
// Tencent is pleased to support the open source community by making trpc-agent-bench available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-bench is licensed under the Apache License Version 2.0.
//
//

package evalresult

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trpc.group/trpc-go/trpc-agent-bench/evaluator/judge"
	"trpc.group/trpc-go/trpc-agent-bench/evaluator/toolmatch"
	"trpc.group/trpc-go/trpc-agent-bench/metric"
	"trpc.group/trpc-go/trpc-agent-bench/scoring"
	"trpc.group/trpc-go/trpc-agent-bench/status"
)

func sampleRun() *RunResult {
	return &RunResult{
		SuiteID: "s1",
		CaseScores: []*scoring.CaseScore{
			{
				CaseID: "c1", TaskID: "t1", FinalScore: 0.9, Success: true,
				Status: status.EvalStatusPassed,
				Judge:  &judge.Verdict{Composite: 9},
				Match:  &toolmatch.Result{Composite: 0.9},
			},
			{
				CaseID: "c2", TaskID: "t1", FinalScore: 0.3,
				Status: status.EvalStatusFailed,
				Judge:  &judge.Verdict{Composite: 3},
				Match:  &toolmatch.Result{Composite: 0.3},
			},
			{
				CaseID: "c3", TaskID: "t2", FinalScore: metric.ScoreUndefined,
				Status: status.EvalStatusError, Error: "judge response parse error",
			},
		},
	}
}

func TestSummarize(t *testing.T) {
	summary := Summarize(sampleRun())

	assert.Equal(t, 3, summary.NumCases)
	assert.Equal(t, 1, summary.StatusCounts.Passed)
	assert.Equal(t, 1, summary.StatusCounts.Failed)
	assert.Equal(t, 1, summary.StatusCounts.Errored)
	// Error dominates the overall status.
	assert.Equal(t, status.EvalStatusError, summary.OverallStatus)
	// Means exclude errored rows.
	assert.InDelta(t, 0.6, summary.MeanFinalScore, 1e-9)
	assert.InDelta(t, 6.0, summary.MeanJudgeComposite, 1e-9)
	assert.InDelta(t, 0.6, summary.MeanMatcherComposite, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(&RunResult{})
	assert.Equal(t, 0, summary.NumCases)
	assert.Equal(t, status.EvalStatusNotEvaluated, summary.OverallStatus)
}

func TestFlatten(t *testing.T) {
	rows := Flatten(sampleRun())
	assert.Len(t, rows, 3)
	assert.Equal(t, "c1", rows[0]["case_id"])
	assert.Equal(t, "t1", rows[0]["task_id"])
	// Every row carries every numeric field, errored rows included.
	assert.Equal(t, metric.ScoreUndefined, rows[2][metric.DimensionJudgeComposite])
	assert.Equal(t, "judge response parse error", rows[2]["error"])
}
