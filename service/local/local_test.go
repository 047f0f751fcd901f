//
// Tencent is pleased to support the open source community by making trpc-agent-bench available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-bench is licensed under the Apache License Version 2.0.
//
//

package local

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-agent-bench/evalresult"
	evalresultlocal "trpc.group/trpc-go/trpc-agent-bench/evalresult/local"
	"trpc.group/trpc-go/trpc-agent-bench/evaluator/judge"
	"trpc.group/trpc-go/trpc-agent-bench/metric"
	"trpc.group/trpc-go/trpc-agent-bench/passatk"
	"trpc.group/trpc-go/trpc-agent-bench/service"
	"trpc.group/trpc-go/trpc-agent-bench/status"
	"trpc.group/trpc-go/trpc-agent-bench/testcase"
)

// scriptedModel scores by marker embedded in the case input: "score:N"
// yields all-N dimensions, "garbage" yields an unparsable response.
type scriptedModel struct{}

func (scriptedModel) Name() string { return "scripted-judge" }

func (scriptedModel) Complete(_ context.Context, prompt string) (string, error) {
	if strings.Contains(prompt, "garbage") {
		return "not a json response", nil
	}
	score := 8
	for _, candidate := range []int{2, 5, 8, 10} {
		if strings.Contains(prompt, fmt.Sprintf("score:%d", candidate)) {
			score = candidate
		}
	}
	return fmt.Sprintf(`{
		"task_fulfillment": %d, "grounding": %d, "tool_appropriateness": %d,
		"parameter_accuracy": %d, "dependency_awareness": %d, "parallelism_and_efficiency": %d
	}`, score, score, score, score, score, score), nil
}

func newService(t *testing.T) service.Service {
	t.Helper()
	judgeEvaluator, err := judge.New(scriptedModel{})
	require.NoError(t, err)
	svc, err := New(judgeEvaluator,
		service.WithResultManager(evalresultlocal.NewManager(evalresult.WithBaseDir(t.TempDir()))),
		service.WithCaseParallelism(3),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func scoredCase(id, taskID, marker string) *testcase.TestCase {
	return &testcase.TestCase{
		ID:     id,
		TaskID: taskID,
		Input:  "Do the task " + marker,
		AvailableTools: map[string]*testcase.ToolDeclaration{
			"search": {Name: "search"},
		},
		ExpectedToolCalls: []*testcase.ToolCall{
			{Name: "search", Input: map[string]any{"query": "q"}},
		},
		Trace: &testcase.ExecutionTrace{
			PlanningJSONCompliance: 1.0,
			ToolExecutions: []*testcase.ToolExecution{
				{Tool: "search", Parameters: map[string]any{"query": "q"}, Success: true},
			},
		},
	}
}

func evalMetric(t *testing.T, opt ...metric.Option) *metric.EvalMetric {
	t.Helper()
	m, err := metric.New("final_score", opt...)
	require.NoError(t, err)
	return m
}

func TestEvaluateProducesOneRowPerCase(t *testing.T) {
	svc := newService(t)
	req := &service.EvaluateRequest{
		SuiteID: "suite-1",
		Cases: []*testcase.TestCase{
			scoredCase("c1", "", "score:10"),
			scoredCase("c2", "", "score:2"),
			scoredCase("c3", "", "score:8"),
		},
		EvalMetric: evalMetric(t, metric.WithThreshold(0.7)),
	}
	result, err := svc.Evaluate(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, result.CaseScores, 3)

	// Rows keep input order.
	assert.Equal(t, "c1", result.CaseScores[0].CaseID)
	assert.Equal(t, "c2", result.CaseScores[1].CaseID)
	assert.Equal(t, status.EvalStatusPassed, result.CaseScores[0].Status)
	assert.Equal(t, status.EvalStatusFailed, result.CaseScores[1].Status)
	// score:10 with a perfect trace blends to 0.6 + 0.4.
	assert.InDelta(t, 1.0, result.CaseScores[0].FinalScore, 1e-9)
	assert.NotEmpty(t, result.RunResultID)
	require.NotNil(t, result.Summary)
	assert.Equal(t, 3, result.Summary.NumCases)
}

func TestEvaluateFaultIsolation(t *testing.T) {
	svc := newService(t)
	req := &service.EvaluateRequest{
		SuiteID: "suite-2",
		Cases: []*testcase.TestCase{
			scoredCase("good-1", "", "score:8"),
			scoredCase("bad", "", "garbage"),
			scoredCase("good-2", "", "score:8"),
		},
		EvalMetric: evalMetric(t),
	}
	result, err := svc.Evaluate(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, result.CaseScores, 3)

	// The malformed judge response errors its own case only.
	assert.Equal(t, status.EvalStatusError, result.CaseScores[1].Status)
	assert.Contains(t, result.CaseScores[1].Error, "parse error")
	assert.Equal(t, metric.ScoreUndefined, result.CaseScores[1].FinalScore)
	assert.Equal(t, status.EvalStatusPassed, result.CaseScores[0].Status)
	assert.Equal(t, status.EvalStatusPassed, result.CaseScores[2].Status)
}

func TestEvaluateAttachesPassAtK(t *testing.T) {
	svc := newService(t)
	taskEstimator, err := passatk.New(testcase.GranularityTask, 2, passatk.WithThreshold(0.7))
	require.NoError(t, err)
	toolEstimator, err := passatk.New(testcase.GranularityTool, 2)
	require.NoError(t, err)

	// Five trials of one task, three passing at task granularity.
	cases := []*testcase.TestCase{
		scoredCase("t1-1", "task-1", "score:10"),
		scoredCase("t1-2", "task-1", "score:8"),
		scoredCase("t1-3", "task-1", "score:8"),
		scoredCase("t1-4", "task-1", "score:2"),
		scoredCase("t1-5", "task-1", "score:2"),
	}
	req := &service.EvaluateRequest{
		SuiteID:    "suite-3",
		Cases:      cases,
		EvalMetric: evalMetric(t, metric.WithThreshold(0.7)),
		Estimators: []*passatk.Estimator{taskEstimator, toolEstimator},
	}
	result, err := svc.Evaluate(context.Background(), req)
	require.NoError(t, err)

	for _, score := range result.CaseScores {
		require.NotNil(t, score.PassAtK, "case %s", score.CaseID)
		// n=5, c=3, k=2.
		assert.InDelta(t, 0.9, score.PassAtK[metric.FieldTaskPassAtK], 1e-9)
		// Every trial's tool sequence matches: pass@k is 1.
		assert.InDelta(t, 1.0, score.PassAtK[metric.FieldToolPassAtK], 1e-9)
	}
}

func TestEvaluateSkipsPassAtKForSingleTrials(t *testing.T) {
	svc := newService(t)
	taskEstimator, err := passatk.New(testcase.GranularityTask, 3, passatk.WithThreshold(0.7))
	require.NoError(t, err)

	req := &service.EvaluateRequest{
		SuiteID: "suite-4",
		Cases: []*testcase.TestCase{
			// Two trials cannot support k=3; the estimator is skipped for
			// the group and the run still succeeds.
			scoredCase("t1-1", "task-1", "score:8"),
			scoredCase("t1-2", "task-1", "score:8"),
			scoredCase("solo", "", "score:8"),
		},
		EvalMetric: evalMetric(t, metric.WithThreshold(0.7)),
		Estimators: []*passatk.Estimator{taskEstimator},
	}
	result, err := svc.Evaluate(context.Background(), req)
	require.NoError(t, err)

	assert.Nil(t, result.CaseScores[0].PassAtK)
	assert.Nil(t, result.CaseScores[2].PassAtK)
}

func TestEvaluateValidation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Evaluate(ctx, nil)
	assert.Error(t, err)

	_, err = svc.Evaluate(ctx, &service.EvaluateRequest{EvalMetric: evalMetric(t)})
	assert.Error(t, err)

	_, err = svc.Evaluate(ctx, &service.EvaluateRequest{
		Cases: []*testcase.TestCase{scoredCase("c1", "", "score:8")},
	})
	assert.ErrorIs(t, err, metric.ErrInvalidConfiguration)
}

func TestNewValidation(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	judgeEvaluator, err := judge.New(scriptedModel{})
	require.NoError(t, err)
	_, err = New(judgeEvaluator, service.WithCaseParallelism(0))
	assert.Error(t, err)
}
