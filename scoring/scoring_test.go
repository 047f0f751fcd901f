//
// Tencent is pleased to support the open source community by making trpc-agent-bench available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-bench is licensed under the Apache License Version 2.0.
//
//

package scoring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-agent-bench/evaluator/judge"
	"trpc.group/trpc-go/trpc-agent-bench/evaluator/toolmatch"
	"trpc.group/trpc-go/trpc-agent-bench/metric"
	"trpc.group/trpc-go/trpc-agent-bench/status"
)

func allTens() *judge.Verdict {
	return &judge.Verdict{
		TaskFulfillment:       10,
		Grounding:             10,
		ToolAppropriateness:   10,
		ParameterAccuracy:     10,
		DependencyAwareness:   10,
		ParallelismEfficiency: 10,
		TaskCompletion:        10,
		ToolSelection:         10,
		PlanningEffectiveness: 10,
		Composite:             10,
	}
}

func perfectMatch() *toolmatch.Result {
	return &toolmatch.Result{
		ValidToolNameRate:      1,
		InputSchemaCompliance:  1,
		ExecutionSuccessRate:   1,
		PlanningJSONCompliance: 1,
		Composite:              1,
	}
}

func newAggregator(t *testing.T, opt ...metric.Option) *Aggregator {
	t.Helper()
	evalMetric, err := metric.New("final_score", opt...)
	require.NoError(t, err)
	a, err := NewAggregator(evalMetric)
	require.NoError(t, err)
	return a
}

func TestAggregatePerfectCase(t *testing.T) {
	a := newAggregator(t)
	score, err := a.Aggregate("c1", "t1", allTens(), perfectMatch())
	require.NoError(t, err)

	assert.InDelta(t, 1.0, score.FinalScore, 1e-9)
	assert.True(t, score.Success)
	assert.Equal(t, status.EvalStatusPassed, score.Status)
}

func TestAggregateMissingTrace(t *testing.T) {
	// All-10s judge with no trace: matcher contributes 0, final is exactly
	// the judge share.
	a := newAggregator(t, metric.WithThreshold(0.7))
	match := &toolmatch.Result{
		ValidCallFailureRate: 1.0,
		Flags:                []string{metric.FlagNoTrace},
	}
	score, err := a.Aggregate("c1", "t1", allTens(), match)
	require.NoError(t, err)

	assert.InDelta(t, 0.6, score.FinalScore, 1e-9)
	assert.False(t, score.Success)
	// The degraded state is surfaced, not hidden.
	assert.Contains(t, score.Rationale, "no execution trace")
	assert.Contains(t, score.Flags, metric.FlagNoTrace)
}

func TestAggregateBlendWeights(t *testing.T) {
	a := newAggregator(t)
	verdict := allTens()
	verdict.Composite = 5 // judge share 0.6 * 0.5 = 0.3
	match := perfectMatch()
	match.Composite = 0.5 // matcher share 0.4 * 0.5 = 0.2
	score, err := a.Aggregate("c1", "", verdict, match)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, score.FinalScore, 1e-9)
}

func TestAggregateStrictMode(t *testing.T) {
	a := newAggregator(t, metric.WithThreshold(0.3), metric.WithStrictMode(true))
	verdict := allTens()
	verdict.Composite = 9.9
	score, err := a.Aggregate("c1", "", verdict, perfectMatch())
	require.NoError(t, err)

	assert.Equal(t, 1.0, score.Threshold)
	assert.False(t, score.Success)
}

func TestAggregateRejectsNilInputs(t *testing.T) {
	a := newAggregator(t)
	_, err := a.Aggregate("c1", "", nil, perfectMatch())
	assert.Error(t, err)
	_, err = a.Aggregate("c1", "", allTens(), nil)
	assert.Error(t, err)
}

func TestNewAggregatorRejectsNilMetric(t *testing.T) {
	_, err := NewAggregator(nil)
	assert.ErrorIs(t, err, metric.ErrInvalidConfiguration)
}

func TestFlatExport(t *testing.T) {
	a := newAggregator(t)
	score, err := a.Aggregate("c1", "t1", allTens(), perfectMatch())
	require.NoError(t, err)
	score.PassAtK = map[string]float64{metric.FieldTaskPassAtK: 0.9}

	flat := score.Flat()
	assert.Equal(t, 1.0, flat[metric.FieldFinalScore])
	assert.Equal(t, true, flat[metric.FieldSuccess])
	assert.Equal(t, 10.0, flat[metric.DimensionTaskFulfillment])
	assert.Equal(t, 1.0, flat[metric.RateValidToolName])
	assert.Equal(t, 0.9, flat[metric.FieldTaskPassAtK])
	// Unattached estimator fields are present as the undefined sentinel,
	// never missing.
	assert.Equal(t, metric.ScoreUndefined, flat[metric.FieldToolPassAtK])
	assert.Equal(t, metric.ScoreUndefined, flat[metric.FieldParameterPassAtK])
}

func TestErrorScoreRow(t *testing.T) {
	score := NewErrorScore("c9", "t9", fmt.Errorf("judge response parse error"))
	assert.Equal(t, status.EvalStatusError, score.Status)
	assert.Equal(t, metric.ScoreUndefined, score.FinalScore)

	flat := score.Flat()
	// Every numeric field is still present on an errored row.
	assert.Equal(t, metric.ScoreUndefined, flat[metric.DimensionJudgeComposite])
	assert.Equal(t, metric.ScoreUndefined, flat[metric.RateMatcherComposite])
	assert.Equal(t, "judge response parse error", flat["error"])
}
