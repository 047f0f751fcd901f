//
// Tencent is pleased to support the open source community by making trpc-agent-bench available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-bench is licensed under the Apache License Version 2.0.
//
//

package toolmatch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-agent-bench/metric"
	"trpc.group/trpc-go/trpc-agent-bench/testcase"
)

func weatherTools() map[string]*testcase.ToolDeclaration {
	return map[string]*testcase.ToolDeclaration{
		"get_weather": {
			Name: "get_weather",
			InputSchema: map[string]any{
				"type":     "object",
				"required": []any{"city"},
				"properties": map[string]any{
					"city": map[string]any{"type": "string"},
					"days": map[string]any{"type": "integer"},
				},
			},
		},
		"search": {
			Name: "search",
			InputSchema: map[string]any{
				"type":     "object",
				"required": []any{"query"},
				"properties": map[string]any{
					"query": map[string]any{"type": "string"},
				},
			},
		},
	}
}

func TestMeasureEmptyTrace(t *testing.T) {
	tc := &testcase.TestCase{
		AvailableTools: weatherTools(),
		Trace:          &testcase.ExecutionTrace{PlanningJSONCompliance: 0.5},
	}
	result, err := New().Measure(context.Background(), tc)
	require.NoError(t, err)

	// Empty denominators are vacuously satisfied, with the flag set.
	assert.Equal(t, 1.0, result.ValidToolNameRate)
	assert.Equal(t, 1.0, result.InputSchemaCompliance)
	assert.Equal(t, 1.0, result.ExecutionSuccessRate)
	assert.Equal(t, 0.0, result.ValidCallFailureRate)
	assert.Equal(t, 0.5, result.PlanningJSONCompliance)
	assert.Contains(t, result.Flags, metric.FlagNoCallsMade)
	assert.NotContains(t, result.Flags, metric.FlagNoValidCalls)
}

func TestMeasureMissingTrace(t *testing.T) {
	result, err := New().Measure(context.Background(), &testcase.TestCase{})
	require.NoError(t, err)

	// Every composite contribution is 0 for a traceless case.
	assert.Equal(t, 0.0, result.Composite)
	assert.Equal(t, 0.0, result.ValidToolNameRate)
	assert.Equal(t, 1.0, result.ValidCallFailureRate)
	assert.Contains(t, result.Flags, metric.FlagNoTrace)
}

func TestMeasureThreeCallScenario(t *testing.T) {
	// Three calls, all valid names, two schema compliant, all successful.
	tc := &testcase.TestCase{
		AvailableTools: weatherTools(),
		Trace: &testcase.ExecutionTrace{
			PlanningJSONCompliance: 1.0,
			ToolExecutions: []*testcase.ToolExecution{
				{Tool: "get_weather", Parameters: map[string]any{"city": "Shenzhen"}, Success: true},
				{Tool: "search", Parameters: map[string]any{"query": "news"}, Success: true},
				{Tool: "search", Parameters: map[string]any{"q": "typo"}, Success: true},
			},
		},
	}
	result, err := New().Measure(context.Background(), tc)
	require.NoError(t, err)

	assert.Equal(t, 1.0, result.ValidToolNameRate)
	assert.InDelta(t, 2.0/3.0, result.InputSchemaCompliance, 1e-9)
	assert.Equal(t, 1.0, result.ExecutionSuccessRate)
	assert.Equal(t, 0.0, result.ValidCallFailureRate)
	assert.Empty(t, result.Flags)
}

func TestMeasureFailureRateInversion(t *testing.T) {
	tc := &testcase.TestCase{
		AvailableTools: weatherTools(),
		Trace: &testcase.ExecutionTrace{
			ToolExecutions: []*testcase.ToolExecution{
				{Tool: "search", Parameters: map[string]any{"query": "a"}, Success: true},
				{Tool: "search", Parameters: map[string]any{"query": "b"}, Success: false},
				{Tool: "search", Parameters: map[string]any{"query": "c"}, Success: false},
				{Tool: "get_weather", Parameters: map[string]any{"city": "SZ"}, Success: true},
			},
		},
	}
	result, err := New().Measure(context.Background(), tc)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, result.ValidCallFailureRate, 1e-9)
	// The rate and its inverted form always sum to one.
	assert.InDelta(t, 1.0, result.ValidCallFailureRate+(1.0-result.ValidCallFailureRate), 1e-9)
	assert.InDelta(t, 0.5, result.ExecutionSuccessRate, 1e-9)
}

func TestMeasureInvalidNamesExcluded(t *testing.T) {
	// Invalid-named calls count against the name rate but are excluded from
	// the schema and failure denominators.
	tc := &testcase.TestCase{
		AvailableTools: weatherTools(),
		Trace: &testcase.ExecutionTrace{
			ToolExecutions: []*testcase.ToolExecution{
				{Tool: "search", Parameters: map[string]any{"query": "a"}, Success: true},
				{Tool: "hallucinated_tool", Parameters: map[string]any{}, Success: false},
			},
		},
	}
	result, err := New().Measure(context.Background(), tc)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, result.ValidToolNameRate, 1e-9)
	assert.Equal(t, 1.0, result.InputSchemaCompliance)
	assert.Equal(t, 0.0, result.ValidCallFailureRate)
	assert.InDelta(t, 0.5, result.ExecutionSuccessRate, 1e-9)
}

func TestMeasureAllInvalidNames(t *testing.T) {
	tc := &testcase.TestCase{
		AvailableTools: weatherTools(),
		Trace: &testcase.ExecutionTrace{
			ToolExecutions: []*testcase.ToolExecution{
				{Tool: "nope", Success: false},
			},
		},
	}
	result, err := New().Measure(context.Background(), tc)
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.ValidToolNameRate)
	assert.Equal(t, 1.0, result.InputSchemaCompliance)
	assert.Equal(t, 0.0, result.ValidCallFailureRate)
	assert.Contains(t, result.Flags, metric.FlagNoValidCalls)
}

func TestMeasureUnknownTools(t *testing.T) {
	// No declarations: name validity and schema compliance are unknown and
	// excluded from penalizing the score, with the flag recording it.
	tc := &testcase.TestCase{
		Trace: &testcase.ExecutionTrace{
			ToolExecutions: []*testcase.ToolExecution{
				{Tool: "anything", Parameters: map[string]any{"x": 1}, Success: true},
			},
		},
	}
	result, err := New().Measure(context.Background(), tc)
	require.NoError(t, err)

	assert.Equal(t, 1.0, result.ValidToolNameRate)
	assert.Equal(t, 1.0, result.InputSchemaCompliance)
	assert.Contains(t, result.Flags, metric.FlagToolsUnavailable)
}

func TestMeasureSchemaTypeViolation(t *testing.T) {
	tc := &testcase.TestCase{
		AvailableTools: weatherTools(),
		Trace: &testcase.ExecutionTrace{
			ToolExecutions: []*testcase.ToolExecution{
				// Wrong type for days.
				{Tool: "get_weather", Parameters: map[string]any{"city": "SZ", "days": "three"}, Success: true},
			},
		},
	}
	result, err := New().Measure(context.Background(), tc)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.InputSchemaCompliance)
}

func TestEvaluate(t *testing.T) {
	evalMetric, err := metric.New("tool_match_score", metric.WithThreshold(0.5))
	require.NoError(t, err)
	tc := &testcase.TestCase{
		AvailableTools: weatherTools(),
		Trace: &testcase.ExecutionTrace{
			PlanningJSONCompliance: 1.0,
			ToolExecutions: []*testcase.ToolExecution{
				{Tool: "search", Parameters: map[string]any{"query": "a"}, Success: true},
			},
		},
	}
	got, err := New().Evaluate(context.Background(), tc, evalMetric)
	require.NoError(t, err)

	assert.Equal(t, 1.0, got.Score)
	assert.Equal(t, 1.0, got.Rates[metric.RateValidToolName])
	assert.Equal(t, 1.0, got.Rates[metric.RateMatcherComposite])
	assert.NotEmpty(t, got.Reason)
}
