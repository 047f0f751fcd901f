//
// Tencent is pleased to support the open source community by making trpc-agent-bench available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-bench is licensed under the Apache License Version 2.0.
//
//

package criterion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-agent-bench/testcase"
)

func execs(names ...string) []*testcase.ToolExecution {
	out := make([]*testcase.ToolExecution, 0, len(names))
	for _, name := range names {
		out = append(out, &testcase.ToolExecution{Tool: name, Success: true})
	}
	return out
}

func calls(names ...string) []*testcase.ToolCall {
	out := make([]*testcase.ToolCall, 0, len(names))
	for _, name := range names {
		out = append(out, &testcase.ToolCall{Name: name})
	}
	return out
}

func TestToolCallCriterionNameOnly(t *testing.T) {
	tests := []struct {
		name     string
		actual   []*testcase.ToolExecution
		expected []*testcase.ToolCall
		want     bool
	}{
		{
			name:     "all expected names called",
			actual:   execs("search", "fetch", "summarize"),
			expected: calls("fetch", "search"),
			want:     true,
		},
		{
			name:     "order and duplicates ignored",
			actual:   execs("fetch", "fetch", "search"),
			expected: calls("search", "fetch"),
			want:     true,
		},
		{
			name:     "missing expected name fails",
			actual:   execs("search"),
			expected: calls("search", "fetch"),
			want:     false,
		},
		{
			name:     "overlap alone is not enough",
			actual:   execs("search", "fetch"),
			expected: calls("search", "translate"),
			want:     false,
		},
		{
			name:     "no expectations always pass",
			actual:   execs("search"),
			expected: nil,
			want:     true,
		},
	}
	c := &ToolCallCriterion{MatchStrategy: ToolMatchStrategyNameOnly}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Match(tt.actual, tt.expected)
			assert.Equal(t, tt.want, got)
			if !tt.want {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestToolCallCriterionNameOnlyAggregatesMissing(t *testing.T) {
	c := &ToolCallCriterion{MatchStrategy: ToolMatchStrategyNameOnly}
	ok, err := c.Match(execs("search"), calls("fetch", "translate"))
	require.False(t, ok)
	require.Error(t, err)
	// Both missing names are reported, not just the first.
	assert.Contains(t, err.Error(), "fetch")
	assert.Contains(t, err.Error(), "translate")
}

func TestToolCallCriterionNameAndSequence(t *testing.T) {
	tests := []struct {
		name     string
		actual   []*testcase.ToolExecution
		expected []*testcase.ToolCall
		want     bool
	}{
		{
			name:     "identical ordered names",
			actual:   execs("search", "fetch"),
			expected: calls("search", "fetch"),
			want:     true,
		},
		{
			name:     "order mismatch fails",
			actual:   execs("fetch", "search"),
			expected: calls("search", "fetch"),
			want:     false,
		},
		{
			name:     "matching prefix with extra actual call fails",
			actual:   execs("search", "fetch", "summarize"),
			expected: calls("search", "fetch"),
			want:     false,
		},
		{
			name:     "matching prefix with missing actual call fails",
			actual:   execs("search"),
			expected: calls("search", "fetch"),
			want:     false,
		},
		{
			name:     "both empty pass",
			actual:   nil,
			expected: nil,
			want:     true,
		},
	}
	c := &ToolCallCriterion{MatchStrategy: ToolMatchStrategyNameAndSequence}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Match(tt.actual, tt.expected)
			assert.Equal(t, tt.want, got)
			if !tt.want {
				assert.Error(t, err)
			}
		})
	}
}

func TestToolCallCriterionExactMatch(t *testing.T) {
	actual := []*testcase.ToolExecution{
		{
			Tool:       "search",
			Parameters: map[string]any{"query": "weather"},
			Result:     "sunny",
			Success:    true,
		},
	}
	c := &ToolCallCriterion{MatchStrategy: ToolMatchStrategyExactMatch}

	t.Run("name params and result all match", func(t *testing.T) {
		expected := []*testcase.ToolCall{{
			Name:   "search",
			Input:  map[string]any{"query": "weather"},
			Output: "sunny",
		}}
		got, err := c.Match(actual, expected)
		require.NoError(t, err)
		assert.True(t, got)
	})
	t.Run("parameter mismatch fails", func(t *testing.T) {
		expected := []*testcase.ToolCall{{
			Name:  "search",
			Input: map[string]any{"query": "news"},
		}}
		got, err := c.Match(actual, expected)
		assert.False(t, got)
		assert.Error(t, err)
	})
	t.Run("result mismatch fails", func(t *testing.T) {
		expected := []*testcase.ToolCall{{
			Name:   "search",
			Input:  map[string]any{"query": "weather"},
			Output: "rainy",
		}}
		got, err := c.Match(actual, expected)
		assert.False(t, got)
		assert.Error(t, err)
	})
	t.Run("nil expected output skips result comparison", func(t *testing.T) {
		expected := []*testcase.ToolCall{{
			Name:  "search",
			Input: map[string]any{"query": "weather"},
		}}
		got, err := c.Match(actual, expected)
		require.NoError(t, err)
		assert.True(t, got)
	})
}

func TestToolCallCriterionDefaultsAndOverrides(t *testing.T) {
	t.Run("empty strategy defaults to name and sequence", func(t *testing.T) {
		c := &ToolCallCriterion{}
		got, err := c.Match(execs("search"), calls("search"))
		require.NoError(t, err)
		assert.True(t, got)
		got, _ = c.Match(execs("search", "fetch"), calls("search"))
		assert.False(t, got)
	})
	t.Run("unknown strategy errors", func(t *testing.T) {
		c := &ToolCallCriterion{MatchStrategy: "fuzzy"}
		got, err := c.Match(nil, nil)
		assert.False(t, got)
		assert.ErrorContains(t, err, "invalid match strategy")
	})
	t.Run("compare hook overrides strategy", func(t *testing.T) {
		c := &ToolCallCriterion{
			MatchStrategy: ToolMatchStrategyExactMatch,
			Compare: func(actual []*testcase.ToolExecution, expected []*testcase.ToolCall) (bool, error) {
				return true, nil
			},
		}
		got, err := c.Match(execs("anything"), calls("other"))
		require.NoError(t, err)
		assert.True(t, got)
	})
	t.Run("nil criterion errors", func(t *testing.T) {
		var c *ToolCallCriterion
		got, err := c.Match(nil, nil)
		assert.False(t, got)
		assert.Error(t, err)
	})
}
