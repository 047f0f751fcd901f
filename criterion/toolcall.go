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
	"fmt"
	"reflect"

	"github.com/hashicorp/go-multierror"
	"trpc.group/trpc-go/trpc-agent-bench/testcase"
)

// ToolMatchStrategy enumerates supported tool call comparison strategies.
type ToolMatchStrategy string

const (
	// ToolMatchStrategyNameOnly requires every expected tool name to appear
	// among the called names, ignoring order and call counts.
	ToolMatchStrategyNameOnly ToolMatchStrategy = "name_only"
	// ToolMatchStrategyNameAndSequence requires the called names to equal the
	// expected names in order, with matching lengths.
	ToolMatchStrategyNameAndSequence ToolMatchStrategy = "name_and_sequence"
	// ToolMatchStrategyExactMatch requires ordered equality of
	// (name, parameters, result) triples.
	ToolMatchStrategyExactMatch ToolMatchStrategy = "exact_match"
)

// ToolCallCriterion governs how a called tool sequence is compared against
// the expected tool calls.
type ToolCallCriterion struct {
	// MatchStrategy selects the comparison rule.
	MatchStrategy ToolMatchStrategy `json:"matchStrategy,omitempty"`
	// Params compares parameters for the exact_match strategy.
	// Defaults to exact parameter matching when unset.
	Params *ParamCriterion `json:"params,omitempty"`
	// Compare overrides built-in strategies when provided.
	Compare func(actual []*testcase.ToolExecution, expected []*testcase.ToolCall) (bool, error) `json:"-"`
}

// Match compares actual executions against expected calls using the
// configured strategy.
func (c *ToolCallCriterion) Match(actual []*testcase.ToolExecution, expected []*testcase.ToolCall) (bool, error) {
	if c == nil {
		return false, fmt.Errorf("tool call criterion is nil")
	}
	if c.Compare != nil {
		return c.Compare(actual, expected)
	}
	switch c.MatchStrategy {
	case ToolMatchStrategyNameOnly:
		return c.matchNameOnly(actual, expected)
	// Default to name and sequence.
	case ToolMatchStrategyNameAndSequence, "":
		return c.matchNameAndSequence(actual, expected)
	case ToolMatchStrategyExactMatch:
		return c.matchExact(actual, expected)
	default:
		return false, fmt.Errorf("invalid match strategy %s", c.MatchStrategy)
	}
}

// matchNameOnly checks full containment of the expected name set within the
// actual name set. Overlap alone is not enough.
func (c *ToolCallCriterion) matchNameOnly(actual []*testcase.ToolExecution, expected []*testcase.ToolCall) (bool, error) {
	called := make(map[string]bool, len(actual))
	for _, exec := range actual {
		if exec == nil {
			continue
		}
		called[exec.Tool] = true
	}
	var err error
	for _, call := range expected {
		if call == nil {
			continue
		}
		if !called[call.Name] {
			err = multierror.Append(err, fmt.Errorf("expected tool %s was not called", call.Name))
		}
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// matchNameAndSequence requires ordered name equality with matching lengths.
// A matching prefix with differing lengths fails closed.
func (c *ToolCallCriterion) matchNameAndSequence(actual []*testcase.ToolExecution, expected []*testcase.ToolCall) (bool, error) {
	if len(actual) != len(expected) {
		return false, fmt.Errorf("number of tool calls mismatch: actual(%d) != expected(%d)",
			len(actual), len(expected))
	}
	for i := range expected {
		if actual[i] == nil || expected[i] == nil {
			return false, fmt.Errorf("tool call at index %d is nil", i)
		}
		if actual[i].Tool != expected[i].Name {
			return false, fmt.Errorf("tool name mismatch at index %d: actual %s != expected %s",
				i, actual[i].Tool, expected[i].Name)
		}
	}
	return true, nil
}

// matchExact requires ordered equality of name, parameters and result.
func (c *ToolCallCriterion) matchExact(actual []*testcase.ToolExecution, expected []*testcase.ToolCall) (bool, error) {
	if len(actual) != len(expected) {
		return false, fmt.Errorf("number of tool calls mismatch: actual(%d) != expected(%d)",
			len(actual), len(expected))
	}
	params := c.Params
	if params == nil {
		params = &ParamCriterion{MatchStrategy: ParamMatchStrategyExact}
	}
	for i := range expected {
		if actual[i] == nil || expected[i] == nil {
			return false, fmt.Errorf("tool call at index %d is nil", i)
		}
		if actual[i].Tool != expected[i].Name {
			return false, fmt.Errorf("tool name mismatch at index %d: actual %s != expected %s",
				i, actual[i].Tool, expected[i].Name)
		}
		ok, err := params.Match(actual[i].Parameters, expected[i].Input)
		if err != nil {
			return false, fmt.Errorf("tool %s parameters mismatch at index %d: %w",
				expected[i].Name, i, err)
		}
		if !ok {
			return false, fmt.Errorf("tool %s parameters mismatch at index %d", expected[i].Name, i)
		}
		if expected[i].Output != nil && !reflect.DeepEqual(actual[i].Result, expected[i].Output) {
			return false, fmt.Errorf("tool %s result mismatch at index %d: actual %v != expected %v",
				expected[i].Name, i, actual[i].Result, expected[i].Output)
		}
	}
	return true, nil
}
