//
// Tencent is pleased to support the open source community by making trpc-agent-bench available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-bench is licensed under the Apache License Version 2.0.
//
//

// Package criterion defines comparison criteria for tool calls and parameters.
//
// Every Match function is total over its inputs: malformed or missing input
// yields a non-match with a descriptive error, never a panic.
package criterion

// Criterion bundles the comparison rules used when scoring one case.
type Criterion struct {
	// ToolCalls compares called tool sequences against expected calls.
	ToolCalls *ToolCallCriterion `json:"toolCalls,omitempty"`
	// Params compares parameter mappings.
	Params *ParamCriterion `json:"params,omitempty"`
}

// New creates a Criterion with the provided options.
func New(opt ...Option) *Criterion {
	opts := newOptions(opt...)
	return &Criterion{
		ToolCalls: opts.toolCalls,
		Params:    opts.params,
	}
}

// options aggregates configurable parts of Criterion.
type options struct {
	// toolCalls sets the tool call comparison criterion.
	toolCalls *ToolCallCriterion
	// params sets the parameter comparison criterion.
	params *ParamCriterion
}

// newOptions creates options with defaults applied.
func newOptions(opt ...Option) *options {
	opts := &options{
		toolCalls: &ToolCallCriterion{MatchStrategy: ToolMatchStrategyNameAndSequence},
		params:    &ParamCriterion{MatchStrategy: ParamMatchStrategyExact},
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option is a function that configures Criterion.
type Option func(*options)

// WithToolCalls sets the tool call criterion.
func WithToolCalls(toolCalls *ToolCallCriterion) Option {
	return func(o *options) {
		o.toolCalls = toolCalls
	}
}

// WithParams sets the parameter criterion.
func WithParams(params *ParamCriterion) Option {
	return func(o *options) {
		o.params = params
	}
}
