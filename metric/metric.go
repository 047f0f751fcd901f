//
// Tencent is pleased to support the open source community by making trpc-agent-bench available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-bench is licensed under the Apache License Version 2.0.
//
//

// Package metric provides evaluation metric configuration.
package metric

import (
	"errors"
	"fmt"

	"trpc.group/trpc-go/trpc-agent-bench/criterion"
)

// ErrInvalidConfiguration marks a metric misconfiguration detected at
// construction time, before any I/O happens.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// DefaultThreshold is the success threshold used when none is configured.
const DefaultThreshold = 0.7

// EvalMetric represents a metric used to evaluate a particular aspect of a case.
type EvalMetric struct {
	// MetricName identifies the metric.
	MetricName string `json:"metricName"`
	// Threshold is the minimum final score counted as success.
	Threshold float64 `json:"threshold"`
	// StrictMode forces the threshold to 1.0 regardless of the configured value.
	StrictMode bool `json:"strictMode,omitempty"`
	// Criterion contains the matching rules for deterministic comparison.
	Criterion *criterion.Criterion `json:"criterion,omitempty"`
	// JudgeModel contains options for LLM-as-judge evaluation.
	JudgeModel *JudgeModelOptions `json:"judgeModel,omitempty"`
}

// JudgeModelOptions contains options for LLM-as-judge evaluation.
type JudgeModelOptions struct {
	// ModelName is the judge model to use.
	ModelName string `json:"modelName,omitempty"`
	// Temperature for the judge model.
	Temperature *float64 `json:"temperature,omitempty"`
	// MaxTokens for the judge model response.
	MaxTokens *int `json:"maxTokens,omitempty"`
}

// New creates an EvalMetric after validating its configuration.
// Strict mode pins the effective threshold to 1.0 at construction.
func New(name string, opt ...Option) (*EvalMetric, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: metric name is empty", ErrInvalidConfiguration)
	}
	opts := newOptions(opt...)
	threshold := opts.threshold
	if opts.strictMode {
		threshold = 1.0
	}
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("%w: threshold %v outside [0, 1]", ErrInvalidConfiguration, threshold)
	}
	return &EvalMetric{
		MetricName: name,
		Threshold:  threshold,
		StrictMode: opts.strictMode,
		Criterion:  opts.criterion,
		JudgeModel: opts.judgeModel,
	}, nil
}

// options aggregates configurable parts of EvalMetric.
type options struct {
	threshold  float64
	strictMode bool
	criterion  *criterion.Criterion
	judgeModel *JudgeModelOptions
}

// newOptions applies provided options with defaults.
func newOptions(opt ...Option) *options {
	opts := &options{
		threshold: DefaultThreshold,
		criterion: criterion.New(),
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option is a function that configures EvalMetric.
type Option func(*options)

// WithThreshold sets the success threshold.
func WithThreshold(threshold float64) Option {
	return func(o *options) {
		o.threshold = threshold
	}
}

// WithStrictMode toggles strict mode.
func WithStrictMode(strict bool) Option {
	return func(o *options) {
		o.strictMode = strict
	}
}

// WithCriterion sets the matching criterion.
func WithCriterion(c *criterion.Criterion) Option {
	return func(o *options) {
		o.criterion = c
	}
}

// WithJudgeModel sets the judge model options.
func WithJudgeModel(j *JudgeModelOptions) Option {
	return func(o *options) {
		o.judgeModel = j
	}
}
