//
// Tencent is pleased to support the open source community by making trpc-agent-bench available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-bench is licensed under the Apache License Version 2.0.
//
//

// Package passatk estimates the probability that at least one of k sampled
// trials solves a task, at task, tool or parameter granularity.
package passatk

import (
	"errors"
	"fmt"
	"math"

	"trpc.group/trpc-go/trpc-agent-bench/criterion"
	"trpc.group/trpc-go/trpc-agent-bench/metric"
	"trpc.group/trpc-go/trpc-agent-bench/testcase"
)

// ErrInsufficientTrials marks an estimator call with k larger than the
// number of recorded trials.
var ErrInsufficientTrials = errors.New("insufficient trials")

// DefaultTaskThreshold marks a trial correct at task granularity when its
// judge composite, normalized to [0, 1], reaches this value.
const DefaultTaskThreshold = 0.7

// Estimator computes pass@k over trial outcome vectors of one granularity.
type Estimator struct {
	granularity testcase.Granularity
	k           int
	threshold   float64
	toolCalls   *criterion.ToolCallCriterion
	params      *criterion.ParamCriterion
}

// New creates an estimator after validating its configuration. Parameter
// granularity is binary only; constructing it with a threshold other than
// 1.0 fails.
func New(granularity testcase.Granularity, k int, opt ...Option) (*Estimator, error) {
	if !granularity.Valid() {
		return nil, fmt.Errorf("%w: unknown granularity %q",
			metric.ErrInvalidConfiguration, granularity)
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: k %d is not positive",
			metric.ErrInvalidConfiguration, k)
	}
	opts := newOptions(opt...)
	if granularity == testcase.GranularityParameter && opts.threshold != 1.0 {
		return nil, fmt.Errorf(
			"%w: parameter granularity is binary, threshold must be 1.0, got %v",
			metric.ErrInvalidConfiguration, opts.threshold)
	}
	return &Estimator{
		granularity: granularity,
		k:           k,
		threshold:   opts.threshold,
		toolCalls:   opts.toolCalls,
		params:      opts.params,
	}, nil
}

// Granularity returns the estimator's granularity.
func (e *Estimator) Granularity() testcase.Granularity {
	return e.granularity
}

// K returns the sample size k.
func (e *Estimator) K() int {
	return e.k
}

// Estimate computes pass@k = 1 - C(n-c, k) / C(n, k) over the outcome
// vector. Outcomes of a different granularity are rejected: mixing levels
// within one computation is always a caller bug.
func (e *Estimator) Estimate(outcomes *testcase.TrialOutcomes) (float64, error) {
	if outcomes == nil || outcomes.Trials() == 0 {
		return 0, fmt.Errorf("trial outcomes are empty")
	}
	if outcomes.Granularity != e.granularity {
		return 0, fmt.Errorf("granularity mismatch: estimator %q, outcomes %q",
			e.granularity, outcomes.Granularity)
	}
	n := outcomes.Trials()
	c := outcomes.Correct()
	if e.k > n {
		return 0, fmt.Errorf("%w: k=%d exceeds n=%d trials",
			ErrInsufficientTrials, e.k, n)
	}
	return estimate(n, c, e.k), nil
}

// estimate evaluates 1 - C(n-c, k) / C(n, k) in log space, so large trial
// counts cannot overflow the intermediate combination counts.
func estimate(n, c, k int) float64 {
	if c == 0 {
		return 0.0
	}
	if n-c < k {
		// Fewer than k failing trials exist, so any k-sample must contain
		// a success.
		return 1.0
	}
	// C(n-c, k) / C(n, k) = prod_{i=0}^{k-1} (n-c-i) / (n-i).
	logRatio := 0.0
	for i := 0; i < k; i++ {
		logRatio += math.Log(float64(n-c-i)) - math.Log(float64(n-i))
	}
	return 1.0 - math.Exp(logRatio)
}

// options aggregates configurable parts of Estimator.
type options struct {
	threshold float64
	toolCalls *criterion.ToolCallCriterion
	params    *criterion.ParamCriterion
}

// newOptions applies provided options with per-granularity defaults.
func newOptions(opt ...Option) *options {
	opts := &options{
		threshold: 1.0,
		toolCalls: &criterion.ToolCallCriterion{
			MatchStrategy: criterion.ToolMatchStrategyNameAndSequence,
		},
		params: &criterion.ParamCriterion{
			MatchStrategy: criterion.ParamMatchStrategyExact,
		},
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option is a function that configures Estimator.
type Option func(*options)

// WithThreshold sets the correctness threshold for task granularity.
func WithThreshold(threshold float64) Option {
	return func(o *options) {
		o.threshold = threshold
	}
}

// WithToolCalls sets the tool sequence criterion for tool granularity.
func WithToolCalls(toolCalls *criterion.ToolCallCriterion) Option {
	return func(o *options) {
		o.toolCalls = toolCalls
	}
}

// WithParams sets the parameter criterion for parameter granularity.
func WithParams(params *criterion.ParamCriterion) Option {
	return func(o *options) {
		o.params = params
	}
}
