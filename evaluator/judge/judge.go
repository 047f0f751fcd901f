//
// Tencent is pleased to support the open source community by making trpc-agent-bench available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-bench is licensed under the Apache License Version 2.0.
//
//

// Package judge provides LLM-as-judge rubric evaluation of agent runs.
package judge

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"

	"trpc.group/trpc-go/trpc-agent-bench/evaluator"
	"trpc.group/trpc-go/trpc-agent-bench/judgemodel"
	"trpc.group/trpc-go/trpc-agent-bench/log"
	"trpc.group/trpc-go/trpc-agent-bench/metric"
	"trpc.group/trpc-go/trpc-agent-bench/testcase"
)

// DefaultMaxConcurrency caps simultaneous outstanding judge requests.
const DefaultMaxConcurrency = 8

// ResponseCache stores raw judge responses keyed by request fingerprint.
// Only responses that parsed successfully are stored.
type ResponseCache interface {
	// Get returns the cached response for the key, reporting presence.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores the response under the key.
	Set(ctx context.Context, key, value string) error
}

// Evaluator scores cases by sending one rubric request per case to the
// judge model. Concurrent calls are admitted through a counting permit
// pool so fan-out against the external API stays bounded.
type Evaluator struct {
	model judgemodel.Model
	sem   *semaphore.Weighted
	cache ResponseCache
}

// New creates a judge evaluator around the model.
func New(model judgemodel.Model, opt ...Option) (*Evaluator, error) {
	if model == nil {
		return nil, fmt.Errorf("judge model is nil")
	}
	opts := newOptions(opt...)
	if opts.maxConcurrency <= 0 {
		return nil, fmt.Errorf("%w: max concurrency %d is not positive",
			metric.ErrInvalidConfiguration, opts.maxConcurrency)
	}
	return &Evaluator{
		model: model,
		sem:   semaphore.NewWeighted(int64(opts.maxConcurrency)),
		cache: opts.cache,
	}, nil
}

// Name returns the name of this evaluator.
func (e *Evaluator) Name() string {
	return "llm_judge_score"
}

// Description returns a description of what this evaluator does.
func (e *Evaluator) Description() string {
	return "Scores six rubric dimensions of agent task execution with an LLM judge"
}

// Evaluate judges the case and normalizes the composite onto [0, 1].
func (e *Evaluator) Evaluate(ctx context.Context, tc *testcase.TestCase,
	evalMetric *metric.EvalMetric) (*evaluator.EvaluateResult, error) {
	verdict, err := e.Judge(ctx, tc)
	if err != nil {
		return nil, err
	}
	score := verdict.Composite / 10.0
	return &evaluator.EvaluateResult{
		Score:  score,
		Status: evaluator.StatusForScore(score, evalMetric),
		Reason: verdict.Rationale,
		Rubric: verdict.Rubric(),
	}, nil
}

// Judge sends the rubric request for one case and parses the verdict.
// The call suspends while holding a permit; a parse or transport failure
// surfaces as this case's error. No retry is performed here.
func (e *Evaluator) Judge(ctx context.Context, tc *testcase.TestCase) (*Verdict, error) {
	if tc == nil {
		return nil, fmt.Errorf("test case is nil")
	}
	key, err := e.cacheKey(tc)
	if err != nil {
		return nil, err
	}
	if cached, ok := e.lookupCache(ctx, key); ok {
		if verdict, err := Parse(cached); err == nil {
			return verdict, nil
		}
		// A cached entry that no longer parses is ignored and re-judged.
		log.Warnf("judge cache entry for %s is unparsable, re-judging", tc.ID)
	}
	raw, err := e.complete(ctx, BuildPrompt(tc))
	if err != nil {
		return nil, err
	}
	verdict, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	e.storeCache(ctx, key, raw)
	return verdict, nil
}

// complete runs one model call under the admission permit.
func (e *Evaluator) complete(ctx context.Context, prompt string) (string, error) {
	if err := e.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("acquire judge permit: %w", err)
	}
	defer e.sem.Release(1)
	return e.model.Complete(ctx, prompt)
}

func (e *Evaluator) cacheKey(tc *testcase.TestCase) (string, error) {
	if e.cache == nil {
		return "", nil
	}
	key, err := testcase.Fingerprint(tc, e.model.Name())
	if err != nil {
		return "", fmt.Errorf("fingerprint case %s: %w", tc.ID, err)
	}
	return key, nil
}

func (e *Evaluator) lookupCache(ctx context.Context, key string) (string, bool) {
	if e.cache == nil || key == "" {
		return "", false
	}
	value, ok, err := e.cache.Get(ctx, key)
	if err != nil {
		log.Warnf("judge cache get: %v", err)
		return "", false
	}
	return value, ok
}

func (e *Evaluator) storeCache(ctx context.Context, key, value string) {
	if e.cache == nil || key == "" {
		return
	}
	if err := e.cache.Set(ctx, key, value); err != nil {
		log.Warnf("judge cache set: %v", err)
	}
}

// options aggregates configurable parts of Evaluator.
type options struct {
	maxConcurrency int
	cache          ResponseCache
}

// newOptions applies provided options with defaults.
func newOptions(opt ...Option) *options {
	opts := &options{
		maxConcurrency: DefaultMaxConcurrency,
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option is a function that configures Evaluator.
type Option func(*options)

// WithMaxConcurrency bounds simultaneous outstanding judge requests.
func WithMaxConcurrency(maxConcurrency int) Option {
	return func(o *options) {
		o.maxConcurrency = maxConcurrency
	}
}

// WithCache enables response caching keyed by request fingerprint.
func WithCache(cache ResponseCache) Option {
	return func(o *options) {
		o.cache = cache
	}
}
