//
// Tencent is pleased to support the open source community by making trpc-agent-bench available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-bench is licensed under the Apache License Version 2.0.
//
//

// Package bench orchestrates transcript benchmark runs: it wires the judge
// model, the deterministic matcher and the scoring service together and runs
// case suites end to end.
package bench

import (
	"context"
	"errors"
	"fmt"

	"trpc.group/trpc-go/trpc-agent-bench/evalresult"
	"trpc.group/trpc-go/trpc-agent-bench/evaluator/judge"
	"trpc.group/trpc-go/trpc-agent-bench/evaluator/registry"
	"trpc.group/trpc-go/trpc-agent-bench/evaluator/toolmatch"
	"trpc.group/trpc-go/trpc-agent-bench/metric"
	"trpc.group/trpc-go/trpc-agent-bench/passatk"
	"trpc.group/trpc-go/trpc-agent-bench/service"
	"trpc.group/trpc-go/trpc-agent-bench/service/local"
	"trpc.group/trpc-go/trpc-agent-bench/testcase"
)

// Benchmark runs configured suites of transcript test cases.
type Benchmark interface {
	// Run scores the suite's cases and returns the persisted run result.
	Run(ctx context.Context, suiteID string, cases []*testcase.TestCase) (*evalresult.RunResult, error)
	// Evaluators returns the registry of named evaluators wired into this
	// benchmark, for callers that invoke evaluators individually.
	Evaluators() registry.Registry
	// Close closes the benchmark and releases owned resources.
	Close() error
}

// New creates a Benchmark with the supplied options. A judge model must be
// configured, either directly or through a prebuilt evaluation service.
func New(opt ...Option) (Benchmark, error) {
	opts := newOptions(opt...)
	b := &benchmark{
		evalMetric:  opts.evalMetric,
		estimators:  opts.estimators,
		evalService: opts.evalService,
	}
	if b.evalMetric == nil {
		evalMetric, err := metric.New(metric.FieldFinalScore)
		if err != nil {
			return nil, fmt.Errorf("create default metric: %w", err)
		}
		b.evalMetric = evalMetric
	}
	var judgeEvaluator *judge.Evaluator
	if opts.judgeModel != nil {
		judgeOpts := []judge.Option{judge.WithMaxConcurrency(opts.judgeConcurrency)}
		if opts.responseCache != nil {
			judgeOpts = append(judgeOpts, judge.WithCache(opts.responseCache))
		}
		var err error
		judgeEvaluator, err = judge.New(opts.judgeModel, judgeOpts...)
		if err != nil {
			return nil, fmt.Errorf("create judge evaluator: %w", err)
		}
	}
	if b.evalService == nil {
		if judgeEvaluator == nil {
			return nil, errors.New("judge model is nil")
		}
		serviceOpts := []service.Option{
			service.WithCaseParallelism(opts.caseParallelism),
		}
		if opts.resultManager != nil {
			serviceOpts = append(serviceOpts, service.WithResultManager(opts.resultManager))
		}
		evalService, err := local.New(judgeEvaluator, serviceOpts...)
		if err != nil {
			return nil, fmt.Errorf("create eval service: %w", err)
		}
		b.evalService = evalService
	}
	if err := registerDefaultEvaluators(opts.registry, judgeEvaluator); err != nil {
		return nil, fmt.Errorf("register evaluators: %w", err)
	}
	b.registry = opts.registry
	return b, nil
}

// benchmark is the default implementation of Benchmark.
type benchmark struct {
	evalMetric  *metric.EvalMetric
	estimators  []*passatk.Estimator
	evalService service.Service
	registry    registry.Registry
}

// Run scores the suite's cases against the configured metric and estimators.
func (b *benchmark) Run(ctx context.Context, suiteID string,
	cases []*testcase.TestCase) (*evalresult.RunResult, error) {
	if suiteID == "" {
		return nil, errors.New("suite id is not configured")
	}
	req := &service.EvaluateRequest{
		SuiteID:    suiteID,
		Cases:      cases,
		EvalMetric: b.evalMetric,
		Estimators: b.estimators,
	}
	runResult, err := b.evalService.Evaluate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("evaluate suite %s: %w", suiteID, err)
	}
	return runResult, nil
}

// Evaluators returns the registry of named evaluators.
func (b *benchmark) Evaluators() registry.Registry {
	return b.registry
}

// Close closes the benchmark and releases owned resources.
func (b *benchmark) Close() error {
	var overallErr error
	if b.evalService != nil {
		if err := b.evalService.Close(); err != nil {
			overallErr = errors.Join(overallErr, fmt.Errorf("close eval service: %w", err))
		}
	}
	return overallErr
}

// registerDefaultEvaluators makes the matcher and the judge discoverable by
// name for callers that inspect or invoke evaluators individually.
func registerDefaultEvaluators(r registry.Registry, judgeEvaluator *judge.Evaluator) error {
	if r == nil {
		return nil
	}
	matcher := toolmatch.New()
	if err := r.Register(matcher.Name(), matcher); err != nil {
		return err
	}
	if judgeEvaluator == nil {
		return nil
	}
	return r.Register(judgeEvaluator.Name(), judgeEvaluator)
}
