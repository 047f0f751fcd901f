//
// Tencent is pleased to support the open source community by making trpc-agent-bench available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-bench is licensed under the Apache License Version 2.0.
//
//

// Package service provides the evaluation driver for scoring case suites.
package service

import (
	"context"

	"trpc.group/trpc-go/trpc-agent-bench/evalresult"
	"trpc.group/trpc-go/trpc-agent-bench/metric"
	"trpc.group/trpc-go/trpc-agent-bench/passatk"
	"trpc.group/trpc-go/trpc-agent-bench/testcase"
)

// Service scores suites of test cases and persists the run result.
type Service interface {
	// Evaluate scores every case in the request and returns the persisted
	// run result. A run always produces one score record per input case;
	// a case that errored still appears with its error field populated.
	Evaluate(ctx context.Context, req *EvaluateRequest) (*evalresult.RunResult, error)
	// Close closes the service and releases owned resources.
	Close() error
}

// EvaluateRequest describes one benchmark run.
type EvaluateRequest struct {
	// SuiteID identifies the case suite being run.
	SuiteID string `json:"suiteId"`
	// Cases are the test cases to score.
	Cases []*testcase.TestCase `json:"cases"`
	// EvalMetric configures thresholds and criteria for the run.
	EvalMetric *metric.EvalMetric `json:"evalMetric"`
	// Estimators are applied per task group of repeated trials. Cases
	// sharing a TaskID form one group.
	Estimators []*passatk.Estimator `json:"-"`
}
