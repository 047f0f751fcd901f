//
// Tencent is pleased to support the open source community by making trpc-agent-bench available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-bench is licensed under the Apache License Version 2.0.
//
//

// Package local provides a local implementation of service.Service.
package local

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"trpc.group/trpc-go/trpc-agent-bench/evalresult"
	"trpc.group/trpc-go/trpc-agent-bench/evaluator/judge"
	"trpc.group/trpc-go/trpc-agent-bench/evaluator/toolmatch"
	"trpc.group/trpc-go/trpc-agent-bench/log"
	"trpc.group/trpc-go/trpc-agent-bench/metric"
	"trpc.group/trpc-go/trpc-agent-bench/passatk"
	"trpc.group/trpc-go/trpc-agent-bench/scoring"
	"trpc.group/trpc-go/trpc-agent-bench/service"
	"trpc.group/trpc-go/trpc-agent-bench/testcase"
)

// local is a local implementation of service.Service.
type local struct {
	matcher       *toolmatch.Evaluator
	judge         *judge.Evaluator
	resultManager evalresult.Manager
	caseEvalPool  *ants.PoolWithFunc
}

// New returns a new local evaluation service around the judge evaluator.
// If no service.Option is provided, the service will use the default options.
func New(judgeEvaluator *judge.Evaluator, opt ...service.Option) (service.Service, error) {
	if judgeEvaluator == nil {
		return nil, errors.New("judge evaluator is nil")
	}
	opts := service.NewOptions(opt...)
	if opts.ResultManager == nil {
		return nil, errors.New("result manager is nil")
	}
	pool, err := createCaseEvalPool(opts.CaseParallelism)
	if err != nil {
		return nil, err
	}
	return &local{
		matcher:       toolmatch.New(),
		judge:         judgeEvaluator,
		resultManager: opts.ResultManager,
		caseEvalPool:  pool,
	}, nil
}

// Close closes the eval service and releases owned resources.
func (s *local) Close() error {
	if s.caseEvalPool != nil {
		s.caseEvalPool.Release()
	}
	return nil
}

// Evaluate scores every case concurrently and persists the run result.
// Fault isolation is per case: a judge or parse failure on one case
// becomes that case's error row while its siblings continue.
func (s *local) Evaluate(ctx context.Context, req *service.EvaluateRequest) (*evalresult.RunResult, error) {
	if req == nil {
		return nil, errors.New("evaluate request is nil")
	}
	if len(req.Cases) == 0 {
		return nil, errors.New("no cases to evaluate")
	}
	if req.EvalMetric == nil {
		return nil, fmt.Errorf("%w: eval metric is nil", metric.ErrInvalidConfiguration)
	}
	aggregator, err := scoring.NewAggregator(req.EvalMetric)
	if err != nil {
		return nil, err
	}
	results := make([]*scoring.CaseScore, len(req.Cases))
	var wg sync.WaitGroup
	for idx, tc := range req.Cases {
		wg.Add(1)
		param := caseEvalParamPool.Get().(*caseEvalParam)
		param.idx = idx
		param.ctx = ctx
		param.tc = tc
		param.svc = s
		param.aggregator = aggregator
		param.results = results
		param.wg = &wg
		if err := s.caseEvalPool.Invoke(param); err != nil {
			wg.Done()
			param.reset()
			caseEvalParamPool.Put(param)
			caseID, taskID := caseIdentity(tc)
			results[idx] = scoring.NewErrorScore(caseID, taskID,
				fmt.Errorf("submit case for evaluation: %w", err))
		}
	}
	wg.Wait()
	s.attachPassAtK(req, results)
	runResult := &evalresult.RunResult{
		SuiteID:           req.SuiteID,
		CaseScores:        results,
		CreationTimestamp: time.Now(),
	}
	runResult.Summary = evalresult.Summarize(runResult)
	runResultID, err := s.resultManager.Save(ctx, runResult)
	if err != nil {
		return nil, fmt.Errorf("save run result: %w", err)
	}
	runResult.RunResultID = runResultID
	return runResult, nil
}

// evaluateCase scores one case. Any failure, panics included, is captured
// as the case's error row, never propagated to siblings.
func (s *local) evaluateCase(ctx context.Context, tc *testcase.TestCase,
	aggregator *scoring.Aggregator) (score *scoring.CaseScore) {
	caseID, taskID := caseIdentity(tc)
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("case %s evaluation panicked: %v", caseID, r)
			score = scoring.NewErrorScore(caseID, taskID,
				fmt.Errorf("case evaluation panicked: %v", r))
		}
	}()
	if tc == nil {
		return scoring.NewErrorScore(caseID, taskID, errors.New("test case is nil"))
	}
	if err := ctx.Err(); err != nil {
		return scoring.NewErrorScore(caseID, taskID, err)
	}
	match, err := s.matcher.Measure(ctx, tc)
	if err != nil {
		return scoring.NewErrorScore(caseID, taskID, fmt.Errorf("tool match: %w", err))
	}
	verdict, err := s.judge.Judge(ctx, tc)
	if err != nil {
		return scoring.NewErrorScore(caseID, taskID, fmt.Errorf("judge: %w", err))
	}
	score, err = aggregator.Aggregate(caseID, taskID, verdict, match)
	if err != nil {
		return scoring.NewErrorScore(caseID, taskID, fmt.Errorf("aggregate: %w", err))
	}
	return score
}

// attachPassAtK computes each configured estimator over every task group
// of repeated trials and attaches the values to the group's score rows.
func (s *local) attachPassAtK(req *service.EvaluateRequest, results []*scoring.CaseScore) {
	if len(req.Estimators) == 0 {
		return
	}
	groups := groupByTask(req.Cases, results)
	for _, group := range groups {
		for _, estimator := range req.Estimators {
			value, err := s.estimateGroup(estimator, group)
			if err != nil {
				log.Warnf("pass@%d at %s granularity for task %s: %v",
					estimator.K(), estimator.Granularity(), group.taskID, err)
				continue
			}
			field := passAtKField(estimator.Granularity())
			for _, score := range group.scores {
				if score.PassAtK == nil {
					score.PassAtK = make(map[string]float64, len(req.Estimators))
				}
				score.PassAtK[field] = value
			}
		}
	}
}

func (s *local) estimateGroup(estimator *passatk.Estimator, group *taskGroup) (float64, error) {
	var outcomes *testcase.TrialOutcomes
	var err error
	switch estimator.Granularity() {
	case testcase.GranularityTask:
		outcomes, err = estimator.TaskOutcomes(group.judgeScores())
	case testcase.GranularityTool:
		outcomes, err = estimator.ToolOutcomes(group.cases)
	case testcase.GranularityParameter:
		outcomes, err = estimator.ParameterOutcomes(group.cases)
	default:
		return 0, fmt.Errorf("unknown granularity %q", estimator.Granularity())
	}
	if err != nil {
		return 0, err
	}
	return estimator.Estimate(outcomes)
}

// taskGroup holds the trials of one logical task, in input order.
type taskGroup struct {
	taskID string
	cases  []*testcase.TestCase
	scores []*scoring.CaseScore
}

// judgeScores returns per-trial normalized judge composites. Errored trials
// count as 0: a trial that could not be judged is not a success.
func (g *taskGroup) judgeScores() []float64 {
	scores := make([]float64, len(g.scores))
	for i, score := range g.scores {
		if score == nil || score.Judge == nil {
			continue
		}
		scores[i] = score.Judge.Composite / 10.0
	}
	return scores
}

// groupByTask buckets cases by TaskID. Cases without a TaskID are single
// trials and get no estimator attachment.
func groupByTask(cases []*testcase.TestCase, results []*scoring.CaseScore) []*taskGroup {
	index := make(map[string]*taskGroup)
	var groups []*taskGroup
	for i, tc := range cases {
		if tc == nil || tc.TaskID == "" {
			continue
		}
		group, ok := index[tc.TaskID]
		if !ok {
			group = &taskGroup{taskID: tc.TaskID}
			index[tc.TaskID] = group
			groups = append(groups, group)
		}
		group.cases = append(group.cases, tc)
		group.scores = append(group.scores, results[i])
	}
	return groups
}

func passAtKField(granularity testcase.Granularity) string {
	switch granularity {
	case testcase.GranularityTool:
		return metric.FieldToolPassAtK
	case testcase.GranularityParameter:
		return metric.FieldParameterPassAtK
	default:
		return metric.FieldTaskPassAtK
	}
}

func caseIdentity(tc *testcase.TestCase) (string, string) {
	if tc == nil {
		return "", ""
	}
	return tc.ID, tc.TaskID
}
