package bench

import (
	"trpc.group/trpc-go/trpc-agent-bench/evalresult"
	"trpc.group/trpc-go/trpc-agent-bench/evaluator/judge"
	"trpc.group/trpc-go/trpc-agent-bench/evaluator/registry"
	"trpc.group/trpc-go/trpc-agent-bench/judgemodel"
	"trpc.group/trpc-go/trpc-agent-bench/metric"
	"trpc.group/trpc-go/trpc-agent-bench/passatk"
	"trpc.group/trpc-go/trpc-agent-bench/service"
)

type options struct {
	judgeModel       judgemodel.Model
	judgeConcurrency int
	responseCache    judge.ResponseCache
	evalService      service.Service
	resultManager    evalresult.Manager
	caseParallelism  int
	evalMetric       *metric.EvalMetric
	estimators       []*passatk.Estimator
	registry         registry.Registry
}

func newOptions(opt ...Option) *options {
	opts := &options{
		judgeConcurrency: judge.DefaultMaxConcurrency,
		caseParallelism:  service.DefaultCaseParallelism,
		registry:         registry.New(),
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

type Option func(*options)

// WithJudgeModel sets the model queried for rubric verdicts.
func WithJudgeModel(m judgemodel.Model) Option {
	return func(o *options) {
		o.judgeModel = m
	}
}

// WithJudgeConcurrency bounds simultaneous outstanding judge requests.
func WithJudgeConcurrency(concurrency int) Option {
	return func(o *options) {
		o.judgeConcurrency = concurrency
	}
}

// WithResponseCache caches raw judge responses across runs.
func WithResponseCache(c judge.ResponseCache) Option {
	return func(o *options) {
		o.responseCache = c
	}
}

// WithEvaluationService replaces the default local evaluation service.
func WithEvaluationService(s service.Service) Option {
	return func(o *options) {
		o.evalService = s
	}
}

// WithResultManager sets where run results are persisted.
func WithResultManager(m evalresult.Manager) Option {
	return func(o *options) {
		o.resultManager = m
	}
}

// WithCaseParallelism sets the number of cases scored concurrently.
func WithCaseParallelism(parallelism int) Option {
	return func(o *options) {
		o.caseParallelism = parallelism
	}
}

// WithEvalMetric sets the metric applied to every run.
func WithEvalMetric(m *metric.EvalMetric) Option {
	return func(o *options) {
		o.evalMetric = m
	}
}

// WithEstimators adds pass@k estimators applied per task group.
func WithEstimators(estimators ...*passatk.Estimator) Option {
	return func(o *options) {
		o.estimators = append(o.estimators, estimators...)
	}
}

// WithEvaluatorRegistry replaces the registry default evaluators are
// registered into.
func WithEvaluatorRegistry(r registry.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}
