//
// Tencent is pleased to support the open source community by making trpc-agent-bench available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-bench is licensed under the Apache License Version 2.0.
//
//

// Package scoring fuses the judge verdict and the matcher rates into the
// final per-case score record.
package scoring

import (
	"fmt"
	"strings"

	"trpc.group/trpc-go/trpc-agent-bench/evaluator/judge"
	"trpc.group/trpc-go/trpc-agent-bench/evaluator/toolmatch"
	"trpc.group/trpc-go/trpc-agent-bench/metric"
	"trpc.group/trpc-go/trpc-agent-bench/status"
)

// Blend weights for the two evaluator families.
const (
	JudgeWeight   = 0.6
	MatcherWeight = 0.4
)

// CaseScore is the final score record for one case. A run produces exactly
// one CaseScore per input case, errored cases included.
type CaseScore struct {
	// CaseID identifies the scored case.
	CaseID string `json:"caseId"`
	// TaskID groups repeated trials of the same task.
	TaskID string `json:"taskId,omitempty"`
	// FinalScore is the blended score in [0, 1], or the undefined sentinel
	// when the case errored.
	FinalScore float64 `json:"finalScore"`
	// Threshold is the effective success threshold applied.
	Threshold float64 `json:"threshold"`
	// Success reports FinalScore >= Threshold.
	Success bool `json:"success"`
	// Status classifies the outcome.
	Status status.EvalStatus `json:"status"`
	// Judge is the parsed judge verdict, nil when judging failed.
	Judge *judge.Verdict `json:"judge,omitempty"`
	// Match carries the matcher rates, nil when the case errored before
	// matching.
	Match *toolmatch.Result `json:"match,omitempty"`
	// PassAtK holds estimator values keyed by their stable field names,
	// attached by the driver for multi-trial runs.
	PassAtK map[string]float64 `json:"passAtK,omitempty"`
	// Flags records degraded-input conditions scoring proceeded under.
	Flags []string `json:"flags,omitempty"`
	// Rationale is the judge rationale plus any degraded-state notes.
	Rationale string `json:"rationale,omitempty"`
	// Error describes why scoring failed. Empty for scored cases.
	Error string `json:"error,omitempty"`
}

// Aggregator blends judge and matcher composites under one metric
// configuration.
type Aggregator struct {
	evalMetric *metric.EvalMetric
}

// NewAggregator creates an Aggregator. The metric's threshold has already
// been pinned to 1.0 by metric.New when strict mode is set.
func NewAggregator(evalMetric *metric.EvalMetric) (*Aggregator, error) {
	if evalMetric == nil {
		return nil, fmt.Errorf("%w: eval metric is nil", metric.ErrInvalidConfiguration)
	}
	return &Aggregator{evalMetric: evalMetric}, nil
}

// Aggregate computes the final score for one case:
// JudgeWeight * (judge composite / 10) + MatcherWeight * matcher composite,
// clamped to [0, 1].
func (a *Aggregator) Aggregate(caseID, taskID string, verdict *judge.Verdict,
	match *toolmatch.Result) (*CaseScore, error) {
	if verdict == nil {
		return nil, fmt.Errorf("judge verdict is nil")
	}
	if match == nil {
		return nil, fmt.Errorf("matcher result is nil")
	}
	final := JudgeWeight*(verdict.Composite/10.0) + MatcherWeight*match.Composite
	final = clamp01(final)
	success := final >= a.evalMetric.Threshold
	evalStatus := status.EvalStatusFailed
	if success {
		evalStatus = status.EvalStatusPassed
	}
	return &CaseScore{
		CaseID:     caseID,
		TaskID:     taskID,
		FinalScore: final,
		Threshold:  a.evalMetric.Threshold,
		Success:    success,
		Status:     evalStatus,
		Judge:      verdict,
		Match:      match,
		Flags:      match.Flags,
		Rationale:  rationale(verdict, match),
	}, nil
}

// NewErrorScore builds the output row for a case whose scoring failed.
// Numeric fields carry the undefined sentinel so downstream reporting
// never drops the row.
func NewErrorScore(caseID, taskID string, err error) *CaseScore {
	desc := "unknown error"
	if err != nil {
		desc = err.Error()
	}
	return &CaseScore{
		CaseID:     caseID,
		TaskID:     taskID,
		FinalScore: metric.ScoreUndefined,
		Threshold:  metric.ScoreUndefined,
		Status:     status.EvalStatusError,
		Error:      desc,
	}
}

// Flat exports the record as a flat mapping with stable field names. Every
// numeric field is always present; sub-metrics that could not be computed
// carry the undefined sentinel.
func (s *CaseScore) Flat() map[string]any {
	flat := map[string]any{
		metric.FieldFinalScore: s.FinalScore,
		metric.FieldSuccess:    s.Success,
	}
	if s.Judge != nil {
		for name, value := range s.Judge.Rubric() {
			flat[name] = value
		}
	} else {
		for _, name := range []string{
			metric.DimensionTaskFulfillment, metric.DimensionGrounding,
			metric.DimensionToolAppropriate, metric.DimensionParamAccuracy,
			metric.DimensionDependency, metric.DimensionParallelism,
			metric.SubscoreTaskCompletion, metric.SubscoreToolSelection,
			metric.SubscorePlanning, metric.DimensionJudgeComposite,
		} {
			flat[name] = metric.ScoreUndefined
		}
	}
	if s.Match != nil {
		for name, value := range s.Match.Rates() {
			flat[name] = value
		}
	} else {
		for _, name := range []string{
			metric.RateValidToolName, metric.RateInputSchemaCompliance,
			metric.RateExecutionSuccess, metric.RateValidCallFailure,
			metric.RatePlanningJSONCompliance, metric.RateMatcherComposite,
		} {
			flat[name] = metric.ScoreUndefined
		}
	}
	for _, name := range []string{
		metric.FieldTaskPassAtK, metric.FieldToolPassAtK, metric.FieldParameterPassAtK,
	} {
		if value, ok := s.PassAtK[name]; ok {
			flat[name] = value
		} else {
			flat[name] = metric.ScoreUndefined
		}
	}
	if s.Rationale != "" {
		flat["rationale"] = s.Rationale
	}
	if s.Error != "" {
		flat["error"] = s.Error
	}
	return flat
}

// rationale appends degraded-state notes to the judge rationale so flagged
// defaults are visible in the output, not hidden.
func rationale(verdict *judge.Verdict, match *toolmatch.Result) string {
	parts := make([]string, 0, 2)
	if verdict.Rationale != "" {
		parts = append(parts, verdict.Rationale)
	}
	for _, flag := range match.Flags {
		switch flag {
		case metric.FlagNoTrace:
			parts = append(parts,
				"Degraded input: no execution trace; all matcher rates contributed 0.")
		case metric.FlagNoCallsMade:
			parts = append(parts,
				"Degraded input: no calls made; empty-denominator rates reported as vacuous 1.0.")
		case metric.FlagNoValidCalls:
			parts = append(parts,
				"Degraded input: no valid-named calls; schema and failure rates reported as vacuous defaults.")
		case metric.FlagToolsUnavailable:
			parts = append(parts,
				"Degraded input: tool declarations unavailable; name and schema checks excluded.")
		}
	}
	return strings.Join(parts, "\n\n")
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
