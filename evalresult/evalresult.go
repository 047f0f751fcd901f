//
// Tencent is pleased to support the open source community by making trpc-agent-bench available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-bench is licensed under the Apache License Version 2.0.
//
//

// Package evalresult provides storage for benchmark run results.
package evalresult

import (
	"context"
	"time"

	"trpc.group/trpc-go/trpc-agent-bench/scoring"
	"trpc.group/trpc-go/trpc-agent-bench/status"
)

// RunResult is the persistent record of one benchmark run: one CaseScore
// per input case, errored cases included.
type RunResult struct {
	// RunResultID uniquely identifies this result.
	RunResultID string `json:"runResultId,omitempty"`
	// RunResultName is the display name of this result.
	RunResultName string `json:"runResultName,omitempty"`
	// SuiteID identifies the case suite that was run.
	SuiteID string `json:"suiteId,omitempty"`
	// CaseScores contains the score record for each case.
	CaseScores []*scoring.CaseScore `json:"caseScores,omitempty"`
	// Summary aggregates the run, filled by Summarize.
	Summary *RunSummary `json:"summary,omitempty"`
	// CreationTimestamp when this result was created.
	CreationTimestamp time.Time `json:"creationTimestamp,omitempty"`
}

// Manager defines the interface for managing run results.
type Manager interface {
	// Save stores a run result, assigning an ID when absent, and returns
	// the ID.
	Save(ctx context.Context, result *RunResult) (string, error)
	// Get retrieves a run result by ID.
	Get(ctx context.Context, runResultID string) (*RunResult, error)
	// List returns the IDs of all stored run results.
	List(ctx context.Context) ([]string, error)
	// Close releases owned resources.
	Close() error
}

// RunSummary aggregates one run for easier inspection.
type RunSummary struct {
	// OverallStatus summarizes the statuses of all cases.
	OverallStatus status.EvalStatus `json:"overallStatus,omitempty"`
	// NumCases is the number of scored cases, errored included.
	NumCases int `json:"numCases,omitempty"`
	// StatusCounts counts case outcomes.
	StatusCounts StatusCounts `json:"statusCounts"`
	// MeanFinalScore is the mean final score over non-errored cases.
	MeanFinalScore float64 `json:"meanFinalScore,omitempty"`
	// MeanJudgeComposite is the mean judge composite over judged cases.
	MeanJudgeComposite float64 `json:"meanJudgeComposite,omitempty"`
	// MeanMatcherComposite is the mean matcher composite over matched cases.
	MeanMatcherComposite float64 `json:"meanMatcherComposite,omitempty"`
}

// StatusCounts counts case outcomes by status.
type StatusCounts struct {
	Passed       int `json:"passed,omitempty"`
	Failed       int `json:"failed,omitempty"`
	NotEvaluated int `json:"notEvaluated,omitempty"`
	Errored      int `json:"errored,omitempty"`
}

// Summarize aggregates the case scores of a run into a RunSummary.
func Summarize(result *RunResult) *RunSummary {
	summary := &RunSummary{}
	if result == nil {
		return summary
	}
	summary.NumCases = len(result.CaseScores)
	statuses := make([]status.EvalStatus, 0, len(result.CaseScores))
	var finalSum, judgeSum, matchSum float64
	var finalCount, judgeCount, matchCount int
	for _, score := range result.CaseScores {
		if score == nil {
			continue
		}
		statuses = append(statuses, score.Status)
		switch score.Status {
		case status.EvalStatusPassed:
			summary.StatusCounts.Passed++
		case status.EvalStatusFailed:
			summary.StatusCounts.Failed++
		case status.EvalStatusError:
			summary.StatusCounts.Errored++
		default:
			summary.StatusCounts.NotEvaluated++
		}
		if score.Status != status.EvalStatusError {
			finalSum += score.FinalScore
			finalCount++
		}
		if score.Judge != nil {
			judgeSum += score.Judge.Composite
			judgeCount++
		}
		if score.Match != nil {
			matchSum += score.Match.Composite
			matchCount++
		}
	}
	summary.OverallStatus = status.Summarize(statuses)
	if finalCount > 0 {
		summary.MeanFinalScore = finalSum / float64(finalCount)
	}
	if judgeCount > 0 {
		summary.MeanJudgeComposite = judgeSum / float64(judgeCount)
	}
	if matchCount > 0 {
		summary.MeanMatcherComposite = matchSum / float64(matchCount)
	}
	return summary
}

// Flatten exports one row per case as a flat mapping with stable field
// names, suitable for tabular reporting.
func Flatten(result *RunResult) []map[string]any {
	if result == nil {
		return nil
	}
	rows := make([]map[string]any, 0, len(result.CaseScores))
	for _, score := range result.CaseScores {
		if score == nil {
			continue
		}
		row := score.Flat()
		row["case_id"] = score.CaseID
		if score.TaskID != "" {
			row["task_id"] = score.TaskID
		}
		rows = append(rows, row)
	}
	return rows
}
