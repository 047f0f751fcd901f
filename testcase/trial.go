//
// Tencent is pleased to support the open source community by making trpc-agent-bench available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-bench is licensed under the Apache License Version 2.0.
//
//

package testcase

import (
	"errors"
	"fmt"
)

// Granularity identifies the level at which a trial is judged correct.
type Granularity string

const (
	// GranularityTask marks task-level correctness: the final answer matched.
	GranularityTask Granularity = "task"
	// GranularityTool marks tool-level correctness: the called tool sequence matched.
	GranularityTool Granularity = "tool"
	// GranularityParameter marks parameter-level correctness: the call parameters matched.
	GranularityParameter Granularity = "parameter"
)

// Valid reports whether the granularity is one of the known values.
func (g Granularity) Valid() bool {
	switch g {
	case GranularityTask, GranularityTool, GranularityParameter:
		return true
	default:
		return false
	}
}

// TrialOutcomes holds per-trial correctness for repeated samples of one
// logical task, at exactly one granularity. The three granularities share the
// shape but must never be mixed within one pass@k computation.
type TrialOutcomes struct {
	// Granularity is the level the results were judged at.
	Granularity Granularity `json:"granularity"`
	// Results holds one correctness entry per trial, in trial order.
	Results []bool `json:"results"`
}

// NewTrialOutcomes builds an outcome vector after validating the granularity.
func NewTrialOutcomes(granularity Granularity, results []bool) (*TrialOutcomes, error) {
	if !granularity.Valid() {
		return nil, fmt.Errorf("unknown trial granularity %q", granularity)
	}
	if len(results) == 0 {
		return nil, errors.New("trial results are empty")
	}
	copied := make([]bool, len(results))
	copy(copied, results)
	return &TrialOutcomes{Granularity: granularity, Results: copied}, nil
}

// OutcomesFromScores derives a boolean outcome vector from per-trial scores,
// marking a trial correct when its score meets the threshold.
func OutcomesFromScores(granularity Granularity, scores []float64, threshold float64) (*TrialOutcomes, error) {
	results := make([]bool, len(scores))
	for i, score := range scores {
		results[i] = score >= threshold
	}
	return NewTrialOutcomes(granularity, results)
}

// Trials returns the number of trials n.
func (o *TrialOutcomes) Trials() int {
	if o == nil {
		return 0
	}
	return len(o.Results)
}

// Correct returns the number of correct trials c.
func (o *TrialOutcomes) Correct() int {
	if o == nil {
		return 0
	}
	count := 0
	for _, passed := range o.Results {
		if passed {
			count++
		}
	}
	return count
}
