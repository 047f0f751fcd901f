//
// Tencent is pleased to support the open source community by making trpc-agent-bench available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-bench is licensed under the Apache License Version 2.0.
//
//

package judge

import (
	"encoding/json"
	"fmt"
	"strings"

	"trpc.group/trpc-go/trpc-agent-bench/metric"
)

// Verdict is one parsed judge response: six rubric dimensions on the 1-10
// scale, their pairwise subscores, the composite mean and the free-text
// rationale.
type Verdict struct {
	TaskFulfillment       float64 `json:"taskFulfillment"`
	Grounding             float64 `json:"grounding"`
	ToolAppropriateness   float64 `json:"toolAppropriateness"`
	ParameterAccuracy     float64 `json:"parameterAccuracy"`
	DependencyAwareness   float64 `json:"dependencyAwareness"`
	ParallelismEfficiency float64 `json:"parallelismEfficiency"`

	TaskCompletion        float64 `json:"taskCompletion"`
	ToolSelection         float64 `json:"toolSelection"`
	PlanningEffectiveness float64 `json:"planningEffectiveness"`
	Composite             float64 `json:"composite"`

	Rationale string `json:"rationale,omitempty"`
}

// Rubric returns the dimensions, subscores and composite keyed by their
// stable field names.
func (v *Verdict) Rubric() map[string]float64 {
	return map[string]float64{
		metric.DimensionTaskFulfillment: v.TaskFulfillment,
		metric.DimensionGrounding:       v.Grounding,
		metric.DimensionToolAppropriate: v.ToolAppropriateness,
		metric.DimensionParamAccuracy:   v.ParameterAccuracy,
		metric.DimensionDependency:      v.DependencyAwareness,
		metric.DimensionParallelism:     v.ParallelismEfficiency,
		metric.SubscoreTaskCompletion:   v.TaskCompletion,
		metric.SubscoreToolSelection:    v.ToolSelection,
		metric.SubscorePlanning:         v.PlanningEffectiveness,
		metric.DimensionJudgeComposite:  v.Composite,
	}
}

// ParseError reports a malformed judge response. It is surfaced per case
// and never aborts sibling cases.
type ParseError struct {
	// Reason explains what made the response unusable.
	Reason string
	// Raw is the response text that failed to parse.
	Raw string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("judge response parse error: %s", e.Reason)
}

// dimensionKeys are the six required numeric fields in the judge response.
var dimensionKeys = []string{
	metric.DimensionTaskFulfillment,
	metric.DimensionGrounding,
	metric.DimensionToolAppropriate,
	metric.DimensionParamAccuracy,
	metric.DimensionDependency,
	metric.DimensionParallelism,
}

// reasoningKeys maps response reasoning fields to their rationale labels,
// in render order.
var reasoningKeys = []struct {
	key   string
	label string
}{
	{"task_fulfillment_reasoning", "Task Fulfillment"},
	{"grounding_reasoning", "Grounding"},
	{"tool_appropriateness_reasoning", "Tool Appropriateness"},
	{"parameter_accuracy_reasoning", "Parameter Accuracy"},
	{"dependency_awareness_reasoning", "Dependency Awareness"},
	{"parallelism_efficiency_reasoning", "Parallelism & Efficiency"},
}

// Parse extracts a Verdict from the raw judge response. The response may
// wrap its JSON in code fences or surrounding prose; the first balanced
// object is used. Every dimension must be present, numeric and within
// [1, 10], otherwise a ParseError is returned. No silent defaulting.
func Parse(raw string) (*Verdict, error) {
	payload, err := locateJSON(raw)
	if err != nil {
		return nil, &ParseError{Reason: err.Error(), Raw: raw}
	}
	var fields map[string]any
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return nil, &ParseError{Reason: fmt.Sprintf("decode JSON: %v", err), Raw: raw}
	}
	scores := make(map[string]float64, len(dimensionKeys))
	for _, key := range dimensionKeys {
		value, ok := fields[key]
		if !ok {
			return nil, &ParseError{Reason: fmt.Sprintf("missing dimension %s", key), Raw: raw}
		}
		score, ok := value.(float64)
		if !ok {
			return nil, &ParseError{Reason: fmt.Sprintf("dimension %s is not numeric", key), Raw: raw}
		}
		if score < 1 || score > 10 {
			return nil, &ParseError{
				Reason: fmt.Sprintf("dimension %s score %v outside [1, 10]", key, score),
				Raw:    raw,
			}
		}
		scores[key] = score
	}
	v := &Verdict{
		TaskFulfillment:       scores[metric.DimensionTaskFulfillment],
		Grounding:             scores[metric.DimensionGrounding],
		ToolAppropriateness:   scores[metric.DimensionToolAppropriate],
		ParameterAccuracy:     scores[metric.DimensionParamAccuracy],
		DependencyAwareness:   scores[metric.DimensionDependency],
		ParallelismEfficiency: scores[metric.DimensionParallelism],
		Rationale:             buildRationale(fields),
	}
	v.TaskCompletion = (v.TaskFulfillment + v.Grounding) / 2
	v.ToolSelection = (v.ToolAppropriateness + v.ParameterAccuracy) / 2
	v.PlanningEffectiveness = (v.DependencyAwareness + v.ParallelismEfficiency) / 2
	v.Composite = (v.TaskFulfillment + v.Grounding + v.ToolAppropriateness +
		v.ParameterAccuracy + v.DependencyAwareness + v.ParallelismEfficiency) / 6
	return v, nil
}

// locateJSON strips code fences and returns the outermost JSON object.
func locateJSON(raw string) (string, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return cleaned[start : end+1], nil
}

// buildRationale concatenates the per-dimension reasoning fields.
func buildRationale(fields map[string]any) string {
	parts := make([]string, 0, len(reasoningKeys))
	for _, rk := range reasoningKeys {
		text, ok := fields[rk.key].(string)
		if !ok || text == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", rk.label, text))
	}
	return strings.Join(parts, "\n\n")
}
