//
// Tencent is pleased to support the open source community by making trpc-agent-bench available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-bench is licensed under the Apache License Version 2.0.
//
//

package metric

// ScoreUndefined is the sentinel exported for numeric fields that could not
// be computed. Downstream tabular consumers rely on every field being
// present, so absence is encoded as this value rather than a missing key.
const ScoreUndefined = -1.0

// Matcher rate field names. These are part of the export contract and
// must stay stable across releases.
const (
	RateValidToolName          = "valid_tool_name_rate"
	RateInputSchemaCompliance  = "input_schema_compliance"
	RateExecutionSuccess       = "execution_success_rate"
	RateValidCallFailure       = "valid_call_failure_rate"
	RatePlanningJSONCompliance = "planning_json_compliance"
	RateMatcherComposite       = "matcher_composite"
)

// Judge rubric dimension field names on the 1-10 scale.
const (
	DimensionTaskFulfillment  = "task_fulfillment"
	DimensionGrounding        = "grounding"
	DimensionToolAppropriate  = "tool_appropriateness"
	DimensionParamAccuracy    = "parameter_accuracy"
	DimensionDependency       = "dependency_awareness"
	DimensionParallelism      = "parallelism_and_efficiency"
	SubscoreTaskCompletion    = "task_completion"
	SubscoreToolSelection     = "tool_selection"
	SubscorePlanning          = "planning_effectiveness"
	DimensionJudgeComposite   = "judge_composite"
)

// Aggregate and estimator field names.
const (
	FieldFinalScore       = "final_score"
	FieldSuccess          = "success"
	FieldTaskPassAtK      = "task_pass_at_k"
	FieldToolPassAtK      = "tool_pass_at_k"
	FieldParameterPassAtK = "parameter_pass_at_k"
)

// Degraded-input flags attached to results when a sub-metric was defaulted
// rather than computed. Flags are warnings, not errors: scoring proceeds.
const (
	FlagNoCallsMade      = "no calls made"
	FlagNoValidCalls     = "no valid calls"
	FlagNoTrace          = "no execution trace"
	FlagToolsUnavailable = "tool declarations unavailable"
)
