//
// Tencent is pleased to support the open source community by making trpc-agent-bench available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-bench is licensed under the Apache License Version 2.0.
//
//

// Package status provides the status of an evaluation.
package status

// EvalStatus represents the status of an evaluation.
type EvalStatus int

const (
	// EvalStatusUnknown represents an unknown evaluation status.
	EvalStatusUnknown EvalStatus = iota
	// EvalStatusPassed represents a passed evaluation status.
	EvalStatusPassed
	// EvalStatusFailed represents a failed evaluation status.
	EvalStatusFailed
	// EvalStatusNotEvaluated represents a not evaluated evaluation status.
	EvalStatusNotEvaluated
	// EvalStatusError represents an evaluation that could not be scored.
	EvalStatusError
)

// String returns the string representation of the evaluation status.
func (s EvalStatus) String() string {
	switch s {
	case EvalStatusPassed:
		return "passed"
	case EvalStatusFailed:
		return "failed"
	case EvalStatusNotEvaluated:
		return "not_evaluated"
	case EvalStatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Summarize combines multiple statuses into one.
// The precedence rules are:
// 1. If there is an Error, the overall status is Error.
// 2. If there is a Failed, the overall status is Failed.
// 3. If there is a Passed, the overall status is Passed.
// 4. Otherwise, the overall status is NotEvaluated.
func Summarize(statuses []EvalStatus) EvalStatus {
	combined := EvalStatusNotEvaluated
	for _, s := range statuses {
		switch s {
		case EvalStatusError:
			return EvalStatusError
		case EvalStatusFailed:
			combined = EvalStatusFailed
		case EvalStatusPassed:
			if combined != EvalStatusFailed {
				combined = EvalStatusPassed
			}
		default:
		}
	}
	return combined
}
