//
// Tencent is pleased to support the open source community by making trpc-agent-bench available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-bench is licensed under the Apache License Version 2.0.
//
//

package testcase

// ToolExecution records one executed tool call with its provenance.
type ToolExecution struct {
	// Tool is the tool name the agent called.
	Tool string `json:"tool"`
	// Parameters maps parameter name to the value the agent supplied.
	Parameters map[string]any `json:"parameters,omitempty"`
	// Result is the structured tool output. Absent on failure.
	Result any `json:"result,omitempty"`
	// Success reports whether the call succeeded.
	Success bool `json:"success"`
	// Server identifies which backend served the call, when known.
	Server string `json:"server,omitempty"`
	// ExecutionTime is the call latency in seconds, when recorded.
	ExecutionTime *float64 `json:"executionTime,omitempty"`
	// ErrorMessage describes the failure. Empty with Success=false means an
	// unknown failure.
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// ExecutionTrace owns the ordered tool executions of one agent run plus the
// planning artifacts produced alongside them. The order is the call order and
// is significant for sequence matching. Planning artifacts are judge context
// only; the deterministic matcher never reads them.
type ExecutionTrace struct {
	// ToolExecutions is the ordered record of executed calls.
	ToolExecutions []*ToolExecution `json:"toolExecutions,omitempty"`
	// TotalRounds is the number of planning iterations, at least 1.
	TotalRounds int `json:"totalRounds,omitempty"`
	// PlanningJSONCompliance is the fraction of planning output that parsed
	// as well-formed structured output, in [0, 1].
	PlanningJSONCompliance float64 `json:"planningJsonCompliance,omitempty"`
	// TaskDescription is the agent's own concrete task description.
	TaskDescription string `json:"taskDescription,omitempty"`
	// DependencyAnalysis is the agent's dependency analysis text.
	DependencyAnalysis string `json:"dependencyAnalysis,omitempty"`
	// AccumulatedInformation is the information the agent gathered across rounds.
	AccumulatedInformation string `json:"accumulatedInformation,omitempty"`
}

// Rounds returns TotalRounds normalized to at least 1.
func (t *ExecutionTrace) Rounds() int {
	if t == nil || t.TotalRounds < 1 {
		return 1
	}
	return t.TotalRounds
}

// SuccessCount returns the number of successful executions.
func (t *ExecutionTrace) SuccessCount() int {
	if t == nil {
		return 0
	}
	count := 0
	for _, exec := range t.ToolExecutions {
		if exec != nil && exec.Success {
			count++
		}
	}
	return count
}

// ServerDistribution returns per-server call counts over non-empty servers.
func (t *ExecutionTrace) ServerDistribution() map[string]int {
	if t == nil {
		return nil
	}
	dist := make(map[string]int)
	for _, exec := range t.ToolExecutions {
		if exec == nil || exec.Server == "" {
			continue
		}
		dist[exec.Server]++
	}
	if len(dist) == 0 {
		return nil
	}
	return dist
}
