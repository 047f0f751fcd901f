//
// Tencent is pleased to support the open source community by making trpc-agent-bench available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-bench is licensed under the Apache License Version 2.0.
//
//

// Package testcase defines the unified data model for agent transcript evaluation.
package testcase

// TestCase represents a single evaluation case: one agent transcript together
// with the references it is scored against.
type TestCase struct {
	// ID uniquely identifies this case.
	ID string `json:"id,omitempty"`
	// TaskID groups repeated trials of the same logical task for pass@k.
	TaskID string `json:"taskId,omitempty"`
	// Input is the user task/prompt given to the agent.
	Input string `json:"input"`
	// ActualOutput is the agent's final answer.
	ActualOutput string `json:"actualOutput,omitempty"`
	// ExpectedOutput is the reference answer, when available.
	ExpectedOutput string `json:"expectedOutput,omitempty"`
	// ExpectedToolCalls is the ground-truth tool call sequence, when available.
	ExpectedToolCalls []*ToolCall `json:"expectedToolCalls,omitempty"`
	// AvailableTools maps tool name to its declaration.
	AvailableTools map[string]*ToolDeclaration `json:"availableTools,omitempty"`
	// Trace records the tool calls the agent actually made.
	Trace *ExecutionTrace `json:"trace,omitempty"`
	// AgentID identifies the agent under evaluation.
	AgentID string `json:"agentId,omitempty"`
	// SessionID identifies the session the transcript came from.
	SessionID string `json:"sessionId,omitempty"`
	// Conversation carries prior turns for judge context only.
	Conversation []ConversationTurn `json:"conversation,omitempty"`
	// Metadata carries free-form values for judge context only.
	// Deterministic scorers never inspect it.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ToolDeclaration describes one tool the agent was allowed to call.
type ToolDeclaration struct {
	// Name is the tool name.
	Name string `json:"name"`
	// Description describes the tool usage.
	Description string `json:"description,omitempty"`
	// InputSchema is the declared JSON schema for the tool parameters.
	InputSchema map[string]any `json:"inputSchema,omitempty"`
}

// ConversationTurn is a single role/content pair of conversation history.
type ConversationTurn struct {
	// Role is the speaker role, typically user or assistant.
	Role string `json:"role"`
	// Content is the turn content.
	Content string `json:"content"`
}

// ToolCall represents one expected tool invocation.
type ToolCall struct {
	// Name is the tool name.
	Name string `json:"name"`
	// Input maps parameter name to expected value.
	Input map[string]any `json:"input,omitempty"`
	// Output is the expected tool result, when the reference records one.
	Output any `json:"output,omitempty"`
}

// CalledToolNames returns the ordered tool names of the trace, or nil when
// the case carries no trace.
func (t *TestCase) CalledToolNames() []string {
	if t == nil || t.Trace == nil {
		return nil
	}
	names := make([]string, 0, len(t.Trace.ToolExecutions))
	for _, exec := range t.Trace.ToolExecutions {
		if exec == nil {
			continue
		}
		names = append(names, exec.Tool)
	}
	return names
}

// ExpectedToolNames returns the ordered tool names of the reference calls.
func (t *TestCase) ExpectedToolNames() []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.ExpectedToolCalls))
	for _, call := range t.ExpectedToolCalls {
		if call == nil {
			continue
		}
		names = append(names, call.Name)
	}
	return names
}
