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
	"fmt"
	"sort"
	"strings"

	"trpc.group/trpc-go/trpc-agent-bench/testcase"
)

// Truncation limits for execution artifacts embedded in the prompt, so a
// single verbose tool result cannot blow the judge's context window.
const (
	maxInlineResultChars = 2000
	maxResultChars       = 1500
	maxInlineErrorChars  = 1000
	maxErrorChars        = 800
	maxToolDescChars     = 500
)

// BuildPrompt renders the rubric request for one case. The prompt asks for
// six 1-10 dimension scores plus per-dimension reasoning, returned as a
// single JSON object.
func BuildPrompt(tc *testcase.TestCase) string {
	var b strings.Builder
	b.WriteString("You are an expert AI task execution evaluator. " +
		"Score each dimension objectively based on evidence.\n\n")
	writeTaskSection(&b, tc)
	fmt.Fprintf(&b, "**EXECUTION SUMMARY**:\n%s\n\n", executionSummary(tc.Trace))
	fmt.Fprintf(&b, "**FINAL SOLUTION**: %q\n\n", tc.ActualOutput)
	fmt.Fprintf(&b, "**TOTAL ROUNDS**: %d\n\n", tc.Trace.Rounds())
	fmt.Fprintf(&b, "**AVAILABLE TOOLS** (%d tools):\n%s\n\n",
		len(tc.AvailableTools), formatAvailableTools(tc.AvailableTools))
	writeDependencySection(&b, tc)
	writeExpectedToolsSection(&b, tc)
	b.WriteString(rubricText)
	return b.String()
}

func writeTaskSection(b *strings.Builder, tc *testcase.TestCase) {
	if tc.Trace != nil && tc.Trace.TaskDescription != "" {
		fmt.Fprintf(b, "**TASK PRESENTED TO AGENT**: %q\n\n", tc.Input)
		b.WriteString("**CONCRETE TASK REFERENCE (For evaluation context only)**:\n" +
			"Note: The agent did NOT see this concrete version. It only saw the task above.\n")
		fmt.Fprintf(b, "%q\n\n", tc.Trace.TaskDescription)
		return
	}
	fmt.Fprintf(b, "**ORIGINAL TASK**: %q\n\n", tc.Input)
}

func writeDependencySection(b *strings.Builder, tc *testcase.TestCase) {
	if tc.Trace == nil || tc.Trace.DependencyAnalysis == "" {
		return
	}
	b.WriteString("**DEPENDENCY ANALYSIS (Reference Only)**:\n" +
		"Note: The agent did NOT see this analysis. It is provided as reference " +
		"for evaluation purposes.\n")
	b.WriteString(tc.Trace.DependencyAnalysis)
	b.WriteString("\n\n")
}

func writeExpectedToolsSection(b *strings.Builder, tc *testcase.TestCase) {
	if len(tc.ExpectedToolCalls) == 0 {
		return
	}
	b.WriteString("**EXPECTED TOOL CALLS (Reference Only)**:\n" +
		"Note: These are the ideal tool calls for this task. The agent did NOT " +
		"see these expectations. Use them to evaluate the appropriateness and " +
		"accuracy of the agent's tool usage.\n\n")
	for i, call := range tc.ExpectedToolCalls {
		if call == nil {
			continue
		}
		fmt.Fprintf(b, "%d. **%s**\n", i+1, call.Name)
		if len(call.Input) == 0 {
			b.WriteString("   Expected Parameters: None\n")
			continue
		}
		b.WriteString("   Expected Parameters:\n")
		keys := make([]string, 0, len(call.Input))
		for key := range call.Input {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(b, "     - %s: %v\n", key, call.Input[key])
		}
	}
	b.WriteString("\n")
}

// executionSummary condenses the trace into execution statistics followed by
// per-call accumulated information.
func executionSummary(trace *testcase.ExecutionTrace) string {
	if trace == nil || len(trace.ToolExecutions) == 0 {
		return "No tools were executed."
	}
	failed := len(trace.ToolExecutions) - trace.SuccessCount()
	parts := []string{
		fmt.Sprintf("Total rounds: %d", trace.Rounds()),
		fmt.Sprintf("Tools executed: %d", len(trace.ToolExecutions)),
		fmt.Sprintf("Successful: %d", trace.SuccessCount()),
		fmt.Sprintf("Failed: %d", failed),
	}
	var succeeded, failedNames []string
	for _, exec := range trace.ToolExecutions {
		if exec == nil {
			continue
		}
		if exec.Success {
			succeeded = append(succeeded, exec.Tool)
		} else {
			failedNames = append(failedNames, exec.Tool)
		}
	}
	if len(succeeded) > 0 {
		parts = append(parts, "Successful tools: "+strings.Join(succeeded, ", "))
	}
	if len(failedNames) > 0 {
		parts = append(parts, "Failed tools: "+strings.Join(failedNames, ", "))
	}
	stats := strings.Join(parts, "; ")
	info := trace.AccumulatedInformation
	if info == "" {
		info = accumulatedInfo(trace)
	}
	if info == "" {
		return stats
	}
	return stats + "\n\n--- ACCUMULATED INFORMATION FROM EXECUTION ---\n" + info
}

// accumulatedInfo renders one line per call with truncated results or errors.
func accumulatedInfo(trace *testcase.ExecutionTrace) string {
	lines := make([]string, 0, len(trace.ToolExecutions))
	for _, exec := range trace.ToolExecutions {
		if exec == nil {
			continue
		}
		server := exec.Server
		if server == "" {
			server = "unknown"
		}
		params := "{}"
		if len(exec.Parameters) > 0 {
			params = fmt.Sprintf("%v", exec.Parameters)
		}
		if exec.Success {
			content := fmt.Sprintf("%v", exec.Result)
			if len(content) > maxInlineResultChars {
				content = truncate(content, maxResultChars)
				lines = append(lines, fmt.Sprintf(
					"Tool `%s` with Parameter %s on %s succeeded. Result (truncated): %s",
					exec.Tool, params, server, content))
				continue
			}
			lines = append(lines, fmt.Sprintf(
				"Tool `%s` with Parameter %s on %s succeeded. Result: %s",
				exec.Tool, params, server, content))
			continue
		}
		errText := exec.ErrorMessage
		if errText == "" {
			errText = "Unknown error"
		}
		if len(errText) > maxInlineErrorChars {
			errText = truncate(errText, maxErrorChars)
			lines = append(lines, fmt.Sprintf(
				"Tool `%s` with Parameter %s on %s failed. Error (truncated): %s",
				exec.Tool, params, server, errText))
			continue
		}
		lines = append(lines, fmt.Sprintf(
			"Tool `%s` with Parameter %s on %s failed. Error: %s",
			exec.Tool, params, server, errText))
	}
	return strings.Join(lines, "\n")
}

// formatAvailableTools groups declarations by server with truncated
// descriptions.
func formatAvailableTools(tools map[string]*testcase.ToolDeclaration) string {
	if len(tools) == 0 {
		return "No tools available"
	}
	names := make([]string, 0, len(tools))
	for name := range tools {
		names = append(names, name)
	}
	sort.Strings(names)
	lines := make([]string, 0, len(names))
	for _, name := range names {
		decl := tools[name]
		desc := "No description available"
		if decl != nil && decl.Description != "" {
			desc = truncate(decl.Description, maxToolDescChars)
		}
		lines = append(lines, fmt.Sprintf("  - %s: %s", name, desc))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}

const rubricText = `### Task Completion Rubric (1-10 per subdimension)

1. **Task Fulfillment**: what fraction of the task requirements were
completed perfectly, mapped onto the 1-10 scale.
2. **Grounding**: what fraction of the claims in the final solution are
grounded in actual tool outputs rather than unsupported.

### Tool Usage Rubric (1-10 per subdimension)

3. **Tool Appropriateness**: what fraction of the tools used were the
right choice for their subtask. Compare against the expected tool calls
when provided, penalizing missing, wrong or unnecessary tools.
4. **Parameter Accuracy**: what fraction of tool calls carried complete
and accurate parameters, with correct keys, values and types.

### Planning Effectiveness Rubric (1-10 per subdimension)

5. **Dependency Awareness**: what fraction of dependency chains between
calls were respected and executed in a valid order.
6. **Parallelism and Efficiency**: how well redundant calls were avoided
and parallelizable work was actually parallelized.

### Scoring

For each dimension compute the defect rate (issues / opportunities) and
map it to the scale: 0-10% defects scores 9-10, 10-30% scores 7-9,
30-50% scores 5-7, 50-70% scores 3-5, above 70% scores 1-3. Be strict:
a portion counts as perfect only when the tool choice, parameters,
ordering and output are all ideal. Most real executions should land in
the 4-6 range.

Return your evaluation in this exact JSON format:
{
"task_fulfillment_reasoning": "...",
"grounding_reasoning": "...",
"tool_appropriateness_reasoning": "...",
"parameter_accuracy_reasoning": "...",
"dependency_awareness_reasoning": "...",
"parallelism_efficiency_reasoning": "...",
"task_fulfillment": X,
"grounding": X,
"tool_appropriateness": X,
"parameter_accuracy": X,
"dependency_awareness": X,
"parallelism_and_efficiency": X
}

Return **only** the JSON object.`
