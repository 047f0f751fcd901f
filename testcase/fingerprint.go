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
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Fingerprint returns the content hash identifying one scoring request:
// the case input, its trace and references, and the scoring configuration.
// Two identical requests produce the same fingerprint, so cached judge
// responses can be reused safely.
func Fingerprint(tc *TestCase, configHash string) (string, error) {
	if tc == nil {
		return "", fmt.Errorf("test case is nil")
	}
	// Map keys are sorted by encoding/json, so the encoding is canonical for
	// the value shapes the data model allows.
	payload := struct {
		Input             string                      `json:"input"`
		ActualOutput      string                      `json:"actualOutput"`
		ExpectedOutput    string                      `json:"expectedOutput"`
		ExpectedToolCalls []*ToolCall                 `json:"expectedToolCalls"`
		AvailableTools    map[string]*ToolDeclaration `json:"availableTools"`
		Trace             *ExecutionTrace             `json:"trace"`
		ConfigHash        string                      `json:"configHash"`
	}{
		Input:             tc.Input,
		ActualOutput:      tc.ActualOutput,
		ExpectedOutput:    tc.ExpectedOutput,
		ExpectedToolCalls: tc.ExpectedToolCalls,
		AvailableTools:    tc.AvailableTools,
		Trace:             tc.Trace,
		ConfigHash:        configHash,
	}
	encoded, err := json.Marshal(&payload)
	if err != nil {
		return "", fmt.Errorf("encode fingerprint payload: %w", err)
	}
	sum := sha256.Sum256(encoded)
	return hex.EncodeToString(sum[:]), nil
}
