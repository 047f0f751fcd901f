//
// Tencent is pleased to support the open source community by making trpc-agent-bench available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-bench is licensed under the Apache License Version 2.0.
//
//

// Package judgemodel abstracts the external judge model behind a minimal
// completion interface so evaluators stay transport-agnostic.
package judgemodel

import "context"

// Model is a judge model client. Complete is the only suspension point in
// the scoring pipeline; implementations own their transport, authentication
// and retry policy.
type Model interface {
	// Name returns the judge model identifier.
	Name() string
	// Complete sends one prompt and returns the raw response text.
	Complete(ctx context.Context, prompt string) (string, error)
}
