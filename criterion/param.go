//
// Tencent is pleased to support the open source community by making trpc-agent-bench available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-bench is licensed under the Apache License Version 2.0.
//
//

package criterion

import (
	"fmt"
	"reflect"
)

// ParamMatchStrategy enumerates supported parameter comparison strategies.
type ParamMatchStrategy string

const (
	// ParamMatchStrategyExact matches parameter mappings by deep structural equality.
	ParamMatchStrategyExact ParamMatchStrategy = "exact"
	// ParamMatchStrategyKeyMatch passes when every required expected key is
	// present in the actual mapping, values unchecked.
	ParamMatchStrategyKeyMatch ParamMatchStrategy = "key_match"
	// ParamMatchStrategySemantic delegates to a pluggable similarity judgment.
	// Without a configured Semantic hook it degrades to exact matching.
	ParamMatchStrategySemantic ParamMatchStrategy = "semantic"
)

// ParamCriterion governs how two parameter mappings are compared.
type ParamCriterion struct {
	// MatchStrategy selects the comparison rule.
	MatchStrategy ParamMatchStrategy `json:"matchStrategy,omitempty"`
	// RequiredKeys restricts key_match to a subset of the expected keys.
	// Empty means every expected key is required.
	RequiredKeys []string `json:"requiredKeys,omitempty"`
	// Semantic is the pluggable similarity judgment for the semantic strategy.
	Semantic func(actual, expected map[string]any) (bool, error) `json:"-"`
	// Compare overrides built-in strategies when provided.
	Compare func(actual, expected map[string]any) (bool, error) `json:"-"`
}

// Match compares actual parameters against expected parameters using the
// configured strategy.
func (p *ParamCriterion) Match(actual, expected map[string]any) (bool, error) {
	if p == nil {
		return false, fmt.Errorf("param criterion is nil")
	}
	if p.Compare != nil {
		return p.Compare(actual, expected)
	}
	switch p.MatchStrategy {
	// Default to exact match.
	case ParamMatchStrategyExact, "":
		return matchExactParams(actual, expected)
	case ParamMatchStrategyKeyMatch:
		return p.matchKeys(actual, expected)
	case ParamMatchStrategySemantic:
		if p.Semantic == nil {
			return matchExactParams(actual, expected)
		}
		return p.Semantic(actual, expected)
	default:
		return false, fmt.Errorf("invalid match strategy %s", p.MatchStrategy)
	}
}

// matchExactParams compares two parameter mappings by deep equality.
// Nil and empty mappings compare as equal.
func matchExactParams(actual, expected map[string]any) (bool, error) {
	if len(actual) == 0 && len(expected) == 0 {
		return true, nil
	}
	if reflect.DeepEqual(actual, expected) {
		return true, nil
	}
	return false, fmt.Errorf("actual %v and expected %v do not match", actual, expected)
}

// matchKeys checks presence of the required expected keys in actual.
func (p *ParamCriterion) matchKeys(actual, expected map[string]any) (bool, error) {
	required := p.RequiredKeys
	if len(required) == 0 {
		required = make([]string, 0, len(expected))
		for key := range expected {
			required = append(required, key)
		}
	}
	for _, key := range required {
		if _, ok := expected[key]; !ok {
			// A required key absent from the expected mapping constrains nothing.
			continue
		}
		if _, ok := actual[key]; !ok {
			return false, fmt.Errorf("key %s in expected but not in actual", key)
		}
	}
	return true, nil
}
