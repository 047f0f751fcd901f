//
// Tencent is pleased to support the open source community by making trpc-agent-bench available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-bench is licensed under the Apache License Version 2.0.
//
//

package toolmatch

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// validateSchema validates parameters against a tool's declared input schema.
// Both values pass through a JSON round trip so the validator sees canonical
// JSON types regardless of how the trace was decoded.
func validateSchema(schemaMap map[string]any, params map[string]any) error {
	schemaValue, err := roundTrip(schemaMap)
	if err != nil {
		return fmt.Errorf("normalize schema: %w", err)
	}
	instance, err := roundTrip(params)
	if err != nil {
		return fmt.Errorf("normalize parameters: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", schemaValue); err != nil {
		return fmt.Errorf("add schema resource: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	if err := schema.Validate(instance); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// roundTrip re-encodes a value through JSON. A nil map becomes an empty
// object so that schemas with no required fields accept a call made with
// no parameters.
func roundTrip(value map[string]any) (any, error) {
	if value == nil {
		value = map[string]any{}
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var decoded any
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}
