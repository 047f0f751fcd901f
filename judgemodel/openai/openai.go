//
// Tencent is pleased to support the open source community by making trpc-agent-bench available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-bench is licensed under the Apache License Version 2.0.
//
//

// Package openai provides an OpenAI-compatible judge model client.
package openai

import (
	"context"
	"fmt"
	"os"

	"github.com/openai/openai-go"
	openaiopt "github.com/openai/openai-go/option"
)

const defaultModelName = "gpt-4o-mini"

// Model is a judge model backed by an OpenAI-compatible chat endpoint.
type Model struct {
	client      openai.Client
	name        string
	temperature *float64
	maxTokens   *int
}

// New creates a judge model client. The API key falls back to the
// OPENAI_API_KEY environment variable when not configured.
func New(opt ...Option) *Model {
	opts := newOptions(opt...)
	var clientOpts []openaiopt.RequestOption
	if opts.apiKey != "" {
		clientOpts = append(clientOpts, openaiopt.WithAPIKey(opts.apiKey))
	}
	if opts.baseURL != "" {
		clientOpts = append(clientOpts, openaiopt.WithBaseURL(opts.baseURL))
	}
	clientOpts = append(clientOpts, opts.requestOptions...)
	return &Model{
		client:      openai.NewClient(clientOpts...),
		name:        opts.modelName,
		temperature: opts.temperature,
		maxTokens:   opts.maxTokens,
	}
}

// Name returns the judge model identifier.
func (m *Model) Name() string {
	return m.name
}

// Complete sends one prompt as a single user message and returns the raw
// response text. No retry is performed here.
func (m *Model) Complete(ctx context.Context, prompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(m.name),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}
	if m.temperature != nil {
		params.Temperature = openai.Float(*m.temperature)
	}
	if m.maxTokens != nil {
		params.MaxCompletionTokens = openai.Int(int64(*m.maxTokens))
	}
	chatCompletion, err := m.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("judge model request: %w", err)
	}
	if len(chatCompletion.Choices) == 0 {
		return "", fmt.Errorf("judge model returned no choices")
	}
	return chatCompletion.Choices[0].Message.Content, nil
}

// options aggregates configurable parts of Model.
type options struct {
	apiKey         string
	baseURL        string
	modelName      string
	temperature    *float64
	maxTokens      *int
	requestOptions []openaiopt.RequestOption
}

// newOptions applies provided options with defaults.
func newOptions(opt ...Option) *options {
	opts := &options{
		apiKey:    os.Getenv("OPENAI_API_KEY"),
		modelName: defaultModelName,
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option is a function that configures Model.
type Option func(*options)

// WithAPIKey sets the API key.
func WithAPIKey(apiKey string) Option {
	return func(o *options) {
		o.apiKey = apiKey
	}
}

// WithBaseURL sets the endpoint base URL for OpenAI-compatible providers.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithModelName sets the judge model name.
func WithModelName(name string) Option {
	return func(o *options) {
		o.modelName = name
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(temperature float64) Option {
	return func(o *options) {
		o.temperature = &temperature
	}
}

// WithMaxTokens caps the response length.
func WithMaxTokens(maxTokens int) Option {
	return func(o *options) {
		o.maxTokens = &maxTokens
	}
}

// WithRequestOptions appends extra request options passed to the client.
func WithRequestOptions(requestOptions ...openaiopt.RequestOption) Option {
	return func(o *options) {
		o.requestOptions = append(o.requestOptions, requestOptions...)
	}
}
