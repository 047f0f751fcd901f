//
// Tencent is pleased to support the open source community by making trpc-agent-bench available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-bench is licensed under the Apache License Version 2.0.
//
//

package service

import (
	"trpc.group/trpc-go/trpc-agent-bench/evalresult"
	evalresultlocal "trpc.group/trpc-go/trpc-agent-bench/evalresult/local"
)

// DefaultCaseParallelism is the number of cases scored concurrently.
const DefaultCaseParallelism = 4

// Options holds the options for the evaluation service.
type Options struct {
	// ResultManager is used to store run results.
	ResultManager evalresult.Manager
	// CaseParallelism is the number of cases scored concurrently.
	CaseParallelism int
}

// Option defines a function type for configuring the evaluation service.
type Option func(*Options)

// NewOptions creates a new Options with the default values.
func NewOptions(opt ...Option) *Options {
	opts := &Options{
		ResultManager:   evalresultlocal.NewManager(),
		CaseParallelism: DefaultCaseParallelism,
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// WithResultManager sets the run result manager.
// Local file manager is used by default.
func WithResultManager(m evalresult.Manager) Option {
	return func(o *Options) {
		o.ResultManager = m
	}
}

// WithCaseParallelism sets the number of cases scored concurrently.
func WithCaseParallelism(parallelism int) Option {
	return func(o *Options) {
		o.CaseParallelism = parallelism
	}
}
