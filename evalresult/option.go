//
// Tencent is pleased to support the open source community by making trpc-agent-bench available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-bench is licensed under the Apache License Version 2.0.
//
//

package evalresult

// Options configures the local run result manager.
type Options struct {
	// BaseDir is the directory run results are stored in.
	BaseDir string
}

// NewOptions applies provided options with defaults.
func NewOptions(opt ...Option) *Options {
	opts := &Options{
		BaseDir: "run_results",
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option configures the local run result manager.
type Option func(*Options)

// WithBaseDir overrides the default base directory used to store results.
func WithBaseDir(dir string) Option {
	return func(o *Options) {
		o.BaseDir = dir
	}
}
