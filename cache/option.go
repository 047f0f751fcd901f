//
// Tencent is pleased to support the open source community by making trpc-agent-bench available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-bench is licensed under the Apache License Version 2.0.
//
//

package cache

// Options configures the file-backed cache.
type Options struct {
	// BaseDir is the directory cache entries are stored in.
	BaseDir string
}

// NewOptions applies provided options with defaults.
func NewOptions(opt ...Option) *Options {
	opts := &Options{
		BaseDir: "judge_cache",
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option configures the file-backed cache.
type Option func(*Options)

// WithBaseDir overrides the default base directory used to store entries.
func WithBaseDir(dir string) Option {
	return func(o *Options) {
		o.BaseDir = dir
	}
}
