//
// Tencent is pleased to support the open source community by making trpc-agent-bench available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-bench is licensed under the Apache License Version 2.0.
//
//

package mysql

import (
	"database/sql"
	"time"
)

// options aggregates configurable parts of the MySQL manager.
type options struct {
	dsn         string
	tablePrefix string
	db          *sql.DB
	skipInit    bool
	initTimeout time.Duration
}

// newOptions applies provided options with defaults.
func newOptions(opt ...Option) *options {
	opts := &options{
		tablePrefix: "bench_",
		initTimeout: 10 * time.Second,
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option is a function that configures the MySQL manager.
type Option func(*options)

// WithDSN sets the MySQL data source name.
func WithDSN(dsn string) Option {
	return func(o *options) {
		o.dsn = dsn
	}
}

// WithTablePrefix sets the table name prefix.
func WithTablePrefix(prefix string) Option {
	return func(o *options) {
		o.tablePrefix = prefix
	}
}

// WithDB injects an existing database handle instead of opening one.
func WithDB(db *sql.DB) Option {
	return func(o *options) {
		o.db = db
	}
}

// WithSkipInit skips table creation on startup.
func WithSkipInit(skip bool) Option {
	return func(o *options) {
		o.skipInit = skip
	}
}

// WithInitTimeout bounds table creation on startup.
func WithInitTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.initTimeout = timeout
	}
}
