//
// Tencent is pleased to support the open source community by making trpc-agent-bench available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-bench is licensed under the Apache License Version 2.0.
//
//

// Package cache provides content-addressed storage for judge responses.
// Keys are request fingerprints, so identical scoring requests reuse the
// judge's earlier answer instead of paying for a second call.
package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Cache stores raw judge responses keyed by request fingerprint.
type Cache interface {
	// Get returns the cached response for the key, reporting presence.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores the response under the key.
	Set(ctx context.Context, key, value string) error
}

// fileCache persists responses as one file per key under a base directory.
// Writes go through a temp file and rename, so a crash mid-write never
// leaves a torn entry behind.
type fileCache struct {
	baseDir string
	mu      sync.Mutex
}

// NewFileCache creates a file-backed cache.
// Use functional options (see option.go) to override the default directory.
func NewFileCache(opt ...Option) Cache {
	opts := NewOptions(opt...)
	return &fileCache{baseDir: opts.BaseDir}
}

// Get reads the cached response for the key.
func (c *fileCache) Get(ctx context.Context, key string) (string, bool, error) {
	_ = ctx
	if err := validateKey(key); err != nil {
		return "", false, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	data, err := os.ReadFile(c.entryPath(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}

// Set stores the response under the key, all-or-nothing.
func (c *fileCache) Set(ctx context.Context, key, value string) error {
	_ = ctx
	if err := validateKey(key); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.MkdirAll(c.baseDir, 0o755); err != nil {
		return err
	}
	path := c.entryPath(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o644); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

func (c *fileCache) entryPath(key string) string {
	return filepath.Join(c.baseDir, key+".judge_response.txt")
}

// validateKey rejects keys that could escape the base directory. Fingerprint
// keys are hex digests, so anything else indicates a caller bug.
func validateKey(key string) error {
	if key == "" {
		return errors.New("cache key is empty")
	}
	if strings.ContainsAny(key, "/\\.") {
		return fmt.Errorf("cache key %q contains path characters", key)
	}
	return nil
}

// memoryCache keeps entries in process memory. Suitable for tests and
// single-run deduplication.
type memoryCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewInMemory creates a memory-backed cache.
func NewInMemory() Cache {
	return &memoryCache{entries: make(map[string]string)}
}

// Get returns the cached response for the key.
func (c *memoryCache) Get(ctx context.Context, key string) (string, bool, error) {
	_ = ctx
	if err := validateKey(key); err != nil {
		return "", false, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.entries[key]
	return value, ok, nil
}

// Set stores the response under the key.
func (c *memoryCache) Set(ctx context.Context, key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	_ = ctx
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}
