//
// Tencent is pleased to support the open source community by making trpc-agent-bench available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-bench is licensed under the Apache License Version 2.0.
//
//

// Package local provides a local file storage implementation for run results.
package local

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"trpc.group/trpc-go/trpc-agent-bench/evalresult"
)

const resultSuffix = ".run_result.json"

// manager implements the evalresult.Manager interface using local file storage.
type manager struct {
	baseDir string
	mu      sync.Mutex
}

// NewManager creates a new local file run result manager.
// Use functional options to override the default directory.
func NewManager(opt ...evalresult.Option) evalresult.Manager {
	opts := evalresult.NewOptions(opt...)
	return &manager{baseDir: opts.BaseDir}
}

// Save stores a run result to local file, atomically.
func (m *manager) Save(ctx context.Context, result *evalresult.RunResult) (string, error) {
	_ = ctx
	if result == nil {
		return "", errors.New("run result is nil")
	}
	if result.RunResultID == "" {
		result.RunResultID = uuid.New().String()
	}
	if result.RunResultName == "" {
		result.RunResultName = result.RunResultID
	}
	if result.CreationTimestamp.IsZero() {
		result.CreationTimestamp = time.Now()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := os.MkdirAll(m.baseDir, 0o755); err != nil {
		return "", err
	}
	path := m.resultPath(result.RunResultID)
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return "", err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", err
	}
	return result.RunResultID, nil
}

// Get retrieves a run result by ID from local file.
func (m *manager) Get(ctx context.Context, runResultID string) (*evalresult.RunResult, error) {
	_ = ctx
	if runResultID == "" {
		return nil, errors.New("run result id is empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	f, err := os.Open(m.resultPath(runResultID))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var result evalresult.RunResult
	if err := json.NewDecoder(f).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// List returns the IDs of all stored run results.
func (m *manager) List(ctx context.Context) ([]string, error) {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()
	entries, err := os.ReadDir(m.baseDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), resultSuffix) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(entry.Name(), resultSuffix))
	}
	return ids, nil
}

// Close implements evalresult.Manager. Local files hold no open resources.
func (m *manager) Close() error {
	return nil
}

func (m *manager) resultPath(runResultID string) string {
	return filepath.Join(m.baseDir, runResultID+resultSuffix)
}
