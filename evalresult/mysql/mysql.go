//
// Tencent is pleased to support the open source community by making trpc-agent-bench available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-bench is licensed under the Apache License Version 2.0.
//
//

// Package mysql provides a MySQL-backed run result manager.
package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	// Register the MySQL driver.
	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"trpc.group/trpc-go/trpc-agent-bench/evalresult"
	"trpc.group/trpc-go/trpc-agent-bench/scoring"
)

var _ evalresult.Manager = (*manager)(nil)

// schemaTemplate creates the run results table. JSON payloads keep the
// score records schema-free; the indexed columns cover lookup and listing.
const schemaTemplate = `CREATE TABLE IF NOT EXISTS %s (
  id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
  run_result_id VARCHAR(191) NOT NULL,
  run_result_name VARCHAR(191) NOT NULL,
  suite_id VARCHAR(191) NOT NULL DEFAULT '',
  case_scores JSON NOT NULL,
  summary JSON NULL,
  created_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
  updated_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6) ON UPDATE CURRENT_TIMESTAMP(6),
  PRIMARY KEY (id),
  UNIQUE KEY uk_run_result_id (run_result_id)
)`

type manager struct {
	db    *sql.DB
	table string
}

// New creates a MySQL-backed run result manager.
func New(opt ...Option) (evalresult.Manager, error) {
	opts := newOptions(opt...)
	db := opts.db
	if db == nil {
		if opts.dsn == "" {
			return nil, errors.New("mysql dsn is empty")
		}
		opened, err := sql.Open("mysql", opts.dsn)
		if err != nil {
			return nil, fmt.Errorf("open mysql: %w", err)
		}
		db = opened
	}
	m := &manager{db: db, table: opts.tablePrefix + "run_results"}
	if !opts.skipInit {
		ctx, cancel := context.WithTimeout(context.Background(), opts.initTimeout)
		defer cancel()
		if _, err := db.ExecContext(ctx, fmt.Sprintf(schemaTemplate, m.table)); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init run results table: %w", err)
		}
	}
	return m, nil
}

// Save upserts a run result into MySQL and returns its ID.
func (m *manager) Save(ctx context.Context, result *evalresult.RunResult) (string, error) {
	if result == nil {
		return "", errors.New("run result is nil")
	}
	runResultID := result.RunResultID
	if runResultID == "" {
		runResultID = uuid.New().String()
	}
	name := result.RunResultName
	if name == "" {
		name = runResultID
	}
	caseScores := result.CaseScores
	if caseScores == nil {
		caseScores = []*scoring.CaseScore{}
	}
	casePayload, err := json.Marshal(caseScores)
	if err != nil {
		return "", fmt.Errorf("marshal case scores: %w", err)
	}
	var summaryPayload any
	if result.Summary != nil {
		summaryBytes, err := json.Marshal(result.Summary)
		if err != nil {
			return "", fmt.Errorf("marshal summary: %w", err)
		}
		summaryPayload = summaryBytes
	}
	query := fmt.Sprintf(
		`INSERT INTO %s (run_result_id, run_result_name, suite_id, case_scores, summary)
		 VALUES (?, ?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE
		   run_result_name = VALUES(run_result_name),
		   suite_id = VALUES(suite_id),
		   case_scores = VALUES(case_scores),
		   summary = VALUES(summary),
		   updated_at = CURRENT_TIMESTAMP(6)`,
		m.table,
	)
	if _, err := m.db.ExecContext(ctx, query, runResultID, name, result.SuiteID,
		casePayload, summaryPayload); err != nil {
		return "", fmt.Errorf("store run result %s: %w", runResultID, err)
	}
	return runResultID, nil
}

// Get loads a run result from MySQL.
func (m *manager) Get(ctx context.Context, runResultID string) (*evalresult.RunResult, error) {
	if runResultID == "" {
		return nil, errors.New("run result id is empty")
	}
	var (
		name        string
		suiteID     string
		casePayload []byte
		summary     sql.NullString
		createdAt   time.Time
	)
	query := fmt.Sprintf(
		"SELECT run_result_name, suite_id, case_scores, summary, created_at FROM %s WHERE run_result_id = ?",
		m.table,
	)
	row := m.db.QueryRowContext(ctx, query, runResultID)
	if err := row.Scan(&name, &suiteID, &casePayload, &summary, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("run result %s not found: %w", runResultID, os.ErrNotExist)
		}
		return nil, fmt.Errorf("load run result %s: %w", runResultID, err)
	}
	var caseScores []*scoring.CaseScore
	if err := json.Unmarshal(casePayload, &caseScores); err != nil {
		return nil, fmt.Errorf("unmarshal case scores %s: %w", runResultID, err)
	}
	var summaryObj *evalresult.RunSummary
	if summary.Valid && summary.String != "" {
		var s evalresult.RunSummary
		if err := json.Unmarshal([]byte(summary.String), &s); err != nil {
			return nil, fmt.Errorf("unmarshal summary %s: %w", runResultID, err)
		}
		summaryObj = &s
	}
	return &evalresult.RunResult{
		RunResultID:       runResultID,
		RunResultName:     name,
		SuiteID:           suiteID,
		CaseScores:        caseScores,
		Summary:           summaryObj,
		CreationTimestamp: createdAt,
	}, nil
}

// List returns the IDs of all stored run results, oldest first.
func (m *manager) List(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf("SELECT run_result_id FROM %s ORDER BY created_at", m.table)
	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list run results: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan run result id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run results: %w", err)
	}
	return ids, nil
}

// Close releases the database handle.
func (m *manager) Close() error {
	if m.db == nil {
		return nil
	}
	return m.db.Close()
}
