package db

import (
	"fmt"
	"time"
)

// ValidationRun is one stored Monte-Carlo run header.
type ValidationRun struct {
	RunID      string    `json:"run_id"`
	Family     string    `json:"family"`
	Tau        float64   `json:"tau"`
	SampleSize int       `json:"sample_size"`
	Dims       int       `json:"dims"`
	GridK      int       `json:"grid_k"`
	Trials     int       `json:"trials"`
	CreatedAt  time.Time `json:"created_at"`
}

// ValidationResult is one selected-family count within a run.
type ValidationResult struct {
	RunID          string `json:"run_id"`
	SelectedFamily string `json:"selected_family"`
	Count          int    `json:"count"`
}

// RecordRun stores a run header and its per-family selection counts in
// one transaction.
func (db *DB) RecordRun(run ValidationRun, results []ValidationResult) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin run transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO validation_runs (run_id, family, tau, sample_size, dims, grid_k, trials)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Family, run.Tau, run.SampleSize, run.Dims, run.GridK, run.Trials,
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.RunID, err)
	}

	for _, r := range results {
		_, err = tx.Exec(
			`INSERT INTO validation_results (run_id, selected_family, count) VALUES (?, ?, ?)`,
			run.RunID, r.SelectedFamily, r.Count,
		)
		if err != nil {
			return fmt.Errorf("insert result %s/%s: %w", run.RunID, r.SelectedFamily, err)
		}
	}

	return tx.Commit()
}

// ListRuns returns the most recent run headers, newest first.
func (db *DB) ListRuns(limit int) ([]ValidationRun, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.Query(
		`SELECT run_id, family, tau, sample_size, dims, grid_k, trials, created_at
		 FROM validation_runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []ValidationRun
	for rows.Next() {
		var r ValidationRun
		if err := rows.Scan(&r.RunID, &r.Family, &r.Tau, &r.SampleSize, &r.Dims, &r.GridK, &r.Trials, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunResults returns the per-family counts for one run.
func (db *DB) RunResults(runID string) ([]ValidationResult, error) {
	rows, err := db.Query(
		`SELECT run_id, selected_family, count FROM validation_results
		 WHERE run_id = ? ORDER BY selected_family`, runID)
	if err != nil {
		return nil, fmt.Errorf("run results %s: %w", runID, err)
	}
	defer rows.Close()

	var results []ValidationResult
	for rows.Next() {
		var r ValidationResult
		if err := rows.Scan(&r.RunID, &r.SelectedFamily, &r.Count); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
