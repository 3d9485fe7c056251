package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Run is one recorded command invocation
type Run struct {
	RunID      int64
	Command    string
	DryRun     bool
	StartedAt  time.Time
	FinishedAt sql.NullTime
	Total      int
	Succeeded  int
	Skipped    int
	Failed     int
}

// RunItem is the outcome of one item within a run
type RunItem struct {
	ItemID       int64
	RunID        int64
	Item         string
	Status       string
	Detail       string
	ErrorMessage string
}

// RunCounts are the totals stored when a run finishes
type RunCounts struct {
	Total     int
	Succeeded int
	Skipped   int
	Failed    int
}

// StartRun inserts a run row and returns its ID
func (db *DB) StartRun(command string, dryRun bool) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO runs (command, dry_run, started_at)
		VALUES (?, ?, ?)
	`, command, dryRun, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to start run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return runID, nil
}

// RecordItem stores the outcome of one item
func (db *DB) RecordItem(runID int64, item, status, detail, errorMessage string) error {
	_, err := db.Exec(`
		INSERT INTO run_items (run_id, item, status, detail, error_message)
		VALUES (?, ?, ?, ?, ?)
	`, runID, item, status, detail, errorMessage)
	if err != nil {
		return fmt.Errorf("failed to record item %s: %w", item, err)
	}
	return nil
}

// FinishRun stamps the run with its end time and totals
func (db *DB) FinishRun(runID int64, counts RunCounts) error {
	result, err := db.Exec(`
		UPDATE runs
		SET finished_at = ?, total = ?, succeeded = ?, skipped = ?, failed = ?
		WHERE run_id = ?
	`, time.Now().UTC(), counts.Total, counts.Succeeded, counts.Skipped, counts.Failed, runID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("run %d not found", runID)
	}
	return nil
}

const runColumns = `run_id, command, dry_run, started_at, finished_at, total, succeeded, skipped, failed`

func scanRun(row interface{ Scan(...any) error }) (Run, error) {
	var r Run
	err := row.Scan(&r.RunID, &r.Command, &r.DryRun, &r.StartedAt, &r.FinishedAt,
		&r.Total, &r.Succeeded, &r.Skipped, &r.Failed)
	return r, err
}

// ListRuns returns the most recent runs first
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, run_id DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun retrieves a run by ID
func (db *DB) GetRun(runID int64) (*Run, error) {
	r, err := scanRun(db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &r, nil
}

// GetRunItems returns the items of a run in insertion order
func (db *DB) GetRunItems(runID int64) ([]RunItem, error) {
	rows, err := db.Query(`
		SELECT item_id, run_id, item, status, COALESCE(detail, ''), COALESCE(error_message, '')
		FROM run_items
		WHERE run_id = ?
		ORDER BY item_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run items: %w", err)
	}
	defer rows.Close()

	var items []RunItem
	for rows.Next() {
		var it RunItem
		if err := rows.Scan(&it.ItemID, &it.RunID, &it.Item, &it.Status, &it.Detail, &it.ErrorMessage); err != nil {
			return nil, fmt.Errorf("failed to scan run item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
