package store

import (
	"database/sql"
	"fmt"
	"time"

	"orientinsight/internal/model"
)

// ImportLog is one persisted batch record.
type ImportLog struct {
	ID           int64      `json:"id"`
	FileCount    int        `json:"fileCount"`
	ParsedFiles  int        `json:"parsedFiles"`
	CreatedCount int        `json:"createdCount"`
	SkippedCount int        `json:"skippedCount"`
	FailureCount int        `json:"failureCount"`
	Status       string     `json:"status"` // completed / completed_with_failures / failed
	ErrorMessage string     `json:"errorMessage,omitempty"`
	StartedAt    time.Time  `json:"startedAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

// RecordImport persists the outcome of one batch.
func (s *Store) RecordImport(summary *model.ImportSummary, errorMessage string) (int64, error) {
	status := "completed"
	switch {
	case errorMessage != "":
		status = "failed"
	case len(summary.Failures) > 0:
		status = "completed_with_failures"
	}

	now := time.Now().UTC()
	started := now.Add(-summary.Duration)

	res, err := s.db.Exec(`
		INSERT INTO import_logs (
			file_count, parsed_files, created_count, skipped_count,
			failure_count, status, error_message, started_at, completed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, summary.TotalFiles, summary.ParsedFiles, summary.Created, summary.Skipped,
		len(summary.Failures), status, errorMessage,
		started.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("failed to record import: %w", err)
	}
	return res.LastInsertId()
}

// ListImportLogs returns the most recent batches first.
func (s *Store) ListImportLogs(limit int) ([]ImportLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, file_count, parsed_files, created_count, skipped_count,
		       failure_count, status, error_message, started_at, completed_at
		FROM import_logs ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list import logs: %w", err)
	}
	defer rows.Close()

	var result []ImportLog
	for rows.Next() {
		var l ImportLog
		var started string
		var completed sql.NullString
		err := rows.Scan(&l.ID, &l.FileCount, &l.ParsedFiles, &l.CreatedCount,
			&l.SkippedCount, &l.FailureCount, &l.Status, &l.ErrorMessage,
			&started, &completed)
		if err != nil {
			return nil, fmt.Errorf("failed to scan import log: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, started); err == nil {
			l.StartedAt = t
		}
		if completed.Valid {
			if t, err := time.Parse(time.RFC3339, completed.String); err == nil {
				l.CompletedAt = &t
			}
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

// LastImportTime returns the completion time of the most recent batch, empty
// when nothing was imported yet.
func (s *Store) LastImportTime() (string, error) {
	var completed sql.NullString
	err := s.db.QueryRow(`
		SELECT completed_at FROM import_logs ORDER BY id DESC LIMIT 1
	`).Scan(&completed)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read last import time: %w", err)
	}
	return completed.String, nil
}
