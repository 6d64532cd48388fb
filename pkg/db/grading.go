package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dtnitsch/worksheet-kit/models"
	"github.com/google/uuid"
)

// GradingSession is a grade run or an interactive worksheet session.
type GradingSession struct {
	SessionID     string    `json:"session_id" yaml:"session_id"`
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
	PackTitle     string    `json:"pack_title" yaml:"pack_title"`
	Mode          string    `json:"mode" yaml:"mode"`
	ItemCount     int       `json:"item_count" yaml:"item_count"`
	CorrectCount  int       `json:"correct" yaml:"correct"`
	GradedCount   int       `json:"graded" yaml:"graded"`
	UngradedCount int       `json:"ungraded" yaml:"ungraded"`
}

// GradingResult is the stored verdict for one item.
type GradingResult struct {
	ItemID    int    `json:"id" yaml:"id"`
	Verdict   string `json:"verdict" yaml:"verdict"`
	Submitted string `json:"submitted" yaml:"submitted"`
	Expected  string `json:"expected" yaml:"expected"`
}

// CreateGradingSession starts a session and returns its uuid.
func (db *DB) CreateGradingSession(packTitle string, mode models.Mode, itemCount int) (string, error) {
	id := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO grading_sessions (session_id, pack_title, mode, item_count)
		VALUES (?, ?, ?, ?)
	`, id, packTitle, string(mode), itemCount)
	if err != nil {
		return "", fmt.Errorf("failed to create grading session: %w", err)
	}
	return id, nil
}

// RecordResult stores a verdict, replacing an earlier one for the same item.
func (db *DB) RecordResult(sessionID string, v models.GradingVerdict, submitted string) error {
	_, err := db.Exec(`
		INSERT INTO grading_results (session_id, item_id, verdict, submitted, expected)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(session_id, item_id) DO UPDATE SET
			verdict = excluded.verdict,
			submitted = excluded.submitted,
			expected = excluded.expected,
			checked_at = CURRENT_TIMESTAMP
	`, sessionID, v.ItemID, string(v.Verdict), submitted, v.Answer)
	if err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}
	return nil
}

// UpdateScore stores the session totals.
func (db *DB) UpdateScore(sessionID string, s models.Score) error {
	res, err := db.Exec(`
		UPDATE grading_sessions
		SET correct_count = ?, graded_count = ?, ungraded_count = ?
		WHERE session_id = ?
	`, s.Correct, s.Graded, s.Ungraded, sessionID)
	if err != nil {
		return fmt.Errorf("failed to update score: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("grading session %s not found", sessionID)
	}
	return nil
}

// GetGradingSession retrieves a session by id.
func (db *DB) GetGradingSession(sessionID string) (*GradingSession, error) {
	var s GradingSession
	err := db.QueryRow(`
		SELECT session_id, created_at, pack_title, mode, item_count,
		       correct_count, graded_count, ungraded_count
		FROM grading_sessions WHERE session_id = ?
	`, sessionID).Scan(&s.SessionID, &s.CreatedAt, &s.PackTitle, &s.Mode, &s.ItemCount,
		&s.CorrectCount, &s.GradedCount, &s.UngradedCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("grading session %s not found", sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get grading session: %w", err)
	}
	return &s, nil
}

// ListGradingSessions returns sessions newest first. A limit of 0 returns all.
func (db *DB) ListGradingSessions(limit int) ([]GradingSession, error) {
	query := `
		SELECT session_id, created_at, pack_title, mode, item_count,
		       correct_count, graded_count, ungraded_count
		FROM grading_sessions
		ORDER BY created_at DESC, rowid DESC
	`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list grading sessions: %w", err)
	}
	defer rows.Close()

	var sessions []GradingSession
	for rows.Next() {
		var s GradingSession
		if err := rows.Scan(&s.SessionID, &s.CreatedAt, &s.PackTitle, &s.Mode, &s.ItemCount,
			&s.CorrectCount, &s.GradedCount, &s.UngradedCount); err != nil {
			return nil, fmt.Errorf("failed to scan grading session: %w", err)
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}

// GetGradingResults returns a session's verdicts ordered by item id.
func (db *DB) GetGradingResults(sessionID string) ([]GradingResult, error) {
	rows, err := db.Query(`
		SELECT item_id, verdict, submitted, expected
		FROM grading_results
		WHERE session_id = ?
		ORDER BY item_id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get grading results: %w", err)
	}
	defer rows.Close()

	var results []GradingResult
	for rows.Next() {
		var r GradingResult
		if err := rows.Scan(&r.ItemID, &r.Verdict, &r.Submitted, &r.Expected); err != nil {
			return nil, fmt.Errorf("failed to scan grading result: %w", err)
		}
		results = append(results, r)
	}

	return results, rows.Err()
}
