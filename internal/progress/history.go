package progress

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Result is one finished quiz as stored in quiz_results.
type Result struct {
	RunID       string
	Category    string
	Correct     int
	Incorrect   int
	Percent     int
	Duration    time.Duration
	CompletedAt time.Time
}

type CategoryStat struct {
	Category string
	Plays    int
	Best     int
	Average  float64
}

type History struct {
	db *sql.DB
}

func NewHistory(db *sql.DB) *History {
	return &History{db: db}
}

func (h *History) Record(ctx context.Context, r Result) error {
	_, err := h.db.ExecContext(ctx,
		"INSERT INTO quiz_results (run_id, category, correct, incorrect, percent, duration_ms) VALUES (?, ?, ?, ?, ?, ?)",
		r.RunID, r.Category, r.Correct, r.Incorrect, r.Percent, r.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("failed to record quiz result: %w", err)
	}
	return nil
}

func (h *History) Recent(ctx context.Context, limit int) ([]Result, error) {
	rows, err := h.db.QueryContext(ctx, `
		SELECT run_id, category, correct, incorrect, percent, duration_ms, completed_at
		FROM quiz_results
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query quiz results: %w", err)
	}
	defer rows.Close()
	var out []Result
	for rows.Next() {
		var r Result
		var durationMs int64
		if err := rows.Scan(&r.RunID, &r.Category, &r.Correct, &r.Incorrect, &r.Percent, &durationMs, &r.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan quiz result row: %w", err)
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		out = append(out, r)
	}
	return out, rows.Err()
}

func (h *History) Summary(ctx context.Context) ([]CategoryStat, error) {
	rows, err := h.db.QueryContext(ctx, `
		SELECT category, COUNT(id), MAX(percent), AVG(percent)
		FROM quiz_results
		GROUP BY category
		ORDER BY category ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query quiz summary: %w", err)
	}
	defer rows.Close()
	var out []CategoryStat
	for rows.Next() {
		var s CategoryStat
		if err := rows.Scan(&s.Category, &s.Plays, &s.Best, &s.Average); err != nil {
			return nil, fmt.Errorf("failed to scan quiz summary row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
