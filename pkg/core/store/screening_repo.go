package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"eumr_screening/pkg/core/eumr"
)

// ErrNotFound means no stored screening matches the requested id.
var ErrNotFound = errors.New("screening not found")

// ScreeningSummary is a history-listing row; the full analysis is loaded
// separately by id.
type ScreeningSummary struct {
	ID                   string    `json:"id"`
	Ticker1              string    `json:"ticker1"`
	Ticker2              string    `json:"ticker2"`
	NotificationRequired bool      `json:"notification_required"`
	CreatedAt            time.Time `json:"created_at"`
}

// ScreeningRepo stores completed MergerAnalysis records.
type ScreeningRepo struct{}

// NewScreeningRepo creates a new repository instance.
func NewScreeningRepo() *ScreeningRepo {
	return &ScreeningRepo{}
}

// Save persists one analysis. Records are append-only; re-screening the
// same pair inserts a new row with its own id.
func (r *ScreeningRepo) Save(ctx context.Context, analysis *eumr.MergerAnalysis) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	query := `
		INSERT INTO merger_screenings (id, ticker1, ticker2, analysis_json, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err = pool.Exec(ctx, query,
		analysis.ID,
		analysis.Company1.Profile.Ticker,
		analysis.Company2.Profile.Ticker,
		jsonData,
		analysis.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save screening: %w", err)
	}
	return nil
}

// Load retrieves the full analysis for a stored screening id.
func (r *ScreeningRepo) Load(ctx context.Context, id string) (*eumr.MergerAnalysis, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	var jsonData []byte
	err := pool.QueryRow(ctx, `SELECT analysis_json FROM merger_screenings WHERE id = $1`, id).Scan(&jsonData)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to load screening: %w", err)
	}

	var analysis eumr.MergerAnalysis
	if err := json.Unmarshal(jsonData, &analysis); err != nil {
		return nil, fmt.Errorf("failed to unmarshal screening %s: %w", id, err)
	}
	return &analysis, nil
}

// ListRecent returns the newest screenings, most recent first.
func (r *ScreeningRepo) ListRecent(ctx context.Context, limit int) ([]ScreeningSummary, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, ticker1, ticker2,
		       (analysis_json -> 'eumr_analysis' ->> 'notification_required')::bool,
		       created_at
		FROM merger_screenings
		ORDER BY created_at DESC
		LIMIT $1;
	`
	rows, err := pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list screenings: %w", err)
	}
	defer rows.Close()

	var summaries []ScreeningSummary
	for rows.Next() {
		var s ScreeningSummary
		if err := rows.Scan(&s.ID, &s.Ticker1, &s.Ticker2, &s.NotificationRequired, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan screening row: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
