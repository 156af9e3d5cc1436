// Package persistence provides database adapters implementing outbound ports.
package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tier_server/core/domain"
	"tier_server/pkg/apperr"

	"github.com/goccy/go-json"
	"github.com/jmoiron/sqlx"
)

// RunAdapter implements out.RunRepository on Postgres. Reports are stored as
// one row per run with the per-product outcomes in JSONB; run history is an
// append-only audit log, nothing ever updates a row.
type RunAdapter struct {
	db *sqlx.DB
}

// NewRunAdapter creates a new RunAdapter.
func NewRunAdapter(db *sqlx.DB) *RunAdapter {
	return &RunAdapter{db: db}
}

const runSchema = `
CREATE TABLE IF NOT EXISTS tier_runs (
	id UUID PRIMARY KEY,
	mode TEXT NOT NULL,
	started_at TIMESTAMPTZ NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL,
	total_products INT NOT NULL,
	updated_count INT NOT NULL,
	error_count INT NOT NULL,
	tier_distribution JSONB NOT NULL DEFAULT '{}',
	outcomes JSONB NOT NULL DEFAULT '[]',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_tier_runs_started_at ON tier_runs (started_at DESC);
`

// Migrate creates the run history table.
func (a *RunAdapter) Migrate(ctx context.Context) error {
	if _, err := a.db.ExecContext(ctx, runSchema); err != nil {
		return fmt.Errorf("failed to migrate tier_runs: %w", err)
	}
	return nil
}

// runRow represents the database row.
type runRow struct {
	ID               string    `db:"id"`
	Mode             string    `db:"mode"`
	StartedAt        time.Time `db:"started_at"`
	FinishedAt       time.Time `db:"finished_at"`
	TotalProducts    int       `db:"total_products"`
	UpdatedCount     int       `db:"updated_count"`
	ErrorCount       int       `db:"error_count"`
	TierDistribution []byte    `db:"tier_distribution"`
	Outcomes         []byte    `db:"outcomes"`
	CreatedAt        time.Time `db:"created_at"`
}

func (r *runRow) toEntity() (*domain.BatchReport, error) {
	report := &domain.BatchReport{
		ID:            r.ID,
		Mode:          domain.RunMode(r.Mode),
		StartedAt:     r.StartedAt,
		FinishedAt:    r.FinishedAt,
		TotalProducts: r.TotalProducts,
		UpdatedCount:  r.UpdatedCount,
		ErrorCount:    r.ErrorCount,
	}
	if err := json.Unmarshal(r.TierDistribution, &report.TierDistribution); err != nil {
		return nil, fmt.Errorf("failed to decode tier distribution for run %s: %w", r.ID, err)
	}
	if err := json.Unmarshal(r.Outcomes, &report.Outcomes); err != nil {
		return nil, fmt.Errorf("failed to decode outcomes for run %s: %w", r.ID, err)
	}
	return report, nil
}

// SaveRun inserts one run report.
func (a *RunAdapter) SaveRun(ctx context.Context, report *domain.BatchReport) error {
	distribution, err := json.Marshal(report.TierDistribution)
	if err != nil {
		return fmt.Errorf("failed to encode tier distribution: %w", err)
	}
	outcomes, err := json.Marshal(report.Outcomes)
	if err != nil {
		return fmt.Errorf("failed to encode outcomes: %w", err)
	}

	query := `
		INSERT INTO tier_runs
			(id, mode, started_at, finished_at, total_products, updated_count, error_count, tier_distribution, outcomes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = a.db.ExecContext(ctx, query,
		report.ID, string(report.Mode), report.StartedAt, report.FinishedAt,
		report.TotalProducts, report.UpdatedCount, report.ErrorCount,
		distribution, outcomes)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", report.ID, err)
	}
	return nil
}

// GetRun retrieves one run report by id.
func (a *RunAdapter) GetRun(ctx context.Context, id string) (*domain.BatchReport, error) {
	var row runRow
	query := `SELECT * FROM tier_runs WHERE id = $1`

	if err := a.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound("run")
		}
		return nil, fmt.Errorf("failed to get run %s: %w", id, err)
	}
	return row.toEntity()
}

// ListRuns retrieves the most recent run reports, newest first.
func (a *RunAdapter) ListRuns(ctx context.Context, limit int) ([]*domain.BatchReport, error) {
	var rows []runRow
	query := `SELECT * FROM tier_runs ORDER BY started_at DESC LIMIT $1`

	if err := a.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	reports := make([]*domain.BatchReport, 0, len(rows))
	for i := range rows {
		report, err := rows[i].toEntity()
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}
