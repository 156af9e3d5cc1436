package out

import (
	"context"

	"tier_server/core/domain"
)

// RunRepository persists bulk run reports for operator audit.
type RunRepository interface {
	SaveRun(ctx context.Context, report *domain.BatchReport) error
	GetRun(ctx context.Context, id string) (*domain.BatchReport, error)
	ListRuns(ctx context.Context, limit int) ([]*domain.BatchReport, error)
}
