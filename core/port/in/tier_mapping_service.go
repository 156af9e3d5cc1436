// Package in defines inbound ports implemented by core services.
package in

import (
	"context"

	"tier_server/core/domain"
)

// ApplyOptions controls a bulk apply run.
type ApplyOptions struct {
	// RewritePrices additionally replaces every variant's per-region prices
	// with the tier price. When false only product metadata is written.
	RewritePrices bool
}

// MappingService orchestrates classification and persistence across the
// whole catalog.
type MappingService interface {
	// Preview classifies every product without writing anything. limit caps
	// the number of mappings included in the report sample (<=0 means all).
	Preview(ctx context.Context, limit int) (*domain.PreviewReport, error)

	// Apply classifies every product and persists the results. Per-product
	// failures are recorded in the report; only a failed catalog listing
	// aborts the run. A second concurrent Apply is rejected.
	Apply(ctx context.Context, opts ApplyOptions) (*domain.BatchReport, error)

	// Runs returns recent persisted run reports.
	Runs(ctx context.Context, limit int) ([]*domain.BatchReport, error)

	// Run returns one persisted run report by id.
	Run(ctx context.Context, id string) (*domain.BatchReport, error)
}
