// Package out defines outbound ports implemented by adapters.
package out

import (
	"context"

	"tier_server/core/domain"
)

// CommercePort is the engine's view of the external commerce platform.
// Implementations talk to the platform's admin API; the engine never touches
// platform storage directly.
type CommercePort interface {
	// ListProducts returns the full catalog with variants.
	ListProducts(ctx context.Context) ([]domain.Product, error)

	// ListRegions returns all selling regions.
	ListRegions(ctx context.Context) ([]domain.Region, error)

	// UpdateProductMetadata merges the given keys into the product's
	// existing metadata. Keys not present in metadata are left untouched.
	UpdateProductMetadata(ctx context.Context, productID string, metadata map[string]any) error

	// ReplaceVariantPrices atomically swaps all prices of a variant for the
	// given set. An interrupted replace is reported as an error; the adapter
	// must not leave the variant silently half-updated.
	ReplaceVariantPrices(ctx context.Context, variantID string, prices []domain.Price) error
}
