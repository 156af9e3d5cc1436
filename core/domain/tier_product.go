package domain

import "tier_server/pkg/money"

// Metadata keys written by the bulk updater. Earlier tooling wrote both
// "price_tier" and "tier" for the same value; "tier" is the unified key.
const (
	MetaKeyTier          = "tier"
	MetaKeyTierPrice     = "tier_price"
	MetaKeyStripePriceID = "stripe_price_id"
)

// Product is a catalog product owned by the external commerce platform. The
// engine reads Title and CategoryID and writes tier keys into Metadata; it
// never owns the product lifecycle.
type Product struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	CategoryID string           `json:"category_id,omitempty"`
	Metadata   map[string]any   `json:"metadata,omitempty"`
	Variants   []ProductVariant `json:"variants,omitempty"`
}

// ProductVariant belongs to exactly one product.
type ProductVariant struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Title     string `json:"title,omitempty"`
}

// Price is a per-region price row attached to a variant.
type Price struct {
	ID           string      `json:"id,omitempty"`
	VariantID    string      `json:"variant_id"`
	CurrencyCode string      `json:"currency_code"`
	Amount       money.Cents `json:"amount"`
	Title        string      `json:"title,omitempty"`
}

// Region is a selling region of the commerce platform.
type Region struct {
	ID           string `json:"id"`
	Name         string `json:"name,omitempty"`
	CurrencyCode string `json:"currency_code"`
}
