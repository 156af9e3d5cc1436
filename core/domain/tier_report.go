package domain

import (
	"time"

	"tier_server/pkg/money"
)

// RunMode distinguishes read-only previews from applied runs.
type RunMode string

const (
	RunModePreview RunMode = "preview"
	RunModeApply   RunMode = "apply"
)

// UpdateOutcome is one per-product result of a bulk run. Either the tier
// fields or Error is set, never both.
type UpdateOutcome struct {
	ProductID     string      `json:"product_id"`
	ProductTitle  string      `json:"product_title"`
	TierName      string      `json:"tier,omitempty"`
	Price         money.Cents `json:"price,omitempty"`
	StripePriceID string      `json:"stripe_id,omitempty"`
	ErrorCode     string      `json:"error_code,omitempty"`
	Error         string      `json:"error,omitempty"`
}

// Failed reports whether this outcome is an error outcome.
func (o UpdateOutcome) Failed() bool {
	return o.Error != ""
}

// BatchReport is the terminal artifact of one bulk run. It is returned to
// the caller and persisted to run history; it is never mutated afterwards.
type BatchReport struct {
	ID               string          `json:"id"`
	Mode             RunMode         `json:"mode"`
	StartedAt        time.Time       `json:"started_at"`
	FinishedAt       time.Time       `json:"finished_at"`
	TotalProducts    int             `json:"total_products"`
	UpdatedCount     int             `json:"updated"`
	ErrorCount       int             `json:"errors"`
	TierDistribution map[string]int  `json:"tier_distribution"`
	Outcomes         []UpdateOutcome `json:"outcomes"`
}

// PreviewMapping is one proposed assignment in a preview run.
type PreviewMapping struct {
	ProductID       string         `json:"product_id"`
	ProductTitle    string         `json:"product_title"`
	CurrentMetadata map[string]any `json:"current_metadata,omitempty"`
	SuggestedTier   string         `json:"suggested_tier,omitempty"`
	TierPrice       money.Cents    `json:"tier_price,omitempty"`
	StripePriceID   string         `json:"stripe_id,omitempty"`
	AISuggestion    string         `json:"ai_suggestion,omitempty"`
}

// PreviewReport summarizes a read-only classification pass over the catalog.
type PreviewReport struct {
	TotalProducts    int              `json:"total_products"`
	Mappings         []PreviewMapping `json:"mappings"`
	TierDistribution map[string]int   `json:"tier_distribution"`
	Unmapped         []string         `json:"unmapped"`
}
