package domain

// Classification is the result of mapping one product title to a tier name.
// Matched is false when no rule applied; TierName is then empty unless the
// legacy catch-all default is enabled.
type Classification struct {
	TierName string `json:"tier_name"`
	Matched  bool   `json:"matched"`
	Rule     string `json:"rule,omitempty"`
}

// LegacyDefaultTier is the catch-all the original tooling silently assigned
// to products matching no rule. Kept only behind the legacy config flag.
const LegacyDefaultTier = "SUIT_BASIC"
