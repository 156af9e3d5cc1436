package out

import "context"

// TierSuggester proposes a tier for a product the rule set could not
// classify. Implementations call an external model; the result is advisory
// and only surfaced in preview mode, never applied automatically.
type TierSuggester interface {
	// SuggestTier returns one of candidates, or "" when the suggester has no
	// confident answer.
	SuggestTier(ctx context.Context, productTitle string, candidates []string) (string, error)
}
