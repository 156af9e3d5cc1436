// Package classifier maps product titles to pricing tier names with an
// ordered keyword rule table. Matching is case-insensitive substring matching
// with no scoring: the first rule that hits decides.
package classifier

import (
	"strings"

	"tier_server/core/domain"
)

// Classifier applies a RuleSet to product titles. It is pure and safe for
// concurrent use: the same title and hint always produce the same result.
type Classifier struct {
	rules         *RuleSet
	legacyDefault bool
}

// New builds a classifier. When legacyDefault is set, products matching no
// rule get the old catch-all tier instead of an unclassified result.
func New(rules *RuleSet, legacyDefault bool) *Classifier {
	return &Classifier{rules: rules, legacyDefault: legacyDefault}
}

// Classify maps one product to a tier. categoryHint is the product's catalog
// category name and may be empty; it only widens category gates, it never
// overrides a title match from an earlier category.
func (c *Classifier) Classify(productTitle, categoryHint string) domain.Classification {
	t := title{
		text: strings.ToLower(productTitle),
		hint: strings.ToLower(categoryHint),
	}
	for _, cat := range c.rules.categories {
		if !cat.applies(t) {
			continue
		}
		for _, r := range cat.rules {
			if r.match(t) {
				return domain.Classification{
					TierName: r.tier,
					Matched:  true,
					Rule:     cat.name + ":" + r.name,
				}
			}
		}
		return domain.Classification{
			TierName: cat.fallback,
			Matched:  true,
			Rule:     cat.name + ":default",
		}
	}
	if c.legacyDefault {
		return domain.Classification{
			TierName: domain.LegacyDefaultTier,
			Rule:     "legacy:default",
		}
	}
	return domain.Classification{}
}
