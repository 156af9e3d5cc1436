package classifier

import (
	"strings"

	"tier_server/core/domain"
	"tier_server/pkg/apperr"
)

// title is a product title prepared for matching: lowercased text plus an
// optional lowercased category hint from the catalog.
type title struct {
	text string
	hint string
}

func (t title) has(s string) bool {
	return strings.Contains(t.text, s)
}

func (t title) hasAny(subs ...string) bool {
	for _, s := range subs {
		if strings.Contains(t.text, s) {
			return true
		}
	}
	return false
}

func (t title) hintHas(s string) bool {
	return t.hint != "" && strings.Contains(t.hint, s)
}

// rule is one keyword predicate inside a category. Rules are evaluated in
// slice order; the first match wins.
type rule struct {
	name  string
	tier  string
	match func(title) bool
}

// category groups rules under a gate predicate. Categories are evaluated in
// slice order; the first category whose gate passes owns the product, and its
// fallback applies when none of its rules match.
type category struct {
	name     string
	applies  func(title) bool
	rules    []rule
	fallback string
}

// RuleSet is the full ordered rule table. It is immutable after construction.
type RuleSet struct {
	categories []category
}

// DefaultRuleSet returns the production rule table. Ordering is load bearing:
// boys before tuxedos before suits keeps "Boy's Tuxedo" out of the adult
// buckets, and bow tie rules run before the bare "tie" rule.
func DefaultRuleSet() *RuleSet {
	return &RuleSet{categories: defaultCategories()}
}

// Validate checks that every tier the rule set can emit exists in the
// registry. Run at startup so a table edit cannot strand products on a tier
// with no price.
func (rs *RuleSet) Validate(registry *domain.Registry) error {
	for _, tier := range rs.EmittableTiers() {
		if _, ok := registry.Lookup(tier); !ok {
			return apperr.ClassificationGap(tier)
		}
	}
	return nil
}

// EmittableTiers returns every tier name the rule set can produce, fallbacks
// included, in rule order with duplicates removed.
func (rs *RuleSet) EmittableTiers() []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(tier string) {
		if _, dup := seen[tier]; dup {
			return
		}
		seen[tier] = struct{}{}
		out = append(out, tier)
	}
	for _, cat := range rs.categories {
		for _, r := range cat.rules {
			add(r.tier)
		}
		add(cat.fallback)
	}
	return out
}

func anyOf(subs ...string) func(title) bool {
	return func(t title) bool { return t.hasAny(subs...) }
}

func defaultCategories() []category {
	return []category{
		{
			name: "boys",
			applies: func(t title) bool {
				return t.hasAny("boy", "kids") || t.hintHas("boys")
			},
			rules: []rule{
				{name: "5pc", tier: "BOYS_SUIT_5PC", match: anyOf("5pc", "5 piece", "5-piece", "five piece", "stacy adams")},
				{name: "tuxedo", tier: "BOYS_TUXEDO", match: anyOf("tuxedo", "tux")},
				{name: "premium", tier: "BOYS_PREMIUM", match: anyOf("premium", "luxury")},
			},
			fallback: "BOYS_SUIT_BASIC",
		},
		{
			name: "tuxedo",
			applies: func(t title) bool {
				return t.has("tuxedo") || t.hintHas("tuxedo")
			},
			rules: []rule{
				{name: "premium-fabric", tier: "TUXEDO_PREMIUM", match: anyOf("velvet", "gold", "paisley", "sparkle", "sequin")},
				{name: "double-breasted", tier: "TUXEDO_DOUBLE_BREASTED", match: anyOf("double breasted", "double-breasted")},
				{name: "shawl", tier: "TUXEDO_SHAWL", match: anyOf("shawl", "tone trim", "two tone")},
				{name: "slim", tier: "TUXEDO_STANDARD", match: anyOf("slim", "modern fit", "stretch")},
			},
			fallback: "TUXEDO_BASIC",
		},
		{
			name: "suit",
			applies: func(t title) bool {
				return t.has("suit") || t.hintHas("suit")
			},
			rules: []rule{
				{name: "elite", tier: "SUIT_ELITE", match: anyOf("elite", "signature")},
				{name: "luxury", tier: "SUIT_LUXURY", match: anyOf("luxury", "executive", "italian")},
				{name: "premium", tier: "SUIT_PREMIUM", match: anyOf("premium", "wool", "slim stretch", "performance")},
				{name: "basic", tier: "SUIT_BASIC", match: anyOf("essential", "value")},
			},
			fallback: "SUIT_STANDARD",
		},
		{
			name: "outerwear",
			applies: func(t title) bool {
				return t.hasAny("blazer", "jacket", "coat", "outerwear") || t.hintHas("outerwear")
			},
			rules: []rule{
				{name: "velvet", tier: "JACKET_VELVET", match: anyOf("velvet", "sparkle", "sequin", "paisley")},
				{name: "premium", tier: "OUTERWEAR_PREMIUM", match: anyOf("cashmere", "premium", "luxury")},
				{name: "wool", tier: "OUTERWEAR_WOOL", match: anyOf("wool", "overcoat", "topcoat")},
			},
			fallback: "JACKET_BLAZER",
		},
		{
			name: "vest",
			applies: func(t title) bool {
				return t.has("vest") || t.hintHas("vest")
			},
			rules: []rule{
				{name: "premium", tier: "VEST_PREMIUM", match: anyOf("sparkle", "sequin", "velvet", "premium")},
			},
			fallback: "VEST_STANDARD",
		},
		{
			name: "shirt",
			applies: func(t title) bool {
				return t.has("shirt") || t.hintHas("shirt")
			},
			rules: []rule{
				{name: "luxury", tier: "SHIRT_LUXURY", match: anyOf("luxury", "sateen")},
				{name: "premium", tier: "SHIRT_PREMIUM", match: anyOf("ultra stretch", "performance", "premium")},
				{name: "stretch", tier: "SHIRT_STRETCH", match: anyOf("stretch")},
				{name: "standard", tier: "SHIRT_STANDARD", match: anyOf("dress shirt", "collarless", "french cuff", "formal")},
			},
			fallback: "SHIRT_BASIC",
		},
		{
			name: "pants",
			applies: func(t title) bool {
				return t.hasAny("pant", "trouser", "slacks") || t.hintHas("pants")
			},
			rules: []rule{
				{name: "stretch", tier: "PANTS_STRETCH", match: anyOf("stretch", "performance")},
				{name: "tapered", tier: "PANTS_TAPERED", match: anyOf("tapered", "slim")},
			},
			fallback: "PANTS_DRESS",
		},
		{
			name: "shoes",
			applies: func(t title) bool {
				return t.hasAny("shoe", "oxford", "loafer", "derby", "boot") || t.hintHas("footwear") || t.hintHas("shoes")
			},
			rules: []rule{
				{name: "spikes", tier: "SHOES_SPIKES", match: anyOf("spike")},
				{name: "velvet", tier: "SHOES_VELVET", match: anyOf("velvet")},
				{name: "premium", tier: "SHOES_PREMIUM", match: anyOf("patent", "premium", "leather")},
			},
			fallback: "SHOES_DRESS",
		},
		{
			name: "sweater",
			applies: func(t title) bool {
				return t.hasAny("sweater", "turtleneck", "turtle neck", "moc neck", "mock neck", "cardigan")
			},
			rules: []rule{
				{name: "heavy", tier: "HEAVY_SWEATERS", match: anyOf("heavy", "chunky", "cable")},
				{name: "turtle", tier: "TURTLE_NECK", match: anyOf("turtle")},
				{name: "moc", tier: "MOC_NECK", match: anyOf("moc")},
			},
			fallback: "SWEATERS",
		},
		{
			name: "accessory",
			applies: func(t title) bool {
				return t.hasAny("tie", "cufflink", "pocket square", "suspender",
					"sock", "belt", "lapel", "cummerbund", "glove", "garment bag") ||
					t.hintHas("accessor")
			},
			rules: []rule{
				{name: "suspender-set", tier: "ACC_SETS", match: func(t title) bool {
					return t.has("suspender") && t.hasAny("set", "bowtie", "bow tie")
				}},
				{name: "suspenders", tier: "ACC_SUSPENDERS", match: anyOf("suspender")},
				{name: "cufflinks", tier: "ACC_CUFFLINKS", match: anyOf("cufflink")},
				{name: "pocket-square", tier: "ACC_POCKET_SQUARE", match: anyOf("pocket square")},
				{name: "socks", tier: "ACC_SOCKS", match: anyOf("sock")},
				{name: "garment-bag", tier: "GARMENT_BAG", match: anyOf("garment bag")},
				{name: "belt", tier: "ACC_BELT", match: anyOf("belt")},
				{name: "tie-clip", tier: "ACC_TIE_CLIP", match: anyOf("tie clip", "tie bar")},
				{name: "lapel-pin", tier: "ACC_LAPEL_PIN", match: anyOf("lapel")},
				{name: "cummerbund", tier: "CUMMERBUND", match: anyOf("cummerbund")},
				{name: "gloves", tier: "ACC_GLOVES", match: anyOf("glove")},
				// Bow tie rules must stay ahead of the bare "tie" rule; a
				// bow tie title contains "tie" as a substring.
				{name: "bowtie-set", tier: "ACC_SETS", match: func(t title) bool {
					return t.hasAny("bowtie", "bow tie") && t.has("set")
				}},
				{name: "bowtie", tier: "ACC_TIES", match: anyOf("bowtie", "bow tie")},
				{name: "premium-tie", tier: "ACC_PREMIUM", match: func(t title) bool {
					return t.has("tie") && t.hasAny("premium", "silk")
				}},
				{name: "tie", tier: "ACC_TIES", match: anyOf("tie")},
			},
			fallback: "ACC_TIES",
		},
		{
			name: "casual",
			applies: func(t title) bool {
				return t.hasAny("casual", "polo", "khaki", "chino", "henley", "t-shirt") || t.hintHas("casual")
			},
			rules: []rule{
				{name: "premium", tier: "CASUAL_PREMIUM", match: anyOf("premium", "luxury")},
				{name: "stretch", tier: "CASUAL_STRETCH", match: anyOf("stretch", "performance")},
				{name: "standard", tier: "CASUAL_STANDARD", match: anyOf("polo", "henley")},
			},
			fallback: "CASUAL_BASIC",
		},
	}
}
