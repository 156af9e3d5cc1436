package classifier

import (
	"testing"

	"tier_server/core/service/pricing"
	"tier_server/pkg/apperr"
)

func TestClassifyKnownTitles(t *testing.T) {
	c := New(DefaultRuleSet(), false)

	tests := []struct {
		title string
		hint  string
		tier  string
		rule  string
	}{
		{title: "Boy's 5pc Suit", tier: "BOYS_SUIT_5PC", rule: "boys:5pc"},
		{title: "Classic Navy Business Suit", tier: "SUIT_STANDARD", rule: "suit:default"},
		{title: "Black Cummerbund", tier: "CUMMERBUND", rule: "accessory:cummerbund"},
		{title: "Premium Velvet Tuxedo", tier: "TUXEDO_PREMIUM", rule: "tuxedo:premium-fabric"},

		// Boys gate runs before the adult tuxedo and suit gates.
		{title: "Boy's Black Tuxedo", tier: "BOYS_TUXEDO", rule: "boys:tuxedo"},
		{title: "Kids Navy Suit", tier: "BOYS_SUIT_BASIC", rule: "boys:default"},

		{title: "Double Breasted Ivory Tuxedo", tier: "TUXEDO_DOUBLE_BREASTED", rule: "tuxedo:double-breasted"},
		{title: "Black Shawl Lapel Tuxedo", tier: "TUXEDO_SHAWL", rule: "tuxedo:shawl"},
		{title: "Italian Wool Suit", tier: "SUIT_LUXURY", rule: "suit:luxury"},
		{title: "Performance Stretch Suit", tier: "SUIT_PREMIUM", rule: "suit:premium"},

		{title: "Burgundy Velvet Blazer", tier: "JACKET_VELVET", rule: "outerwear:velvet"},
		{title: "Charcoal Wool Overcoat", tier: "OUTERWEAR_WOOL", rule: "outerwear:wool"},
		{title: "Sequin Party Vest", tier: "VEST_PREMIUM", rule: "vest:premium"},
		{title: "White Dress Shirt", tier: "SHIRT_STANDARD", rule: "shirt:standard"},
		{title: "Ultra Stretch Dress Shirt", tier: "SHIRT_PREMIUM", rule: "shirt:premium"},
		{title: "Tapered Dress Pants", tier: "PANTS_TAPERED", rule: "pants:tapered"},
		{title: "Black Patent Oxford", tier: "SHOES_PREMIUM", rule: "shoes:premium"},
		{title: "Chunky Cable Sweater", tier: "HEAVY_SWEATERS", rule: "sweater:heavy"},

		// Bow tie must not fall through to the bare tie rule.
		{title: "Red Paisley Bowtie", tier: "ACC_TIES", rule: "accessory:bowtie"},
		{title: "Black Bow Tie Set", tier: "ACC_SETS", rule: "accessory:bowtie-set"},
		{title: "Classic Necktie", tier: "ACC_TIES", rule: "accessory:tie"},
		{title: "Silk Necktie", tier: "ACC_PREMIUM", rule: "accessory:premium-tie"},
		{title: "Suspender and Bowtie Set", tier: "ACC_SETS", rule: "accessory:suspender-set"},

		{title: "Stretch Polo", tier: "CASUAL_STRETCH", rule: "casual:stretch"},

		// Category hint widens the gate when the title alone says nothing.
		{title: "Midnight Slim Fit", hint: "Tuxedos", tier: "TUXEDO_STANDARD", rule: "tuxedo:slim"},
		{title: "Two Button Charcoal", hint: "Suits", tier: "SUIT_STANDARD", rule: "suit:default"},
	}

	for _, tt := range tests {
		got := c.Classify(tt.title, tt.hint)
		if !got.Matched {
			t.Errorf("Classify(%q, %q) unmatched, want %s", tt.title, tt.hint, tt.tier)
			continue
		}
		if got.TierName != tt.tier {
			t.Errorf("Classify(%q, %q) = %s, want %s", tt.title, tt.hint, got.TierName, tt.tier)
		}
		if got.Rule != tt.rule {
			t.Errorf("Classify(%q, %q) rule = %s, want %s", tt.title, tt.hint, got.Rule, tt.rule)
		}
	}
}

func TestClassifyUnmatched(t *testing.T) {
	c := New(DefaultRuleSet(), false)

	got := c.Classify("Gift Card", "")
	if got.Matched {
		t.Fatalf("Classify(Gift Card) matched tier %s, want unmatched", got.TierName)
	}
	if got.TierName != "" {
		t.Fatalf("unmatched classification carries tier %s", got.TierName)
	}
}

func TestClassifyLegacyDefault(t *testing.T) {
	c := New(DefaultRuleSet(), true)

	got := c.Classify("Gift Card", "")
	if got.Matched {
		t.Fatal("legacy default must not count as a rule match")
	}
	if got.TierName != "SUIT_BASIC" {
		t.Fatalf("legacy default tier = %s, want SUIT_BASIC", got.TierName)
	}
	if got.Rule != "legacy:default" {
		t.Fatalf("legacy default rule = %s", got.Rule)
	}
}

func TestClassifyFirstCategoryWins(t *testing.T) {
	c := New(DefaultRuleSet(), false)

	// Contains both "tuxedo" and "shirt"; the tuxedo gate comes first.
	got := c.Classify("Tuxedo Shirt", "")
	if got.TierName != "TUXEDO_BASIC" {
		t.Fatalf("Classify(Tuxedo Shirt) = %s, want TUXEDO_BASIC", got.TierName)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := New(DefaultRuleSet(), false)

	titles := []string{"Premium Velvet Tuxedo", "Boy's 5pc Suit", "Gift Card", "Classic Necktie"}
	for _, title := range titles {
		first := c.Classify(title, "")
		for i := 0; i < 10; i++ {
			if got := c.Classify(title, ""); got != first {
				t.Fatalf("Classify(%q) unstable: %+v then %+v", title, first, got)
			}
		}
	}
}

func TestRuleSetCoversRegistry(t *testing.T) {
	if err := DefaultRuleSet().Validate(pricing.DefaultRegistry()); err != nil {
		t.Fatalf("default rule set fails against default registry: %v", err)
	}
}

func TestRuleSetValidateDetectsGap(t *testing.T) {
	rs := &RuleSet{categories: []category{{
		name:     "ghost",
		applies:  func(title) bool { return true },
		fallback: "NO_SUCH_TIER",
	}}}

	err := rs.Validate(pricing.DefaultRegistry())
	if err == nil {
		t.Fatal("expected validation error for unknown tier")
	}
	if !apperr.IsCode(err, apperr.CodeClassificationGap) {
		t.Fatalf("error code = %v, want CLASSIFICATION_GAP", err)
	}
}
