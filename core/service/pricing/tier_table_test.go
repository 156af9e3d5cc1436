package pricing

import (
	"testing"

	"tier_server/core/domain"
	"tier_server/pkg/money"
)

func TestDefaultRegistryBuilds(t *testing.T) {
	registry := DefaultRegistry()
	if registry.Len() != len(DefaultTiers()) {
		t.Fatalf("registry has %d tiers, table has %d", registry.Len(), len(DefaultTiers()))
	}
}

func TestDefaultTiersKeyPrices(t *testing.T) {
	registry := DefaultRegistry()

	tests := []struct {
		name  string
		price money.Cents
	}{
		{"SUIT_BASIC", 19999},
		{"SUIT_STANDARD", 22999},
		{"BOYS_SUIT_5PC", 14999},
		{"TUXEDO_PREMIUM", 24999},
		{"CUMMERBUND", 4999},
		{"ACC_POCKET_SQUARE", 1000},
	}
	for _, tt := range tests {
		def, ok := registry.Lookup(tt.name)
		if !ok {
			t.Errorf("tier %s missing from table", tt.name)
			continue
		}
		if def.Price != tt.price {
			t.Errorf("tier %s price = %d, want %d", tt.name, def.Price, tt.price)
		}
	}
}

func TestDefaultTiersUniqueStripeIDs(t *testing.T) {
	seen := make(map[string]string)
	for _, def := range DefaultTiers() {
		if prev, dup := seen[def.StripePriceID]; dup {
			t.Errorf("stripe id %s shared by %s and %s", def.StripePriceID, prev, def.Name)
		}
		seen[def.StripePriceID] = def.Name
	}
}

func TestLegacyDefaultTierInTable(t *testing.T) {
	if _, ok := DefaultRegistry().Lookup(domain.LegacyDefaultTier); !ok {
		t.Fatalf("legacy default tier %s not in table", domain.LegacyDefaultTier)
	}
}
