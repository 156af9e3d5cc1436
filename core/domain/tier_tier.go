package domain

import (
	"fmt"
	"sort"

	"tier_server/pkg/money"
)

// TierDefinition is one named pricing bucket: a canonical price and the
// payment processor's pre-registered price reference. Definitions are fixed
// at deploy time; changing a price means shipping a new table.
type TierDefinition struct {
	Name          string      `json:"name"`
	Price         money.Cents `json:"price"`
	StripePriceID string      `json:"stripe_price_id"`
}

// Registry is the closed set of tier definitions. It is constructed once at
// startup and injected; there are no mutation operations.
type Registry struct {
	tiers map[string]TierDefinition
	names []string
}

// NewRegistry builds a registry from definitions, rejecting duplicates and
// non-positive prices.
func NewRegistry(defs []TierDefinition) (*Registry, error) {
	r := &Registry{
		tiers: make(map[string]TierDefinition, len(defs)),
		names: make([]string, 0, len(defs)),
	}
	for _, def := range defs {
		if def.Name == "" {
			return nil, fmt.Errorf("tier with empty name")
		}
		if def.Price <= 0 {
			return nil, fmt.Errorf("tier %s: non-positive price %d", def.Name, def.Price)
		}
		if def.StripePriceID == "" {
			return nil, fmt.Errorf("tier %s: missing stripe price id", def.Name)
		}
		if _, dup := r.tiers[def.Name]; dup {
			return nil, fmt.Errorf("duplicate tier name %s", def.Name)
		}
		r.tiers[def.Name] = def
		r.names = append(r.names, def.Name)
	}
	sort.Strings(r.names)
	return r, nil
}

// Lookup returns the definition for a tier name.
func (r *Registry) Lookup(name string) (TierDefinition, bool) {
	def, ok := r.tiers[name]
	return def, ok
}

// Names returns all tier names in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Definitions returns all tier definitions in name order.
func (r *Registry) Definitions() []TierDefinition {
	out := make([]TierDefinition, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.tiers[name])
	}
	return out
}

// Len returns the number of tiers.
func (r *Registry) Len() int {
	return len(r.names)
}
