// Package pricing defines the canonical tier table.
//
// Two divergent tier tables used to exist in the admin tooling for the same
// product space. This is the reconciled table: one name per bucket, prices in
// cents, Stripe price references carried verbatim from the deployed price
// objects.
package pricing

import (
	"tier_server/core/domain"
	"tier_server/pkg/money"
)

// DefaultTiers returns the full tier table.
func DefaultTiers() []domain.TierDefinition {
	return []domain.TierDefinition{
		// Suits
		{Name: "SUIT_BASIC", Price: money.Cents(19999), StripePriceID: "price_1S2zyPCHc12x7sCzX7iCygWI"},
		{Name: "SUIT_STANDARD", Price: money.Cents(22999), StripePriceID: "price_1S2zyaCHc12x7sCzKcu7dzIL"},
		{Name: "SUIT_PREMIUM", Price: money.Cents(24999), StripePriceID: "price_1S2zykCHc12x7sCzrnNPe1oE"},
		{Name: "SUIT_LUXURY", Price: money.Cents(27999), StripePriceID: "price_1S2zytCHc12x7sCzMOQxeB8n"},
		{Name: "SUIT_ELITE", Price: money.Cents(29999), StripePriceID: "price_1S2zz4CHc12x7sCzOJgQJMgP"},

		// Sale
		{Name: "SUIT_SALE", Price: money.Cents(16999), StripePriceID: "price_1S30KkCHc12x7sCz1J2mhmv5"},
		{Name: "BLAZER_SALE", Price: money.Cents(14999), StripePriceID: "price_1S30KuCHc12x7sCzNdrN1nD5"},

		// Boys
		{Name: "BOYS_SUIT_BASIC", Price: money.Cents(12999), StripePriceID: "price_1S2zzQCHc12x7sCzodmKx9cH"},
		{Name: "BOYS_SUIT_5PC", Price: money.Cents(14999), StripePriceID: "price_1S3054CHc12x7sCzXLWNnj4K"},
		{Name: "BOYS_TUXEDO", Price: money.Cents(15999), StripePriceID: "price_1S305FCHc12x7sCzjmuOCtM0"},
		{Name: "BOYS_PREMIUM", Price: money.Cents(17999), StripePriceID: "price_1S305QCHc12x7sCznCGQvJLw"},

		// Tuxedos
		{Name: "TUXEDO_BASIC", Price: money.Cents(19999), StripePriceID: "price_1S2zzPCHc12x7sCzRazHXwRR"},
		{Name: "TUXEDO_STANDARD", Price: money.Cents(22999), StripePriceID: "price_1S2zzaCHc12x7sCzs5lVCVii"},
		{Name: "TUXEDO_PREMIUM", Price: money.Cents(24999), StripePriceID: "price_1S2zzkCHc12x7sCzD9P29Rxg"},
		{Name: "TUXEDO_SHAWL", Price: money.Cents(26999), StripePriceID: "price_1S2zzvCHc12x7sCzrMKsJEKh"},
		{Name: "TUXEDO_DOUBLE_BREASTED", Price: money.Cents(31999), StripePriceID: "price_1S300HCHc12x7sCzQO8BW7fw"},

		// Shirts
		{Name: "SHIRT_BASIC", Price: money.Cents(4999), StripePriceID: "price_1S300KCHc12x7sCzz3O0mPfK"},
		{Name: "SHIRT_STANDARD", Price: money.Cents(5999), StripePriceID: "price_1S300VCHc12x7sCzL7XmZ5cr"},
		{Name: "SHIRT_STRETCH", Price: money.Cents(6999), StripePriceID: "price_1S301ACHc12x7sCzFUb8kz68"},
		{Name: "SHIRT_PREMIUM", Price: money.Cents(7999), StripePriceID: "price_1S301LCHc12x7sCzYuXLy0Y2"},
		{Name: "SHIRT_LUXURY", Price: money.Cents(8999), StripePriceID: "price_1S301WCHc12x7sCzRALd5Aw2"},

		// Vests
		{Name: "VEST_STANDARD", Price: money.Cents(4999), StripePriceID: "price_1S3017CHc12x7sCz6tCpL8Rp"},
		{Name: "VEST_PREMIUM", Price: money.Cents(6999), StripePriceID: "price_1S301ICHc12x7sCzeRDopwFH"},

		// Pants
		{Name: "PANTS_DRESS", Price: money.Cents(5999), StripePriceID: "price_1S301UCHc12x7sCzhkPtwtmD"},
		{Name: "PANTS_STRETCH", Price: money.Cents(6999), StripePriceID: "price_1S301gCHc12x7sCz1t7i73FS"},
		{Name: "PANTS_TAPERED", Price: money.Cents(6999), StripePriceID: "price_1S301rCHc12x7sCzAcCpZVSm"},

		// Shoes
		{Name: "SHOES_BASIC", Price: money.Cents(6999), StripePriceID: "price_1S3023CHc12x7sCzk5do4SRF"},
		{Name: "SHOES_VELVET", Price: money.Cents(7999), StripePriceID: "price_1S302ECHc12x7sCzTBeRbM3a"},
		{Name: "SHOES_DRESS", Price: money.Cents(8999), StripePriceID: "price_1S302SCHc12x7sCzAyr7Bbog"},
		{Name: "SHOES_PREMIUM", Price: money.Cents(9999), StripePriceID: "price_1S302dCHc12x7sCzfWxLOp32"},
		{Name: "SHOES_SPIKES", Price: money.Cents(12999), StripePriceID: "price_1S302oCHc12x7sCzwd2PLdk4"},

		// Sweaters
		{Name: "HEAVY_SWEATERS", Price: money.Cents(14500), StripePriceID: "price_1S30LFCHc12x7sCzjgMG4PuZ"},
		{Name: "SWEATERS", Price: money.Cents(12500), StripePriceID: "price_1S30LPCHc12x7sCznzB2skkm"},
		{Name: "MEDIUM_SWEATER", Price: money.Cents(8500), StripePriceID: "price_1S30LaCHc12x7sCz4a7U7HqF"},
		{Name: "TURTLE_NECK", Price: money.Cents(4500), StripePriceID: "price_1S30LkCHc12x7sCzig6NuAAK"},
		{Name: "MOC_NECK", Price: money.Cents(4500), StripePriceID: "price_1S30LzCHc12x7sCzE4o82F4n"},

		// Accessories
		{Name: "ACC_POCKET_SQUARE", Price: money.Cents(1000), StripePriceID: "price_1S302zCHc12x7sCzNsRYYDOo"},
		{Name: "ACC_SOCKS", Price: money.Cents(1200), StripePriceID: "price_1S303BCHc12x7sCzVKRXzfHD"},
		{Name: "GARMENT_BAG", Price: money.Cents(1200), StripePriceID: "price_1S30JKCHc12x7sCz6MjnhDqp"},
		{Name: "ACC_LAPEL_PIN", Price: money.Cents(1500), StripePriceID: "price_1S30K2CHc12x7sCzGHmPBESD"},
		{Name: "ACC_TIE_CLIP", Price: money.Cents(1700), StripePriceID: "price_1S30JqCHc12x7sCzfqHbp10R"},
		{Name: "ACC_GLOVES", Price: money.Cents(2499), StripePriceID: "price_1S30JeCHc12x7sCzg12SkKnd"},
		{Name: "ACC_TIES", Price: money.Cents(2999), StripePriceID: "price_1S303LCHc12x7sCziIBxJdDW"},
		{Name: "ACC_BELT", Price: money.Cents(2999), StripePriceID: "price_1S303VCHc12x7sCzSg4n60tH"},
		{Name: "ACC_SUSPENDERS", Price: money.Cents(3499), StripePriceID: "price_1S303gCHc12x7sCzLV43VGxG"},
		{Name: "ACC_CUFFLINKS", Price: money.Cents(3500), StripePriceID: "price_1S303qCHc12x7sCzWSVweMGr"},
		{Name: "ACC_SETS", Price: money.Cents(4999), StripePriceID: "price_1S3042CHc12x7sCzRlzs0fzA"},
		{Name: "CUMMERBUND", Price: money.Cents(4999), StripePriceID: "price_1S30JUCHc12x7sCzTAqZiycN"},
		{Name: "ACC_PREMIUM", Price: money.Cents(6999), StripePriceID: "price_1S304CCHc12x7sCzI36HvfRg"},

		// Outerwear
		{Name: "JACKET_BLAZER", Price: money.Cents(19999), StripePriceID: "price_1S304NCHc12x7sCzjEanqnkq"},
		{Name: "JACKET_VELVET", Price: money.Cents(22999), StripePriceID: "price_1S304bCHc12x7sCzOjFjAhwd"},
		{Name: "OUTERWEAR_WOOL", Price: money.Cents(27999), StripePriceID: "price_1S304MCHc12x7sCzCyKmeCiD"},
		{Name: "OUTERWEAR_PREMIUM", Price: money.Cents(34999), StripePriceID: "price_1S304XCHc12x7sCzdnkJgGQn"},

		// Casual
		{Name: "CASUAL_BASIC", Price: money.Cents(5999), StripePriceID: "price_1S305bCHc12x7sCzb3OPYfPp"},
		{Name: "CASUAL_STANDARD", Price: money.Cents(8999), StripePriceID: "price_1S305mCHc12x7sCzSJrSnGzg"},
		{Name: "CASUAL_STRETCH", Price: money.Cents(11999), StripePriceID: "price_1S305xCHc12x7sCzfD2pJTGz"},
		{Name: "CASUAL_PREMIUM", Price: money.Cents(14999), StripePriceID: "price_1S3068CHc12x7sCzjKXcASYy"},
	}
}

// DefaultRegistry builds a registry from the canonical table. It panics on a
// malformed table, which can only happen from a bad edit to this file.
func DefaultRegistry() *domain.Registry {
	registry, err := domain.NewRegistry(DefaultTiers())
	if err != nil {
		panic("pricing: invalid tier table: " + err.Error())
	}
	return registry
}
