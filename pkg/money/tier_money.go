// Package money represents currency amounts as integer minor units.
//
// All internal pricing arithmetic works on Cents; decimal dollar amounts
// exist only at external boundaries (JSON payloads, the commerce platform's
// price API) and are converted with shopspring/decimal so no float64 dollar
// value flows through the engine.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Cents is a currency amount in minor units (1/100 of the major unit).
type Cents int64

// FromDecimal converts a decimal dollar amount to Cents, rounding to the
// nearest cent.
func FromDecimal(d decimal.Decimal) Cents {
	return Cents(d.Mul(decimal.NewFromInt(100)).Round(0).IntPart())
}

// ParseDollars parses a decimal dollar string (e.g. "229.99") into Cents.
func ParseDollars(s string) (Cents, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid dollar amount %q: %w", s, err)
	}
	return FromDecimal(d), nil
}

// Decimal returns the amount as a decimal dollar value.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// String formats the amount as a dollar string with two decimal places.
func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

// MarshalJSON encodes the amount as a decimal dollar number, matching the
// platform's wire convention (229.99, not 22999).
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(c.Decimal().StringFixed(2)), nil
}

// UnmarshalJSON decodes a decimal dollar number into Cents.
func (c *Cents) UnmarshalJSON(data []byte) error {
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("invalid money value %s: %w", data, err)
	}
	*c = FromDecimal(d)
	return nil
}
