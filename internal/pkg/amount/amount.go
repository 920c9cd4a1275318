// Package amount converts between decimal ledger amounts and integer token base units.
package amount

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

var (
	ErrNegative       = errors.New("amount must not be negative")
	ErrTooPrecise     = errors.New("amount has more fractional digits than the token supports")
	ErrInvalidDecimal = errors.New("token decimals must not be negative")
)

// ToBaseUnits scales d by 10^decimals. It fails instead of rounding.
func ToBaseUnits(d decimal.Decimal, decimals int32) (*big.Int, error) {
	if decimals < 0 {
		return nil, ErrInvalidDecimal
	}
	if d.IsNegative() {
		return nil, ErrNegative
	}
	shifted := d.Shift(decimals)
	if !shifted.IsInteger() {
		return nil, fmt.Errorf("%w: %s with %d decimals", ErrTooPrecise, d.String(), decimals)
	}
	return shifted.BigInt(), nil
}

// FromBaseUnits scales v down by 10^decimals
func FromBaseUnits(v *big.Int, decimals int32) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(v, -decimals)
}

// Parse reads a positive decimal amount as submitted by a client
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("invalid amount %q: must be positive", s)
	}
	return d, nil
}
