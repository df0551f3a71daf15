package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Currency is the only currency the storefront charges in.
const Currency = "usd"

var ErrInvalidAmount = errors.New("amount is required")

var hundred = decimal.NewFromInt(100)

// Intent is a payment intent created at the gateway. The client confirms it
// with ClientSecret.
type Intent struct {
	ID           string
	ClientSecret string
	AmountCents  int64
	Currency     string
}

// ToCents converts a positive amount in dollars to whole cents, rounding half up.
func ToCents(amount decimal.Decimal) (int64, error) {
	if !amount.IsPositive() {
		return 0, ErrInvalidAmount
	}
	cents := amount.Mul(hundred).Round(0).IntPart()
	if cents <= 0 {
		return 0, ErrInvalidAmount
	}
	return cents, nil
}
