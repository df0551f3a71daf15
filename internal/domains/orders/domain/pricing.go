package domain

import "github.com/shopspring/decimal"

var (
	// FreeShippingThreshold is the subtotal that must be exceeded for free shipping.
	FreeShippingThreshold = decimal.NewFromInt(50)
	// FlatShippingCost applies at or below the threshold.
	FlatShippingCost = decimal.RequireFromString("5.99")
	// TaxRate is applied to the subtotal. The result is not rounded.
	TaxRate = decimal.RequireFromString("0.08")
)

// Pricing is the charge breakdown of an order.
type Pricing struct {
	Subtotal     decimal.Decimal
	ShippingCost decimal.Decimal
	Tax          decimal.Decimal
	Total        decimal.Decimal
}

// Price sums line totals and derives shipping, tax and total.
func Price(items []Item) Pricing {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	shipping := FlatShippingCost
	if subtotal.GreaterThan(FreeShippingThreshold) {
		shipping = decimal.Zero
	}
	tax := subtotal.Mul(TaxRate)
	return Pricing{
		Subtotal:     subtotal,
		ShippingCost: shipping,
		Tax:          tax,
		Total:        subtotal.Add(shipping).Add(tax),
	}
}
