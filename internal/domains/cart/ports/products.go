package ports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var ErrProductNotFound = errors.New("product not found")

// Product is the slice of catalog data the cart needs.
type Product struct {
	ID       string
	Name     string
	Image    string
	Price    decimal.Decimal
	Stock    int
	IsActive bool
}

// ProductLookup reads live catalog data. Missing products yield ErrProductNotFound.
type ProductLookup interface {
	Product(ctx context.Context, id string) (Product, error)
}
