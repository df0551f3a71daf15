// Package inventory adapts the catalog product store to the order workflow's inventory port.
package inventory

import (
	"context"
	"errors"

	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
)

var _ ports.Inventory = (*Catalog)(nil)

// Catalog translates catalog errors into order-side sentinels.
type Catalog struct {
	products catalogports.ProductRepository
}

func NewCatalog(products catalogports.ProductRepository) *Catalog {
	return &Catalog{products: products}
}

func (c *Catalog) Product(ctx context.Context, id string) (ports.StockedProduct, error) {
	product, err := c.products.GetByID(ctx, id)
	if err != nil {
		return ports.StockedProduct{}, translate(err)
	}
	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0]
	}
	return ports.StockedProduct{
		ID:       product.ID,
		Name:     product.Name,
		Image:    image,
		Price:    product.Price,
		Stock:    product.Stock,
		IsActive: product.IsActive,
	}, nil
}

func (c *Catalog) Reserve(ctx context.Context, id string, quantity int) error {
	return translate(c.products.ReserveStock(ctx, id, quantity))
}

func (c *Catalog) Decrement(ctx context.Context, id string, quantity int) error {
	return translate(c.products.DecrementStock(ctx, id, quantity))
}

func (c *Catalog) Restock(ctx context.Context, id string, quantity int) error {
	return translate(c.products.RestockProduct(ctx, id, quantity))
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, catalogports.ErrProductNotFound):
		return ports.ErrProductNotFound
	case errors.Is(err, catalogports.ErrInsufficientStock):
		return ports.ErrInsufficientStock
	default:
		return err
	}
}
