// Package catalog adapts the catalog product store to the cart's product lookup port.
package catalog

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

var _ ports.ProductLookup = (*Lookup)(nil)

// Lookup reads products straight from the catalog repository.
type Lookup struct {
	products catalogports.ProductRepository
}

func NewLookup(products catalogports.ProductRepository) *Lookup {
	return &Lookup{products: products}
}

func (l *Lookup) Product(ctx context.Context, id string) (ports.Product, error) {
	product, err := l.products.GetByID(ctx, id)
	if errors.Is(err, catalogports.ErrProductNotFound) {
		return ports.Product{}, ports.ErrProductNotFound
	}
	if err != nil {
		return ports.Product{}, err
	}
	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0]
	}
	return ports.Product{
		ID:       product.ID,
		Name:     product.Name,
		Image:    image,
		Price:    product.Price,
		Stock:    product.Stock,
		IsActive: product.IsActive,
	}, nil
}
