package catalog

import (
	"context"
	"errors"

	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-storefront/internal/domains/wishlist/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/wishlist/ports"
)

var _ ports.ProductCatalog = (*Products)(nil)

// Products reads wishlist summaries from the catalog store.
type Products struct {
	products catalogports.ProductRepository
}

func NewProducts(products catalogports.ProductRepository) *Products {
	return &Products{products: products}
}

func (p *Products) Item(ctx context.Context, productID string) (domain.Item, error) {
	product, err := p.products.GetByID(ctx, productID)
	if errors.Is(err, catalogports.ErrProductNotFound) {
		return domain.Item{}, ports.ErrProductNotFound
	}
	if err != nil {
		return domain.Item{}, err
	}
	return domain.Item{
		ProductID:   product.ID,
		Name:        product.Name,
		Price:       product.Price,
		Images:      append([]string(nil), product.Images...),
		Rating:      product.Rating,
		ReviewCount: product.ReviewCount,
	}, nil
}
