package catalog

import (
	"context"

	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-storefront/internal/domains/reviews/ports"
)

var _ ports.RatingUpdater = (*RatingUpdater)(nil)

// RatingUpdater writes review aggregates onto catalog products.
type RatingUpdater struct {
	products catalogports.ProductRepository
}

func NewRatingUpdater(products catalogports.ProductRepository) *RatingUpdater {
	return &RatingUpdater{products: products}
}

func (u *RatingUpdater) UpdateRating(ctx context.Context, productID string, rating float64, reviewCount int) error {
	return u.products.UpdateRating(ctx, productID, rating, reviewCount)
}
