package ports

import (
	"context"

	"github.com/Apurer/go-gin-storefront/internal/domains/reviews/domain"
)

// PurchaseVerifier confirms the user received the product in the given order.
type PurchaseVerifier interface {
	HasDeliveredOrder(ctx context.Context, userID, orderID, productID string) (bool, error)
}

// RatingUpdater stores the recomputed aggregate on the product.
type RatingUpdater interface {
	UpdateRating(ctx context.Context, productID string, rating float64, reviewCount int) error
}

// AuthorDirectory resolves the public profile of reviewers.
type AuthorDirectory interface {
	Author(ctx context.Context, userID string) (domain.Author, error)
}
