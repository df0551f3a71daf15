package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-storefront/internal/domains/reviews/domain"
	"github.com/Apurer/go-gin-storefront/internal/shared/pagination"
)

// ErrDuplicateReview is returned when the (user, product, order) triple already has a review.
var ErrDuplicateReview = errors.New("review already exists for this order")

// ListFilter narrows a product's reviews. Rating 0 means any rating.
type ListFilter struct {
	ProductID string
	Rating    int
	Page      pagination.Params
}

// Repository persists reviews.
type Repository interface {
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	// List returns reviews newest first.
	List(ctx context.Context, filter ListFilter) (pagination.Page[*domain.Review], error)
	// Ratings returns every rating recorded for the product.
	Ratings(ctx context.Context, productID string) ([]int, error)
}
