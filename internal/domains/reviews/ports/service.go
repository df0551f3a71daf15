package ports

import (
	"context"

	"github.com/Apurer/go-gin-storefront/internal/domains/reviews/domain"
	"github.com/Apurer/go-gin-storefront/internal/shared/pagination"
)

// CreateInput carries a review submission.
type CreateInput struct {
	UserID    string
	ProductID string
	OrderID   string
	Rating    int
	Title     string
	Comment   string
	Images    []string
}

// ListQuery is what a caller may ask of a product's reviews.
type ListQuery struct {
	ProductID string
	Rating    int
	Page      pagination.Params
}

// Service exposes review use cases.
type Service interface {
	CreateReview(ctx context.Context, input CreateInput) (*domain.Review, error)
	ListReviews(ctx context.Context, query ListQuery) (pagination.Page[*domain.Review], error)
}
