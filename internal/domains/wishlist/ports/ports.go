package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-storefront/internal/domains/wishlist/domain"
)

var (
	ErrDuplicateEntry  = errors.New("product is already in wishlist")
	ErrProductNotFound = errors.New("product not found")
)

// Repository persists wishlist entries. Entries come back oldest first.
type Repository interface {
	Add(ctx context.Context, entry domain.Entry) error
	Remove(ctx context.Context, userID, productID string) error
	Entries(ctx context.Context, userID string) ([]domain.Entry, error)
}

// ProductCatalog resolves product summaries for display.
type ProductCatalog interface {
	Item(ctx context.Context, productID string) (domain.Item, error)
}

// Service exposes wishlist use cases. Every call returns the resulting list.
type Service interface {
	List(ctx context.Context, userID string) ([]domain.Item, error)
	Add(ctx context.Context, userID, productID string) ([]domain.Item, error)
	Remove(ctx context.Context, userID, productID string) ([]domain.Item, error)
}
