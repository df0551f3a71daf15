package ports

import (
	"context"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
)

// Service exposes cart use cases. Every call acts on the caller's own cart.
type Service interface {
	GetCart(ctx context.Context, userID string) (*domain.Cart, error)
	AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error)
	UpdateItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error)
	Clear(ctx context.Context, userID string) (*domain.Cart, error)
}
