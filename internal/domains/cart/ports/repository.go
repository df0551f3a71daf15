package ports

import (
	"context"
	"errors"
	"time"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
)

var ErrNotFound = errors.New("cart not found")

// Repository stores one cart per user.
type Repository interface {
	// Get returns ErrNotFound when the user has never had a cart.
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) (*domain.Cart, error)
	// Clear empties the user's cart in a single write, keeping the row.
	// It returns ErrNotFound when the user has no cart.
	Clear(ctx context.Context, userID string, at time.Time) error
}
