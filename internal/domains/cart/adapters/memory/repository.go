package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps carts in memory keyed by user.
type Repository struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
}

func NewRepository() *Repository {
	return &Repository{carts: map[string]*domain.Cart{}}
}

func (r *Repository) Get(_ context.Context, userID string) (*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cart, ok := r.carts[userID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cart.Clone(), nil
}

func (r *Repository) Save(_ context.Context, cart *domain.Cart) (*domain.Cart, error) {
	if cart == nil {
		return nil, errors.New("cart is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.carts[cart.UserID]; ok {
		cart.CreatedAt = existing.CreatedAt
	}
	r.carts[cart.UserID] = cart.Clone()
	return cart.Clone(), nil
}

func (r *Repository) Clear(_ context.Context, userID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cart, ok := r.carts[userID]
	if !ok {
		return ports.ErrNotFound
	}
	cart.Clear()
	cart.UpdatedAt = at
	return nil
}
