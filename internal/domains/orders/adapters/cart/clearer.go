// Package cart adapts the cart store to the order workflow's cart clearing port.
package cart

import (
	"context"
	"errors"
	"time"

	cartports "github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
)

var _ ports.CartClearer = (*Clearer)(nil)

// Clearer empties the cart in place so the row survives for the next visit.
type Clearer struct {
	carts cartports.Repository
}

func NewClearer(carts cartports.Repository) *Clearer {
	return &Clearer{carts: carts}
}

func (c *Clearer) ClearCart(ctx context.Context, userID string) error {
	err := c.carts.Clear(ctx, userID, time.Now().UTC())
	if errors.Is(err, cartports.ErrNotFound) {
		return nil
	}
	return err
}
