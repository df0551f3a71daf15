package ports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// StockedProduct is the catalog view needed at checkout.
type StockedProduct struct {
	ID       string
	Name     string
	Image    string
	Price    decimal.Decimal
	Stock    int
	IsActive bool
}

// Inventory reads and adjusts product stock.
type Inventory interface {
	Product(ctx context.Context, id string) (StockedProduct, error)
	// Reserve decrements only when enough stock remains, else ErrInsufficientStock.
	Reserve(ctx context.Context, id string, quantity int) error
	// Decrement subtracts without any guard.
	Decrement(ctx context.Context, id string, quantity int) error
	Restock(ctx context.Context, id string, quantity int) error
}

// CartClearer empties a user's cart after checkout.
type CartClearer interface {
	ClearCart(ctx context.Context, userID string) error
}
