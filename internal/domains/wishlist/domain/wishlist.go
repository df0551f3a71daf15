package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrMissingProduct = errors.New("product id is required")

// Entry records that a user saved a product.
type Entry struct {
	UserID    string
	ProductID string
	CreatedAt time.Time
}

// Item is the product summary shown in a wishlist.
type Item struct {
	ProductID   string
	Name        string
	Price       decimal.Decimal
	Images      []string
	Rating      float64
	ReviewCount int
	AddedAt     time.Time
}
