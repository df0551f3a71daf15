package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName        = errors.New("name is required")
	ErrNegativePrice    = errors.New("price must not be negative")
	ErrNegativeStock    = errors.New("stock must not be negative")
	ErrInvalidQuantity  = errors.New("quantity must be greater than zero")
	ErrInvalidRating    = errors.New("rating must be between 0 and 5")
	ErrEmptyCategoryRef = errors.New("category is required")
)

// Product is a sellable catalog item. Stock never drops below zero.
type Product struct {
	ID              string
	Name            string
	Description     string
	Price           decimal.Decimal
	OriginalPrice   *decimal.Decimal
	Images          []string
	Category        string
	Brand           string
	VendorID        string
	Stock           int
	SKU             string
	Tags            []string
	IsActive        bool
	IsFlashSale     bool
	FlashSalePrice  *decimal.Decimal
	FlashSaleEndsAt *time.Time
	Rating          float64
	ReviewCount     int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate enforces invariants on the aggregate.
func (p *Product) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(p.Category) == "" {
		return ErrEmptyCategoryRef
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	if p.OriginalPrice != nil && p.OriginalPrice.IsNegative() {
		return ErrNegativePrice
	}
	if p.FlashSalePrice != nil && p.FlashSalePrice.IsNegative() {
		return ErrNegativePrice
	}
	if p.Stock < 0 {
		return ErrNegativeStock
	}
	if p.Rating < 0 || p.Rating > 5 {
		return ErrInvalidRating
	}
	p.SKU = strings.TrimSpace(p.SKU)
	return nil
}

// Purchasable reports whether the product can be put in a cart or ordered.
func (p *Product) Purchasable() bool {
	return p != nil && p.IsActive
}

// HasStock reports whether quantity units are on hand.
func (p *Product) HasStock(quantity int) bool {
	return p.Stock >= quantity
}

// FlashSaleActive reports whether the promotional window is open at now.
func (p *Product) FlashSaleActive(now time.Time) bool {
	return p.IsFlashSale && p.FlashSaleEndsAt != nil && p.FlashSaleEndsAt.After(now)
}

// Reserve removes quantity units from stock when enough are available.
func (p *Product) Reserve(quantity int) bool {
	if quantity <= 0 || p.Stock < quantity {
		return false
	}
	p.Stock -= quantity
	return true
}

// Restock returns quantity units to stock.
func (p *Product) Restock(quantity int) {
	if quantity > 0 {
		p.Stock += quantity
	}
}

// RoundRating rounds a mean rating to one decimal place.
func RoundRating(mean float64) float64 {
	f, _ := decimal.NewFromFloat(mean).Round(1).Float64()
	return f
}
