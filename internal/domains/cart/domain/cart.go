package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrMissingUser     = errors.New("cart owner is required")
	ErrMissingProduct  = errors.New("product id is required")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrItemNotFound    = errors.New("item not found in cart")
)

// LineItem is one product entry with the unit price captured when it was last added.
type LineItem struct {
	ProductID string
	Name      string
	Image     string
	Quantity  int
	Price     decimal.Decimal
}

// LineTotal is price times quantity.
func (l LineItem) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart belongs to exactly one user. Total and ItemCount are derived from Items
// and refreshed by every mutating method.
type Cart struct {
	UserID    string
	Items     []LineItem
	Total     decimal.Decimal
	ItemCount int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCart returns an empty cart for userID.
func NewCart(userID string, now time.Time) (*Cart, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrMissingUser
	}
	return &Cart{UserID: userID, Items: []LineItem{}, Total: decimal.Zero, CreatedAt: now, UpdatedAt: now}, nil
}

// Add merges quantity into an existing line, refreshing its price, or appends a new line.
func (c *Cart) Add(item LineItem) error {
	if strings.TrimSpace(item.ProductID) == "" {
		return ErrMissingProduct
	}
	if item.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if i := c.indexOf(item.ProductID); i >= 0 {
		line := &c.Items[i]
		line.Quantity += item.Quantity
		line.Price = item.Price
		if item.Name != "" {
			line.Name = item.Name
		}
		if item.Image != "" {
			line.Image = item.Image
		}
	} else {
		c.Items = append(c.Items, item)
	}
	c.Recalculate()
	return nil
}

// SetQuantity replaces the quantity of an existing line.
func (c *Cart) SetQuantity(productID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	i := c.indexOf(productID)
	if i < 0 {
		return ErrItemNotFound
	}
	c.Items[i].Quantity = quantity
	c.Recalculate()
	return nil
}

// Remove drops the line for productID. Removing an absent line is a no-op.
func (c *Cart) Remove(productID string) {
	if i := c.indexOf(productID); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
	c.Recalculate()
}

// Clear empties the cart but keeps it.
func (c *Cart) Clear() {
	c.Items = []LineItem{}
	c.Recalculate()
}

// Line returns the line for productID.
func (c *Cart) Line(productID string) (LineItem, bool) {
	if i := c.indexOf(productID); i >= 0 {
		return c.Items[i], true
	}
	return LineItem{}, false
}

// Recalculate derives Total and ItemCount from Items.
func (c *Cart) Recalculate() {
	total := decimal.Zero
	count := 0
	for _, line := range c.Items {
		total = total.Add(line.LineTotal())
		count += line.Quantity
	}
	c.Total = total
	c.ItemCount = count
}

// Clone returns a deep copy.
func (c *Cart) Clone() *Cart {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Items = append([]LineItem{}, c.Items...)
	return &clone
}

func (c *Cart) indexOf(productID string) int {
	for i, line := range c.Items {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}
