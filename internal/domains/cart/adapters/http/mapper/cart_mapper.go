package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
)

// ItemRequest adds or sets a product quantity.
type ItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type Item struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Image     string          `json:"image,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Total     decimal.Decimal `json:"total"`
}

type Cart struct {
	UserID    string          `json:"userId"`
	Items     []Item          `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func FromDomainCart(c *domain.Cart) Cart {
	if c == nil {
		return Cart{Items: []Item{}}
	}
	items := make([]Item, 0, len(c.Items))
	for _, line := range c.Items {
		items = append(items, Item{
			ProductID: line.ProductID,
			Name:      line.Name,
			Image:     line.Image,
			Quantity:  line.Quantity,
			Price:     line.Price,
			Total:     line.LineTotal(),
		})
	}
	return Cart{
		UserID:    c.UserID,
		Items:     items,
		Total:     c.Total,
		ItemCount: c.ItemCount,
		UpdatedAt: c.UpdatedAt,
	}
}
