package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-storefront/internal/domains/wishlist/domain"
)

// AddRequest saves a product to the caller's wishlist.
type AddRequest struct {
	ProductID string `json:"productId"`
}

type Item struct {
	ProductID   string          `json:"productId"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Images      []string        `json:"images"`
	Rating      float64         `json:"rating"`
	ReviewCount int             `json:"reviewCount"`
	AddedAt     time.Time       `json:"addedAt"`
}

func FromDomainItems(items []domain.Item) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		images := item.Images
		if images == nil {
			images = []string{}
		}
		out = append(out, Item{
			ProductID:   item.ProductID,
			Name:        item.Name,
			Price:       item.Price,
			Images:      images,
			Rating:      item.Rating,
			ReviewCount: item.ReviewCount,
			AddedAt:     item.AddedAt,
		})
	}
	return out
}
