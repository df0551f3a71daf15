package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

// ProductRequest is the create/update payload for a product. Omitted fields
// keep their stored value on update.
type ProductRequest struct {
	Name            *string          `json:"name"`
	Description     *string          `json:"description"`
	Price           *decimal.Decimal `json:"price"`
	OriginalPrice   *decimal.Decimal `json:"originalPrice"`
	Images          []string         `json:"images"`
	Category        *string          `json:"category"`
	Brand           *string          `json:"brand"`
	Stock           *int             `json:"stock"`
	SKU             *string          `json:"sku"`
	Tags            []string         `json:"tags"`
	IsActive        *bool            `json:"isActive"`
	IsFlashSale     *bool            `json:"isFlashSale"`
	FlashSalePrice  *decimal.Decimal `json:"flashSalePrice"`
	FlashSaleEndsAt *time.Time       `json:"flashSaleEndsAt"`
}

// Product is the public product view.
type Product struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	Price           decimal.Decimal  `json:"price"`
	OriginalPrice   *decimal.Decimal `json:"originalPrice,omitempty"`
	Images          []string         `json:"images"`
	Category        string           `json:"category"`
	Brand           string           `json:"brand,omitempty"`
	Vendor          string           `json:"vendor,omitempty"`
	Stock           int              `json:"stock"`
	SKU             string           `json:"sku,omitempty"`
	Tags            []string         `json:"tags"`
	IsActive        bool             `json:"isActive"`
	IsFlashSale     bool             `json:"isFlashSale"`
	FlashSalePrice  *decimal.Decimal `json:"flashSalePrice,omitempty"`
	FlashSaleEndsAt *time.Time       `json:"flashSaleEndsAt,omitempty"`
	Rating          float64          `json:"rating"`
	ReviewCount     int              `json:"reviewCount"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// CategoryRequest is the create payload for a category.
type CategoryRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Parent      string `json:"parent"`
	Order       int    `json:"order"`
}

// Category is the public category view.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	Parent      string    `json:"parent,omitempty"`
	IsActive    bool      `json:"isActive"`
	Order       int       `json:"order"`
	Level       int       `json:"level"`
	CreatedAt   time.Time `json:"createdAt"`
}

func ToProductInput(req ProductRequest) ports.ProductInput {
	return ports.ProductInput{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		OriginalPrice:   req.OriginalPrice,
		Images:          req.Images,
		Category:        req.Category,
		Brand:           req.Brand,
		Stock:           req.Stock,
		SKU:             req.SKU,
		Tags:            req.Tags,
		IsActive:        req.IsActive,
		IsFlashSale:     req.IsFlashSale,
		FlashSalePrice:  req.FlashSalePrice,
		FlashSaleEndsAt: req.FlashSaleEndsAt,
	}
}

func ToCategoryInput(req CategoryRequest) ports.CategoryInput {
	return ports.CategoryInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Image:       req.Image,
		ParentID:    req.Parent,
		Order:       req.Order,
	}
}

func FromDomainProduct(p *domain.Product) Product {
	if p == nil {
		return Product{}
	}
	return Product{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		OriginalPrice:   p.OriginalPrice,
		Images:          nonNil(p.Images),
		Category:        p.Category,
		Brand:           p.Brand,
		Vendor:          p.VendorID,
		Stock:           p.Stock,
		SKU:             p.SKU,
		Tags:            nonNil(p.Tags),
		IsActive:        p.IsActive,
		IsFlashSale:     p.IsFlashSale,
		FlashSalePrice:  p.FlashSalePrice,
		FlashSaleEndsAt: p.FlashSaleEndsAt,
		Rating:          p.Rating,
		ReviewCount:     p.ReviewCount,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func FromDomainProducts(products []*domain.Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		out = append(out, FromDomainProduct(p))
	}
	return out
}

func FromDomainCategories(categories []*domain.Category) []Category {
	out := make([]Category, 0, len(categories))
	for _, c := range categories {
		out = append(out, FromDomainCategory(c))
	}
	return out
}

func FromDomainCategory(c *domain.Category) Category {
	if c == nil {
		return Category{}
	}
	return Category{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Image:       c.Image,
		Parent:      c.ParentID,
		IsActive:    c.IsActive,
		Order:       c.Order,
		Level:       c.Level,
		CreatedAt:   c.CreatedAt,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
