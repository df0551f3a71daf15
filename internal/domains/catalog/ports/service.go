package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	identitydomain "github.com/Apurer/go-gin-storefront/internal/domains/identity/domain"
	"github.com/Apurer/go-gin-storefront/internal/shared/pagination"
)

// ProductInput carries writable product fields. A nil field is left as stored,
// so updates merge into the existing product.
type ProductInput struct {
	Name            *string
	Description     *string
	Price           *decimal.Decimal
	OriginalPrice   *decimal.Decimal
	Images          []string
	Category        *string
	Brand           *string
	Stock           *int
	SKU             *string
	Tags            []string
	IsActive        *bool
	IsFlashSale     *bool
	FlashSalePrice  *decimal.Decimal
	FlashSaleEndsAt *time.Time
}

// CategoryInput carries writable category fields.
type CategoryInput struct {
	Name        string
	Slug        string
	Description string
	Image       string
	ParentID    string
	Order       int
}

// Service exposes catalog use cases to adapters.
type Service interface {
	ListProducts(ctx context.Context, filter ProductFilter) (pagination.Page[*domain.Product], error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, actor identitydomain.Principal, input ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, actor identitydomain.Principal, id string, input ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, actor identitydomain.Principal, id string) error
	CountActiveProducts(ctx context.Context) (int64, error)

	ListCategories(ctx context.Context, filter CategoryFilter) ([]*domain.Category, error)
	CreateCategory(ctx context.Context, actor identitydomain.Principal, input CategoryInput) (*domain.Category, error)
}
