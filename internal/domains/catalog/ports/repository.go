package ports

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/shared/pagination"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrDuplicateSKU      = errors.New("sku already exists")
	ErrDuplicateSlug     = errors.New("category slug already exists")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// SortField names a sortable product column.
type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByPrice     SortField = "price"
	SortByRating    SortField = "rating"
	SortByName      SortField = "name"
)

// ProductFilter narrows a product listing. Zero values disable a filter.
type ProductFilter struct {
	Category     string
	Brand        string
	Search       string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	MinRating    *float64
	FlashSale    bool
	VendorID     string
	IncludeDraft bool
	Now          time.Time
	SortBy       SortField
	Descending   bool
	Page         pagination.Params
}

// ProductRepository persists products and performs atomic stock adjustments.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	// Update writes the editable columns. Stock, rating and review count keep
	// their stored values.
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, filter ProductFilter) (pagination.Page[*domain.Product], error)
	CountActive(ctx context.Context) (int64, error)

	// ReserveStock decrements stock only when stock >= quantity. It returns
	// ErrInsufficientStock when no row matched the guarded update.
	ReserveStock(ctx context.Context, id string, quantity int) error
	// DecrementStock subtracts quantity without guarding against oversell.
	DecrementStock(ctx context.Context, id string, quantity int) error
	// SetStock overwrites stock with an absolute count.
	SetStock(ctx context.Context, id string, stock int) error
	// RestockProduct adds quantity back to stock.
	RestockProduct(ctx context.Context, id string, quantity int) error
	// UpdateRating stores the aggregated rating and review count.
	UpdateRating(ctx context.Context, id string, rating float64, reviewCount int) error
}

// CategoryFilter narrows a category listing.
type CategoryFilter struct {
	ParentID string
	Level    *int
}

// CategoryRepository persists categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context, filter CategoryFilter) ([]*domain.Category, error)
}
