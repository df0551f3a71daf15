package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	identitydomain "github.com/Apurer/go-gin-storefront/internal/domains/identity/domain"
	"github.com/Apurer/go-gin-storefront/internal/shared/pagination"
)

const (
	DefaultProductPageSize = 12
	MaxProductPageSize     = 100
)

// Service orchestrates product and category use cases.
type Service struct {
	products   ports.ProductRepository
	categories ports.CategoryRepository
	now        func() time.Time
}

func NewService(products ports.ProductRepository, categories ports.CategoryRepository) *Service {
	return &Service{products: products, categories: categories, now: time.Now}
}

// ListProducts returns active products matching the filter, newest first by default.
func (s *Service) ListProducts(ctx context.Context, filter ports.ProductFilter) (pagination.Page[*domain.Product], error) {
	filter.Page = pagination.Normalize(filter.Page.Page, filter.Page.Limit, DefaultProductPageSize, MaxProductPageSize)
	switch filter.SortBy {
	case ports.SortByCreatedAt, ports.SortByPrice, ports.SortByRating, ports.SortByName:
	default:
		filter.SortBy = ports.SortByCreatedAt
		filter.Descending = true
	}
	filter.Brand = strings.TrimSpace(filter.Brand)
	filter.Search = strings.TrimSpace(filter.Search)
	filter.IncludeDraft = false
	if filter.Now.IsZero() {
		filter.Now = s.now()
	}
	return s.products.Search(ctx, filter)
}

func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

// CreateProduct stores a new product owned by the acting vendor or admin.
func (s *Service) CreateProduct(ctx context.Context, actor identitydomain.Principal, input ports.ProductInput) (*domain.Product, error) {
	if !actor.Can(identitydomain.CapManageCatalog) {
		return nil, ErrForbidden
	}
	now := s.now()
	product := &domain.Product{
		ID:        uuid.NewString(),
		VendorID:  actor.UserID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyProductInput(product, input)
	if err := product.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.products.Create(ctx, product)
}

// UpdateProduct merges the given fields into the product. Vendors may only
// touch their own products.
func (s *Service) UpdateProduct(ctx context.Context, actor identitydomain.Principal, id string, input ports.ProductInput) (*domain.Product, error) {
	product, err := s.editableProduct(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	applyProductInput(product, input)
	product.UpdatedAt = s.now()
	if err := product.Validate(); err != nil {
		return nil, mapError(err)
	}
	updated, err := s.products.Update(ctx, product)
	if err != nil {
		return nil, err
	}
	if input.Stock != nil {
		if err := s.products.SetStock(ctx, id, *input.Stock); err != nil {
			return nil, err
		}
		updated.Stock = *input.Stock
	}
	return updated, nil
}

func (s *Service) DeleteProduct(ctx context.Context, actor identitydomain.Principal, id string) error {
	if _, err := s.editableProduct(ctx, actor, id); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}

func (s *Service) CountActiveProducts(ctx context.Context) (int64, error) {
	return s.products.CountActive(ctx)
}

// ListCategories defaults to active top-level categories when no parent or level is given.
func (s *Service) ListCategories(ctx context.Context, filter ports.CategoryFilter) ([]*domain.Category, error) {
	filter.ParentID = strings.TrimSpace(filter.ParentID)
	if filter.ParentID == "" && filter.Level == nil {
		root := 0
		filter.Level = &root
	}
	return s.categories.List(ctx, filter)
}

func (s *Service) CreateCategory(ctx context.Context, actor identitydomain.Principal, input ports.CategoryInput) (*domain.Category, error) {
	if !actor.Can(identitydomain.CapManageCategories) {
		return nil, ErrForbidden
	}
	category, err := domain.NewCategory(uuid.NewString(), input.Name, input.Slug)
	if err != nil {
		return nil, mapError(err)
	}
	category.Description = strings.TrimSpace(input.Description)
	category.Image = strings.TrimSpace(input.Image)
	category.Order = input.Order
	if parentID := strings.TrimSpace(input.ParentID); parentID != "" {
		parent, err := s.categories.GetByID(ctx, parentID)
		if err != nil {
			return nil, err
		}
		category.AttachTo(parent)
	}
	now := s.now()
	category.CreatedAt = now
	category.UpdatedAt = now
	return s.categories.Create(ctx, category)
}

func (s *Service) editableProduct(ctx context.Context, actor identitydomain.Principal, id string) (*domain.Product, error) {
	if !actor.Can(identitydomain.CapManageCatalog) {
		return nil, ErrForbidden
	}
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Can(identitydomain.CapEditAnyProduct) && !actor.Owns(product.VendorID) {
		return nil, ErrForbidden
	}
	return product, nil
}

func applyProductInput(p *domain.Product, in ports.ProductInput) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.OriginalPrice != nil {
		p.OriginalPrice = in.OriginalPrice
	}
	if in.Images != nil {
		p.Images = append([]string(nil), in.Images...)
	}
	if in.Category != nil {
		p.Category = strings.TrimSpace(*in.Category)
	}
	if in.Brand != nil {
		p.Brand = strings.TrimSpace(*in.Brand)
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.SKU != nil {
		p.SKU = *in.SKU
	}
	if in.Tags != nil {
		p.Tags = append([]string(nil), in.Tags...)
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if in.IsFlashSale != nil {
		p.IsFlashSale = *in.IsFlashSale
	}
	if in.FlashSalePrice != nil {
		p.FlashSalePrice = in.FlashSalePrice
	}
	if in.FlashSaleEndsAt != nil {
		p.FlashSaleEndsAt = in.FlashSaleEndsAt
	}
}

// IsNotFound reports whether err means the product or category does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ports.ErrProductNotFound) || errors.Is(err, ports.ErrCategoryNotFound)
}

var _ ports.Service = (*Service)(nil)
