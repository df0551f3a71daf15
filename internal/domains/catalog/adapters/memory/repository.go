package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-storefront/internal/shared/pagination"
)

var _ ports.ProductRepository = (*ProductRepository)(nil)

// ProductRepository is an in-memory product adapter. Stock changes happen under
// the write lock so guarded reservations are atomic.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: map[string]*domain.Product{}}
}

func (r *ProductRepository) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if product.SKU != "" && r.skuTaken(product.SKU, product.ID) {
		return nil, ports.ErrDuplicateSKU
	}
	clone := cloneProduct(product)
	r.products[clone.ID] = clone
	return cloneProduct(clone), nil
}

func (r *ProductRepository) Update(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.products[product.ID]
	if !ok {
		return nil, ports.ErrProductNotFound
	}
	if product.SKU != "" && r.skuTaken(product.SKU, product.ID) {
		return nil, ports.ErrDuplicateSKU
	}
	clone := cloneProduct(product)
	clone.Stock = existing.Stock
	clone.Rating = existing.Rating
	clone.ReviewCount = existing.ReviewCount
	r.products[clone.ID] = clone
	return cloneProduct(clone), nil
}

func (r *ProductRepository) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrProductNotFound
	}
	return cloneProduct(product), nil
}

func (r *ProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ports.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *ProductRepository) Search(_ context.Context, filter ports.ProductFilter) (pagination.Page[*domain.Product], error) {
	r.mu.RLock()
	matched := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		if matches(product, filter) {
			matched = append(matched, cloneProduct(product))
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		less := lessBy(matched[i], matched[j], filter.SortBy)
		if filter.Descending {
			return lessBy(matched[j], matched[i], filter.SortBy)
		}
		return less
	})
	return pagination.Slice(matched, filter.Page), nil
}

func (r *ProductRepository) CountActive(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, product := range r.products {
		if product.IsActive {
			n++
		}
	}
	return n, nil
}

func (r *ProductRepository) ReserveStock(_ context.Context, id string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return ports.ErrProductNotFound
	}
	if !product.Reserve(quantity) {
		return ports.ErrInsufficientStock
	}
	return nil
}

func (r *ProductRepository) DecrementStock(_ context.Context, id string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return ports.ErrProductNotFound
	}
	product.Stock -= quantity
	return nil
}

func (r *ProductRepository) SetStock(_ context.Context, id string, stock int) error {
	if stock < 0 {
		return domain.ErrNegativeStock
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return ports.ErrProductNotFound
	}
	product.Stock = stock
	return nil
}

func (r *ProductRepository) RestockProduct(_ context.Context, id string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return ports.ErrProductNotFound
	}
	product.Restock(quantity)
	return nil
}

func (r *ProductRepository) UpdateRating(_ context.Context, id string, rating float64, reviewCount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return ports.ErrProductNotFound
	}
	product.Rating = rating
	product.ReviewCount = reviewCount
	return nil
}

func (r *ProductRepository) skuTaken(sku, exceptID string) bool {
	for id, product := range r.products {
		if id != exceptID && strings.EqualFold(product.SKU, sku) {
			return true
		}
	}
	return false
}

func matches(p *domain.Product, f ports.ProductFilter) bool {
	if !f.IncludeDraft && !p.IsActive {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.VendorID != "" && p.VendorID != f.VendorID {
		return false
	}
	if f.Brand != "" && !strings.Contains(strings.ToLower(p.Brand), strings.ToLower(f.Brand)) {
		return false
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	if f.MinRating != nil && p.Rating < *f.MinRating {
		return false
	}
	if f.FlashSale && !p.FlashSaleActive(f.Now) {
		return false
	}
	if f.Search != "" && !containsText(p, strings.ToLower(f.Search)) {
		return false
	}
	return true
}

func containsText(p *domain.Product, needle string) bool {
	if strings.Contains(strings.ToLower(p.Name), needle) || strings.Contains(strings.ToLower(p.Description), needle) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func lessBy(a, b *domain.Product, field ports.SortField) bool {
	switch field {
	case ports.SortByPrice:
		return a.Price.LessThan(b.Price)
	case ports.SortByRating:
		return a.Rating < b.Rating
	case ports.SortByName:
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	default:
		return a.CreatedAt.Before(b.CreatedAt)
	}
}

func cloneProduct(p *domain.Product) *domain.Product {
	clone := *p
	clone.Images = append([]string(nil), p.Images...)
	clone.Tags = append([]string(nil), p.Tags...)
	return &clone
}
