package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

var _ ports.CategoryRepository = (*CategoryRepository)(nil)

// CategoryRepository is an in-memory category adapter.
type CategoryRepository struct {
	mu         sync.RWMutex
	categories map[string]*domain.Category
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{categories: map[string]*domain.Category{}}
}

func (r *CategoryRepository) Create(_ context.Context, category *domain.Category) (*domain.Category, error) {
	if category == nil {
		return nil, errors.New("category is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.categories {
		if existing.Slug == category.Slug {
			return nil, ports.ErrDuplicateSlug
		}
	}
	clone := *category
	r.categories[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *CategoryRepository) GetByID(_ context.Context, id string) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	category, ok := r.categories[id]
	if !ok {
		return nil, ports.ErrCategoryNotFound
	}
	clone := *category
	return &clone, nil
}

func (r *CategoryRepository) List(_ context.Context, filter ports.CategoryFilter) ([]*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Category, 0, len(r.categories))
	for _, category := range r.categories {
		if !category.IsActive {
			continue
		}
		if filter.ParentID != "" && category.ParentID != filter.ParentID {
			continue
		}
		if filter.Level != nil && category.Level != *filter.Level {
			continue
		}
		clone := *category
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Order != list[j].Order {
			return list[i].Order < list[j].Order
		}
		return list[i].Name < list[j].Name
	})
	return list, nil
}
