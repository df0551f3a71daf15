package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Apurer/go-gin-storefront/internal/domains/wishlist/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/wishlist/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps wishlists in memory for development and tests.
type Repository struct {
	mu      sync.RWMutex
	entries map[string]map[string]domain.Entry
}

func NewRepository() *Repository {
	return &Repository{entries: map[string]map[string]domain.Entry{}}
}

func (r *Repository) Add(_ context.Context, entry domain.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	saved, ok := r.entries[entry.UserID]
	if !ok {
		saved = map[string]domain.Entry{}
		r.entries[entry.UserID] = saved
	}
	if _, exists := saved[entry.ProductID]; exists {
		return ports.ErrDuplicateEntry
	}
	saved[entry.ProductID] = entry
	return nil
}

func (r *Repository) Remove(_ context.Context, userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries[userID], productID)
	return nil
}

func (r *Repository) Entries(_ context.Context, userID string) ([]domain.Entry, error) {
	r.mu.RLock()
	out := make([]domain.Entry, 0, len(r.entries[userID]))
	for _, entry := range r.entries[userID] {
		out = append(out, entry)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ProductID < out[j].ProductID
	})
	return out, nil
}
