package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/go-gin-storefront/internal/domains/reviews/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/reviews/ports"
	"github.com/Apurer/go-gin-storefront/internal/shared/pagination"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps reviews in memory for development and tests.
type Repository struct {
	mu      sync.RWMutex
	reviews map[string]*domain.Review
	triples map[triple]string
}

type triple struct {
	userID, productID, orderID string
}

func NewRepository() *Repository {
	return &Repository{reviews: map[string]*domain.Review{}, triples: map[triple]string{}}
}

func (r *Repository) Create(_ context.Context, review *domain.Review) (*domain.Review, error) {
	if review == nil {
		return nil, errors.New("review is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := triple{review.UserID, review.ProductID, review.OrderID}
	if _, taken := r.triples[key]; taken {
		return nil, ports.ErrDuplicateReview
	}
	clone := review.Clone()
	clone.Author = nil
	r.reviews[clone.ID] = clone
	r.triples[key] = clone.ID
	return clone.Clone(), nil
}

func (r *Repository) List(_ context.Context, filter ports.ListFilter) (pagination.Page[*domain.Review], error) {
	r.mu.RLock()
	matched := make([]*domain.Review, 0)
	for _, review := range r.reviews {
		if review.ProductID != filter.ProductID {
			continue
		}
		if filter.Rating != 0 && review.Rating != filter.Rating {
			continue
		}
		matched = append(matched, review.Clone())
	}
	r.mu.RUnlock()
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	return pagination.Slice(matched, filter.Page), nil
}

func (r *Repository) Ratings(_ context.Context, productID string) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var ratings []int
	for _, review := range r.reviews {
		if review.ProductID == productID {
			ratings = append(ratings, review.Rating)
		}
	}
	return ratings, nil
}
