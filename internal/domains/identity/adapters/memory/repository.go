package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/Apurer/go-gin-storefront/internal/domains/identity/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/identity/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory user persistence adapter.
type Repository struct {
	mu      sync.RWMutex
	users   map[string]*domain.User
	byEmail map[string]string
}

func NewRepository() *Repository {
	return &Repository{users: map[string]*domain.User{}, byEmail: map[string]string{}}
}

func (r *Repository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[user.Email]; ok {
		return nil, ports.ErrDuplicateEmail
	}
	clone := cloneUser(user)
	r.users[clone.ID] = clone
	r.byEmail[clone.Email] = clone.ID
	return cloneUser(clone), nil
}

func (r *Repository) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[user.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if existing.Email != user.Email {
		if _, taken := r.byEmail[user.Email]; taken {
			return nil, ports.ErrDuplicateEmail
		}
		delete(r.byEmail, existing.Email)
		r.byEmail[user.Email] = user.ID
	}
	clone := cloneUser(user)
	r.users[clone.ID] = clone
	return cloneUser(clone), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneUser(user), nil
}

func (r *Repository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[domain.NormalizeEmail(email)]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneUser(r.users[id]), nil
}

func (r *Repository) CountByRole(_ context.Context, role domain.Role) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, user := range r.users {
		if user.Role == role {
			n++
		}
	}
	return n, nil
}

func cloneUser(user *domain.User) *domain.User {
	clone := *user
	clone.Addresses = append([]domain.Address(nil), user.Addresses...)
	return &clone
}
