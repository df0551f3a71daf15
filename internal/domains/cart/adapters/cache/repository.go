// Package cache puts a Redis read-through cache in front of a cart repository.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

const (
	DefaultTTL       = 15 * time.Minute
	DefaultMaxJitter = 5 * time.Minute
)

var ErrCacheMiss = errors.New("cache miss")

var _ ports.Repository = (*Repository)(nil)

// Repository serves reads from Redis when possible and falls through to the
// wrapped store. Cache failures are logged and never fail the call.
type Repository struct {
	inner     ports.Repository
	client    redis.UniversalClient
	ttl       time.Duration
	maxJitter time.Duration
	logger    *slog.Logger
}

type Option func(*Repository)

func WithTTL(ttl, maxJitter time.Duration) Option {
	return func(r *Repository) {
		r.ttl = ttl
		r.maxJitter = maxJitter
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) {
		r.logger = logger
	}
}

func NewRepository(inner ports.Repository, client redis.UniversalClient, opts ...Option) *Repository {
	r := &Repository{
		inner:     inner,
		client:    client,
		ttl:       DefaultTTL,
		maxJitter: DefaultMaxJitter,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Repository) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	cached, err := r.read(ctx, userID)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		r.logger.LogAttrs(ctx, slog.LevelWarn, "cart cache read failed", slog.String("user.id", userID), slog.String("error", err.Error()))
	}
	cart, err := r.inner.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	r.write(ctx, cart)
	return cart, nil
}

// Save writes through to the store and then invalidates the cached copy.
func (r *Repository) Save(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	saved, err := r.inner.Save(ctx, cart)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, saved.UserID)
	return saved, nil
}

// Clear empties the stored cart and then invalidates the cached copy.
func (r *Repository) Clear(ctx context.Context, userID string, at time.Time) error {
	if err := r.inner.Clear(ctx, userID, at); err != nil {
		return err
	}
	r.invalidate(ctx, userID)
	return nil
}

func (r *Repository) invalidate(ctx context.Context, userID string) {
	if err := r.client.Del(ctx, cacheKey(userID)).Err(); err != nil {
		r.logger.LogAttrs(ctx, slog.LevelWarn, "cart cache invalidation failed", slog.String("user.id", userID), slog.String("error", err.Error()))
	}
}

func (r *Repository) read(ctx context.Context, userID string) (*domain.Cart, error) {
	data, err := r.client.Get(ctx, cacheKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return entry.toDomain(), nil
}

func (r *Repository) write(ctx context.Context, cart *domain.Cart) {
	data, err := json.Marshal(toEntry(cart))
	if err != nil {
		r.logger.LogAttrs(ctx, slog.LevelWarn, "cart cache encode failed", slog.String("error", err.Error()))
		return
	}
	if err := r.client.Set(ctx, cacheKey(cart.UserID), data, r.expiry()).Err(); err != nil {
		r.logger.LogAttrs(ctx, slog.LevelWarn, "cart cache write failed", slog.String("user.id", cart.UserID), slog.String("error", err.Error()))
	}
}

func (r *Repository) expiry() time.Duration {
	if r.maxJitter <= 0 {
		return r.ttl
	}
	return r.ttl + time.Duration(rand.Int63n(int64(r.maxJitter)))
}

func cacheKey(userID string) string {
	return fmt.Sprintf("cart:%s", userID)
}

type cacheEntry struct {
	UserID    string      `json:"userId"`
	Items     []cacheLine `json:"items"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

type cacheLine struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name,omitempty"`
	Image     string          `json:"image,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

func toEntry(cart *domain.Cart) cacheEntry {
	lines := make([]cacheLine, 0, len(cart.Items))
	for _, line := range cart.Items {
		lines = append(lines, cacheLine(line))
	}
	return cacheEntry{UserID: cart.UserID, Items: lines, CreatedAt: cart.CreatedAt, UpdatedAt: cart.UpdatedAt}
}

// toDomain rebuilds the derived totals instead of trusting cached ones.
func (e cacheEntry) toDomain() *domain.Cart {
	items := make([]domain.LineItem, 0, len(e.Items))
	for _, line := range e.Items {
		items = append(items, domain.LineItem(line))
	}
	cart := &domain.Cart{UserID: e.UserID, Items: items, CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt}
	cart.Recalculate()
	return cart
}
