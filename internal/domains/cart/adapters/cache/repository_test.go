package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/memory"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

type countingRepo struct {
	ports.Repository
	gets int
}

func (c *countingRepo) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	c.gets++
	return c.Repository.Get(ctx, userID)
}

func setupCache(t *testing.T) (*Repository, *countingRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	inner := &countingRepo{Repository: memory.NewRepository()}
	return NewRepository(inner, client), inner, mr
}

func seedCart(t *testing.T, repo ports.Repository, userID string) {
	t.Helper()
	cart, err := domain.NewCart(userID, time.Now())
	require.NoError(t, err)
	require.NoError(t, cart.Add(domain.LineItem{ProductID: "p1", Quantity: 2, Price: decimal.RequireFromString("4.25")}))
	_, err = repo.Save(context.Background(), cart)
	require.NoError(t, err)
}

func TestGet_ReadThrough(t *testing.T) {
	cache, inner, mr := setupCache(t)
	ctx := context.Background()
	seedCart(t, inner.Repository, "user-1")

	first, err := cache.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.gets)
	assert.True(t, mr.Exists(cacheKey("user-1")))

	second, err := cache.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.gets, "second read served from redis")
	assert.True(t, first.Total.Equal(second.Total))
	assert.Equal(t, "8.5", second.Total.String())
	assert.Equal(t, 2, second.ItemCount)
}

func TestGet_TTLWithinJitterWindow(t *testing.T) {
	cache, inner, mr := setupCache(t)
	seedCart(t, inner.Repository, "user-2")

	_, err := cache.Get(context.Background(), "user-2")
	require.NoError(t, err)

	ttl := mr.TTL(cacheKey("user-2"))
	assert.GreaterOrEqual(t, ttl, DefaultTTL)
	assert.Less(t, ttl, DefaultTTL+DefaultMaxJitter)
}

func TestGet_MissPropagatesNotFound(t *testing.T) {
	cache, _, mr := setupCache(t)

	_, err := cache.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, ports.ErrNotFound)
	assert.False(t, mr.Exists(cacheKey("nobody")))
}

func TestGet_CorruptEntryFallsBackToStore(t *testing.T) {
	cache, inner, mr := setupCache(t)
	seedCart(t, inner.Repository, "user-3")
	require.NoError(t, mr.Set(cacheKey("user-3"), `{"userId":`))

	cart, err := cache.Get(context.Background(), "user-3")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.gets)
	assert.Len(t, cart.Items, 1)
}

func TestSave_Invalidates(t *testing.T) {
	cache, inner, mr := setupCache(t)
	ctx := context.Background()
	seedCart(t, inner.Repository, "user-4")

	cart, err := cache.Get(ctx, "user-4")
	require.NoError(t, err)
	require.True(t, mr.Exists(cacheKey("user-4")))

	cart.Clear()
	_, err = cache.Save(ctx, cart)
	require.NoError(t, err)
	assert.False(t, mr.Exists(cacheKey("user-4")))

	fresh, err := cache.Get(ctx, "user-4")
	require.NoError(t, err)
	assert.Empty(t, fresh.Items)
}

func TestClear_EmptiesStoreAndInvalidates(t *testing.T) {
	cache, inner, mr := setupCache(t)
	ctx := context.Background()
	seedCart(t, inner.Repository, "user-6")

	_, err := cache.Get(ctx, "user-6")
	require.NoError(t, err)
	require.True(t, mr.Exists(cacheKey("user-6")))

	require.NoError(t, cache.Clear(ctx, "user-6", time.Now()))
	assert.False(t, mr.Exists(cacheKey("user-6")))

	fresh, err := cache.Get(ctx, "user-6")
	require.NoError(t, err)
	assert.Empty(t, fresh.Items)
	assert.Zero(t, fresh.ItemCount)
	assert.True(t, fresh.Total.IsZero())

	assert.ErrorIs(t, cache.Clear(ctx, "nobody", time.Now()), ports.ErrNotFound)
}

func TestGet_RedisDownStillServes(t *testing.T) {
	cache, inner, mr := setupCache(t)
	seedCart(t, inner.Repository, "user-5")
	mr.Close()

	cart, err := cache.Get(context.Background(), "user-5")
	require.NoError(t, err)
	assert.Equal(t, "user-5", cart.UserID)
}

func TestCacheKey_Format(t *testing.T) {
	assert.Equal(t, "cart:test123", cacheKey("test123"))
}
