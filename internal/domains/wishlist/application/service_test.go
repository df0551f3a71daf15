package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/wishlist/adapters/catalog"
	"github.com/Apurer/go-gin-storefront/internal/domains/wishlist/adapters/memory"
	"github.com/Apurer/go-gin-storefront/internal/domains/wishlist/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/wishlist/ports"
)

func newService(t *testing.T) (*Service, *catalogmemory.ProductRepository) {
	t.Helper()
	products := catalogmemory.NewProductRepository()
	for _, p := range []*catalogdomain.Product{
		{ID: "p1", Name: "Mug", Price: decimal.RequireFromString("8.50"), Category: "kitchen", Images: []string{"mug.png"}, IsActive: true},
		{ID: "p2", Name: "Teapot", Price: decimal.NewFromInt(30), Category: "kitchen", IsActive: true, Rating: 4.5, ReviewCount: 2},
	} {
		_, err := products.Create(context.Background(), p)
		require.NoError(t, err)
	}
	return NewService(memory.NewRepository(), catalog.NewProducts(products)), products
}

func TestWishlist_AddListRemove(t *testing.T) {
	svc, products := newService(t)
	ctx := context.Background()

	items, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = svc.Add(ctx, "u1", "p1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Mug", items[0].Name)
	assert.Equal(t, []string{"mug.png"}, items[0].Images)

	items, err = svc.Add(ctx, "u1", " p2 ")
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = svc.Add(ctx, "u1", "p1")
	assert.ErrorIs(t, err, ports.ErrDuplicateEntry)
	_, err = svc.Add(ctx, "u1", "nope")
	assert.ErrorIs(t, err, ports.ErrProductNotFound)
	_, err = svc.Add(ctx, "u1", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, domain.ErrMissingProduct)

	other, err := svc.List(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, other)

	require.NoError(t, products.Delete(ctx, "p2"))
	items, err = svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	items, err = svc.Remove(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.Empty(t, items)
	_, err = svc.Remove(ctx, "u1", "p1")
	require.NoError(t, err)
	_, err = svc.Remove(ctx, "u1", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
