package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/memory"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

type fakeProducts map[string]ports.Product

func (f fakeProducts) Product(_ context.Context, id string) (ports.Product, error) {
	p, ok := f[id]
	if !ok {
		return ports.Product{}, ports.ErrProductNotFound
	}
	return p, nil
}

func newTestService() (*Service, fakeProducts) {
	products := fakeProducts{
		"a": {ID: "a", Name: "Lamp", Price: decimal.RequireFromString("10"), Stock: 5, IsActive: true},
		"b": {ID: "b", Name: "Desk", Price: decimal.RequireFromString("25"), Stock: 1, IsActive: true},
		"z": {ID: "z", Name: "Retired", Price: decimal.RequireFromString("1"), Stock: 9, IsActive: false},
	}
	return NewService(memory.NewRepository(), products), products
}

func TestGetCart_CreatesLazily(t *testing.T) {
	svc, _ := newTestService()

	cart, err := svc.GetCart(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, "user-1", cart.UserID)
	require.Empty(t, cart.Items)
	require.True(t, cart.Total.IsZero())

	_, err = svc.repo.Get(context.Background(), "user-1")
	require.NoError(t, err, "empty cart persisted on first read")
}

func TestAddItem_MergesAndRefreshesPrice(t *testing.T) {
	svc, products := newTestService()
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "user-1", "a", 2)
	require.NoError(t, err)
	require.Equal(t, "20", cart.Total.String())

	p := products["a"]
	p.Price = decimal.RequireFromString("12")
	products["a"] = p

	cart, err = svc.AddItem(ctx, "user-1", "a", 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, 3, cart.Items[0].Quantity)
	require.Equal(t, "36", cart.Total.String())
	require.Equal(t, 3, cart.ItemCount)
}

func TestAddItem_ChecksOnlyAdditionalQuantity(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "user-1", "a", 4)
	require.NoError(t, err)
	// 4 + 4 exceeds stock 5 in total but each request is within stock
	cart, err := svc.AddItem(ctx, "user-1", "a", 4)
	require.NoError(t, err)
	require.Equal(t, 8, cart.ItemCount)

	_, err = svc.AddItem(ctx, "user-1", "b", 2)
	require.ErrorIs(t, err, ErrInsufficientStock)
}

func TestAddItem_Rejections(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "user-1", "missing", 1)
	require.ErrorIs(t, err, ErrProductUnavailable)

	_, err = svc.AddItem(ctx, "user-1", "z", 1)
	require.ErrorIs(t, err, ErrProductUnavailable)

	_, err = svc.AddItem(ctx, "user-1", "a", 0)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AddItem(ctx, "user-1", "", 1)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateItem(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.UpdateItem(ctx, "user-1", "a", 1)
	require.ErrorIs(t, err, ports.ErrNotFound)

	_, err = svc.AddItem(ctx, "user-1", "a", 1)
	require.NoError(t, err)

	_, err = svc.UpdateItem(ctx, "user-1", "b", 1)
	require.ErrorIs(t, err, domain.ErrItemNotFound)

	_, err = svc.UpdateItem(ctx, "user-1", "a", 0)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateItem(ctx, "user-1", "a", 6)
	require.ErrorIs(t, err, ErrInsufficientStock)

	cart, err := svc.UpdateItem(ctx, "user-1", "a", 5)
	require.NoError(t, err)
	require.Equal(t, "50", cart.Total.String())
	require.Equal(t, 5, cart.ItemCount)
}

func TestRemoveAndClear(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "user-1", "a", 2)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "user-1", "b", 1)
	require.NoError(t, err)

	cart, err := svc.RemoveItem(ctx, "user-1", "a")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, "25", cart.Total.String())

	cart, err = svc.Clear(ctx, "user-1")
	require.NoError(t, err)
	require.Empty(t, cart.Items)
	require.Zero(t, cart.ItemCount)

	_, err = svc.Clear(ctx, "user-2")
	require.ErrorIs(t, err, ports.ErrNotFound)
}
