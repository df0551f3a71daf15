package cart

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartmemory "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/memory"
	cartdomain "github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
)

func TestClearCart(t *testing.T) {
	ctx := context.Background()
	carts := cartmemory.NewRepository()
	clearer := NewClearer(carts)

	require.NoError(t, clearer.ClearCart(ctx, "no-cart-yet"))

	cart, err := cartdomain.NewCart("buyer", time.Now())
	require.NoError(t, err)
	require.NoError(t, cart.Add(cartdomain.LineItem{ProductID: "p1", Quantity: 2, Price: decimal.NewFromInt(10)}))
	_, err = carts.Save(ctx, cart)
	require.NoError(t, err)

	require.NoError(t, clearer.ClearCart(ctx, "buyer"))
	cleared, err := carts.Get(ctx, "buyer")
	require.NoError(t, err)
	assert.Empty(t, cleared.Items)
	assert.Zero(t, cleared.ItemCount)
	assert.True(t, cleared.Total.IsZero())
}
