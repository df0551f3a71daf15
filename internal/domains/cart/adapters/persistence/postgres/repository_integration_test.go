//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/persistence/postgres"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
	"github.com/Apurer/go-gin-storefront/internal/platform/postgres/postgrestest"
)

func TestRepository_SaveUpsertsPerUser(t *testing.T) {
	db := postgrestest.Start(t)
	repo := postgres.NewRepository(db)
	ctx := context.Background()
	userID := uuid.NewString()

	_, err := repo.Get(ctx, userID)
	assert.ErrorIs(t, err, ports.ErrNotFound)

	cart, err := domain.NewCart(userID, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, cart.Add(domain.LineItem{ProductID: uuid.NewString(), Quantity: 2, Price: decimal.RequireFromString("19.99")}))
	saved, err := repo.Save(ctx, cart)
	require.NoError(t, err)
	assert.Equal(t, "39.98", saved.Total.String())

	cart.Clear()
	saved, err = repo.Save(ctx, cart)
	require.NoError(t, err)
	assert.Empty(t, saved.Items)
	assert.Zero(t, saved.ItemCount)

	var rows int64
	require.NoError(t, db.Table("carts").Where("user_id = ?", userID).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestRepository_ClearKeepsRow(t *testing.T) {
	db := postgrestest.Start(t)
	repo := postgres.NewRepository(db)
	ctx := context.Background()
	userID := uuid.NewString()

	assert.ErrorIs(t, repo.Clear(ctx, userID, time.Now().UTC()), ports.ErrNotFound)

	cart, err := domain.NewCart(userID, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, cart.Add(domain.LineItem{ProductID: uuid.NewString(), Quantity: 3, Price: decimal.RequireFromString("5")}))
	_, err = repo.Save(ctx, cart)
	require.NoError(t, err)

	require.NoError(t, repo.Clear(ctx, userID, time.Now().UTC()))
	cleared, err := repo.Get(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, cleared.Items)
	assert.Zero(t, cleared.ItemCount)
	assert.True(t, cleared.Total.IsZero())
}
