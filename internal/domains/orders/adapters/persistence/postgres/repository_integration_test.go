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

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/persistence/postgres"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-storefront/internal/platform/postgres/postgrestest"
	"github.com/Apurer/go-gin-storefront/internal/shared/pagination"
)

func newOrder(t *testing.T, userID, number string, createdAt time.Time, productIDs ...string) *domain.Order {
	t.Helper()
	addr := domain.Address{Name: "Ada", Address: "1 Loop Rd", City: "Springfield", State: "IL", Country: "US", ZipCode: "62701", Phone: "555-0100"}
	items := make([]domain.Item, 0, len(productIDs))
	for _, id := range productIDs {
		item, err := domain.NewItem(id, "Item "+id[:4], "", decimal.RequireFromString("12.50"), 2)
		require.NoError(t, err)
		items = append(items, item)
	}
	order, err := domain.NewOrder(uuid.NewString(), userID, items, addr, addr, domain.PaymentMethodCOD, "", createdAt)
	require.NoError(t, err)
	order.OrderNumber = number
	return order
}

func TestRepository_CreateGetAndDuplicateNumber(t *testing.T) {
	db := postgrestest.Start(t)
	repo := postgres.NewRepository(db)
	ctx := context.Background()
	userID := uuid.NewString()
	p1, p2 := uuid.NewString(), uuid.NewString()
	now := time.Now().UTC().Truncate(time.Microsecond)

	created, err := repo.Create(ctx, newOrder(t, userID, "ORD2603070001", now, p1, p2))
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, p1, got.Items[0].ProductID)
	assert.Equal(t, "25", got.Items[0].Total.String())
	assert.Equal(t, "Springfield", got.ShippingAddress.City)
	assert.True(t, got.Total.Equal(created.Total))

	_, err = repo.Create(ctx, newOrder(t, userID, "ORD2603070001", now, p1))
	assert.ErrorIs(t, err, ports.ErrDuplicateOrderNumber)

	_, err = repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_UpdateListAndDeliveredLookup(t *testing.T) {
	db := postgrestest.Start(t)
	repo := postgres.NewRepository(db)
	ctx := context.Background()
	userID := uuid.NewString()
	product := uuid.NewString()
	base := time.Now().UTC().Truncate(time.Microsecond)

	first, err := repo.Create(ctx, newOrder(t, userID, "ORD0001", base, product))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newOrder(t, userID, "ORD0002", base.Add(time.Minute), uuid.NewString()))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newOrder(t, uuid.NewString(), "ORD0003", base.Add(2*time.Minute), product))
	require.NoError(t, err)

	page, err := repo.List(ctx, ports.ListFilter{UserID: userID, Page: pagination.Params{Page: 1, Limit: 10}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Meta.Total)
	assert.Equal(t, "ORD0002", page.Items[0].OrderNumber)

	delivered, err := repo.HasDeliveredOrder(ctx, userID, first.ID, product)
	require.NoError(t, err)
	assert.False(t, delivered)

	first.Status = domain.StatusDelivered
	first.PaymentStatus = domain.PaymentPaid
	first.TrackingNumber = "TRK-1"
	first.UpdatedAt = base.Add(time.Hour)
	updated, err := repo.Update(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, updated.Status)
	assert.Equal(t, "ORD0001", updated.OrderNumber)

	delivered, err = repo.HasDeliveredOrder(ctx, userID, first.ID, product)
	require.NoError(t, err)
	assert.True(t, delivered)

	delivered, err = repo.HasDeliveredOrder(ctx, uuid.NewString(), first.ID, product)
	require.NoError(t, err)
	assert.False(t, delivered)

	n, err := repo.CountCreatedBetween(ctx, base, base.Add(90*time.Second))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	revenue, err := repo.PaidRevenue(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.True(t, revenue.Equal(first.Total))

	top, err := repo.TopProducts(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, product, top[0].ProductID)
	assert.Equal(t, int64(4), top[0].Quantity)

	dist, err := repo.StatusDistribution(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), dist[domain.StatusDelivered])
	assert.Equal(t, int64(2), dist[domain.StatusPending])

	daily, err := repo.DailyPaidSales(ctx, base.Add(-24*time.Hour))
	require.NoError(t, err)
	require.NotEmpty(t, daily)
	assert.Equal(t, int64(1), daily[len(daily)-1].Orders)
}

func TestRepository_MarkCancelledIsGuarded(t *testing.T) {
	db := postgrestest.Start(t)
	repo := postgres.NewRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	created, err := repo.Create(ctx, newOrder(t, uuid.NewString(), "ORD0101", now, uuid.NewString()))
	require.NoError(t, err)

	first, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NoError(t, first.Cancel("u1", "changed my mind", now))
	require.NoError(t, second.Cancel("u1", "double click", now))

	stored, err := repo.MarkCancelled(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, stored.Status)
	assert.Equal(t, "changed my mind", stored.CancelledReason)
	require.NotNil(t, stored.CancelledAt)

	_, err = repo.MarkCancelled(ctx, second)
	var nc *domain.NotCancellableError
	require.ErrorAs(t, err, &nc)
	assert.Equal(t, domain.StatusCancelled, nc.Status)

	ghost := newOrder(t, uuid.NewString(), "ORD0102", now, uuid.NewString())
	require.NoError(t, ghost.Cancel("u1", "", now))
	_, err = repo.MarkCancelled(ctx, ghost)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
