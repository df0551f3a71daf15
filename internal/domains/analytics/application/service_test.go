package application

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	identitydomain "github.com/Apurer/go-gin-storefront/internal/domains/identity/domain"
	ordersmemory "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/memory"
	ordersdomain "github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
)

type userCount int64

func (u userCount) CountUsers(context.Context) (int64, error) { return int64(u), nil }

var (
	admin = identitydomain.Principal{UserID: "a", Role: identitydomain.RoleAdmin}
	now   = time.Date(2026, 6, 30, 12, 0, 0, 0, time.UTC)
)

func seedOrder(t *testing.T, repo *ordersmemory.Repository, n int, created time.Time, paid bool, status ordersdomain.Status, productID string, qty int, price string) {
	t.Helper()
	addr := ordersdomain.Address{Name: "Ada", Address: "1 Loop Rd", City: "Springfield", State: "IL", Country: "US", ZipCode: "62701", Phone: "555-0100"}
	item, err := ordersdomain.NewItem(productID, "Product "+productID, "", decimal.RequireFromString(price), qty)
	require.NoError(t, err)
	number := ordersdomain.OrderNumber(created, n)
	order, err := ordersdomain.NewOrder("id-"+number, "u1", []ordersdomain.Item{item}, addr, addr, ordersdomain.PaymentMethodStripe, "", created)
	require.NoError(t, err)
	order.OrderNumber = number
	order.Status = status
	if paid {
		order.PaymentStatus = ordersdomain.PaymentPaid
	}
	_, err = repo.Create(context.Background(), order)
	require.NoError(t, err)
}

func TestOverview(t *testing.T) {
	ctx := context.Background()
	products := catalogmemory.NewProductRepository()
	for _, p := range []*catalogdomain.Product{
		{ID: "p1", Name: "On sale", Category: "c", IsActive: true},
		{ID: "p2", Name: "Draft", Category: "c"},
	} {
		_, err := products.Create(ctx, p)
		require.NoError(t, err)
	}
	orders := ordersmemory.NewRepository()
	// previous period: 100 + 8 tax, free shipping
	seedOrder(t, orders, 1, now.AddDate(0, 0, -45), true, ordersdomain.StatusDelivered, "p1", 1, "100")
	// current period: paid 10 + 5.99 + 0.8 = 16.79 and 60 + 4.8 = 64.8
	seedOrder(t, orders, 2, now.AddDate(0, 0, -3), true, ordersdomain.StatusShipped, "p2", 1, "10")
	seedOrder(t, orders, 3, now.AddDate(0, 0, -1), true, ordersdomain.StatusPending, "p1", 3, "20")
	// current period, unpaid
	seedOrder(t, orders, 4, now.Add(-time.Hour), false, ordersdomain.StatusCancelled, "p2", 1, "1")

	svc := NewService(userCount(7), products, orders, WithClock(func() time.Time { return now }))
	out, err := svc.Overview(ctx, admin, 0)
	require.NoError(t, err)

	assert.Equal(t, 30, out.PeriodDays)
	assert.Equal(t, int64(7), out.TotalUsers)
	assert.Equal(t, int64(1), out.TotalProducts)
	assert.Equal(t, int64(4), out.TotalOrders)
	assert.Equal(t, "189.59", out.TotalRevenue.String())
	assert.Equal(t, "81.59", out.CurrentPeriodRevenue.String())
	assert.Equal(t, -24.45, out.RevenueGrowth)

	require.Len(t, out.RecentOrders, 3)
	assert.True(t, out.RecentOrders[0].CreatedAt.After(out.RecentOrders[1].CreatedAt))

	require.Len(t, out.SalesData, 2)
	assert.Equal(t, int64(1), out.SalesData[0].Orders)
	assert.Equal(t, time.Date(2026, 6, 27, 0, 0, 0, 0, time.UTC), out.SalesData[0].Day)

	require.Len(t, out.TopProducts, 2)
	assert.Equal(t, "p1", out.TopProducts[0].ProductID)
	assert.Equal(t, int64(4), out.TopProducts[0].Quantity)

	assert.Equal(t, int64(1), out.StatusDistribution[ordersdomain.StatusCancelled])
	assert.Equal(t, int64(1), out.StatusDistribution[ordersdomain.StatusDelivered])
}

func TestOverview_Guards(t *testing.T) {
	svc := NewService(userCount(0), catalogmemory.NewProductRepository(), ordersmemory.NewRepository())

	_, err := svc.Overview(context.Background(), identitydomain.Principal{UserID: "v", Role: identitydomain.RoleVendor}, 30)
	assert.ErrorIs(t, err, ErrInsufficientPermissions)

	_, err = svc.Overview(context.Background(), admin, -1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	out, err := svc.Overview(context.Background(), admin, 7)
	require.NoError(t, err)
	assert.True(t, out.TotalRevenue.IsZero())
	assert.Zero(t, out.RevenueGrowth)
	assert.Empty(t, out.RecentOrders)
}
