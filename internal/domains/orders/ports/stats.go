package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
)

// DailySales aggregates paid orders per calendar day.
type DailySales struct {
	Day     time.Time
	Revenue decimal.Decimal
	Orders  int64
}

// ProductSales aggregates sold quantity per product across all orders.
type ProductSales struct {
	ProductID string
	Name      string
	Quantity  int64
	Revenue   decimal.Decimal
}

// StatsRepository answers the aggregate questions asked by the admin dashboard.
type StatsRepository interface {
	CountOrders(ctx context.Context) (int64, error)
	// PaidRevenue sums totals of paid orders created in [from, to). Zero times
	// leave that side open.
	PaidRevenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	RecentOrders(ctx context.Context, since time.Time, limit int) ([]*domain.Order, error)
	DailyPaidSales(ctx context.Context, since time.Time) ([]DailySales, error)
	TopProducts(ctx context.Context, limit int) ([]ProductSales, error)
	StatusDistribution(ctx context.Context) (map[domain.Status]int64, error)
}
