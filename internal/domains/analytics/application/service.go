package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Apurer/go-gin-storefront/internal/domains/analytics/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/analytics/ports"
	identitydomain "github.com/Apurer/go-gin-storefront/internal/domains/identity/domain"
	ordersports "github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
)

var (
	// ErrInvalidInput signals a malformed period.
	ErrInvalidInput = errors.New("invalid analytics input")
	// ErrInsufficientPermissions signals the actor may not read the dashboard.
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)

// MaxPeriodDays bounds the trailing window.
const MaxPeriodDays = 3650

// Service assembles the dashboard from the account, catalog and order stores.
type Service struct {
	users    ports.UserCounter
	products ports.ProductCounter
	orders   ordersports.StatsRepository
	now      func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(users ports.UserCounter, products ports.ProductCounter, orders ordersports.StatsRepository, opts ...Option) *Service {
	s := &Service{
		users:    users,
		products: products,
		orders:   orders,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Overview reports totals plus revenue, sales and recent orders for the last periodDays days.
func (s *Service) Overview(ctx context.Context, actor identitydomain.Principal, periodDays int) (*domain.Overview, error) {
	if !actor.Can(identitydomain.CapViewAnalytics) {
		return nil, ErrInsufficientPermissions
	}
	if periodDays == 0 {
		periodDays = domain.DefaultPeriodDays
	}
	if periodDays < 0 || periodDays > MaxPeriodDays {
		return nil, fmt.Errorf("%w: period must be between 1 and %d days", ErrInvalidInput, MaxPeriodDays)
	}
	now := s.now()
	start := now.AddDate(0, 0, -periodDays)
	previousStart := start.AddDate(0, 0, -periodDays)

	out := &domain.Overview{PeriodDays: periodDays, PeriodStart: start}
	var err error
	if out.TotalUsers, err = s.users.CountUsers(ctx); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if out.TotalProducts, err = s.products.CountActive(ctx); err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	if out.TotalOrders, err = s.orders.CountOrders(ctx); err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	if out.TotalRevenue, err = s.orders.PaidRevenue(ctx, time.Time{}, time.Time{}); err != nil {
		return nil, fmt.Errorf("total revenue: %w", err)
	}
	if out.CurrentPeriodRevenue, err = s.orders.PaidRevenue(ctx, start, time.Time{}); err != nil {
		return nil, fmt.Errorf("period revenue: %w", err)
	}
	previous, err := s.orders.PaidRevenue(ctx, previousStart, start)
	if err != nil {
		return nil, fmt.Errorf("previous period revenue: %w", err)
	}
	out.RevenueGrowth = domain.Growth(out.CurrentPeriodRevenue, previous)
	if out.RecentOrders, err = s.orders.RecentOrders(ctx, start, domain.RecentOrderLimit); err != nil {
		return nil, fmt.Errorf("recent orders: %w", err)
	}
	if out.SalesData, err = s.orders.DailyPaidSales(ctx, start); err != nil {
		return nil, fmt.Errorf("sales data: %w", err)
	}
	if out.TopProducts, err = s.orders.TopProducts(ctx, domain.TopProductLimit); err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	if out.StatusDistribution, err = s.orders.StatusDistribution(ctx); err != nil {
		return nil, fmt.Errorf("status distribution: %w", err)
	}
	return out, nil
}

var _ ports.Service = (*Service)(nil)
