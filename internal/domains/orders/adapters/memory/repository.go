package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-storefront/internal/shared/pagination"
)

var (
	_ ports.Repository      = (*Repository)(nil)
	_ ports.StatsRepository = (*Repository)(nil)
)

// Repository keeps orders in memory and enforces order number uniqueness.
type Repository struct {
	mu       sync.RWMutex
	orders   map[string]*domain.Order
	byNumber map[string]string
}

func NewRepository() *Repository {
	return &Repository{orders: map[string]*domain.Order{}, byNumber: map[string]string{}}
}

func (r *Repository) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byNumber[order.OrderNumber]; taken {
		return nil, ports.ErrDuplicateOrderNumber
	}
	clone := order.Clone()
	r.orders[clone.ID] = clone
	r.byNumber[clone.OrderNumber] = clone.ID
	return clone.Clone(), nil
}

func (r *Repository) Update(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.orders[order.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := order.Clone()
	clone.OrderNumber = existing.OrderNumber
	clone.CreatedAt = existing.CreatedAt
	r.orders[clone.ID] = clone
	return clone.Clone(), nil
}

func (r *Repository) MarkCancelled(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.orders[order.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if err := existing.CanCancel(); err != nil {
		return nil, err
	}
	updated := existing.Clone()
	updated.Status = domain.StatusCancelled
	if order.CancelledAt != nil {
		at := *order.CancelledAt
		updated.CancelledAt = &at
	}
	updated.CancelledBy = order.CancelledBy
	updated.CancelledReason = order.CancelledReason
	updated.UpdatedAt = order.UpdatedAt
	r.orders[updated.ID] = updated
	return updated.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return order.Clone(), nil
}

func (r *Repository) List(_ context.Context, filter ports.ListFilter) (pagination.Page[*domain.Order], error) {
	matched := r.snapshot(func(o *domain.Order) bool {
		if filter.UserID != "" && o.UserID != filter.UserID {
			return false
		}
		return filter.Status == "" || o.Status == filter.Status
	})
	return pagination.Slice(matched, filter.Page), nil
}

func (r *Repository) CountCreatedBetween(_ context.Context, from, to time.Time) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, o := range r.orders {
		if !o.CreatedAt.Before(from) && o.CreatedAt.Before(to) {
			n++
		}
	}
	return n, nil
}

func (r *Repository) HasDeliveredOrder(_ context.Context, userID, orderID, productID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[orderID]
	if !ok {
		return false, nil
	}
	return o.UserID == userID && o.Status == domain.StatusDelivered && o.Contains(productID), nil
}

func (r *Repository) CountOrders(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.orders)), nil
}

func (r *Repository) PaidRevenue(_ context.Context, from, to time.Time) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sum := decimal.Zero
	for _, o := range r.orders {
		if o.PaymentStatus != domain.PaymentPaid || !within(o.CreatedAt, from, to) {
			continue
		}
		sum = sum.Add(o.Total)
	}
	return sum, nil
}

func (r *Repository) RecentOrders(_ context.Context, since time.Time, limit int) ([]*domain.Order, error) {
	recent := r.snapshot(func(o *domain.Order) bool { return !o.CreatedAt.Before(since) })
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	return recent, nil
}

func (r *Repository) DailyPaidSales(_ context.Context, since time.Time) ([]ports.DailySales, error) {
	r.mu.RLock()
	byDay := map[time.Time]*ports.DailySales{}
	for _, o := range r.orders {
		if o.PaymentStatus != domain.PaymentPaid || o.CreatedAt.Before(since) {
			continue
		}
		day, _ := domain.DayBounds(o.CreatedAt.UTC())
		entry, ok := byDay[day]
		if !ok {
			entry = &ports.DailySales{Day: day, Revenue: decimal.Zero}
			byDay[day] = entry
		}
		entry.Revenue = entry.Revenue.Add(o.Total)
		entry.Orders++
	}
	r.mu.RUnlock()

	out := make([]ports.DailySales, 0, len(byDay))
	for _, entry := range byDay {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out, nil
}

func (r *Repository) TopProducts(_ context.Context, limit int) ([]ports.ProductSales, error) {
	r.mu.RLock()
	byProduct := map[string]*ports.ProductSales{}
	for _, o := range r.orders {
		for _, item := range o.Items {
			entry, ok := byProduct[item.ProductID]
			if !ok {
				entry = &ports.ProductSales{ProductID: item.ProductID, Name: item.Name, Revenue: decimal.Zero}
				byProduct[item.ProductID] = entry
			}
			entry.Quantity += int64(item.Quantity)
			entry.Revenue = entry.Revenue.Add(item.Total)
		}
	}
	r.mu.RUnlock()

	out := make([]ports.ProductSales, 0, len(byProduct))
	for _, entry := range byProduct {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].ProductID < out[j].ProductID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *Repository) StatusDistribution(_ context.Context) (map[domain.Status]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	dist := map[domain.Status]int64{}
	for _, o := range r.orders {
		dist[o.Status]++
	}
	return dist, nil
}

// snapshot returns matching clones newest first.
func (r *Repository) snapshot(keep func(*domain.Order) bool) []*domain.Order {
	r.mu.RLock()
	out := make([]*domain.Order, 0, len(r.orders))
	for _, o := range r.orders {
		if keep(o) {
			out = append(out, o.Clone())
		}
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].OrderNumber > out[j].OrderNumber
	})
	return out
}

func within(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && !t.Before(to) {
		return false
	}
	return true
}
