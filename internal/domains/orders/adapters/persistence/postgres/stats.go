package postgres

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
)

func (r *Repository) CountOrders(ctx context.Context) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	var n int64
	err := r.db.WithContext(ctx).Model(&orderRecord{}).Count(&n).Error
	return n, err
}

func (r *Repository) PaidRevenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	if err := r.ensureDB(); err != nil {
		return decimal.Zero, err
	}
	query := r.db.WithContext(ctx).Model(&orderRecord{}).Where("payment_status = ?", string(domain.PaymentPaid))
	if !from.IsZero() {
		query = query.Where("created_at >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("created_at < ?", to)
	}
	var sum decimal.NullDecimal
	if err := query.Select("SUM(total)").Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

func (r *Repository) RecentOrders(ctx context.Context, since time.Time, limit int) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Preload("Items", itemsInOrder).
		Where("created_at >= ?", since).
		Order("created_at DESC, order_number DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var records []orderRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

type dailyRow struct {
	Day     time.Time
	Revenue decimal.Decimal
	Orders  int64
}

func (r *Repository) DailyPaidSales(ctx context.Context, since time.Time) ([]ports.DailySales, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var rows []dailyRow
	err := r.db.WithContext(ctx).Model(&orderRecord{}).
		Select("date_trunc('day', created_at AT TIME ZONE 'UTC') AS day, SUM(total) AS revenue, COUNT(*) AS orders").
		Where("payment_status = ? AND created_at >= ?", string(domain.PaymentPaid), since).
		Group("day").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]ports.DailySales, 0, len(rows))
	for _, row := range rows {
		day := row.Day
		out = append(out, ports.DailySales{
			Day:     time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
			Revenue: row.Revenue,
			Orders:  row.Orders,
		})
	}
	return out, nil
}

type productRow struct {
	ProductID string
	Name      string
	Quantity  int64
	Revenue   decimal.Decimal
}

func (r *Repository) TopProducts(ctx context.Context, limit int) ([]ports.ProductSales, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&orderItemRecord{}).
		Select("product_id, MAX(name) AS name, SUM(quantity) AS quantity, SUM(total) AS revenue").
		Group("product_id").
		Order("quantity DESC, product_id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var rows []productRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]ports.ProductSales, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.ProductSales(row))
	}
	return out, nil
}

type statusRow struct {
	Status string
	Count  int64
}

func (r *Repository) StatusDistribution(ctx context.Context) (map[domain.Status]int64, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var rows []statusRow
	err := r.db.WithContext(ctx).Model(&orderRecord{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	dist := make(map[domain.Status]int64, len(rows))
	for _, row := range rows {
		dist[domain.Status(row.Status)] = row.Count
	}
	return dist, nil
}
