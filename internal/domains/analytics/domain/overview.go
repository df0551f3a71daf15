package domain

import (
	"time"

	"github.com/shopspring/decimal"

	ordersdomain "github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
)

const (
	DefaultPeriodDays = 30
	RecentOrderLimit  = 10
	TopProductLimit   = 10
)

// Overview is the admin dashboard snapshot for a trailing period of days.
type Overview struct {
	PeriodDays           int
	PeriodStart          time.Time
	TotalUsers           int64
	TotalProducts        int64
	TotalOrders          int64
	TotalRevenue         decimal.Decimal
	CurrentPeriodRevenue decimal.Decimal
	// RevenueGrowth is the percent change against the preceding period of
	// equal length, rounded to two decimals. Zero when that period had no revenue.
	RevenueGrowth      float64
	RecentOrders       []*ordersdomain.Order
	SalesData          []ordersports.DailySales
	TopProducts        []ordersports.ProductSales
	StatusDistribution map[ordersdomain.Status]int64
}

var hundred = decimal.NewFromInt(100)

// Growth returns (current-previous)/previous as a percentage rounded to two decimals.
func Growth(current, previous decimal.Decimal) float64 {
	if !previous.IsPositive() {
		return 0
	}
	growth := current.Sub(previous).Div(previous).Mul(hundred).Round(2)
	f, _ := growth.Float64()
	return f
}
