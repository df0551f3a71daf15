package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-storefront/internal/domains/analytics/domain"
	ordersmapper "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/http/mapper"
)

type Totals struct {
	Users                int64           `json:"users"`
	Products             int64           `json:"products"`
	Orders               int64           `json:"orders"`
	Revenue              decimal.Decimal `json:"revenue"`
	CurrentPeriodRevenue decimal.Decimal `json:"currentPeriodRevenue"`
	RevenueGrowth        float64         `json:"revenueGrowth"`
}

type DaySales struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int64           `json:"orders"`
}

type TopProduct struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"totalSold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// Overview is the admin dashboard payload.
type Overview struct {
	PeriodDays              int                  `json:"periodDays"`
	PeriodStart             time.Time            `json:"periodStart"`
	Totals                  Totals               `json:"totals"`
	RecentOrders            []ordersmapper.Order `json:"recentOrders"`
	SalesData               []DaySales           `json:"salesData"`
	TopProducts             []TopProduct         `json:"topProducts"`
	OrderStatusDistribution map[string]int64    `json:"orderStatusDistribution"`
}

func FromDomainOverview(o *domain.Overview) Overview {
	if o == nil {
		return Overview{}
	}
	sales := make([]DaySales, 0, len(o.SalesData))
	for _, day := range o.SalesData {
		sales = append(sales, DaySales{Date: day.Day.Format(time.DateOnly), Revenue: day.Revenue, Orders: day.Orders})
	}
	top := make([]TopProduct, 0, len(o.TopProducts))
	for _, p := range o.TopProducts {
		top = append(top, TopProduct{ProductID: p.ProductID, Name: p.Name, Quantity: p.Quantity, Revenue: p.Revenue})
	}
	dist := make(map[string]int64, len(o.StatusDistribution))
	for status, n := range o.StatusDistribution {
		dist[string(status)] = n
	}
	return Overview{
		PeriodDays:  o.PeriodDays,
		PeriodStart: o.PeriodStart,
		Totals: Totals{
			Users:                o.TotalUsers,
			Products:             o.TotalProducts,
			Orders:               o.TotalOrders,
			Revenue:              o.TotalRevenue,
			CurrentPeriodRevenue: o.CurrentPeriodRevenue,
			RevenueGrowth:        o.RevenueGrowth,
		},
		RecentOrders:            ordersmapper.FromDomainOrders(o.RecentOrders),
		SalesData:               sales,
		TopProducts:             top,
		OrderStatusDistribution: dist,
	}
}
