package ports

import (
	"context"

	"github.com/Apurer/go-gin-storefront/internal/domains/analytics/domain"
	identitydomain "github.com/Apurer/go-gin-storefront/internal/domains/identity/domain"
)

// UserCounter counts shopper accounts.
type UserCounter interface {
	CountUsers(ctx context.Context) (int64, error)
}

// ProductCounter counts products on sale.
type ProductCounter interface {
	CountActive(ctx context.Context) (int64, error)
}

// Service exposes the admin dashboard.
type Service interface {
	Overview(ctx context.Context, actor identitydomain.Principal, periodDays int) (*domain.Overview, error)
}
