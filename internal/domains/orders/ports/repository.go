package ports

import (
	"context"
	"errors"
	"time"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-storefront/internal/shared/pagination"
)

var (
	ErrNotFound = errors.New("order not found")
	// ErrDuplicateOrderNumber is returned when the store rejects a colliding
	// order number. Callers may retry with a fresh number.
	ErrDuplicateOrderNumber = errors.New("duplicate order number")
)

// ListFilter narrows an order listing. An empty UserID lists every order.
type ListFilter struct {
	UserID string
	Status domain.Status
	Page   pagination.Params
}

// Repository persists orders.
type Repository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	Update(ctx context.Context, order *domain.Order) (*domain.Order, error)
	// MarkCancelled stores the cancellation stamped on order, but only while
	// the stored order is still cancellable. A losing caller gets a
	// *domain.NotCancellableError carrying the stored status.
	MarkCancelled(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// List returns orders newest first.
	List(ctx context.Context, filter ListFilter) (pagination.Page[*domain.Order], error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
	// HasDeliveredOrder reports whether orderID belongs to userID, is delivered
	// and contains productID.
	HasDeliveredOrder(ctx context.Context, userID, orderID, productID string) (bool, error)
}
