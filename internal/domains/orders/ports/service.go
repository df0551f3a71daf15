package ports

import (
	"context"
	"time"

	identitydomain "github.com/Apurer/go-gin-storefront/internal/domains/identity/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-storefront/internal/shared/pagination"
)

// ItemRequest is one requested product and quantity.
type ItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// PlaceOrderInput carries a checkout request. It is serialized into workflow
// history, so it holds plain data only.
type PlaceOrderInput struct {
	UserID          string               `json:"userId"`
	Items           []ItemRequest        `json:"items"`
	ShippingAddress domain.Address       `json:"shippingAddress"`
	BillingAddress  domain.Address       `json:"billingAddress"`
	PaymentMethod   domain.PaymentMethod `json:"paymentMethod"`
	Notes           string               `json:"notes,omitempty"`
	IdempotencyKey  string               `json:"idempotencyKey,omitempty"`
}

// UpdateInput holds optional fulfilment changes. Nil fields are left alone.
type UpdateInput struct {
	Status            *string
	PaymentStatus     *string
	TrackingNumber    *string
	EstimatedDelivery *time.Time
	Notes             *string
}

// ListQuery is what a caller may ask of the order listing.
type ListQuery struct {
	Status string
	Page   pagination.Params
}

// Service exposes order use cases.
type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*domain.Order, error)
	ListOrders(ctx context.Context, actor identitydomain.Principal, query ListQuery) (pagination.Page[*domain.Order], error)
	GetOrder(ctx context.Context, actor identitydomain.Principal, id string) (*domain.Order, error)
	UpdateOrder(ctx context.Context, actor identitydomain.Principal, id string, input UpdateInput) (*domain.Order, error)
	CancelOrder(ctx context.Context, actor identitydomain.Principal, id, reason string) (*domain.Order, error)
}
