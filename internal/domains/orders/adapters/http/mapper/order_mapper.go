package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
)

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	Items           []ports.ItemRequest `json:"items"`
	ShippingAddress *domain.Address     `json:"shippingAddress"`
	BillingAddress  *domain.Address     `json:"billingAddress"`
	PaymentMethod   string              `json:"paymentMethod"`
	Notes           string              `json:"notes"`
}

// UpdateOrderRequest carries fulfilment changes. Omitted fields stay unchanged.
type UpdateOrderRequest struct {
	Status            *string    `json:"status"`
	PaymentStatus     *string    `json:"paymentStatus"`
	TrackingNumber    *string    `json:"trackingNumber"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery"`
	Notes             *string    `json:"notes"`
}

// CancelOrderRequest optionally explains a cancellation.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// Order is the public order view.
type Order struct {
	ID                string          `json:"id"`
	OrderNumber       string          `json:"orderNumber"`
	UserID            string          `json:"userId"`
	Items             []domain.Item   `json:"items"`
	ShippingAddress   domain.Address  `json:"shippingAddress"`
	BillingAddress    domain.Address  `json:"billingAddress"`
	PaymentMethod     string          `json:"paymentMethod"`
	PaymentStatus     string          `json:"paymentStatus"`
	Status            string          `json:"status"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	ShippingCost      decimal.Decimal `json:"shippingCost"`
	Tax               decimal.Decimal `json:"tax"`
	Total             decimal.Decimal `json:"total"`
	Notes             string          `json:"notes,omitempty"`
	TrackingNumber    string          `json:"trackingNumber,omitempty"`
	EstimatedDelivery *time.Time      `json:"estimatedDelivery,omitempty"`
	CancelledAt       *time.Time      `json:"cancelledAt,omitempty"`
	CancelledBy       string          `json:"cancelledBy,omitempty"`
	CancelledReason   string          `json:"cancelledReason,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// ToPlaceOrderInput converts the payload. Missing addresses stay zero so the
// service reports them.
func ToPlaceOrderInput(userID, idempotencyKey string, req CreateOrderRequest) ports.PlaceOrderInput {
	input := ports.PlaceOrderInput{
		UserID:         userID,
		Items:          req.Items,
		PaymentMethod:  domain.PaymentMethod(req.PaymentMethod),
		Notes:          req.Notes,
		IdempotencyKey: idempotencyKey,
	}
	if req.ShippingAddress != nil {
		input.ShippingAddress = *req.ShippingAddress
	}
	if req.BillingAddress != nil {
		input.BillingAddress = *req.BillingAddress
	}
	return input
}

func ToUpdateInput(req UpdateOrderRequest) ports.UpdateInput {
	return ports.UpdateInput{
		Status:            req.Status,
		PaymentStatus:     req.PaymentStatus,
		TrackingNumber:    req.TrackingNumber,
		EstimatedDelivery: req.EstimatedDelivery,
		Notes:             req.Notes,
	}
}

func FromDomainOrder(o *domain.Order) Order {
	if o == nil {
		return Order{Items: []domain.Item{}}
	}
	items := append([]domain.Item{}, o.Items...)
	return Order{
		ID:                o.ID,
		OrderNumber:       o.OrderNumber,
		UserID:            o.UserID,
		Items:             items,
		ShippingAddress:   o.ShippingAddress,
		BillingAddress:    o.BillingAddress,
		PaymentMethod:     string(o.PaymentMethod),
		PaymentStatus:     string(o.PaymentStatus),
		Status:            string(o.Status),
		Subtotal:          o.Subtotal,
		ShippingCost:      o.ShippingCost,
		Tax:               o.Tax,
		Total:             o.Total,
		Notes:             o.Notes,
		TrackingNumber:    o.TrackingNumber,
		EstimatedDelivery: o.EstimatedDelivery,
		CancelledAt:       o.CancelledAt,
		CancelledBy:       o.CancelledBy,
		CancelledReason:   o.CancelledReason,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

func FromDomainOrders(orders []*domain.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromDomainOrder(o))
	}
	return out
}
