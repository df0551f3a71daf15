package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status enumerates order progression.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
	StatusRefunded   Status = "refunded"
)

// PaymentStatus tracks settlement independently from fulfilment.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// PaymentMethod is how the customer intends to pay.
type PaymentMethod string

const (
	PaymentMethodStripe PaymentMethod = "stripe"
	PaymentMethodCOD    PaymentMethod = "cod"
)

var (
	ErrEmptyOrder           = errors.New("order must contain at least one item")
	ErrMissingAddress       = errors.New("shipping and billing addresses are required")
	ErrMissingPaymentMethod = errors.New("payment method is required")
	ErrInvalidQuantity      = errors.New("quantity must be greater than zero")
	ErrInvalidStatus        = errors.New("order status is invalid")
	ErrInvalidPaymentStatus = errors.New("payment status is invalid")
	ErrNotCancellable       = errors.New("order cannot be cancelled")
)

// NotCancellableError reports the status that blocked a cancellation.
type NotCancellableError struct {
	Status Status
}

func (e *NotCancellableError) Error() string {
	return fmt.Sprintf("order cannot be cancelled in status: %s", e.Status)
}

func (e *NotCancellableError) Unwrap() error { return ErrNotCancellable }

// Address is a postal address. Every field is required.
type Address struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	ZipCode string `json:"zipCode"`
	Phone   string `json:"phone"`
}

// Complete reports whether every field carries a value.
func (a Address) Complete() bool {
	for _, v := range []string{a.Name, a.Address, a.City, a.State, a.Country, a.ZipCode, a.Phone} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// Item is a frozen snapshot of a product at checkout.
type Item struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Image     string          `json:"image,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
}

// NewItem snapshots price and computes the line total.
func NewItem(productID, name, image string, price decimal.Decimal, quantity int) (Item, error) {
	if quantity <= 0 {
		return Item{}, ErrInvalidQuantity
	}
	return Item{
		ProductID: productID,
		Name:      name,
		Image:     image,
		Price:     price,
		Quantity:  quantity,
		Total:     price.Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}

// Order is the checkout aggregate. Items, pricing and addresses never change
// after creation.
type Order struct {
	ID                string          `json:"id"`
	OrderNumber       string          `json:"orderNumber"`
	UserID            string          `json:"userId"`
	Items             []Item          `json:"items"`
	ShippingAddress   Address         `json:"shippingAddress"`
	BillingAddress    Address         `json:"billingAddress"`
	PaymentMethod     PaymentMethod   `json:"paymentMethod"`
	PaymentStatus     PaymentStatus   `json:"paymentStatus"`
	Status            Status          `json:"status"`
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

// NewOrder builds a pending order from priced items.
func NewOrder(id, userID string, items []Item, shipping, billing Address, method PaymentMethod, notes string, now time.Time) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	if !shipping.Complete() || !billing.Complete() {
		return nil, ErrMissingAddress
	}
	if !method.Valid() {
		return nil, ErrMissingPaymentMethod
	}
	pricing := Price(items)
	return &Order{
		ID:              id,
		UserID:          userID,
		Items:           append([]Item(nil), items...),
		ShippingAddress: shipping,
		BillingAddress:  billing,
		PaymentMethod:   method,
		PaymentStatus:   PaymentPending,
		Status:          StatusPending,
		Subtotal:        pricing.Subtotal,
		ShippingCost:    pricing.ShippingCost,
		Tax:             pricing.Tax,
		Total:           pricing.Total,
		Notes:           strings.TrimSpace(notes),
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// NonCancellableStatuses lists the statuses a cancellation may not leave.
func NonCancellableStatuses() []Status {
	return []Status{StatusShipped, StatusDelivered, StatusCancelled, StatusRefunded}
}

// CanCancel rejects orders that already left the warehouse or were closed.
func (o *Order) CanCancel() error {
	for _, status := range NonCancellableStatuses() {
		if o.Status == status {
			return &NotCancellableError{Status: o.Status}
		}
	}
	return nil
}

// Cancel stamps cancellation metadata on this copy. Persisting it goes through
// the repository's guarded cancel so only one caller wins.
func (o *Order) Cancel(by, reason string, now time.Time) error {
	if err := o.CanCancel(); err != nil {
		return err
	}
	o.Status = StatusCancelled
	o.CancelledAt = &now
	o.CancelledBy = by
	o.CancelledReason = reason
	o.UpdatedAt = now
	return nil
}

// Contains reports whether the order has a line for productID.
func (o *Order) Contains(productID string) bool {
	for _, item := range o.Items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Items = append([]Item(nil), o.Items...)
	if o.EstimatedDelivery != nil {
		t := *o.EstimatedDelivery
		clone.EstimatedDelivery = &t
	}
	if o.CancelledAt != nil {
		t := *o.CancelledAt
		clone.CancelledAt = &t
	}
	return &clone
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodStripe || m == PaymentMethodCOD
}

// ParseStatus accepts a known status string.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ParsePaymentStatus accepts a known payment status string.
func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	s := PaymentStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", ErrInvalidPaymentStatus
	}
	return s, nil
}
