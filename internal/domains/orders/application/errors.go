package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
)

var (
	// ErrInvalidInput signals the request violated an order invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrForbidden signals the actor neither owns the order nor may act on any order.
	ErrForbidden = errors.New("access denied")
	// ErrInsufficientPermissions signals the actor's role lacks the capability.
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)

// ProductUnavailableError rejects an order naming a missing or inactive product.
type ProductUnavailableError struct {
	ProductID string
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("product %s is not available", e.ProductID)
}

func (e *ProductUnavailableError) Unwrap() error { return ErrInvalidInput }

// InsufficientStockError rejects an order line the product cannot cover.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s", e.ProductName)
}

func (e *InsufficientStockError) Unwrap() []error {
	return []error{ErrInvalidInput, ports.ErrInsufficientStock}
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyOrder) ||
		errors.Is(err, domain.ErrMissingAddress) ||
		errors.Is(err, domain.ErrMissingPaymentMethod) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, domain.ErrInvalidPaymentStatus) ||
		errors.Is(err, domain.ErrNotCancellable) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
