package orders

import (
	"errors"
	"fmt"

	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/application"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
)

// Application error types carried across the workflow boundary.
const (
	ErrTypeInvalidInput         = "orders.InvalidInput"
	ErrTypeProductUnavailable   = "orders.ProductUnavailable"
	ErrTypeInsufficientStock    = "orders.InsufficientStock"
	ErrTypeDuplicateOrderNumber = "orders.DuplicateOrderNumber"
)

var invalidInputCauses = []error{
	domain.ErrEmptyOrder,
	domain.ErrMissingAddress,
	domain.ErrMissingPaymentMethod,
	domain.ErrInvalidQuantity,
}

// EncodeError converts a checkout error into a Temporal application error that
// survives serialization. Unknown errors pass through and keep the retry policy.
func EncodeError(err error) error {
	var unavailable *application.ProductUnavailableError
	if errors.As(err, &unavailable) {
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeProductUnavailable, err, unavailable.ProductID)
	}
	var short *application.InsufficientStockError
	if errors.As(err, &short) {
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInsufficientStock, err, short.ProductID, short.ProductName)
	}
	if errors.Is(err, ordersports.ErrDuplicateOrderNumber) {
		return temporal.NewApplicationError(err.Error(), ErrTypeDuplicateOrderNumber, err)
	}
	if errors.Is(err, application.ErrInvalidInput) {
		cause := ""
		for _, known := range invalidInputCauses {
			if errors.Is(err, known) {
				cause = known.Error()
				break
			}
		}
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInvalidInput, err, cause)
	}
	return err
}

// DecodeError restores the checkout error a workflow failed with so callers
// can match it with errors.Is and errors.As.
func DecodeError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case ErrTypeProductUnavailable:
		var productID string
		_ = appErr.Details(&productID)
		return &application.ProductUnavailableError{ProductID: productID}
	case ErrTypeInsufficientStock:
		var productID, productName string
		_ = appErr.Details(&productID, &productName)
		return &application.InsufficientStockError{ProductID: productID, ProductName: productName}
	case ErrTypeDuplicateOrderNumber:
		return ordersports.ErrDuplicateOrderNumber
	case ErrTypeInvalidInput:
		var cause string
		_ = appErr.Details(&cause)
		for _, known := range invalidInputCauses {
			if known.Error() == cause {
				return fmt.Errorf("%w: %w", application.ErrInvalidInput, known)
			}
		}
		return fmt.Errorf("%w: %s", application.ErrInvalidInput, appErr.Message())
	default:
		return err
	}
}
