package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
)

var (
	// ErrInvalidInput signals the request violated a cart invariant.
	ErrInvalidInput = errors.New("invalid cart input")
	// ErrInsufficientStock signals the product cannot cover the requested quantity.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrProductUnavailable signals the product is missing or inactive.
	ErrProductUnavailable = errors.New("product not found or unavailable")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingUser) ||
		errors.Is(err, domain.ErrMissingProduct) ||
		errors.Is(err, domain.ErrInvalidQuantity) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
