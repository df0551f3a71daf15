package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-storefront/internal/domains/reviews/domain"
)

var (
	// ErrInvalidInput signals the submission violated a review invariant.
	ErrInvalidInput = errors.New("invalid review input")
	// ErrNotPurchased signals the user has no delivered order containing the product.
	ErrNotPurchased = errors.New("product not purchased in a delivered order")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingFields) ||
		errors.Is(err, domain.ErrInvalidRating) ||
		errors.Is(err, domain.ErrTitleTooLong) ||
		errors.Is(err, domain.ErrCommentTooLong) ||
		errors.Is(err, domain.ErrMissingProduct) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
