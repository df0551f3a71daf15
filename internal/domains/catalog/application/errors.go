package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid catalog input")
	// ErrForbidden signals the actor may not change the resource.
	ErrForbidden = errors.New("insufficient permissions")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrEmptySlug) ||
		errors.Is(err, domain.ErrEmptyCategoryRef) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrNegativeStock) ||
		errors.Is(err, domain.ErrInvalidRating) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
