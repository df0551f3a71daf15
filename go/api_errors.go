package storefrontserver

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	analyticsapp "github.com/Apurer/go-gin-storefront/internal/domains/analytics/application"
	cartapp "github.com/Apurer/go-gin-storefront/internal/domains/cart/application"
	cartdomain "github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	catalogapp "github.com/Apurer/go-gin-storefront/internal/domains/catalog/application"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	identityapp "github.com/Apurer/go-gin-storefront/internal/domains/identity/application"
	identityports "github.com/Apurer/go-gin-storefront/internal/domains/identity/ports"
	ordersapp "github.com/Apurer/go-gin-storefront/internal/domains/orders/application"
	ordersdomain "github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
	paymentsapp "github.com/Apurer/go-gin-storefront/internal/domains/payments/application"
	reviewsapp "github.com/Apurer/go-gin-storefront/internal/domains/reviews/application"
	reviewsdomain "github.com/Apurer/go-gin-storefront/internal/domains/reviews/domain"
	reviewsports "github.com/Apurer/go-gin-storefront/internal/domains/reviews/ports"
	wishlistapp "github.com/Apurer/go-gin-storefront/internal/domains/wishlist/application"
	wishlistdomain "github.com/Apurer/go-gin-storefront/internal/domains/wishlist/domain"
	wishlistports "github.com/Apurer/go-gin-storefront/internal/domains/wishlist/ports"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

const (
	detailAuthRequired   = "Authentication required"
	detailInvalidToken   = "Invalid or expired token"
	detailAccessDenied   = "Access denied"
	detailNoPermission   = "Insufficient permissions"
	detailProductIDMiss  = "Product ID is required"
	detailDuplicateOrder = "Duplicate order number. Please retry."
)

// NewErrorResponder chains the error mappers of every bounded context.
func NewErrorResponder(logger *slog.Logger) *apierrors.ChainedResponder {
	return apierrors.NewChainedResponder("", logger,
		identityErrorMapper,
		catalogErrorMapper,
		cartErrorMapper,
		orderErrorMapper,
		reviewErrorMapper,
		wishlistErrorMapper,
		paymentErrorMapper,
		analyticsErrorMapper,
	)
}

// respondBindError answers a malformed JSON body.
func respondBindError(c *gin.Context, err error) {
	apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail("Invalid request body: "+err.Error()))
}

func identityErrorMapper(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, identityapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(causeDetail(err, identityapp.ErrInvalidInput)), true
	case errors.Is(err, identityapp.ErrInvalidCredentials):
		return apierrors.ErrUnauthorized.WithDetail("Invalid email or password"), true
	case errors.Is(err, identityapp.ErrUnauthenticated):
		return apierrors.ErrUnauthorized.WithDetail(detailInvalidToken), true
	case errors.Is(err, identityports.ErrDuplicateEmail):
		return apierrors.ErrConflict.WithDetail("User with this email already exists"), true
	case errors.Is(err, identityports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail("User not found"), true
	}
	return apierrors.ProblemDetail{}, false
}

func catalogErrorMapper(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, catalogapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(causeDetail(err, catalogapp.ErrInvalidInput)), true
	case errors.Is(err, catalogapp.ErrForbidden):
		return apierrors.ErrForbidden.WithDetail(detailNoPermission), true
	case errors.Is(err, catalogports.ErrProductNotFound):
		return apierrors.ErrNotFound.WithDetail("Product not found"), true
	case errors.Is(err, catalogports.ErrCategoryNotFound):
		return apierrors.ErrNotFound.WithDetail("Category not found"), true
	case errors.Is(err, catalogports.ErrDuplicateSKU):
		return apierrors.ErrConflict.WithDetail("Product with this SKU already exists"), true
	case errors.Is(err, catalogports.ErrDuplicateSlug):
		return apierrors.ErrConflict.WithDetail("Category with this slug already exists"), true
	}
	return apierrors.ProblemDetail{}, false
}

func cartErrorMapper(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, cartdomain.ErrMissingProduct):
		return apierrors.ErrValidation.WithDetail(detailProductIDMiss), true
	case errors.Is(err, cartapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(causeDetail(err, cartapp.ErrInvalidInput)), true
	case errors.Is(err, cartapp.ErrInsufficientStock):
		return apierrors.ErrValidation.WithDetail("Insufficient stock"), true
	case errors.Is(err, cartapp.ErrProductUnavailable):
		return apierrors.ErrNotFound.WithDetail("Product not found"), true
	case errors.Is(err, cartdomain.ErrItemNotFound):
		return apierrors.ErrNotFound.WithDetail("Item not found in cart"), true
	}
	return apierrors.ProblemDetail{}, false
}

func orderErrorMapper(err error) (apierrors.ProblemDetail, bool) {
	var unavailable *ordersapp.ProductUnavailableError
	var shortage *ordersapp.InsufficientStockError
	var notCancellable *ordersdomain.NotCancellableError
	switch {
	case errors.As(err, &unavailable):
		return apierrors.ErrValidation.WithDetail(fmt.Sprintf("Product %s is not available", unavailable.ProductID)), true
	case errors.As(err, &shortage):
		return apierrors.ErrValidation.WithDetail(fmt.Sprintf("Insufficient stock for %s", shortage.ProductName)), true
	case errors.As(err, &notCancellable):
		return apierrors.ErrValidation.WithDetail(fmt.Sprintf("Order cannot be cancelled in status: %s", notCancellable.Status)), true
	case errors.Is(err, ordersdomain.ErrEmptyOrder):
		return apierrors.ErrValidation.WithDetail("Order must contain at least one item"), true
	case errors.Is(err, ordersdomain.ErrMissingAddress):
		return apierrors.ErrValidation.WithDetail("Shipping and billing addresses are required"), true
	case errors.Is(err, ordersdomain.ErrMissingPaymentMethod):
		return apierrors.ErrValidation.WithDetail("Payment method is required"), true
	case errors.Is(err, ordersdomain.ErrInvalidStatus):
		return apierrors.ErrValidation.WithDetail("Invalid order status"), true
	case errors.Is(err, ordersdomain.ErrInvalidPaymentStatus):
		return apierrors.ErrValidation.WithDetail("Invalid payment status"), true
	case errors.Is(err, ordersapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(causeDetail(err, ordersapp.ErrInvalidInput)), true
	case errors.Is(err, ordersapp.ErrForbidden):
		return apierrors.ErrForbidden.WithDetail(detailAccessDenied), true
	case errors.Is(err, ordersapp.ErrInsufficientPermissions):
		return apierrors.ErrForbidden.WithDetail(detailNoPermission), true
	case errors.Is(err, ordersports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail("Order not found"), true
	case errors.Is(err, ordersports.ErrDuplicateOrderNumber):
		return apierrors.NewRetryableConflict(detailDuplicateOrder), true
	}
	return apierrors.ProblemDetail{}, false
}

func reviewErrorMapper(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, reviewsdomain.ErrMissingProduct):
		return apierrors.ErrValidation.WithDetail(detailProductIDMiss), true
	case errors.Is(err, reviewsapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(causeDetail(err, reviewsapp.ErrInvalidInput)), true
	case errors.Is(err, reviewsapp.ErrNotPurchased):
		return apierrors.ErrForbidden.WithDetail("You can only review products from delivered orders"), true
	case errors.Is(err, reviewsports.ErrDuplicateReview):
		return apierrors.ErrConflict.WithDetail("You have already reviewed this product for this order"), true
	}
	return apierrors.ProblemDetail{}, false
}

func wishlistErrorMapper(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, wishlistdomain.ErrMissingProduct):
		return apierrors.ErrValidation.WithDetail(detailProductIDMiss), true
	case errors.Is(err, wishlistapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(causeDetail(err, wishlistapp.ErrInvalidInput)), true
	case errors.Is(err, wishlistports.ErrProductNotFound):
		return apierrors.ErrNotFound.WithDetail("Product not found"), true
	case errors.Is(err, wishlistports.ErrDuplicateEntry):
		return apierrors.ErrConflict.WithDetail("Product is already in wishlist"), true
	}
	return apierrors.ProblemDetail{}, false
}

func paymentErrorMapper(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, paymentsapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail("Amount is required"), true
	case errors.Is(err, paymentsapp.ErrGatewayFailure):
		return apierrors.ErrInternal.WithDetail("Failed to create payment intent"), true
	case errors.Is(err, paymentsapp.ErrPublishableKeyMissing):
		return apierrors.ErrInternal.WithDetail("Publishable key not set"), true
	}
	return apierrors.ProblemDetail{}, false
}

func analyticsErrorMapper(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, analyticsapp.ErrInsufficientPermissions):
		return apierrors.ErrForbidden.WithDetail(detailNoPermission), true
	case errors.Is(err, analyticsapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(causeDetail(err, analyticsapp.ErrInvalidInput)), true
	}
	return apierrors.ProblemDetail{}, false
}

// causeDetail strips the taxonomy prefix added by the application layer and
// capitalizes the remaining cause, e.g. "Quantity must be at least 1".
func causeDetail(err, kind error) string {
	msg := err.Error()
	msg = strings.TrimPrefix(msg, kind.Error())
	msg = strings.TrimPrefix(msg, ": ")
	if msg == "" {
		msg = kind.Error()
	}
	r, size := utf8.DecodeRuneInString(msg)
	return string(unicode.ToUpper(r)) + msg[size:]
}
