package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-storefront/internal/domains/payments/domain"
)

// IntentRequest is what the gateway needs to open a payment intent.
type IntentRequest struct {
	AmountCents        int64
	Currency           string
	PaymentMethodTypes []string
}

// Gateway talks to the external payment processor.
type Gateway interface {
	CreatePaymentIntent(ctx context.Context, req IntentRequest) (domain.Intent, error)
}

// Service exposes payment use cases.
type Service interface {
	CreatePaymentIntent(ctx context.Context, amount decimal.Decimal) (domain.Intent, error)
	PublishableKey(ctx context.Context) (string, error)
}
