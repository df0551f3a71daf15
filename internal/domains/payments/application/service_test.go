package application

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-storefront/internal/domains/payments/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/payments/ports"
)

type fakeGateway struct {
	requests []ports.IntentRequest
	err      error
}

func (f *fakeGateway) CreatePaymentIntent(_ context.Context, req ports.IntentRequest) (domain.Intent, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return domain.Intent{}, f.err
	}
	return domain.Intent{ID: "pi_1", ClientSecret: "pi_1_secret_x", AmountCents: req.AmountCents, Currency: req.Currency}, nil
}

func TestCreatePaymentIntent(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewService(gw)

	intent, err := svc.CreatePaymentIntent(context.Background(), decimal.RequireFromString("54.59"))
	require.NoError(t, err)
	assert.Equal(t, "pi_1_secret_x", intent.ClientSecret)
	require.Len(t, gw.requests, 1)
	assert.Equal(t, ports.IntentRequest{AmountCents: 5459, Currency: "usd", PaymentMethodTypes: []string{"card"}}, gw.requests[0])
}

func TestCreatePaymentIntent_RejectsNonPositiveAmount(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewService(gw)
	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-3)} {
		_, err := svc.CreatePaymentIntent(context.Background(), amount)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	}
	assert.Empty(t, gw.requests)
}

func TestCreatePaymentIntent_GatewayFailure(t *testing.T) {
	svc := NewService(&fakeGateway{err: errors.New("card_declined")})
	_, err := svc.CreatePaymentIntent(context.Background(), decimal.NewFromInt(10))
	assert.ErrorIs(t, err, ErrGatewayFailure)

	_, err = NewService(nil).CreatePaymentIntent(context.Background(), decimal.NewFromInt(10))
	assert.ErrorIs(t, err, ErrGatewayFailure)
}

func TestPublishableKey(t *testing.T) {
	_, err := NewService(nil).PublishableKey(context.Background())
	assert.ErrorIs(t, err, ErrPublishableKeyMissing)

	key, err := NewService(nil, WithPublishableKey(" pk_test_123 ")).PublishableKey(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pk_test_123", key)
}
