package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-storefront/internal/domains/payments/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/payments/ports"
)

var (
	// ErrInvalidInput signals a missing or non-positive amount.
	ErrInvalidInput = errors.New("invalid payment input")
	// ErrGatewayFailure signals the processor could not create the intent.
	ErrGatewayFailure = errors.New("failed to create payment intent")
	// ErrPublishableKeyMissing signals the client-side key is not configured.
	ErrPublishableKeyMissing = errors.New("publishable key not set")
)

// Service creates card payment intents for checkout.
type Service struct {
	gateway        ports.Gateway
	publishableKey string
	logger         *slog.Logger
}

type Option func(*Service)

func WithPublishableKey(key string) Option {
	return func(s *Service) {
		s.publishableKey = strings.TrimSpace(key)
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService wires the gateway. A nil gateway makes every intent request fail.
func NewService(gateway ports.Gateway, opts ...Option) *Service {
	s := &Service{
		gateway: gateway,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) CreatePaymentIntent(ctx context.Context, amount decimal.Decimal) (domain.Intent, error) {
	cents, err := domain.ToCents(amount)
	if err != nil {
		return domain.Intent{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if s.gateway == nil {
		return domain.Intent{}, fmt.Errorf("%w: payment gateway not configured", ErrGatewayFailure)
	}
	intent, err := s.gateway.CreatePaymentIntent(ctx, ports.IntentRequest{
		AmountCents:        cents,
		Currency:           domain.Currency,
		PaymentMethodTypes: []string{"card"},
	})
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "payment gateway rejected intent",
			slog.Int64("amount.cents", cents),
			slog.String("error", err.Error()),
		)
		return domain.Intent{}, fmt.Errorf("%w: %w", ErrGatewayFailure, err)
	}
	return intent, nil
}

func (s *Service) PublishableKey(context.Context) (string, error) {
	if s.publishableKey == "" {
		return "", ErrPublishableKeyMissing
	}
	return s.publishableKey, nil
}

var _ ports.Service = (*Service)(nil)
