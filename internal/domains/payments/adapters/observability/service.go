package observability

import (
	"context"
	"io"
	"log/slog"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-gin-storefront/internal/domains/payments/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/payments/ports"
)

const tracerName = "github.com/Apurer/go-gin-storefront/internal/domains/payments/adapters/observability/service"

// Service decorates the payments service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	intents metric.Int64Counter
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		if m == nil {
			return
		}
		s.intents, _ = m.Int64Counter("payments.service.intents", metric.WithDescription("Payment intent attempts by outcome"))
	}
}

func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:  inner,
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) CreatePaymentIntent(ctx context.Context, amount decimal.Decimal) (domain.Intent, error) {
	ctx, span := s.tracer.Start(ctx, "PaymentsService.CreatePaymentIntent", trace.WithAttributes(
		attribute.String("payment.amount", amount.String()),
	))
	defer span.End()

	intent, err := s.inner.CreatePaymentIntent(ctx, amount)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.record(ctx, "failure")
		if s.logger != nil {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to create payment intent",
				slog.String("payment.amount", amount.String()),
				slog.String("error", err.Error()),
			)
		}
		return intent, err
	}
	span.SetAttributes(attribute.String("payment.intent_id", intent.ID))
	s.record(ctx, "success")
	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "payment intent created",
			slog.String("payment.intent_id", intent.ID),
			slog.Int64("amount.cents", intent.AmountCents),
		)
	}
	return intent, nil
}

func (s *Service) PublishableKey(ctx context.Context) (string, error) {
	return s.inner.PublishableKey(ctx)
}

func (s *Service) record(ctx context.Context, outcome string) {
	if s.intents != nil {
		s.intents.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	}
}

var _ ports.Service = (*Service)(nil)
