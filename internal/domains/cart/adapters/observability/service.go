package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

const tracerName = "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/observability/service"

// Service decorates the cart service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
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
		s.metrics = newServiceMetrics(m)
	}
}

func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
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

func (s *Service) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.GetCart", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	cart, err := s.inner.GetCart(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load cart", slog.String("user.id", userID))
	}
	span.SetAttributes(attribute.Int("cart.item_count", cart.ItemCount))
	return cart, nil
}

func (s *Service) AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.AddItem", trace.WithAttributes(
		attribute.String("user.id", userID),
		attribute.String("product.id", productID),
		attribute.Int("quantity", quantity),
	))
	defer span.End()

	cart, err := s.inner.AddItem(ctx, userID, productID, quantity)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add cart item", slog.String("user.id", userID), slog.String("product.id", productID))
	}
	s.metrics.recordMutation(ctx, "add")
	s.logInfo(ctx, "cart item added", slog.String("user.id", userID), slog.String("product.id", productID), slog.Int("quantity", quantity))
	return cart, nil
}

func (s *Service) UpdateItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.UpdateItem", trace.WithAttributes(
		attribute.String("user.id", userID),
		attribute.String("product.id", productID),
		attribute.Int("quantity", quantity),
	))
	defer span.End()

	cart, err := s.inner.UpdateItem(ctx, userID, productID, quantity)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update cart item", slog.String("user.id", userID), slog.String("product.id", productID))
	}
	s.metrics.recordMutation(ctx, "update")
	return cart, nil
}

func (s *Service) RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.RemoveItem", trace.WithAttributes(
		attribute.String("user.id", userID),
		attribute.String("product.id", productID),
	))
	defer span.End()

	cart, err := s.inner.RemoveItem(ctx, userID, productID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to remove cart item", slog.String("user.id", userID))
	}
	s.metrics.recordMutation(ctx, "remove")
	return cart, nil
}

func (s *Service) Clear(ctx context.Context, userID string) (*domain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.Clear", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	cart, err := s.inner.Clear(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to clear cart", slog.String("user.id", userID))
	}
	s.metrics.recordMutation(ctx, "clear")
	s.logInfo(ctx, "cart cleared", slog.String("user.id", userID))
	return cart, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	mutations metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	mutations, _ := m.Int64Counter("cart.service.mutations", metric.WithDescription("Number of cart changes"))
	return serviceMetrics{mutations: mutations}
}

func (m serviceMetrics) recordMutation(ctx context.Context, op string) {
	if m.mutations != nil {
		m.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op)))
	}
}

var _ ports.Service = (*Service)(nil)
