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

	identitydomain "github.com/Apurer/go-gin-storefront/internal/domains/identity/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-storefront/internal/shared/pagination"
)

const tracerName = "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
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

func (s *Service) PlaceOrder(ctx context.Context, input ports.PlaceOrderInput) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.PlaceOrder", trace.WithAttributes(
		attribute.String("user.id", input.UserID),
		attribute.Int("order.line_count", len(input.Items)),
		attribute.String("order.payment_method", string(input.PaymentMethod)),
	))
	defer span.End()

	order, err := s.inner.PlaceOrder(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to place order", slog.String("user.id", input.UserID))
	}
	span.SetAttributes(
		attribute.String("order.id", order.ID),
		attribute.String("order.number", order.OrderNumber),
		attribute.String("order.total", order.Total.String()),
	)
	s.metrics.recordPlaced(ctx, order.PaymentMethod)
	s.logInfo(ctx, "order placed",
		slog.String("order.id", order.ID),
		slog.String("order.number", order.OrderNumber),
		slog.String("user.id", order.UserID),
		slog.String("order.total", order.Total.String()),
	)
	return order, nil
}

func (s *Service) ListOrders(ctx context.Context, actor identitydomain.Principal, query ports.ListQuery) (pagination.Page[*domain.Order], error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.ListOrders", trace.WithAttributes(
		attribute.String("actor.id", actor.UserID),
		attribute.String("actor.role", string(actor.Role)),
		attribute.String("order.status", query.Status),
	))
	defer span.End()

	page, err := s.inner.ListOrders(ctx, actor, query)
	if err != nil {
		return page, s.handleError(ctx, span, err, "failed to list orders", slog.String("actor.id", actor.UserID))
	}
	span.SetAttributes(attribute.Int64("orders.total", page.Meta.Total))
	return page, nil
}

func (s *Service) GetOrder(ctx context.Context, actor identitydomain.Principal, id string) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.GetOrder", trace.WithAttributes(
		attribute.String("actor.id", actor.UserID),
		attribute.String("order.id", id),
	))
	defer span.End()

	order, err := s.inner.GetOrder(ctx, actor, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to get order", slog.String("order.id", id))
	}
	return order, nil
}

func (s *Service) UpdateOrder(ctx context.Context, actor identitydomain.Principal, id string, input ports.UpdateInput) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.UpdateOrder", trace.WithAttributes(
		attribute.String("actor.id", actor.UserID),
		attribute.String("order.id", id),
	))
	defer span.End()

	order, err := s.inner.UpdateOrder(ctx, actor, id, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order", slog.String("order.id", id))
	}
	s.logInfo(ctx, "order updated",
		slog.String("order.id", order.ID),
		slog.String("order.status", string(order.Status)),
		slog.String("order.payment_status", string(order.PaymentStatus)),
		slog.String("actor.id", actor.UserID),
	)
	return order, nil
}

func (s *Service) CancelOrder(ctx context.Context, actor identitydomain.Principal, id, reason string) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.CancelOrder", trace.WithAttributes(
		attribute.String("actor.id", actor.UserID),
		attribute.String("order.id", id),
	))
	defer span.End()

	order, err := s.inner.CancelOrder(ctx, actor, id, reason)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to cancel order", slog.String("order.id", id))
	}
	s.metrics.recordCancelled(ctx)
	s.logInfo(ctx, "order cancelled",
		slog.String("order.id", order.ID),
		slog.String("actor.id", actor.UserID),
		slog.String("reason", order.CancelledReason),
	)
	return order, nil
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
	placed    metric.Int64Counter
	cancelled metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	placed, _ := m.Int64Counter("orders.service.orders_placed", metric.WithDescription("Number of orders placed"))
	cancelled, _ := m.Int64Counter("orders.service.orders_cancelled", metric.WithDescription("Number of orders cancelled"))
	return serviceMetrics{placed: placed, cancelled: cancelled}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, method domain.PaymentMethod) {
	if m.placed != nil {
		m.placed.Add(ctx, 1, metric.WithAttributes(attribute.String("payment_method", string(method))))
	}
}

func (m serviceMetrics) recordCancelled(ctx context.Context) {
	if m.cancelled != nil {
		m.cancelled.Add(ctx, 1)
	}
}

var _ ports.Service = (*Service)(nil)
