package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-gin-storefront/internal/domains/analytics/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/analytics/ports"
	identitydomain "github.com/Apurer/go-gin-storefront/internal/domains/identity/domain"
)

const tracerName = "github.com/Apurer/go-gin-storefront/internal/domains/analytics/adapters/observability/service"

// Service decorates the analytics service with tracing and logging.
type Service struct {
	inner  ports.Service
	tracer trace.Tracer
	logger *slog.Logger
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

func (s *Service) Overview(ctx context.Context, actor identitydomain.Principal, periodDays int) (*domain.Overview, error) {
	ctx, span := s.tracer.Start(ctx, "AnalyticsService.Overview", trace.WithAttributes(
		attribute.String("actor.id", actor.UserID),
		attribute.Int("analytics.period_days", periodDays),
	))
	defer span.End()

	out, err := s.inner.Overview(ctx, actor, periodDays)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if s.logger != nil {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to build analytics overview",
				slog.String("actor.id", actor.UserID),
				slog.String("error", err.Error()),
			)
		}
		return nil, err
	}
	span.SetAttributes(
		attribute.Int64("analytics.total_orders", out.TotalOrders),
		attribute.String("analytics.period_revenue", out.CurrentPeriodRevenue.String()),
	)
	return out, nil
}

var _ ports.Service = (*Service)(nil)
