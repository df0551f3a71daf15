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

	"github.com/Apurer/go-gin-storefront/internal/domains/reviews/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/reviews/ports"
	"github.com/Apurer/go-gin-storefront/internal/shared/pagination"
)

const tracerName = "github.com/Apurer/go-gin-storefront/internal/domains/reviews/adapters/observability/service"

// Service decorates the reviews service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	created metric.Int64Counter
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
		s.created, _ = m.Int64Counter("reviews.service.reviews_created", metric.WithDescription("Number of reviews accepted"))
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

func (s *Service) CreateReview(ctx context.Context, input ports.CreateInput) (*domain.Review, error) {
	ctx, span := s.tracer.Start(ctx, "ReviewsService.CreateReview", trace.WithAttributes(
		attribute.String("user.id", input.UserID),
		attribute.String("product.id", input.ProductID),
		attribute.String("order.id", input.OrderID),
		attribute.Int("review.rating", input.Rating),
	))
	defer span.End()

	review, err := s.inner.CreateReview(ctx, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if s.logger != nil {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to create review",
				slog.String("product.id", input.ProductID),
				slog.String("error", err.Error()),
			)
		}
		return nil, err
	}
	if s.created != nil {
		s.created.Add(ctx, 1, metric.WithAttributes(attribute.Int("rating", review.Rating)))
	}
	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "review created",
			slog.String("review.id", review.ID),
			slog.String("product.id", review.ProductID),
			slog.Int("rating", review.Rating),
		)
	}
	return review, nil
}

func (s *Service) ListReviews(ctx context.Context, query ports.ListQuery) (pagination.Page[*domain.Review], error) {
	ctx, span := s.tracer.Start(ctx, "ReviewsService.ListReviews", trace.WithAttributes(
		attribute.String("product.id", query.ProductID),
	))
	defer span.End()

	page, err := s.inner.ListReviews(ctx, query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return page, err
	}
	span.SetAttributes(attribute.Int64("reviews.total", page.Meta.Total))
	return page, nil
}

var _ ports.Service = (*Service)(nil)
