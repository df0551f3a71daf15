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

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	identitydomain "github.com/Apurer/go-gin-storefront/internal/domains/identity/domain"
	"github.com/Apurer/go-gin-storefront/internal/shared/pagination"
)

const tracerName = "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog service with tracing, logging, and metrics.
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

// New wraps the core catalog service.
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

func (s *Service) ListProducts(ctx context.Context, filter ports.ProductFilter) (pagination.Page[*domain.Product], error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListProducts", trace.WithAttributes(
		attribute.String("product.category", filter.Category),
		attribute.String("product.sort", string(filter.SortBy)),
		attribute.Int("page", filter.Page.Page),
	))
	defer span.End()

	page, err := s.inner.ListProducts(ctx, filter)
	if err != nil {
		return page, s.handleError(ctx, span, err, "failed to list products")
	}
	span.SetAttributes(attribute.Int64("result.total", page.Meta.Total))
	return page, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetProduct", trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()

	product, err := s.inner.GetProduct(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to get product", slog.String("product.id", id))
	}
	return product, nil
}

func (s *Service) CreateProduct(ctx context.Context, actor identitydomain.Principal, input ports.ProductInput) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.CreateProduct", trace.WithAttributes(attribute.String("user.id", actor.UserID)))
	defer span.End()

	product, err := s.inner.CreateProduct(ctx, actor, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create product", slog.String("user.id", actor.UserID))
	}
	span.SetAttributes(attribute.String("product.id", product.ID))
	s.metrics.recordProductChange(ctx, "create")
	s.logInfo(ctx, "product created", slog.String("product.id", product.ID), slog.String("vendor.id", product.VendorID))
	return product, nil
}

func (s *Service) UpdateProduct(ctx context.Context, actor identitydomain.Principal, id string, input ports.ProductInput) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.UpdateProduct", trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()

	product, err := s.inner.UpdateProduct(ctx, actor, id, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update product", slog.String("product.id", id))
	}
	s.metrics.recordProductChange(ctx, "update")
	s.logInfo(ctx, "product updated", slog.String("product.id", id))
	return product, nil
}

func (s *Service) DeleteProduct(ctx context.Context, actor identitydomain.Principal, id string) error {
	ctx, span := s.tracer.Start(ctx, "CatalogService.DeleteProduct", trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()

	if err := s.inner.DeleteProduct(ctx, actor, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete product", slog.String("product.id", id))
	}
	s.metrics.recordProductChange(ctx, "delete")
	s.logInfo(ctx, "product deleted", slog.String("product.id", id))
	return nil
}

func (s *Service) CountActiveProducts(ctx context.Context) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.CountActiveProducts")
	defer span.End()

	n, err := s.inner.CountActiveProducts(ctx)
	if err != nil {
		return 0, s.handleError(ctx, span, err, "failed to count products")
	}
	return n, nil
}

func (s *Service) ListCategories(ctx context.Context, filter ports.CategoryFilter) ([]*domain.Category, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListCategories", trace.WithAttributes(attribute.String("category.parent_id", filter.ParentID)))
	defer span.End()

	categories, err := s.inner.ListCategories(ctx, filter)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list categories")
	}
	span.SetAttributes(attribute.Int("result.count", len(categories)))
	return categories, nil
}

func (s *Service) CreateCategory(ctx context.Context, actor identitydomain.Principal, input ports.CategoryInput) (*domain.Category, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.CreateCategory", trace.WithAttributes(attribute.String("category.slug", input.Slug)))
	defer span.End()

	category, err := s.inner.CreateCategory(ctx, actor, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create category", slog.String("category.slug", input.Slug))
	}
	s.logInfo(ctx, "category created", slog.String("category.id", category.ID), slog.Int("category.level", category.Level))
	return category, nil
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
	productChanges metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	changes, _ := m.Int64Counter("catalog.service.product_changes", metric.WithDescription("Number of product writes"))
	return serviceMetrics{productChanges: changes}
}

func (m serviceMetrics) recordProductChange(ctx context.Context, op string) {
	if m.productChanges != nil {
		m.productChanges.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op)))
	}
}

var _ ports.Service = (*Service)(nil)
