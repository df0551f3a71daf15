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

	"github.com/Apurer/go-gin-storefront/internal/domains/identity/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/identity/ports"
)

const tracerName = "github.com/Apurer/go-gin-storefront/internal/domains/identity/adapters/observability/service"

// Service decorates the identity service with tracing, logging, and metrics.
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

// New wraps the core identity service.
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

func (s *Service) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	ctx, span := s.tracer.Start(ctx, "IdentityService.Register")
	defer span.End()

	result, err := s.inner.Register(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to register user")
	}
	span.SetAttributes(attribute.String("user.id", result.User.ID))
	s.metrics.recordRegistration(ctx)
	s.logInfo(ctx, "user registered", slog.String("user.id", result.User.ID))
	return result, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	ctx, span := s.tracer.Start(ctx, "IdentityService.Login")
	defer span.End()

	result, err := s.inner.Login(ctx, email, password)
	if err != nil {
		s.metrics.recordLogin(ctx, false)
		return nil, s.handleError(ctx, span, err, "login failed")
	}
	s.metrics.recordLogin(ctx, true)
	s.logInfo(ctx, "user logged in", slog.String("user.id", result.User.ID))
	return result, nil
}

func (s *Service) Authenticate(ctx context.Context, token string) (domain.Principal, error) {
	ctx, span := s.tracer.Start(ctx, "IdentityService.Authenticate")
	defer span.End()

	principal, err := s.inner.Authenticate(ctx, token)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return principal, err
	}
	span.SetAttributes(attribute.String("user.id", principal.UserID), attribute.String("user.role", string(principal.Role)))
	return principal, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	ctx, span := s.tracer.Start(ctx, "IdentityService.Logout")
	defer span.End()

	if err := s.inner.Logout(ctx, token); err != nil {
		return s.handleError(ctx, span, err, "logout failed")
	}
	s.logInfo(ctx, "user logged out")
	return nil
}

func (s *Service) Profile(ctx context.Context, userID string) (*domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "IdentityService.Profile", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	user, err := s.inner.Profile(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load profile", slog.String("user.id", userID))
	}
	return user, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, update ports.ProfileUpdate) (*domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "IdentityService.UpdateProfile", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	user, err := s.inner.UpdateProfile(ctx, userID, update)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update profile", slog.String("user.id", userID))
	}
	s.logInfo(ctx, "profile updated", slog.String("user.id", userID))
	return user, nil
}

func (s *Service) EnsureUser(ctx context.Context, input ports.RegisterInput, role domain.Role) (*domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "IdentityService.EnsureUser", trace.WithAttributes(attribute.String("user.role", string(role))))
	defer span.End()

	user, err := s.inner.EnsureUser(ctx, input, role)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to ensure user", slog.String("user.role", string(role)))
	}
	s.logInfo(ctx, "user ensured", slog.String("user.id", user.ID), slog.String("user.role", string(user.Role)))
	return user, nil
}

func (s *Service) CountUsers(ctx context.Context) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "IdentityService.CountUsers")
	defer span.End()

	n, err := s.inner.CountUsers(ctx)
	if err != nil {
		return 0, s.handleError(ctx, span, err, "failed to count users")
	}
	return n, nil
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
	registrations metric.Int64Counter
	logins        metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	registrations, _ := m.Int64Counter("identity.service.registrations", metric.WithDescription("Number of accounts registered"))
	logins, _ := m.Int64Counter("identity.service.logins", metric.WithDescription("Number of login attempts"))
	return serviceMetrics{registrations: registrations, logins: logins}
}

func (m serviceMetrics) recordRegistration(ctx context.Context) {
	if m.registrations != nil {
		m.registrations.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordLogin(ctx context.Context, ok bool) {
	if m.logins != nil {
		m.logins.Add(ctx, 1, metric.WithAttributes(attribute.Bool("login.success", ok)))
	}
}

var _ ports.Service = (*Service)(nil)
