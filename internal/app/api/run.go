package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	storefrontserver "github.com/Apurer/go-gin-storefront/go"
	ordersworkflows "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/workflows"
	ordersports "github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-storefront/internal/platform/health"
	"github.com/Apurer/go-gin-storefront/internal/platform/httpmiddleware"
	platformobservability "github.com/Apurer/go-gin-storefront/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-storefront/internal/platform/postgres"
)

const serviceName = "storefront-api"

// Run boots the storefront HTTP API with observability, repositories, and workflows wired.
// It returns once ctx is cancelled and the server has drained.
func Run(ctx context.Context, cfg Config) error {
	decimal.MarshalJSONWithoutQuotes = true

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	dom, cleanup, err := BuildDomain(ctx, cfg, instruments)
	if err != nil {
		return err
	}
	defer cleanup()
	if err := dom.BootstrapAdmin(ctx, cfg, logger); err != nil {
		return err
	}

	var orderWorkflows ordersports.WorkflowOrchestrator = ordersworkflows.NewInlineOrderWorkflows(dom.Orders)
	if temporalClient, err := ConnectTemporal(cfg, instruments, "temporal-client"); err != nil {
		logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorkflows = ordersworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	if cfg.SessionPurgeInterval > 0 {
		go purgeSessionsEvery(ctx, dom, cfg.SessionPurgeInterval, logger)
	}

	checks := health.New()
	if dom.DB != nil {
		checks.AddReadinessCheck("postgres", 2*time.Second, func(ctx context.Context) error {
			return platformpostgres.Ping(ctx, dom.DB)
		})
	}
	if dom.Redis != nil {
		checks.AddReadinessCheck("redis", time.Second, func(ctx context.Context) error {
			return dom.Redis.Ping(ctx).Err()
		})
	}
	checks.Start(ctx, 10*time.Second)
	defer checks.Stop()

	limiter := httpmiddleware.NewRateLimiter(httpmiddleware.RateLimitConfig{
		Rate:  cfg.PaymentRateLimit,
		Burst: cfg.PaymentRateBurst,
	})
	limiter.StartCleanup(ctx)

	errs := storefrontserver.NewErrorResponder(logger)
	handlers := storefrontserver.ApiHandleFunctions{
		AccountAPI:  storefrontserver.NewAccountAPI(dom.Identity, errs),
		CatalogAPI:  storefrontserver.NewCatalogAPI(dom.Catalog, errs),
		CartAPI:     storefrontserver.NewCartAPI(dom.Cart, errs),
		OrderAPI:    storefrontserver.NewOrderAPI(dom.Orders, orderWorkflows, errs),
		ReviewAPI:   storefrontserver.NewReviewAPI(dom.Reviews, errs),
		WishlistAPI: storefrontserver.NewWishlistAPI(dom.Wishlist, errs),
		PaymentAPI:  storefrontserver.NewPaymentAPI(dom.Payments, errs),
		AdminAPI:    storefrontserver.NewAdminAPI(dom.Analytics, errs),
	}

	gin.SetMode(gin.ReleaseMode)
	router := storefrontserver.NewRouter(handlers, storefrontserver.RouterOptions{
		Identity:    dom.Identity,
		RateLimiter: limiter,
		Metrics:     httpmiddleware.NewMetrics("storefront", prometheus.NewRegistry()),
		Health:      checks,
		Middleware:  []gin.HandlerFunc{otelgin.Middleware(serviceName)},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("storefront API listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()
	checks.SetReady(true)

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("storefront API server exited", slog.String("addr", srv.Addr), slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	checks.SetReady(false)
	logger.Info("shutting down storefront API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// ConnectTemporal dials the Temporal frontend with tracing and structured logging.
func ConnectTemporal(cfg Config, instruments *platformobservability.Instruments, tracerName string) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer(tracerName)
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

// PurgeExpiredSessions removes expired sessions once and logs the count.
func (d *Domain) PurgeExpiredSessions(ctx context.Context, logger *slog.Logger) (int64, error) {
	removed, err := d.Sessions.PurgeExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	logger.Info("expired sessions purged", slog.Int64("removed", removed))
	return removed, nil
}

func purgeSessionsEvery(ctx context.Context, dom *Domain, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := dom.PurgeExpiredSessions(ctx, logger); err != nil {
				logger.Warn("session purge failed", slog.String("error", err.Error()))
			}
		}
	}
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
