package api

import (
	"context"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	analyticsobs "github.com/Apurer/go-gin-storefront/internal/domains/analytics/adapters/observability"
	analyticsapp "github.com/Apurer/go-gin-storefront/internal/domains/analytics/application"
	analyticsports "github.com/Apurer/go-gin-storefront/internal/domains/analytics/ports"
	cartcache "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/cache"
	cartcatalog "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/catalog"
	cartmemory "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/memory"
	cartobs "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/observability"
	cartpostgres "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/persistence/postgres"
	cartapp "github.com/Apurer/go-gin-storefront/internal/domains/cart/application"
	cartports "github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
	catalogmemory "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/observability"
	catalogpostgres "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/Apurer/go-gin-storefront/internal/domains/catalog/application"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	identitymemory "github.com/Apurer/go-gin-storefront/internal/domains/identity/adapters/memory"
	identityobs "github.com/Apurer/go-gin-storefront/internal/domains/identity/adapters/observability"
	identitypostgres "github.com/Apurer/go-gin-storefront/internal/domains/identity/adapters/persistence/postgres"
	"github.com/Apurer/go-gin-storefront/internal/domains/identity/adapters/token"
	identityapp "github.com/Apurer/go-gin-storefront/internal/domains/identity/application"
	identitydomain "github.com/Apurer/go-gin-storefront/internal/domains/identity/domain"
	identityports "github.com/Apurer/go-gin-storefront/internal/domains/identity/ports"
	ordercart "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/cart"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/inventory"
	ordersmemory "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/Apurer/go-gin-storefront/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
	paymentsobs "github.com/Apurer/go-gin-storefront/internal/domains/payments/adapters/observability"
	"github.com/Apurer/go-gin-storefront/internal/domains/payments/adapters/stripe"
	paymentsapp "github.com/Apurer/go-gin-storefront/internal/domains/payments/application"
	paymentsports "github.com/Apurer/go-gin-storefront/internal/domains/payments/ports"
	reviewscatalog "github.com/Apurer/go-gin-storefront/internal/domains/reviews/adapters/catalog"
	reviewsidentity "github.com/Apurer/go-gin-storefront/internal/domains/reviews/adapters/identity"
	reviewsmemory "github.com/Apurer/go-gin-storefront/internal/domains/reviews/adapters/memory"
	reviewsobs "github.com/Apurer/go-gin-storefront/internal/domains/reviews/adapters/observability"
	reviewsorders "github.com/Apurer/go-gin-storefront/internal/domains/reviews/adapters/orders"
	reviewspostgres "github.com/Apurer/go-gin-storefront/internal/domains/reviews/adapters/persistence/postgres"
	reviewsapp "github.com/Apurer/go-gin-storefront/internal/domains/reviews/application"
	reviewsports "github.com/Apurer/go-gin-storefront/internal/domains/reviews/ports"
	wishlistcatalog "github.com/Apurer/go-gin-storefront/internal/domains/wishlist/adapters/catalog"
	wishlistmemory "github.com/Apurer/go-gin-storefront/internal/domains/wishlist/adapters/memory"
	wishlistpostgres "github.com/Apurer/go-gin-storefront/internal/domains/wishlist/adapters/persistence/postgres"
	wishlistapp "github.com/Apurer/go-gin-storefront/internal/domains/wishlist/application"
	wishlistports "github.com/Apurer/go-gin-storefront/internal/domains/wishlist/ports"
	"github.com/Apurer/go-gin-storefront/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-storefront/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-storefront/internal/platform/postgres"
	platformredis "github.com/Apurer/go-gin-storefront/internal/platform/redis"
)

// Domain holds every bounded-context service, decorated with tracing and logging,
// plus the infrastructure handles they were built on.
type Domain struct {
	DB    *gorm.DB
	Redis *goredis.Client

	Sessions  identityports.SessionStore
	Identity  identityports.Service
	Catalog   catalogports.Service
	Cart      cartports.Service
	Orders    ordersports.Service
	Reviews   reviewsports.Service
	Wishlist  wishlistports.Service
	Payments  paymentsports.Service
	Analytics analyticsports.Service
}

type repositories struct {
	users      identityports.Repository
	sessions   identityports.SessionStore
	products   catalogports.ProductRepository
	categories catalogports.CategoryRepository
	carts      cartports.Repository
	orders     ordersports.Repository
	stats      ordersports.StatsRepository
	reviews    reviewsports.Repository
	wishlist   wishlistports.Repository
}

// BuildDomain connects to PostgreSQL and Redis when configured and wires all services.
// Without POSTGRES_DSN every context runs on in-memory repositories.
func BuildDomain(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) (*Domain, func(), error) {
	logger := instruments.Logger
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	db, closeDB := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, logger)
	cleanups = append(cleanups, closeDB)
	repos := memoryRepositories()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			cleanup()
			return nil, func() {}, err
		}
		repos = postgresRepositories(db)
	}

	redisClient, closeRedis := platformredis.ConnectOptional(ctx, platformredis.Options{Addr: cfg.RedisAddr}, logger)
	cleanups = append(cleanups, closeRedis)
	if redisClient != nil {
		repos.carts = cartcache.NewRepository(repos.carts, redisClient, cartcache.WithLogger(logger))
		logger.Info("cart cache enabled", slog.String("addr", cfg.RedisAddr))
	}

	codec, err := token.NewJWT(cfg.JWTSecret)
	if err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("token codec: %w", err)
	}
	mode, err := ordersapp.ParseReservationMode(cfg.StockReservationMode)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}

	identity := identityobs.New(
		identityapp.NewService(repos.users, repos.sessions, codec, identityapp.WithTokenTTL(cfg.TokenTTL)),
		identityobs.WithLogger(logger),
		identityobs.WithTracer(instruments.Tracer("internal.identity.application")),
		identityobs.WithMeter(instruments.Meter("internal.identity.application")),
	)
	catalog := catalogobs.New(
		catalogapp.NewService(repos.products, repos.categories),
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)
	cart := cartobs.New(
		cartapp.NewService(repos.carts, cartcatalog.NewLookup(repos.products)),
		cartobs.WithLogger(logger),
		cartobs.WithTracer(instruments.Tracer("internal.cart.application")),
		cartobs.WithMeter(instruments.Meter("internal.cart.application")),
	)
	orders := ordersobs.New(
		ordersapp.NewService(repos.orders, inventory.NewCatalog(repos.products),
			ordersapp.WithReservationMode(mode),
			ordersapp.WithCartClearer(ordercart.NewClearer(repos.carts)),
			ordersapp.WithLogger(logger),
		),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	reviews := reviewsobs.New(
		reviewsapp.NewService(repos.reviews, reviewsorders.NewVerifier(repos.orders), reviewscatalog.NewRatingUpdater(repos.products),
			reviewsapp.WithAuthors(reviewsidentity.NewDirectory(repos.users)),
			reviewsapp.WithLogger(logger),
		),
		reviewsobs.WithLogger(logger),
		reviewsobs.WithTracer(instruments.Tracer("internal.reviews.application")),
		reviewsobs.WithMeter(instruments.Meter("internal.reviews.application")),
	)
	wishlist := wishlistapp.NewService(repos.wishlist, wishlistcatalog.NewProducts(repos.products), wishlistapp.WithLogger(logger))
	payments := paymentsobs.New(
		paymentsapp.NewService(buildGateway(cfg, logger),
			paymentsapp.WithPublishableKey(cfg.StripePublishableKey),
			paymentsapp.WithLogger(logger),
		),
		paymentsobs.WithLogger(logger),
		paymentsobs.WithTracer(instruments.Tracer("internal.payments.application")),
		paymentsobs.WithMeter(instruments.Meter("internal.payments.application")),
	)
	analytics := analyticsobs.New(
		analyticsapp.NewService(identity, repos.products, repos.stats),
		analyticsobs.WithLogger(logger),
		analyticsobs.WithTracer(instruments.Tracer("internal.analytics.application")),
	)

	return &Domain{
		DB:        db,
		Redis:     redisClient,
		Sessions:  repos.sessions,
		Identity:  identity,
		Catalog:   catalog,
		Cart:      cart,
		Orders:    orders,
		Reviews:   reviews,
		Wishlist:  wishlist,
		Payments:  payments,
		Analytics: analytics,
	}, cleanup, nil
}

// BootstrapAdmin creates or promotes the configured administrator.
func (d *Domain) BootstrapAdmin(ctx context.Context, cfg Config, logger *slog.Logger) error {
	if cfg.AdminEmail == "" {
		return nil
	}
	user, err := d.Identity.EnsureUser(ctx, identityports.RegisterInput{
		Name:     cfg.AdminName,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	}, identitydomain.RoleAdmin)
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	logger.Info("administrator account ready", slog.String("user.id", user.ID))
	return nil
}

func memoryRepositories() repositories {
	orders := ordersmemory.NewRepository()
	return repositories{
		users:      identitymemory.NewRepository(),
		sessions:   identitymemory.NewSessionStore(),
		products:   catalogmemory.NewProductRepository(),
		categories: catalogmemory.NewCategoryRepository(),
		carts:      cartmemory.NewRepository(),
		orders:     orders,
		stats:      orders,
		reviews:    reviewsmemory.NewRepository(),
		wishlist:   wishlistmemory.NewRepository(),
	}
}

func postgresRepositories(db *gorm.DB) repositories {
	orders := orderspostgres.NewRepository(db)
	return repositories{
		users:      identitypostgres.NewRepository(db),
		sessions:   identitypostgres.NewSessionStore(db),
		products:   catalogpostgres.NewProductRepository(db),
		categories: catalogpostgres.NewCategoryRepository(db),
		carts:      cartpostgres.NewRepository(db),
		orders:     orders,
		stats:      orders,
		reviews:    reviewspostgres.NewRepository(db),
		wishlist:   wishlistpostgres.NewRepository(db),
	}
}

func buildGateway(cfg Config, logger *slog.Logger) paymentsports.Gateway {
	if cfg.StripeSecretKey == "" {
		logger.Warn("STRIPE_SECRET_KEY not set, payment intents disabled")
		return nil
	}
	client, err := stripe.NewClient(cfg.StripeSecretKey, stripe.WithBaseURL(cfg.StripeBaseURL))
	if err != nil {
		logger.Warn("stripe client unavailable, payment intents disabled", slog.String("error", err.Error()))
		return nil
	}
	return client
}
