package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cristalhq/aconfig"
	"go.temporal.io/sdk/client"

	ordersapp "github.com/Apurer/go-gin-storefront/internal/domains/orders/application"
)

// Config carries settings for the API, worker and purger processes,
// loadable from environment variables or flags.
type Config struct {
	Port        string `env:"PORT" flag:"port" default:"8080" usage:"HTTP listen port"`
	PostgresDSN string `env:"POSTGRES_DSN" flag:"postgres-dsn" usage:"PostgreSQL DSN; empty runs on in-memory repositories"`
	RedisAddr   string `env:"REDIS_ADDR" flag:"redis-addr" usage:"Redis address for the cart cache; empty disables it"`

	TemporalAddress   string `env:"TEMPORAL_ADDRESS" flag:"temporal-address" usage:"Temporal frontend host:port"`
	TemporalNamespace string `env:"TEMPORAL_NAMESPACE" flag:"temporal-namespace" usage:"Temporal namespace"`
	TemporalDisabled  bool   `env:"TEMPORAL_DISABLED" flag:"temporal-disabled" default:"false" usage:"Place orders inline instead of through Temporal"`

	JWTSecret string        `env:"JWT_SECRET" flag:"jwt-secret" usage:"HMAC secret for session tokens"`
	TokenTTL  time.Duration `env:"JWT_TTL" flag:"jwt-ttl" default:"168h" usage:"Session token lifetime"`

	StripeSecretKey      string `env:"STRIPE_SECRET_KEY" flag:"stripe-secret-key" usage:"Stripe secret key; empty disables payment intents"`
	StripePublishableKey string `env:"STRIPE_PUBLISHABLE_KEY" flag:"stripe-publishable-key" usage:"Stripe publishable key served to clients"`
	StripeBaseURL        string `env:"STRIPE_BASE_URL" flag:"stripe-base-url" usage:"Override for the Stripe API base URL"`

	AdminEmail    string `env:"ADMIN_EMAIL" flag:"admin-email" usage:"Email of the bootstrap administrator"`
	AdminPassword string `env:"ADMIN_PASSWORD" flag:"admin-password" usage:"Password of the bootstrap administrator"`
	AdminName     string `env:"ADMIN_NAME" flag:"admin-name" default:"Administrator" usage:"Display name of the bootstrap administrator"`

	StockReservationMode string        `env:"STOCK_RESERVATION_MODE" flag:"stock-reservation-mode" default:"conditional" usage:"conditional or legacy"`
	PaymentRateLimit     float64       `env:"PAYMENT_RATE_LIMIT" flag:"payment-rate-limit" default:"5" usage:"Payment requests per second per client IP"`
	PaymentRateBurst     int           `env:"PAYMENT_RATE_BURST" flag:"payment-rate-burst" default:"10" usage:"Payment burst per client IP"`
	SessionPurgeInterval time.Duration `env:"SESSION_PURGE_INTERVAL" flag:"session-purge-interval" default:"0s" usage:"In-process expired-session purge interval; 0 disables"`
	ShutdownTimeout      time.Duration `env:"SHUTDOWN_TIMEOUT" flag:"shutdown-timeout" default:"15s" usage:"Maximum graceful shutdown duration"`
}

// LoadConfig reads flags from args and the environment, applies defaults, and validates.
func LoadConfig(args []string) (Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		SkipFiles:        true,
		AllowUnknownEnvs: true,
		Args:             args,
	})
	if err := loader.Load(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	c.PostgresDSN = strings.TrimSpace(c.PostgresDSN)
	c.RedisAddr = strings.TrimSpace(c.RedisAddr)
	if strings.TrimSpace(c.TemporalAddress) == "" {
		c.TemporalAddress = client.DefaultHostPort
	}
	if strings.TrimSpace(c.TemporalNamespace) == "" {
		c.TemporalNamespace = client.DefaultNamespace
	}
}

// Validate rejects settings the process cannot start with.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Port) == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	if _, err := ordersapp.ParseReservationMode(c.StockReservationMode); err != nil {
		errs = append(errs, fmt.Errorf("STOCK_RESERVATION_MODE: %w", err))
	}
	if c.PaymentRateLimit <= 0 || c.PaymentRateBurst <= 0 {
		errs = append(errs, errors.New("PAYMENT_RATE_LIMIT and PAYMENT_RATE_BURST must be positive"))
	}
	if c.SessionPurgeInterval < 0 {
		errs = append(errs, errors.New("SESSION_PURGE_INTERVAL must not be negative"))
	}
	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		errs = append(errs, errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set together"))
	}
	return errors.Join(errs...)
}
