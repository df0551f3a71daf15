package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/Apurer/go-gin-storefront/internal/domains/payments/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/payments/ports"
)

// DefaultBaseURL is the public Stripe API endpoint.
const DefaultBaseURL = "https://api.stripe.com"

var _ ports.Gateway = (*Client)(nil)

// APIError is a non-2xx answer from Stripe.
type APIError struct {
	StatusCode int
	Type       string
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.Code != "" {
		return fmt.Sprintf("stripe %d %s: %s", e.StatusCode, e.Code, msg)
	}
	return fmt.Sprintf("stripe %d: %s", e.StatusCode, msg)
}

// Client creates payment intents through the Stripe REST API. Calls run
// behind a circuit breaker that opens after repeated server-side failures.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[domain.Intent]
	logger     *slog.Logger
}

type Option func(*options)

type options struct {
	baseURL          string
	httpClient       *http.Client
	logger           *slog.Logger
	failureThreshold uint32
	openTimeout      time.Duration
}

func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		if baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/"); baseURL != "" {
			o.baseURL = baseURL
		}
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.httpClient = c
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithBreaker sets how many consecutive failures open the breaker and how long it stays open.
func WithBreaker(failureThreshold uint32, openTimeout time.Duration) Option {
	return func(o *options) {
		if failureThreshold > 0 {
			o.failureThreshold = failureThreshold
		}
		if openTimeout > 0 {
			o.openTimeout = openTimeout
		}
	}
}

// NewClient builds a Stripe client for secretKey.
func NewClient(secretKey string, opts ...Option) (*Client, error) {
	secretKey = strings.TrimSpace(secretKey)
	if secretKey == "" {
		return nil, errors.New("stripe secret key is required")
	}
	o := options{
		baseURL:          DefaultBaseURL,
		httpClient:       &http.Client{Timeout: 10 * time.Second},
		logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		failureThreshold: 5,
		openTimeout:      30 * time.Second,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	c := &Client{
		baseURL:    o.baseURL,
		secretKey:  secretKey,
		httpClient: o.httpClient,
		logger:     o.logger,
	}
	threshold := o.failureThreshold
	c.breaker = gobreaker.NewCircuitBreaker[domain.Intent](gobreaker.Settings{
		Name:        "stripe",
		MaxRequests: 1,
		Timeout:     o.openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// Card declines and validation errors are answers, not outages.
		IsSuccessful: func(err error) bool {
			var apiErr *APIError
			if errors.As(err, &apiErr) {
				return apiErr.StatusCode < http.StatusInternalServerError && apiErr.StatusCode != http.StatusTooManyRequests
			}
			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})
	return c, nil
}

// CreatePaymentIntent posts a form-encoded payment intent request.
func (c *Client) CreatePaymentIntent(ctx context.Context, req ports.IntentRequest) (domain.Intent, error) {
	if c == nil || c.breaker == nil {
		return domain.Intent{}, errors.New("stripe client not configured")
	}
	return c.breaker.Execute(func() (domain.Intent, error) {
		return c.createPaymentIntent(ctx, req)
	})
}

func (c *Client) createPaymentIntent(ctx context.Context, req ports.IntentRequest) (domain.Intent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(req.AmountCents, 10))
	form.Set("currency", req.Currency)
	for _, method := range req.PaymentMethodTypes {
		form.Add("payment_method_types[]", method)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return domain.Intent{}, fmt.Errorf("build stripe request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return domain.Intent{}, fmt.Errorf("call stripe API: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return domain.Intent{}, fmt.Errorf("read stripe response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return domain.Intent{}, decodeAPIError(resp.StatusCode, body)
	}
	var payload intentResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.Intent{}, fmt.Errorf("decode stripe response: %w", err)
	}
	if payload.ClientSecret == "" {
		return domain.Intent{}, errors.New("stripe response missing client secret")
	}
	return domain.Intent{
		ID:           payload.ID,
		ClientSecret: payload.ClientSecret,
		AmountCents:  payload.Amount,
		Currency:     payload.Currency,
	}, nil
}

type intentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeAPIError(status int, body []byte) error {
	apiErr := &APIError{StatusCode: status}
	var payload errorResponse
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Type = payload.Error.Type
		apiErr.Code = payload.Error.Code
		apiErr.Message = payload.Error.Message
	}
	return apiErr
}
