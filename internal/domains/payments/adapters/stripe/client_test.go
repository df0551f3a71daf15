package stripe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-storefront/internal/domains/payments/ports"
)

var cardIntent = ports.IntentRequest{AmountCents: 5459, Currency: "usd", PaymentMethodTypes: []string{"card"}}

func TestCreatePaymentIntent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_1", r.Header.Get("Authorization"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "5459", r.PostForm.Get("amount"))
		assert.Equal(t, "usd", r.PostForm.Get("currency"))
		assert.Equal(t, []string{"card"}, r.PostForm["payment_method_types[]"])
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pi_123","client_secret":"pi_123_secret_abc","amount":5459,"currency":"usd"}`))
	}))
	defer srv.Close()

	client, err := NewClient("sk_test_1", WithBaseURL(srv.URL+"/"))
	require.NoError(t, err)
	intent, err := client.CreatePaymentIntent(context.Background(), cardIntent)
	require.NoError(t, err)
	assert.Equal(t, "pi_123", intent.ID)
	assert.Equal(t, "pi_123_secret_abc", intent.ClientSecret)
	assert.Equal(t, int64(5459), intent.AmountCents)
}

func TestCreatePaymentIntent_CardErrorsDoNotOpenBreaker(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"type":"card_error","code":"card_declined","message":"Your card was declined."}}`))
	}))
	defer srv.Close()

	client, err := NewClient("sk_test_1", WithBaseURL(srv.URL), WithBreaker(2, time.Minute))
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		_, err := client.CreatePaymentIntent(context.Background(), cardIntent)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "card_declined", apiErr.Code)
		assert.Equal(t, http.StatusPaymentRequired, apiErr.StatusCode)
	}
	assert.Equal(t, int32(4), calls.Load())
}

func TestCreatePaymentIntent_ServerErrorsOpenBreaker(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client, err := NewClient("sk_test_1", WithBaseURL(srv.URL), WithBreaker(2, time.Minute))
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err := client.CreatePaymentIntent(context.Background(), cardIntent)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
	}
	_, err = client.CreatePaymentIntent(context.Background(), cardIntent)
	assert.True(t, errors.Is(err, gobreaker.ErrOpenState))
	assert.Equal(t, int32(2), calls.Load())
}

func TestNewClient_RequiresSecret(t *testing.T) {
	_, err := NewClient("  ")
	assert.Error(t, err)
}
