package httpmiddleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping/:id", func(c *gin.Context) {
		c.String(http.StatusOK, RequestIDFromContext(c.Request.Context()))
	})
	return r
}

func get(r http.Handler, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = "10.0.0.1:1234"
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	r := newEngine(RequestID())

	w := get(r, "/ping/1", map[string]string{HeaderRequestID: "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
	assert.Equal(t, "abc-123", w.Body.String())

	w = get(r, "/ping/1", map[string]string{HeaderRequestID: strings.Repeat("x", 129)})
	generated := w.Header().Get(HeaderRequestID)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{Rate: 1, Burst: 2})
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	r := newEngine(rl.Middleware())

	assert.Equal(t, http.StatusOK, get(r, "/ping/1", nil).Code)
	assert.Equal(t, http.StatusOK, get(r, "/ping/1", nil).Code)

	w := get(r, "/ping/1", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Header().Get("Content-Type"), "application/problem+json")

	// a different client has its own bucket
	assert.Equal(t, http.StatusOK, get(r, "/ping/1", map[string]string{"X-Forwarded-For": "10.0.0.2"}).Code)

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, get(r, "/ping/1", nil).Code)
}

func TestRateLimiter_EvictsIdleBuckets(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{Rate: 1, Idle: time.Minute})
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	allowed, _ := rl.allow("a")
	require.True(t, allowed)

	now = now.Add(2 * time.Minute)
	rl.evictIdle()
	rl.mu.Lock()
	assert.Empty(t, rl.buckets)
	rl.mu.Unlock()
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("storefront", reg)
	r := newEngine(m.Middleware())
	r.GET("/metrics", gin.WrapH(m.Handler()))

	get(r, "/ping/1", nil)
	get(r, "/ping/2", nil)
	get(r, "/missing", nil)

	body := get(r, "/metrics", nil).Body.String()
	assert.Contains(t, body, `storefront_http_requests_total{method="GET",route="/ping/:id",status="200"} 2`)
	assert.Contains(t, body, `route="unmatched",status="404"`)
	assert.Contains(t, body, "storefront_http_request_duration_seconds_bucket")
}
