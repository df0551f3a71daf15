package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h *Health, path string) (int, statusResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/healthz", h.Live)
	r.GET("/readyz", h.Ready)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	var body statusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestReady_RequiresGate(t *testing.T) {
	h := New()
	code, body := serve(t, h, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Contains(t, body.Checks, "_readiness")

	h.SetReady(true)
	code, body = serve(t, h, "/readyz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body.Status)

	code, _ = serve(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, code)
}

func TestReady_FailingCheckAfterThreshold(t *testing.T) {
	h := New()
	h.SetReady(true)
	var calls atomic.Int32
	h.AddReadinessCheck("postgres", time.Second, func(context.Context) error {
		calls.Add(1)
		return errors.New("connection refused")
	})
	h.Start(context.Background(), 5*time.Millisecond)
	defer h.Stop()

	require.Eventually(t, func() bool { return !h.IsReady() }, time.Second, 5*time.Millisecond)
	assert.GreaterOrEqual(t, int(calls.Load()), failureThreshold)

	code, body := serve(t, h, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "connection refused", body.Checks["postgres"])
}
