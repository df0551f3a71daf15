// Package health serves liveness and readiness probes.
//
// Readiness checks run in the background at a fixed interval. A check turns
// unhealthy after failureThreshold consecutive failures and healthy again
// after one success.
package health

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

const failureThreshold = 3

// CheckFunc returns nil when the dependency is usable.
type CheckFunc func(ctx context.Context) error

type check struct {
	name    string
	timeout time.Duration
	fn      CheckFunc

	healthy atomic.Bool
	lastErr atomic.Pointer[error]

	// only touched by the goroutine running the check
	consecutiveFails int
}

func (c *check) run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	err := c.fn(ctx)
	c.lastErr.Store(&err)
	if err != nil {
		c.consecutiveFails++
		if c.consecutiveFails >= failureThreshold {
			c.healthy.Store(false)
		}
		return
	}
	c.consecutiveFails = 0
	c.healthy.Store(true)
}

func (c *check) failure() string {
	if p := c.lastErr.Load(); p != nil && *p != nil {
		return (*p).Error()
	}
	return "check is unhealthy"
}

// Health tracks readiness of the process and its dependencies.
type Health struct {
	mu     sync.RWMutex
	checks []*check
	ready  atomic.Bool
	cancel context.CancelFunc
}

func New() *Health {
	return &Health{}
}

// AddReadinessCheck registers a dependency check. Checks start healthy.
func (h *Health) AddReadinessCheck(name string, timeout time.Duration, fn CheckFunc) {
	c := &check{name: name, timeout: timeout, fn: fn}
	c.healthy.Store(true)
	h.mu.Lock()
	h.checks = append(h.checks, c)
	h.mu.Unlock()
}

// Start runs every check immediately and then once per interval until Stop.
func (h *Health) Start(ctx context.Context, interval time.Duration) {
	ctx, cancel := context.WithCancel(ctx)
	h.mu.Lock()
	h.cancel = cancel
	checks := append([]*check(nil), h.checks...)
	h.mu.Unlock()

	for _, c := range checks {
		go func(c *check) {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			c.run(ctx)
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					c.run(ctx)
				}
			}
		}(c)
	}
}

func (h *Health) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
}

// SetReady flips the manual readiness gate, e.g. false while draining.
func (h *Health) SetReady(ready bool) {
	h.ready.Store(ready)
}

// IsReady reports the gate AND every readiness check.
func (h *Health) IsReady() bool {
	return h.ready.Load() && len(h.failures()) == 0
}

func (h *Health) failures() map[string]string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	failures := map[string]string{}
	for _, c := range h.checks {
		if !c.healthy.Load() {
			failures[c.name] = c.failure()
		}
	}
	return failures
}

type statusResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Live answers 200 while the process can serve requests at all.
func (h *Health) Live(c *gin.Context) {
	c.JSON(http.StatusOK, statusResponse{Status: "ok"})
}

// Ready answers 503 with the failing checks until the service can take traffic.
func (h *Health) Ready(c *gin.Context) {
	failures := h.failures()
	if !h.ready.Load() {
		failures["_readiness"] = "service is not ready"
	}
	if len(failures) > 0 {
		c.JSON(http.StatusServiceUnavailable, statusResponse{Status: "unhealthy", Checks: failures})
		return
	}
	c.JSON(http.StatusOK, statusResponse{Status: "ok"})
}
