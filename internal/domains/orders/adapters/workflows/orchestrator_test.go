package workflows

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
)

func TestBuildOrderPlacementWorkflowID(t *testing.T) {
	in := ports.PlaceOrderInput{UserID: "u1", IdempotencyKey: " checkout-42 "}
	first := buildOrderPlacementWorkflowID(in, "trace-a")
	second := buildOrderPlacementWorkflowID(in, "trace-b")
	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(first, "order-placement-idem-"))
	assert.Len(t, strings.TrimPrefix(first, "order-placement-idem-"), 16)

	in.UserID = "u2"
	assert.NotEqual(t, first, buildOrderPlacementWorkflowID(in, "trace-a"))

	in.IdempotencyKey = ""
	assert.Equal(t, "order-placement-u2-trace-a", buildOrderPlacementWorkflowID(in, "trace-a"))
}

type stubService struct {
	ports.Service
	calls int
}

func (s *stubService) PlaceOrder(_ context.Context, input ports.PlaceOrderInput) (*domain.Order, error) {
	s.calls++
	return &domain.Order{ID: "o1", UserID: input.UserID}, nil
}

func TestInlineOrderWorkflows(t *testing.T) {
	svc := &stubService{}
	order, err := NewInlineOrderWorkflows(svc).PlaceOrder(context.Background(), ports.PlaceOrderInput{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "o1", order.ID)
	assert.Equal(t, 1, svc.calls)

	_, err = NewInlineOrderWorkflows(nil).PlaceOrder(context.Background(), ports.PlaceOrderInput{})
	assert.Error(t, err)

	_, err = NewTemporalOrderWorkflows(nil).PlaceOrder(context.Background(), ports.PlaceOrderInput{})
	assert.Error(t, err)
}
