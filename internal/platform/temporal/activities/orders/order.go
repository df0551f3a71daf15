package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
)

// PlaceOrderActivityName reserves stock and persists an order.
const PlaceOrderActivityName = "orders.activities.PlaceOrder"

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service ordersports.Service
}

// NewActivities wires the orders service into the Temporal activities bundle.
func NewActivities(service ordersports.Service) *Activities {
	return &Activities{service: service}
}

// PlaceOrder runs checkout once. Business rejections come back non-retryable;
// an order number collision stays retryable so the next attempt draws a new number.
func (a *Activities) PlaceOrder(ctx context.Context, input ordersports.PlaceOrderInput) (*domain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("place order activity not initialized", "userId", input.UserID)
		return nil, errors.New("place order activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "userId", input.UserID, "lines", len(input.Items))
	order, err := a.service.PlaceOrder(ctx, input)
	if err != nil {
		logger.Error("PlaceOrder activity failed", "userId", input.UserID, "error", err)
		return nil, EncodeError(err)
	}
	logger.Info("PlaceOrder activity completed", "orderId", order.ID, "orderNumber", order.OrderNumber)
	return order, nil
}
