package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
	orderactivities "github.com/Apurer/go-gin-storefront/internal/platform/temporal/activities/orders"
)

// RunOrderPlacementSequence executes the checkout activity under a bounded retry policy.
func RunOrderPlacementSequence(ctx workflow.Context, input ordersports.PlaceOrderInput) (*domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order placement sequence started", "userId", input.UserID)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
			NonRetryableErrorTypes: []string{
				orderactivities.ErrTypeInvalidInput,
				orderactivities.ErrTypeProductUnavailable,
				orderactivities.ErrTypeInsufficientStock,
			},
		},
	}

	var order domain.Order
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, options), orderactivities.PlaceOrderActivityName, input).Get(ctx, &order)
	if err != nil {
		logger.Error("order placement sequence failed", "userId", input.UserID, "error", err)
		return nil, err
	}
	logger.Info("order placement sequence persisted", "orderId", order.ID, "orderNumber", order.OrderNumber)
	return &order, nil
}
