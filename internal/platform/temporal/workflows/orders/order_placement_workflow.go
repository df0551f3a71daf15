package orders

import (
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-storefront/internal/platform/temporal/sequences"
)

const (
	// OrderPlacementWorkflowName is the public identifier for registering the workflow.
	OrderPlacementWorkflowName = "orders.workflows.Placement"
	// OrderPlacementTaskQueue is the queue consumed by the worker processing checkouts.
	OrderPlacementTaskQueue = "ORDER_PLACEMENT"
)

// OrderPlacementWorkflowInput captures the checkout request.
type OrderPlacementWorkflowInput struct {
	Command ordersports.PlaceOrderInput
	TraceID string
}

// OrderPlacementWorkflow reserves stock and persists the order exactly once per workflow ID.
func OrderPlacementWorkflow(ctx workflow.Context, input OrderPlacementWorkflowInput) (*domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	userID := input.Command.UserID
	logger.Info("OrderPlacementWorkflow started", withTraceID(input.TraceID, "userId", userID)...)
	order, err := sequences.RunOrderPlacementSequence(ctx, input.Command)
	if err != nil {
		logger.Error("OrderPlacementWorkflow failed", withTraceID(input.TraceID, "userId", userID, "error", err)...)
		return nil, err
	}
	logger.Info("OrderPlacementWorkflow completed", withTraceID(input.TraceID, "orderId", order.ID)...)
	return order, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}

// RegisterOptions registers the workflow under its public name.
func RegisterOptions() workflow.RegisterOptions {
	return workflow.RegisterOptions{Name: OrderPlacementWorkflowName}
}
