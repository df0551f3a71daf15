package storefrontserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	ordersmapper "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/http/mapper"
	ordersdomain "github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

// HeaderIdempotencyKey deduplicates order submissions.
const HeaderIdempotencyKey = "Idempotency-Key"

// OrderAPI serves checkout and order management.
type OrderAPI struct {
	service   ordersports.Service
	workflows ordersports.WorkflowOrchestrator
	errs      *apierrors.ChainedResponder
}

func NewOrderAPI(service ordersports.Service, workflows ordersports.WorkflowOrchestrator, errs *apierrors.ChainedResponder) OrderAPI {
	return OrderAPI{service: service, workflows: workflows, errs: errs}
}

// Get /orders
func (api *OrderAPI) ListOrders(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	q := newQueryParams(c)
	query := ordersports.ListQuery{Status: q.String("status"), Page: q.Page()}
	if !q.ok() {
		return
	}
	page, err := api.service.ListOrders(c.Request.Context(), principal, query)
	if err != nil {
		api.errs.RespondError(c, err)
		return
	}
	respondPage(c, http.StatusOK, ordersmapper.FromDomainOrders(page.Items), page.Meta)
}

// Post /orders
// Places an order for the caller
func (api *OrderAPI) CreateOrder(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var payload ordersmapper.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	key := strings.TrimSpace(c.GetHeader(HeaderIdempotencyKey))
	input := ordersmapper.ToPlaceOrderInput(principal.UserID, key, payload)
	order, err := api.placeOrder(c.Request.Context(), input)
	if err != nil {
		api.errs.RespondError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Order created successfully", ordersmapper.FromDomainOrder(order))
}

func (api *OrderAPI) placeOrder(ctx context.Context, input ordersports.PlaceOrderInput) (*ordersdomain.Order, error) {
	if api.workflows != nil {
		return api.workflows.PlaceOrder(ctx, input)
	}
	return api.service.PlaceOrder(ctx, input)
}

// Get /orders/:id
func (api *OrderAPI) GetOrder(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	order, err := api.service.GetOrder(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		api.errs.RespondError(c, err)
		return
	}
	respondData(c, http.StatusOK, ordersmapper.FromDomainOrder(order))
}

// Put /orders/:id
// Updates fulfilment fields, admin or vendor only
func (api *OrderAPI) UpdateOrder(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var payload ordersmapper.UpdateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	order, err := api.service.UpdateOrder(c.Request.Context(), principal, c.Param("id"), ordersmapper.ToUpdateInput(payload))
	if err != nil {
		api.errs.RespondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Order updated successfully", ordersmapper.FromDomainOrder(order))
}

// Post /orders/:id/cancel
func (api *OrderAPI) CancelOrder(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var payload ordersmapper.CancelOrderRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			respondBindError(c, err)
			return
		}
	}
	order, err := api.service.CancelOrder(c.Request.Context(), principal, c.Param("id"), payload.Reason)
	if err != nil {
		api.errs.RespondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Order cancelled successfully", ordersmapper.FromDomainOrder(order))
}
