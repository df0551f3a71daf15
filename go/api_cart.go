package storefrontserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	cartmapper "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/http/mapper"
	cartports "github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

// CartAPI serves the caller's shopping cart.
type CartAPI struct {
	service cartports.Service
	errs    *apierrors.ChainedResponder
}

func NewCartAPI(service cartports.Service, errs *apierrors.ChainedResponder) CartAPI {
	return CartAPI{service: service, errs: errs}
}

// Get /cart
func (api *CartAPI) GetCart(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	cart, err := api.service.GetCart(c.Request.Context(), principal.UserID)
	if err != nil {
		api.errs.RespondError(c, err)
		return
	}
	respondData(c, http.StatusOK, cartmapper.FromDomainCart(cart))
}

// Post /cart
// Adds quantity of a product, merging with an existing line
func (api *CartAPI) AddItem(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var payload cartmapper.ItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	cart, err := api.service.AddItem(c.Request.Context(), principal.UserID, payload.ProductID, payload.Quantity)
	if err != nil {
		api.errs.RespondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Item added to cart successfully", cartmapper.FromDomainCart(cart))
}

// Put /cart
// Sets the quantity of an existing line
func (api *CartAPI) UpdateItem(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var payload cartmapper.ItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	cart, err := api.service.UpdateItem(c.Request.Context(), principal.UserID, payload.ProductID, payload.Quantity)
	if err != nil {
		api.errs.RespondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Cart updated successfully", cartmapper.FromDomainCart(cart))
}

// Delete /cart
// Removes one line when productId is given, otherwise empties the cart
func (api *CartAPI) DeleteItems(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	q := newQueryParams(c)
	productID := strings.TrimSpace(q.String("productId"))
	if !q.ok() {
		return
	}
	if productID == "" {
		cart, err := api.service.Clear(c.Request.Context(), principal.UserID)
		if err != nil {
			api.errs.RespondError(c, err)
			return
		}
		respondMessage(c, http.StatusOK, "Cart cleared successfully", cartmapper.FromDomainCart(cart))
		return
	}
	cart, err := api.service.RemoveItem(c.Request.Context(), principal.UserID, productID)
	if err != nil {
		api.errs.RespondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Item removed from cart successfully", cartmapper.FromDomainCart(cart))
}
