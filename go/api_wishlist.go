package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	wishlistmapper "github.com/Apurer/go-gin-storefront/internal/domains/wishlist/adapters/http/mapper"
	wishlistports "github.com/Apurer/go-gin-storefront/internal/domains/wishlist/ports"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

type WishlistAPI struct {
	service wishlistports.Service
	errs    *apierrors.ChainedResponder
}

func NewWishlistAPI(service wishlistports.Service, errs *apierrors.ChainedResponder) WishlistAPI {
	return WishlistAPI{service: service, errs: errs}
}

// Get /wishlist
func (api *WishlistAPI) GetWishlist(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	items, err := api.service.List(c.Request.Context(), principal.UserID)
	if err != nil {
		api.errs.RespondError(c, err)
		return
	}
	respondData(c, http.StatusOK, wishlistmapper.FromDomainItems(items))
}

// Post /wishlist
func (api *WishlistAPI) AddToWishlist(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var payload wishlistmapper.AddRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	items, err := api.service.Add(c.Request.Context(), principal.UserID, payload.ProductID)
	if err != nil {
		api.errs.RespondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Product added to wishlist", wishlistmapper.FromDomainItems(items))
}

// Delete /wishlist?productId=
func (api *WishlistAPI) RemoveFromWishlist(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	q := newQueryParams(c)
	productID := q.String("productId")
	if !q.ok() {
		return
	}
	items, err := api.service.Remove(c.Request.Context(), principal.UserID, productID)
	if err != nil {
		api.errs.RespondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Product removed from wishlist", wishlistmapper.FromDomainItems(items))
}
