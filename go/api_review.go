package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	reviewsmapper "github.com/Apurer/go-gin-storefront/internal/domains/reviews/adapters/http/mapper"
	reviewsports "github.com/Apurer/go-gin-storefront/internal/domains/reviews/ports"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

type ReviewAPI struct {
	service reviewsports.Service
	errs    *apierrors.ChainedResponder
}

func NewReviewAPI(service reviewsports.Service, errs *apierrors.ChainedResponder) ReviewAPI {
	return ReviewAPI{service: service, errs: errs}
}

// Get /reviews
// Lists a product's reviews, newest first
func (api *ReviewAPI) ListReviews(c *gin.Context) {
	q := newQueryParams(c)
	query := reviewsports.ListQuery{
		ProductID: q.String("productId"),
		Rating:    q.Int("rating"),
		Page:      q.Page(),
	}
	if !q.ok() {
		return
	}
	page, err := api.service.ListReviews(c.Request.Context(), query)
	if err != nil {
		api.errs.RespondError(c, err)
		return
	}
	respondPage(c, http.StatusOK, reviewsmapper.FromDomainReviews(page.Items), page.Meta)
}

// Post /reviews
func (api *ReviewAPI) CreateReview(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var payload reviewsmapper.CreateReviewRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	review, err := api.service.CreateReview(c.Request.Context(), reviewsmapper.ToCreateInput(principal.UserID, payload))
	if err != nil {
		api.errs.RespondError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Review created successfully", reviewsmapper.FromDomainReview(review))
}
