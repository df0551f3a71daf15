package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	analyticsmapper "github.com/Apurer/go-gin-storefront/internal/domains/analytics/adapters/http/mapper"
	analyticsports "github.com/Apurer/go-gin-storefront/internal/domains/analytics/ports"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

type AdminAPI struct {
	analytics analyticsports.Service
	errs      *apierrors.ChainedResponder
}

func NewAdminAPI(analytics analyticsports.Service, errs *apierrors.ChainedResponder) AdminAPI {
	return AdminAPI{analytics: analytics, errs: errs}
}

// Get /admin/analytics?period=
func (api *AdminAPI) Analytics(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	q := newQueryParams(c)
	period := q.Int("period")
	if !q.ok() {
		return
	}
	overview, err := api.analytics.Overview(c.Request.Context(), principal, period)
	if err != nil {
		api.errs.RespondError(c, err)
		return
	}
	respondData(c, http.StatusOK, analyticsmapper.FromDomainOverview(overview))
}
