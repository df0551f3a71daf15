package storefrontserver

import (
	"strings"

	"github.com/gin-gonic/gin"

	identitydomain "github.com/Apurer/go-gin-storefront/internal/domains/identity/domain"
	identityports "github.com/Apurer/go-gin-storefront/internal/domains/identity/ports"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

const (
	principalKey = "storefront.principal"
	tokenKey     = "storefront.token"
)

// RequireAuth resolves the bearer credential into a principal or answers 401.
func RequireAuth(identity identityports.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail(detailAuthRequired))
			c.Abort()
			return
		}
		principal, err := identity.Authenticate(c.Request.Context(), token)
		if err != nil {
			apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail(detailInvalidToken))
			c.Abort()
			return
		}
		c.Set(principalKey, principal)
		c.Set(tokenKey, token)
		c.Next()
	}
}

// requirePrincipal returns the authenticated actor, answering 401 when the
// route was mounted without RequireAuth.
func requirePrincipal(c *gin.Context) (identitydomain.Principal, bool) {
	if value, ok := c.Get(principalKey); ok {
		if principal, ok := value.(identitydomain.Principal); ok && principal.UserID != "" {
			return principal, true
		}
	}
	apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail(detailAuthRequired))
	return identitydomain.Principal{}, false
}

func bearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
