package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	identitymapper "github.com/Apurer/go-gin-storefront/internal/domains/identity/adapters/http/mapper"
	identityports "github.com/Apurer/go-gin-storefront/internal/domains/identity/ports"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

// AccountAPI serves registration, login and the caller's profile.
type AccountAPI struct {
	service identityports.Service
	errs    *apierrors.ChainedResponder
}

func NewAccountAPI(service identityports.Service, errs *apierrors.ChainedResponder) AccountAPI {
	return AccountAPI{service: service, errs: errs}
}

// Post /auth/register
func (api *AccountAPI) Register(c *gin.Context) {
	var payload identitymapper.RegisterRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	result, err := api.service.Register(c.Request.Context(), identitymapper.ToRegisterInput(payload))
	if err != nil {
		api.errs.RespondError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "User registered successfully", identitymapper.FromAuthResult(result))
}

// Post /auth/login
func (api *AccountAPI) Login(c *gin.Context) {
	var payload identitymapper.LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	result, err := api.service.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		api.errs.RespondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Login successful", identitymapper.FromAuthResult(result))
}

// Post /auth/logout
func (api *AccountAPI) Logout(c *gin.Context) {
	if _, ok := requirePrincipal(c); !ok {
		return
	}
	if err := api.service.Logout(c.Request.Context(), c.GetString(tokenKey)); err != nil {
		api.errs.RespondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Logged out successfully", nil)
}

// Get /auth/me
func (api *AccountAPI) Me(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	user, err := api.service.Profile(c.Request.Context(), principal.UserID)
	if err != nil {
		api.errs.RespondError(c, err)
		return
	}
	respondData(c, http.StatusOK, identitymapper.FromDomainUser(user))
}

// Put /auth/me
func (api *AccountAPI) UpdateMe(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var payload identitymapper.ProfileRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	user, err := api.service.UpdateProfile(c.Request.Context(), principal.UserID, identitymapper.ToProfileUpdate(payload))
	if err != nil {
		api.errs.RespondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Profile updated successfully", identitymapper.FromDomainUser(user))
}
