package storefrontserver

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	paymentsapp "github.com/Apurer/go-gin-storefront/internal/domains/payments/application"
	paymentsports "github.com/Apurer/go-gin-storefront/internal/domains/payments/ports"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

// PaymentIntentRequest keeps amount raw so a quoted number can be told apart
// from a JSON number.
type PaymentIntentRequest struct {
	Amount json.RawMessage `json:"amount"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type PublishableKeyResponse struct {
	PublishableKey string `json:"publishableKey"`
}

// PaymentAPI fronts the payment gateway. It needs no authentication.
type PaymentAPI struct {
	service paymentsports.Service
	errs    *apierrors.ChainedResponder
}

func NewPaymentAPI(service paymentsports.Service, errs *apierrors.ChainedResponder) PaymentAPI {
	return PaymentAPI{service: service, errs: errs}
}

// Post /create-payment-intent
func (api *PaymentAPI) CreatePaymentIntent(c *gin.Context) {
	var payload PaymentIntentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.errs.RespondError(c, paymentsapp.ErrInvalidInput)
		return
	}
	amount, ok := numericAmount(payload.Amount)
	if !ok {
		api.errs.RespondError(c, paymentsapp.ErrInvalidInput)
		return
	}
	intent, err := api.service.CreatePaymentIntent(c.Request.Context(), amount)
	if err != nil {
		api.errs.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, PaymentIntentResponse{ClientSecret: intent.ClientSecret})
}

// Get /stripe-pk
func (api *PaymentAPI) PublishableKey(c *gin.Context) {
	key, err := api.service.PublishableKey(c.Request.Context())
	if err != nil {
		api.errs.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, PublishableKeyResponse{PublishableKey: key})
}

// numericAmount accepts only a bare JSON number.
func numericAmount(raw json.RawMessage) (decimal.Decimal, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return decimal.Decimal{}, false
	}
	number, ok := value.(json.Number)
	if !ok {
		return decimal.Decimal{}, false
	}
	amount, err := decimal.NewFromString(number.String())
	if err != nil {
		return decimal.Decimal{}, false
	}
	return amount, true
}
