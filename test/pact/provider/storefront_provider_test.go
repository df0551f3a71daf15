//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	pacttest "github.com/Apurer/go-gin-storefront/test/pact"

	storefrontserver "github.com/Apurer/go-gin-storefront/go"
	catalogmemory "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/observability"
	catalogapp "github.com/Apurer/go-gin-storefront/internal/domains/catalog/application"
	catalogdomain "github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	paymentsapp "github.com/Apurer/go-gin-storefront/internal/domains/payments/application"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestStorefrontProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	decimal.MarshalJSONWithoutQuotes = true
	t.Cleanup(func() { decimal.MarshalJSONWithoutQuotes = false })

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateCatalogBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetCatalog()
			return nil, nil
		},
		pacttest.StateProductExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetCatalog()
			if setup {
				app.seedProduct(t)
			}
			return nil, nil
		},
		pacttest.StateProductMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetCatalog()
			return nil, nil
		},
		pacttest.StatePaymentsEnabled: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.resetCatalog()
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	products *catalogmemory.ProductRepository
	server   *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	products := catalogmemory.NewProductRepository()
	catalog := catalogobs.New(catalogapp.NewService(products, catalogmemory.NewCategoryRepository()))
	payments := paymentsapp.NewService(nil, paymentsapp.WithPublishableKey(pacttest.ExamplePublishableKey))

	errs := storefrontserver.NewErrorResponder(nil)
	handlers := storefrontserver.ApiHandleFunctions{
		CatalogAPI: storefrontserver.NewCatalogAPI(catalog, errs),
		PaymentAPI: storefrontserver.NewPaymentAPI(payments, errs),
	}

	router := storefrontserver.NewRouter(handlers, storefrontserver.RouterOptions{})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{
		products: products,
		server:   server,
	}
}

func (a *contractProviderApp) resetCatalog() {
	_ = a.products.Delete(context.Background(), pacttest.ExistingProductID)
}

func (a *contractProviderApp) seedProduct(t testing.TB) {
	t.Helper()
	example := pacttest.ExampleProductPayload()
	_, err := a.products.Create(context.Background(), &catalogdomain.Product{
		ID:       pacttest.ExistingProductID,
		Name:     example["name"].(string),
		Price:    decimal.NewFromFloat(example["price"].(float64)),
		Images:   example["images"].([]string),
		Category: example["category"].(string),
		Stock:    example["stock"].(int),
		IsActive: true,
	})
	require.NoError(t, err)
}
