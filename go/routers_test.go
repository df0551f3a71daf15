package storefrontserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	analyticsapp "github.com/Apurer/go-gin-storefront/internal/domains/analytics/application"
	cartcatalog "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/catalog"
	cartmemory "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/memory"
	cartapp "github.com/Apurer/go-gin-storefront/internal/domains/cart/application"
	catalogmemory "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/Apurer/go-gin-storefront/internal/domains/catalog/application"
	catalogdomain "github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	identitymemory "github.com/Apurer/go-gin-storefront/internal/domains/identity/adapters/memory"
	"github.com/Apurer/go-gin-storefront/internal/domains/identity/adapters/token"
	identityapp "github.com/Apurer/go-gin-storefront/internal/domains/identity/application"
	identitydomain "github.com/Apurer/go-gin-storefront/internal/domains/identity/domain"
	identityports "github.com/Apurer/go-gin-storefront/internal/domains/identity/ports"
	ordercart "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/cart"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/inventory"
	ordersmemory "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/memory"
	ordersworkflows "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/go-gin-storefront/internal/domains/orders/application"
	paymentsapp "github.com/Apurer/go-gin-storefront/internal/domains/payments/application"
	reviewscatalog "github.com/Apurer/go-gin-storefront/internal/domains/reviews/adapters/catalog"
	reviewsmemory "github.com/Apurer/go-gin-storefront/internal/domains/reviews/adapters/memory"
	reviewsorders "github.com/Apurer/go-gin-storefront/internal/domains/reviews/adapters/orders"
	reviewsapp "github.com/Apurer/go-gin-storefront/internal/domains/reviews/application"
	wishlistcatalog "github.com/Apurer/go-gin-storefront/internal/domains/wishlist/adapters/catalog"
	wishlistmemory "github.com/Apurer/go-gin-storefront/internal/domains/wishlist/adapters/memory"
	wishlistapp "github.com/Apurer/go-gin-storefront/internal/domains/wishlist/application"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
	"github.com/Apurer/go-gin-storefront/internal/shared/pagination"
)

var testAddress = map[string]string{
	"name": "Ada Buyer", "address": "1 Loop Rd", "city": "Springfield", "state": "IL",
	"country": "US", "zipCode": "62701", "phone": "555-0100",
}

type fixture struct {
	router   *gin.Engine
	identity identityports.Service
	products *catalogmemory.ProductRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	codec, err := token.NewJWT("test-secret")
	require.NoError(t, err)
	users := identitymemory.NewRepository()
	identity := identityapp.NewService(users, identitymemory.NewSessionStore(), codec, identityapp.WithBcryptCost(bcrypt.MinCost))

	products := catalogmemory.NewProductRepository()
	catalog := catalogapp.NewService(products, catalogmemory.NewCategoryRepository())
	carts := cartmemory.NewRepository()
	cart := cartapp.NewService(carts, cartcatalog.NewLookup(products))
	orderRepo := ordersmemory.NewRepository()
	orders := ordersapp.NewService(orderRepo, inventory.NewCatalog(products), ordersapp.WithCartClearer(ordercart.NewClearer(carts)))
	reviews := reviewsapp.NewService(reviewsmemory.NewRepository(), reviewsorders.NewVerifier(orderRepo), reviewscatalog.NewRatingUpdater(products))
	wishlist := wishlistapp.NewService(wishlistmemory.NewRepository(), wishlistcatalog.NewProducts(products))
	payments := paymentsapp.NewService(nil)
	analytics := analyticsapp.NewService(identity, products, orderRepo)

	errs := NewErrorResponder(nil)
	handlers := ApiHandleFunctions{
		AccountAPI:  NewAccountAPI(identity, errs),
		CatalogAPI:  NewCatalogAPI(catalog, errs),
		CartAPI:     NewCartAPI(cart, errs),
		OrderAPI:    NewOrderAPI(orders, ordersworkflows.NewInlineOrderWorkflows(orders), errs),
		ReviewAPI:   NewReviewAPI(reviews, errs),
		WishlistAPI: NewWishlistAPI(wishlist, errs),
		PaymentAPI:  NewPaymentAPI(payments, errs),
		AdminAPI:    NewAdminAPI(analytics, errs),
	}
	return &fixture{
		router:   NewRouter(handlers, RouterOptions{Identity: identity}),
		identity: identity,
		products: products,
	}
}

func (f *fixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) register(t *testing.T, email string) string {
	t.Helper()
	w := f.do(t, http.MethodPost, "/auth/register", "", map[string]string{"name": "Ada", "email": email, "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var out struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.NotEmpty(t, out.Data.Token)
	return out.Data.Token
}

func (f *fixture) seedProduct(t *testing.T, id string, price string, stock int) {
	t.Helper()
	_, err := f.products.Create(context.Background(), &catalogdomain.Product{
		ID: id, Name: "Product " + id, Category: "gadgets", Price: decimal.RequireFromString(price), Stock: stock, IsActive: true,
	})
	require.NoError(t, err)
}

func decodeProblem(t *testing.T, w *httptest.ResponseRecorder) apierrors.ProblemDetail {
	t.Helper()
	assert.Equal(t, apierrors.ContentTypeProblemJSON, w.Header().Get("Content-Type"))
	var problem apierrors.ProblemDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	return problem
}

type orderBody struct {
	ID          string          `json:"id"`
	OrderNumber string          `json:"orderNumber"`
	Status      string          `json:"status"`
	Total       decimal.Decimal `json:"total"`
}

func decodeOrder(t *testing.T, w *httptest.ResponseRecorder) orderBody {
	t.Helper()
	var out struct {
		Data orderBody `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out.Data
}

func TestNewRouter_RegistersEveryRoute(t *testing.T) {
	f := newFixture(t)

	registered := map[string]bool{}
	for _, info := range f.router.Routes() {
		registered[info.Method+" "+info.Path] = true
	}
	routes := getRoutes(ApiHandleFunctions{})
	require.NotEmpty(t, routes)
	for _, route := range routes {
		assert.NotNil(t, route.HandlerFunc, route.Name)
		assert.True(t, registered[route.Method+" "+route.Pattern], route.Name)
	}
}

func TestAuthRequired(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, detailAuthRequired, decodeProblem(t, w).Detail)

	w = f.do(t, http.MethodGet, "/orders", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, detailInvalidToken, decodeProblem(t, w).Detail)
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newFixture(t)
	token := f.register(t, "ada@example.com")

	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/auth/me", token, nil).Code)
	require.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/auth/logout", token, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, "/auth/me", token, nil).Code)
}

func TestCheckoutFlow(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "p1", "20", 5)
	token := f.register(t, "buyer@example.com")

	w := f.do(t, http.MethodPost, "/cart", token, map[string]any{"productId": "p1", "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = f.do(t, http.MethodPost, "/orders", token, map[string]any{
		"items":           []map[string]any{{"productId": "p1", "quantity": 2}},
		"shippingAddress": testAddress,
		"billingAddress":  testAddress,
		"paymentMethod":   "cod",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	order := decodeOrder(t, w)
	assert.Equal(t, "49.19", order.Total.String())
	assert.Equal(t, "pending", order.Status)
	assert.Regexp(t, `^ORD\d{6}0001$`, order.OrderNumber)

	product, err := f.products.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 3, product.Stock)

	var cart struct {
		Data struct {
			ItemCount int `json:"itemCount"`
		} `json:"data"`
	}
	w = f.do(t, http.MethodGet, "/cart", token, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Zero(t, cart.Data.ItemCount)

	var list struct {
		Data       []orderBody     `json:"data"`
		Pagination pagination.Meta `json:"pagination"`
	}
	w = f.do(t, http.MethodGet, "/orders?page=1&limit=5", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, int64(1), list.Pagination.Total)
	assert.Equal(t, 5, list.Pagination.Limit)

	other := f.register(t, "other@example.com")
	w = f.do(t, http.MethodGet, "/orders/"+order.ID, other, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Access denied", decodeProblem(t, w).Detail)

	w = f.do(t, http.MethodPost, "/orders/"+order.ID+"/cancel", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "cancelled", decodeOrder(t, w).Status)

	w = f.do(t, http.MethodPost, "/orders/"+order.ID+"/cancel", token, map[string]string{"reason": "again"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Order cannot be cancelled in status: cancelled", decodeProblem(t, w).Detail)

	product, err = f.products.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, product.Stock)
}

func TestCreateOrder_Validation(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "p1", "10", 1)
	token := f.register(t, "buyer@example.com")

	cases := []struct {
		name   string
		body   map[string]any
		detail string
	}{
		{"no items", map[string]any{"items": []any{}}, "Order must contain at least one item"},
		{"no addresses", map[string]any{
			"items": []map[string]any{{"productId": "p1", "quantity": 1}},
		}, "Shipping and billing addresses are required"},
		{"no payment method", map[string]any{
			"items":           []map[string]any{{"productId": "p1", "quantity": 1}},
			"shippingAddress": testAddress, "billingAddress": testAddress,
		}, "Payment method is required"},
		{"unknown product", map[string]any{
			"items":           []map[string]any{{"productId": "ghost", "quantity": 1}},
			"shippingAddress": testAddress, "billingAddress": testAddress, "paymentMethod": "stripe",
		}, "Product ghost is not available"},
		{"insufficient stock", map[string]any{
			"items":           []map[string]any{{"productId": "p1", "quantity": 2}},
			"shippingAddress": testAddress, "billingAddress": testAddress, "paymentMethod": "stripe",
		}, "Insufficient stock for Product p1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := f.do(t, http.MethodPost, "/orders", token, tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.detail, decodeProblem(t, w).Detail)
		})
	}
}

func TestPublicEndpoints(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "p1", "10", 1)

	w := f.do(t, http.MethodGet, "/products?limit=1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalPages":1`)

	w = f.do(t, http.MethodGet, "/products/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodGet, "/products?minPrice=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodGet, "/reviews", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Product ID is required", decodeProblem(t, w).Detail)
}

func TestPaymentEndpoints(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/create-payment-intent", "", map[string]any{"amount": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Amount is required", decodeProblem(t, w).Detail)

	for _, body := range []any{
		map[string]any{"amount": "10"},
		map[string]any{"amount": nil},
		map[string]any{"amount": true},
		map[string]any{},
	} {
		w = f.do(t, http.MethodPost, "/create-payment-intent", "", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "%v", body)
		assert.Equal(t, "Amount is required", decodeProblem(t, w).Detail)
	}

	w = f.do(t, http.MethodPost, "/create-payment-intent", "", map[string]any{"amount": 12.5})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to create payment intent", decodeProblem(t, w).Detail)

	w = f.do(t, http.MethodGet, "/stripe-pk", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Publishable key not set", decodeProblem(t, w).Detail)
}

func TestUpdateProduct_PartialBodyKeepsOtherFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.products.Create(ctx, &catalogdomain.Product{
		ID: "p1", Name: "Lamp", Category: "lighting", Brand: "Acme", Images: []string{"a.png"},
		Price: decimal.RequireFromString("10"), Stock: 10, IsActive: true,
	})
	require.NoError(t, err)
	_, err = f.identity.EnsureUser(ctx, identityports.RegisterInput{Name: "Root", Email: "root@example.com", Password: "secret1"}, identitydomain.RoleAdmin)
	require.NoError(t, err)
	session, err := f.identity.Login(ctx, "root@example.com", "secret1")
	require.NoError(t, err)

	w := f.do(t, http.MethodPut, "/products/p1", session.Token, map[string]any{"price": 12.5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	stored, err := f.products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "12.5", stored.Price.String())
	assert.Equal(t, 10, stored.Stock)
	assert.Equal(t, "Acme", stored.Brand)
	assert.Equal(t, []string{"a.png"}, stored.Images)
	assert.Equal(t, "Lamp", stored.Name)
}

func TestWishlistAndAdmin(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "p1", "10", 1)
	token := f.register(t, "buyer@example.com")

	w := f.do(t, http.MethodPost, "/wishlist", token, map[string]string{"productId": "p1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = f.do(t, http.MethodPost, "/wishlist", token, map[string]string{"productId": "p1"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Product is already in wishlist", decodeProblem(t, w).Detail)

	w = f.do(t, http.MethodGet, "/admin/analytics", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	_, err := f.identity.EnsureUser(context.Background(), identityports.RegisterInput{Name: "Root", Email: "root@example.com", Password: "secret1"}, identitydomain.RoleAdmin)
	require.NoError(t, err)
	session, err := f.identity.Login(context.Background(), "root@example.com", "secret1")
	require.NoError(t, err)

	w = f.do(t, http.MethodGet, "/admin/analytics?period=7", session.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"periodDays":7`)
	assert.Contains(t, w.Body.String(), `"users":2`)
}
