package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	identityports "github.com/Apurer/go-gin-storefront/internal/domains/identity/ports"
	"github.com/Apurer/go-gin-storefront/internal/platform/health"
	"github.com/Apurer/go-gin-storefront/internal/platform/httpmiddleware"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
	// Auth requires a bearer credential.
	Auth bool
	// Limited applies the per-client rate limiter.
	Limited bool
}

// ApiHandleFunctions bundles every API group served by the router.
type ApiHandleFunctions struct {
	AccountAPI  AccountAPI
	CatalogAPI  CatalogAPI
	CartAPI     CartAPI
	OrderAPI    OrderAPI
	ReviewAPI   ReviewAPI
	WishlistAPI WishlistAPI
	PaymentAPI  PaymentAPI
	AdminAPI    AdminAPI
}

// RouterOptions carries the cross-cutting collaborators of the router.
type RouterOptions struct {
	// Identity resolves bearer credentials on authenticated routes.
	Identity identityports.Service
	// RateLimiter guards routes marked Limited. Nil disables limiting.
	RateLimiter *httpmiddleware.RateLimiter
	// Metrics records request metrics and serves /metrics. Nil disables both.
	Metrics *httpmiddleware.Metrics
	// Health serves /healthz and /readyz. Nil disables both.
	Health *health.Health
	// Middleware runs before every route, after request ID and recovery.
	Middleware []gin.HandlerFunc
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions, opts RouterOptions) *gin.Engine {
	return NewRouterWithGinEngine(gin.New(), handleFunctions, opts)
}

// NewRouterWithGinEngine adds the routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions, opts RouterOptions) *gin.Engine {
	router.Use(httpmiddleware.RequestID(), gin.Recovery())
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}
	router.Use(opts.Middleware...)
	if opts.Health != nil {
		router.GET("/healthz", opts.Health.Live)
		router.GET("/readyz", opts.Health.Ready)
	}

	var auth gin.HandlerFunc
	if opts.Identity != nil {
		auth = RequireAuth(opts.Identity)
	}
	for _, route := range getRoutes(handleFunctions) {
		handlers := make([]gin.HandlerFunc, 0, 3)
		if route.Limited && opts.RateLimiter != nil {
			handlers = append(handlers, opts.RateLimiter.Middleware())
		}
		if route.Auth && auth != nil {
			handlers = append(handlers, auth)
		}
		handlers = append(handlers, route.HandlerFunc)
		router.Handle(route.Method, route.Pattern, handlers...)
	}
	return router
}

func getRoutes(h ApiHandleFunctions) []Route {
	return []Route{
		{Name: "Register", Method: http.MethodPost, Pattern: "/auth/register", HandlerFunc: h.AccountAPI.Register},
		{Name: "Login", Method: http.MethodPost, Pattern: "/auth/login", HandlerFunc: h.AccountAPI.Login},
		{Name: "Logout", Method: http.MethodPost, Pattern: "/auth/logout", HandlerFunc: h.AccountAPI.Logout, Auth: true},
		{Name: "Me", Method: http.MethodGet, Pattern: "/auth/me", HandlerFunc: h.AccountAPI.Me, Auth: true},
		{Name: "UpdateMe", Method: http.MethodPut, Pattern: "/auth/me", HandlerFunc: h.AccountAPI.UpdateMe, Auth: true},

		{Name: "ListProducts", Method: http.MethodGet, Pattern: "/products", HandlerFunc: h.CatalogAPI.ListProducts},
		{Name: "CreateProduct", Method: http.MethodPost, Pattern: "/products", HandlerFunc: h.CatalogAPI.CreateProduct, Auth: true},
		{Name: "GetProduct", Method: http.MethodGet, Pattern: "/products/:id", HandlerFunc: h.CatalogAPI.GetProduct},
		{Name: "UpdateProduct", Method: http.MethodPut, Pattern: "/products/:id", HandlerFunc: h.CatalogAPI.UpdateProduct, Auth: true},
		{Name: "DeleteProduct", Method: http.MethodDelete, Pattern: "/products/:id", HandlerFunc: h.CatalogAPI.DeleteProduct, Auth: true},
		{Name: "ListCategories", Method: http.MethodGet, Pattern: "/categories", HandlerFunc: h.CatalogAPI.ListCategories},
		{Name: "CreateCategory", Method: http.MethodPost, Pattern: "/categories", HandlerFunc: h.CatalogAPI.CreateCategory, Auth: true},

		{Name: "GetCart", Method: http.MethodGet, Pattern: "/cart", HandlerFunc: h.CartAPI.GetCart, Auth: true},
		{Name: "AddCartItem", Method: http.MethodPost, Pattern: "/cart", HandlerFunc: h.CartAPI.AddItem, Auth: true},
		{Name: "UpdateCartItem", Method: http.MethodPut, Pattern: "/cart", HandlerFunc: h.CartAPI.UpdateItem, Auth: true},
		{Name: "DeleteCartItems", Method: http.MethodDelete, Pattern: "/cart", HandlerFunc: h.CartAPI.DeleteItems, Auth: true},

		{Name: "ListOrders", Method: http.MethodGet, Pattern: "/orders", HandlerFunc: h.OrderAPI.ListOrders, Auth: true},
		{Name: "CreateOrder", Method: http.MethodPost, Pattern: "/orders", HandlerFunc: h.OrderAPI.CreateOrder, Auth: true},
		{Name: "GetOrder", Method: http.MethodGet, Pattern: "/orders/:id", HandlerFunc: h.OrderAPI.GetOrder, Auth: true},
		{Name: "UpdateOrder", Method: http.MethodPut, Pattern: "/orders/:id", HandlerFunc: h.OrderAPI.UpdateOrder, Auth: true},
		{Name: "CancelOrder", Method: http.MethodPost, Pattern: "/orders/:id/cancel", HandlerFunc: h.OrderAPI.CancelOrder, Auth: true},

		{Name: "ListReviews", Method: http.MethodGet, Pattern: "/reviews", HandlerFunc: h.ReviewAPI.ListReviews},
		{Name: "CreateReview", Method: http.MethodPost, Pattern: "/reviews", HandlerFunc: h.ReviewAPI.CreateReview, Auth: true},

		{Name: "GetWishlist", Method: http.MethodGet, Pattern: "/wishlist", HandlerFunc: h.WishlistAPI.GetWishlist, Auth: true},
		{Name: "AddToWishlist", Method: http.MethodPost, Pattern: "/wishlist", HandlerFunc: h.WishlistAPI.AddToWishlist, Auth: true},
		{Name: "RemoveFromWishlist", Method: http.MethodDelete, Pattern: "/wishlist", HandlerFunc: h.WishlistAPI.RemoveFromWishlist, Auth: true},

		{Name: "CreatePaymentIntent", Method: http.MethodPost, Pattern: "/create-payment-intent", HandlerFunc: h.PaymentAPI.CreatePaymentIntent, Limited: true},
		{Name: "PublishableKey", Method: http.MethodGet, Pattern: "/stripe-pk", HandlerFunc: h.PaymentAPI.PublishableKey},

		{Name: "AdminAnalytics", Method: http.MethodGet, Pattern: "/admin/analytics", HandlerFunc: h.AdminAPI.Analytics, Auth: true},
	}
}
