package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	catalogmapper "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

// CatalogAPI serves products and categories.
type CatalogAPI struct {
	service catalogports.Service
	errs    *apierrors.ChainedResponder
}

func NewCatalogAPI(service catalogports.Service, errs *apierrors.ChainedResponder) CatalogAPI {
	return CatalogAPI{service: service, errs: errs}
}

// Get /products
// Lists active products with filters, sorting and pagination
func (api *CatalogAPI) ListProducts(c *gin.Context) {
	q := newQueryParams(c)
	filter := catalogports.ProductFilter{
		Category:  q.String("category"),
		Brand:     q.String("brand"),
		Search:    q.String("search"),
		MinPrice:  q.OptionalDecimal("minPrice"),
		MaxPrice:  q.OptionalDecimal("maxPrice"),
		MinRating: q.OptionalFloat("minRating"),
		FlashSale: q.Bool("flashSale"),
		SortBy:    catalogports.SortField(q.String("sortBy")),
		Page:      q.Page(),
	}
	sortOrder := q.String("sortOrder")
	if !q.ok() {
		return
	}
	filter.Descending = sortOrder != "asc"
	page, err := api.service.ListProducts(c.Request.Context(), filter)
	if err != nil {
		api.errs.RespondError(c, err)
		return
	}
	respondPage(c, http.StatusOK, catalogmapper.FromDomainProducts(page.Items), page.Meta)
}

// Get /products/:id
func (api *CatalogAPI) GetProduct(c *gin.Context) {
	product, err := api.service.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		api.errs.RespondError(c, err)
		return
	}
	respondData(c, http.StatusOK, catalogmapper.FromDomainProduct(product))
}

// Post /products
func (api *CatalogAPI) CreateProduct(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var payload catalogmapper.ProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	product, err := api.service.CreateProduct(c.Request.Context(), principal, catalogmapper.ToProductInput(payload))
	if err != nil {
		api.errs.RespondError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Product created successfully", catalogmapper.FromDomainProduct(product))
}

// Put /products/:id
func (api *CatalogAPI) UpdateProduct(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var payload catalogmapper.ProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	product, err := api.service.UpdateProduct(c.Request.Context(), principal, c.Param("id"), catalogmapper.ToProductInput(payload))
	if err != nil {
		api.errs.RespondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Product updated successfully", catalogmapper.FromDomainProduct(product))
}

// Delete /products/:id
func (api *CatalogAPI) DeleteProduct(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	if err := api.service.DeleteProduct(c.Request.Context(), principal, c.Param("id")); err != nil {
		api.errs.RespondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Product deleted successfully", nil)
}

// Get /categories
// Lists active categories, top level unless parent or level is given
func (api *CatalogAPI) ListCategories(c *gin.Context) {
	q := newQueryParams(c)
	filter := catalogports.CategoryFilter{ParentID: q.String("parent")}
	var level *int
	q.bind("level", &level)
	if !q.ok() {
		return
	}
	filter.Level = level
	categories, err := api.service.ListCategories(c.Request.Context(), filter)
	if err != nil {
		api.errs.RespondError(c, err)
		return
	}
	respondData(c, http.StatusOK, catalogmapper.FromDomainCategories(categories))
}

// Post /categories
func (api *CatalogAPI) CreateCategory(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var payload catalogmapper.CategoryRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	category, err := api.service.CreateCategory(c.Request.Context(), principal, catalogmapper.ToCategoryInput(payload))
	if err != nil {
		api.errs.RespondError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Category created successfully", catalogmapper.FromDomainCategory(category))
}
