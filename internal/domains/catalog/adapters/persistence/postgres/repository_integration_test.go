//go:build integration

package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/persistence/postgres"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-storefront/internal/platform/postgres/postgrestest"
	"github.com/Apurer/go-gin-storefront/internal/shared/pagination"
)

func newProduct(name string, price string, stock int) *domain.Product {
	now := time.Now().UTC()
	return &domain.Product{
		ID:        uuid.NewString(),
		Name:      name,
		Price:     decimal.RequireFromString(price),
		Category:  "electronics",
		Brand:     "Acme",
		VendorID:  uuid.NewString(),
		Stock:     stock,
		Tags:      []string{"gadget"},
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestProductRepository_CreateAndGet(t *testing.T) {
	db := postgrestest.Start(t)
	repo := postgres.NewProductRepository(db)
	ctx := context.Background()

	product := newProduct("Headphones", "19.99", 5)
	product.SKU = "HP-1"
	_, err := repo.Create(ctx, product)
	require.NoError(t, err)

	fetched, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Headphones", fetched.Name)
	assert.True(t, decimal.RequireFromString("19.99").Equal(fetched.Price))
	assert.Equal(t, []string{"gadget"}, fetched.Tags)

	dup := newProduct("Other", "1", 1)
	dup.SKU = "HP-1"
	_, err = repo.Create(ctx, dup)
	assert.ErrorIs(t, err, ports.ErrDuplicateSKU)

	_, err = repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ports.ErrProductNotFound)
}

func TestProductRepository_UpdateLeavesStockAlone(t *testing.T) {
	db := postgrestest.Start(t)
	repo := postgres.NewProductRepository(db)
	ctx := context.Background()

	product := newProduct("Desk lamp", "10", 10)
	_, err := repo.Create(ctx, product)
	require.NoError(t, err)
	require.NoError(t, repo.ReserveStock(ctx, product.ID, 4))

	product.Price = decimal.RequireFromString("12.50")
	updated, err := repo.Update(ctx, product)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("12.50").Equal(updated.Price))
	assert.Equal(t, 6, updated.Stock)
	assert.Equal(t, "Acme", updated.Brand)

	require.NoError(t, repo.SetStock(ctx, product.ID, 25))
	fetched, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, fetched.Stock)

	assert.ErrorIs(t, repo.SetStock(ctx, uuid.NewString(), 1), ports.ErrProductNotFound)
}

func TestProductRepository_ReserveStockIsGuarded(t *testing.T) {
	db := postgrestest.Start(t)
	repo := postgres.NewProductRepository(db)
	ctx := context.Background()

	product := newProduct("Last unit", "10", 1)
	_, err := repo.Create(ctx, product)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = repo.ReserveStock(ctx, product.ID, 1)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ports.ErrInsufficientStock)
		}
	}
	assert.Equal(t, 1, succeeded)

	fetched, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, fetched.Stock)

	require.NoError(t, repo.RestockProduct(ctx, product.ID, 3))
	fetched, err = repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, fetched.Stock)

	assert.ErrorIs(t, repo.ReserveStock(ctx, uuid.NewString(), 1), ports.ErrProductNotFound)
}

func TestProductRepository_Search(t *testing.T) {
	db := postgrestest.Start(t)
	repo := postgres.NewProductRepository(db)
	ctx := context.Background()

	for _, p := range []*domain.Product{
		newProduct("Cheap cable", "5", 10),
		newProduct("Mid speaker", "40", 10),
		newProduct("Premium speaker", "120", 10),
	} {
		_, err := repo.Create(ctx, p)
		require.NoError(t, err)
	}
	hidden := newProduct("Hidden speaker", "60", 10)
	hidden.IsActive = false
	_, err := repo.Create(ctx, hidden)
	require.NoError(t, err)

	minPrice := decimal.NewFromInt(10)
	page, err := repo.Search(ctx, ports.ProductFilter{
		Search:     "speaker",
		MinPrice:   &minPrice,
		SortBy:     ports.SortByPrice,
		Descending: true,
		Page:       pagination.Params{Page: 1, Limit: 1},
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Premium speaker", page.Items[0].Name)
	assert.Equal(t, int64(2), page.Meta.Total)
	assert.Equal(t, 2, page.Meta.TotalPages)
	assert.True(t, page.Meta.HasNext)

	active, err := repo.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), active)
}

func TestCategoryRepository_CreateAndList(t *testing.T) {
	db := postgrestest.Start(t)
	repo := postgres.NewCategoryRepository(db)
	ctx := context.Background()

	root, err := domain.NewCategory(uuid.NewString(), "Electronics", "electronics")
	require.NoError(t, err)
	_, err = repo.Create(ctx, root)
	require.NoError(t, err)

	child, err := domain.NewCategory(uuid.NewString(), "Audio", "audio")
	require.NoError(t, err)
	child.AttachTo(root)
	_, err = repo.Create(ctx, child)
	require.NoError(t, err)

	dup, err := domain.NewCategory(uuid.NewString(), "Again", "electronics")
	require.NoError(t, err)
	_, err = repo.Create(ctx, dup)
	assert.ErrorIs(t, err, ports.ErrDuplicateSlug)

	level := 0
	roots, err := repo.List(ctx, ports.CategoryFilter{Level: &level})
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, "electronics", roots[0].Slug)

	children, err := repo.List(ctx, ports.CategoryFilter{ParentID: root.ID})
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, 1, children[0].Level)
}
