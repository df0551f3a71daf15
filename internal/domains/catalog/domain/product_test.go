package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestProduct_Validate(t *testing.T) {
	p := &Product{Name: " Lamp ", Category: "home", Price: decimal.RequireFromString("19.99"), Stock: 3}
	require.NoError(t, p.Validate())
	require.Equal(t, "Lamp", p.Name)

	p.Stock = -1
	require.ErrorIs(t, p.Validate(), ErrNegativeStock)

	p.Stock = 0
	p.Price = decimal.RequireFromString("-1")
	require.ErrorIs(t, p.Validate(), ErrNegativePrice)

	p.Price = decimal.Zero
	p.Name = ""
	require.ErrorIs(t, p.Validate(), ErrEmptyName)
}

func TestProduct_ReserveAndRestock(t *testing.T) {
	p := &Product{Stock: 5}
	require.True(t, p.Reserve(2))
	require.Equal(t, 3, p.Stock)
	require.False(t, p.Reserve(4))
	require.Equal(t, 3, p.Stock)
	require.False(t, p.Reserve(0))
	p.Restock(2)
	require.Equal(t, 5, p.Stock)
}

func TestProduct_FlashSaleActive(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	require.True(t, (&Product{IsFlashSale: true, FlashSaleEndsAt: &future}).FlashSaleActive(now))
	require.False(t, (&Product{IsFlashSale: true, FlashSaleEndsAt: &past}).FlashSaleActive(now))
	require.False(t, (&Product{IsFlashSale: false, FlashSaleEndsAt: &future}).FlashSaleActive(now))
	require.False(t, (&Product{IsFlashSale: true}).FlashSaleActive(now))
}

func TestRoundRating(t *testing.T) {
	require.Equal(t, 4.3, RoundRating(13.0/3.0))
	require.Equal(t, 4.5, RoundRating(4.45))
	require.Equal(t, 5.0, RoundRating(5))
}

func TestCategory_AttachTo(t *testing.T) {
	root, err := NewCategory("c1", "Electronics", " ELECTRONICS ")
	require.NoError(t, err)
	require.Equal(t, "electronics", root.Slug)
	require.Equal(t, 0, root.Level)

	child, err := NewCategory("c2", "Phones", "phones")
	require.NoError(t, err)
	child.AttachTo(root)
	require.Equal(t, "c1", child.ParentID)
	require.Equal(t, 1, child.Level)

	_, err = NewCategory("c3", "Empty", " ")
	require.ErrorIs(t, err, ErrEmptySlug)
}
