package domain

import (
	"math/rand"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAddress() Address {
	return Address{Name: "Ada", Address: "1 Loop Rd", City: "Springfield", State: "IL", Country: "US", ZipCode: "62701", Phone: "555-0100"}
}

func mustItem(t *testing.T, id, price string, qty int) Item {
	t.Helper()
	item, err := NewItem(id, id, "", decimal.RequireFromString(price), qty)
	require.NoError(t, err)
	return item
}

func TestPrice_WorkedExample(t *testing.T) {
	pricing := Price([]Item{mustItem(t, "A", "10", 2), mustItem(t, "B", "25", 1)})

	assert.Equal(t, "45", pricing.Subtotal.String())
	assert.Equal(t, "5.99", pricing.ShippingCost.String())
	assert.Equal(t, "3.6", pricing.Tax.String())
	assert.Equal(t, "54.59", pricing.Total.String())
}

func TestPrice_ShippingThreshold(t *testing.T) {
	cases := []struct {
		subtotal string
		shipping string
	}{
		{"50", "5.99"},
		{"50.01", "0"},
		{"0.5", "5.99"},
		{"120", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.subtotal, func(t *testing.T) {
			p := Price([]Item{mustItem(t, "x", tc.subtotal, 1)})
			assert.Equal(t, tc.shipping, p.ShippingCost.String())
			assert.True(t, p.Tax.Equal(p.Subtotal.Mul(TaxRate)))
			assert.True(t, p.Total.Equal(p.Subtotal.Add(p.ShippingCost).Add(p.Tax)))
		})
	}
}

func TestNewOrder_Preconditions(t *testing.T) {
	now := time.Now()
	items := []Item{mustItem(t, "A", "10", 1)}

	_, err := NewOrder("o1", "u1", nil, validAddress(), validAddress(), PaymentMethodCOD, "", now)
	assert.ErrorIs(t, err, ErrEmptyOrder)

	partial := validAddress()
	partial.Phone = " "
	_, err = NewOrder("o1", "u1", items, validAddress(), partial, PaymentMethodCOD, "", now)
	assert.ErrorIs(t, err, ErrMissingAddress)

	_, err = NewOrder("o1", "u1", items, validAddress(), validAddress(), "paypal", "", now)
	assert.ErrorIs(t, err, ErrMissingPaymentMethod)

	order, err := NewOrder("o1", "u1", items, validAddress(), validAddress(), PaymentMethodStripe, " leave at door ", now)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, order.Status)
	assert.Equal(t, PaymentPending, order.PaymentStatus)
	assert.Equal(t, "leave at door", order.Notes)
}

func TestCancel_StatusGuard(t *testing.T) {
	now := time.Now()
	for _, status := range []Status{StatusShipped, StatusDelivered, StatusCancelled, StatusRefunded} {
		order := &Order{Status: status}
		err := order.Cancel("u1", "x", now)
		require.ErrorIs(t, err, ErrNotCancellable)
		var nc *NotCancellableError
		require.ErrorAs(t, err, &nc)
		assert.Equal(t, status, nc.Status)
	}

	order := &Order{Status: StatusProcessing}
	require.NoError(t, order.Cancel("u1", "changed my mind", now))
	assert.Equal(t, StatusCancelled, order.Status)
	assert.Equal(t, "u1", order.CancelledBy)
	require.NotNil(t, order.CancelledAt)
	assert.ErrorIs(t, order.Cancel("u1", "again", now), ErrNotCancellable)
}

func TestOrderNumber(t *testing.T) {
	day := time.Date(2026, 3, 7, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "ORD2603070001", OrderNumber(day, 1))
	assert.Equal(t, "ORD2603070042", OrderNumber(day, 42))

	pattern := regexp.MustCompile(`^ORD260307[1-9]\d{3}$`)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		assert.Regexp(t, pattern, RandomOrderNumber(day, rng))
	}
}

func TestDayBounds(t *testing.T) {
	start, end := DayBounds(time.Date(2026, 3, 7, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus(" Shipped ")
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, s)
	_, err = ParseStatus("lost")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	_, err = ParsePaymentStatus("maybe")
	assert.ErrorIs(t, err, ErrInvalidPaymentStatus)
}
