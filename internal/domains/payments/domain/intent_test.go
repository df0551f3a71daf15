package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCents(t *testing.T) {
	cases := map[string]int64{
		"54.59":  5459,
		"10":     1000,
		"19.999": 2000,
		"0.005":  1,
		"3.6":    360,
	}
	for raw, want := range cases {
		got, err := ToCents(decimal.RequireFromString(raw))
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	for _, raw := range []string{"0", "-5", "0.001"} {
		_, err := ToCents(decimal.RequireFromString(raw))
		assert.ErrorIs(t, err, ErrInvalidAmount, raw)
	}
}
