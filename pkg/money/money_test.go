package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var (
	threshold = decimal.NewFromInt(1000)
	fee       = decimal.NewFromInt(30)
)

func TestShipping(t *testing.T) {
	cases := []struct {
		name     string
		subtotal string
		want     string
	}{
		{"below threshold", "999.99", "30"},
		{"at threshold", "1000", "30"},
		{"above threshold", "1000.01", "0"},
		{"empty cart", "0", "30"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Shipping(decimal.RequireFromString(tc.subtotal), threshold, fee)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "got %s", got)
		})
	}
}

func TestTotals(t *testing.T) {
	sub, ship, total := Totals(decimal.RequireFromString("120.005"), threshold, fee)
	assert.Equal(t, "120.01", sub.StringFixed(2))
	assert.Equal(t, "30.00", ship.StringFixed(2))
	assert.Equal(t, "150.01", total.StringFixed(2))
}

func TestLineTotal(t *testing.T) {
	got := LineTotal(decimal.RequireFromString("19.99"), 3)
	assert.Equal(t, "59.97", got.StringFixed(2))
}

func TestTrend(t *testing.T) {
	assert.True(t, Trend(decimal.Zero, decimal.Zero).IsZero())
	assert.Equal(t, "100", Trend(decimal.NewFromInt(5), decimal.Zero).String())
	assert.Equal(t, "50", Trend(decimal.NewFromInt(150), decimal.NewFromInt(100)).String())
	assert.Equal(t, "-25", Trend(decimal.NewFromInt(75), decimal.NewFromInt(100)).String())
}
