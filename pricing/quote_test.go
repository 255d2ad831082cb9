package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRentalQuote(t *testing.T) {
	rate := decimal.RequireFromString("45.50")
	cdw := decimal.RequireFromString("12.25")

	assert.Equal(t, "136.5", RentalQuote(rate, cdw, 3, false).String())
	assert.Equal(t, "173.25", RentalQuote(rate, cdw, 3, true).String())
}

func TestMinimumAcceptableAmount(t *testing.T) {
	quote := decimal.RequireFromString("200.00")

	assert.True(t, decimal.RequireFromString("170").Equal(MinimumAcceptableAmount(quote, 85)))
	assert.True(t, decimal.RequireFromString("100").Equal(MinimumAcceptableAmount(quote, 50)))
	assert.True(t, decimal.RequireFromString("200").Equal(MinimumAcceptableAmount(quote, 100)))
	assert.True(t, decimal.RequireFromString("33.33").Equal(MinimumAcceptableAmount(decimal.RequireFromString("39.21"), 85)))
}

func TestBidMeetsFloor(t *testing.T) {
	quote := decimal.RequireFromString("200.00")

	tests := []struct {
		name     string
		bid      string
		pct      float64
		expected bool
	}{
		{name: "exactly at floor", bid: "170.00", pct: 85, expected: true},
		{name: "above floor", bid: "180.00", pct: 85, expected: true},
		{name: "one cent below floor", bid: "169.99", pct: 85, expected: false},
		{name: "full price required", bid: "199.99", pct: 100, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BidMeetsFloor(decimal.RequireFromString(tt.bid), quote, tt.pct))
		})
	}
}

func TestEffectiveDiscount(t *testing.T) {
	quote := decimal.RequireFromString("200")

	assert.Equal(t, "15", EffectiveDiscount(decimal.RequireFromString("170"), quote).String())
	assert.Equal(t, "0", EffectiveDiscount(decimal.RequireFromString("200"), quote).String())
	assert.True(t, EffectiveDiscount(decimal.RequireFromString("10"), decimal.Zero).IsZero())
}
