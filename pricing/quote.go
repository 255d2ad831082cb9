package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// RentalQuote is the base price of a rental before any bid-driven discount.
func RentalQuote(dailyRate, cdwDailyRate decimal.Decimal, days int, includeCDW bool) decimal.Decimal {
	perDay := dailyRate
	if includeCDW {
		perDay = perDay.Add(cdwDailyRate)
	}
	return perDay.Mul(decimal.NewFromInt(int64(days))).Round(2)
}

// MinimumAcceptableAmount is the lowest bid auto-accepted for a quote at the given bidding percentage.
func MinimumAcceptableAmount(quote decimal.Decimal, biddingPct float64) decimal.Decimal {
	return quote.Mul(decimal.NewFromFloat(biddingPct)).Div(hundred).Round(2)
}

// BidMeetsFloor reports whether bid reaches the auto-accept floor of quote.
func BidMeetsFloor(bid, quote decimal.Decimal, biddingPct float64) bool {
	return bid.GreaterThanOrEqual(MinimumAcceptableAmount(quote, biddingPct))
}

// EffectiveDiscount is the percentage off the quote that a bid represents, rounded to 2 dp.
// A zero quote yields zero.
func EffectiveDiscount(bid, quote decimal.Decimal) decimal.Decimal {
	if quote.IsZero() {
		return decimal.Zero
	}
	return hundred.Sub(bid.Mul(hundred).Div(quote)).Round(2)
}
