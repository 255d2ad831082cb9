// Package pricing holds the money and percentage arithmetic shared by the bidding, booking and accounting flows
package pricing

import "math"

// Discount and bidding percentage bounds.
// A discount of D percent is stored by the backend as a bidding percentage of 100-D.
const (
	MinDiscountPercentage = 0.0
	MaxDiscountPercentage = 50.0
	MinBiddingPercentage  = 100.0 - MaxDiscountPercentage
	MaxBiddingPercentage  = 100.0 - MinDiscountPercentage
)

// DiscountToBiddingPercentage converts an operator-facing discount into the
// minimum percentage of the quote that is auto-accepted.
// The result is rounded to the nearest integer and is not clamped; callers
// clamp the discount first (see ClampDiscount). NaN propagates.
func DiscountToBiddingPercentage(discount float64) float64 {
	return math.Round(100 - discount)
}

// BiddingPercentageToDiscount converts a stored bidding percentage back into
// the discount shown to the operator. A nil percentage (tier disabled) maps to 0.
// The result is clamped into [MinDiscountPercentage, MaxDiscountPercentage].
func BiddingPercentageToDiscount(pct *float64) float64 {
	if pct == nil {
		return 0
	}
	return max(MinDiscountPercentage, min(MaxDiscountPercentage, 100-*pct))
}

// ClampDiscount bounds a discount to the range the dashboard slider allows.
func ClampDiscount(discount float64) float64 {
	return max(MinDiscountPercentage, min(MaxDiscountPercentage, discount))
}

// IsValidBiddingPercentage reports whether pct is a finite value in [50, 100].
func IsValidBiddingPercentage(pct float64) bool {
	return !math.IsNaN(pct) && pct >= MinBiddingPercentage && pct <= MaxBiddingPercentage
}

