package pricing

import (
	"math"
	"time"
)

// Tier is a rental-length band with its own bidding percentage.
type Tier string

const (
	TierDaily   Tier = "daily"
	TierWeekly  Tier = "weekly"
	TierMonthly Tier = "monthly"
)

// Rental lengths (in days) at which the weekly and monthly tiers start.
const (
	WeeklyTierMinDays  = 7
	MonthlyTierMinDays = 28
)

// BiddingTiers is the stored form of a company's bidding configuration.
// A nil percentage means bidding is disabled for that tier.
type BiddingTiers struct {
	Daily   *float64
	Weekly  *float64
	Monthly *float64
}

// ForTier returns the bidding percentage configured for tier.
func (b BiddingTiers) ForTier(tier Tier) *float64 {
	switch tier {
	case TierDaily:
		return b.Daily
	case TierWeekly:
		return b.Weekly
	case TierMonthly:
		return b.Monthly
	default:
		return nil
	}
}

// DiscountTier is the editable form of a single tier.
type DiscountTier struct {
	Enabled  bool
	Discount float64
}

// DiscountTiers is the editable form of a bidding configuration.
type DiscountTiers struct {
	Daily   DiscountTier
	Weekly  DiscountTier
	Monthly DiscountTier
}

// HydrateDiscountTiers converts stored percentages into editable discounts.
func HydrateDiscountTiers(b BiddingTiers) DiscountTiers {
	return DiscountTiers{
		Daily:   hydrateTier(b.Daily),
		Weekly:  hydrateTier(b.Weekly),
		Monthly: hydrateTier(b.Monthly),
	}
}

// SerializeDiscountTiers converts edited discounts into stored percentages.
// Disabled tiers become nil; enabled discounts are clamped before conversion.
func SerializeDiscountTiers(d DiscountTiers) BiddingTiers {
	return BiddingTiers{
		Daily:   serializeTier(d.Daily),
		Weekly:  serializeTier(d.Weekly),
		Monthly: serializeTier(d.Monthly),
	}
}

func hydrateTier(pct *float64) DiscountTier {
	return DiscountTier{
		Enabled:  pct != nil,
		Discount: BiddingPercentageToDiscount(pct),
	}
}

func serializeTier(t DiscountTier) *float64 {
	if !t.Enabled {
		return nil
	}
	pct := DiscountToBiddingPercentage(ClampDiscount(t.Discount))
	return &pct
}

// TierForRentalDays picks the tier that applies to a rental of the given length.
func TierForRentalDays(days int) Tier {
	switch {
	case days >= MonthlyTierMinDays:
		return TierMonthly
	case days >= WeeklyTierMinDays:
		return TierWeekly
	default:
		return TierDaily
	}
}

// RentalDays counts started 24 hour periods between pickup and dropoff, minimum one.
func RentalDays(pickup, dropoff time.Time) int {
	hours := dropoff.Sub(pickup).Hours()
	days := int(math.Ceil(hours / 24))
	if days < 1 {
		return 1
	}
	return days
}
