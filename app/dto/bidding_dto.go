package dto

// BiddingConfigPayload is the wire form of a company's bidding configuration, shared by
// responses and request bodies. A null percentage disables bidding for that tier; the fields
// are never omitted so null is always explicit.
type BiddingConfigPayload struct {
	BiddingDailyPct   *float64 `json:"biddingDailyPct" validate:"omitempty,bidding_pct" example:"85"`
	BiddingWeeklyPct  *float64 `json:"biddingWeeklyPct" validate:"omitempty,bidding_pct" example:"80"`
	BiddingMonthlyPct *float64 `json:"biddingMonthlyPct" validate:"omitempty,bidding_pct"`
}

// DiscountTierDTO is one row of the operator-facing discount form. Discounts outside [0, 50]
// are clamped when saved, and the discount of a disabled tier is ignored.
type DiscountTierDTO struct {
	Enabled  bool    `json:"enabled" example:"true"`
	Discount float64 `json:"discount" example:"15"`
}

type DiscountFormDTO struct {
	Daily   DiscountTierDTO `json:"daily"`
	Weekly  DiscountTierDTO `json:"weekly"`
	Monthly DiscountTierDTO `json:"monthly"`
}

// DiscountFormResponse shows the hydrated form together with the stored percentages it came from
type DiscountFormResponse struct {
	Form    DiscountFormDTO      `json:"form"`
	Bidding BiddingConfigPayload `json:"bidding"`
}
