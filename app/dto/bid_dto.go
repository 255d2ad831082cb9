package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type EvaluateBidRequest struct {
	VehicleClass string          `json:"vehicle_class" validate:"required,max=64" example:"compact"`
	PickupAt     time.Time       `json:"pickup_at" validate:"required" example:"2026-06-01T10:00:00Z"`
	DropoffAt    time.Time       `json:"dropoff_at" validate:"required,gtfield=PickupAt" example:"2026-06-08T10:00:00Z"`
	IncludesCDW  bool            `json:"includes_cdw"`
	BidAmount    decimal.Decimal `json:"bid_amount" swaggertype:"string" example:"250.00"`
}

type BidEvaluationResponse struct {
	Outcome       string   `json:"outcome" example:"auto_accepted"` // bidding_disabled, auto_accepted or rejected
	Tier          string   `json:"tier" example:"weekly"`
	RentalDays    int      `json:"rental_days" example:"7"`
	Currency      string   `json:"currency" example:"EUR"`
	QuotedAmount  string   `json:"quoted_amount" example:"315.00"`
	BidAmount     string   `json:"bid_amount" example:"250.00"`
	MinimumAmount *string  `json:"minimum_amount" example:"252.00"`
	BiddingPct    *float64 `json:"bidding_pct" example:"80"`
	DiscountPct   *float64 `json:"discount_pct" example:"20"`
	BidDiscount   string   `json:"bid_discount_pct" example:"20.63"`
}
