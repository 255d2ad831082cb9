package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateBookingRequest struct {
	VehicleClass string           `json:"vehicle_class" validate:"required,max=64" example:"compact"`
	PickupAt     time.Time        `json:"pickup_at" validate:"required"`
	DropoffAt    time.Time        `json:"dropoff_at" validate:"required,gtfield=PickupAt"`
	IncludesCDW  bool             `json:"includes_cdw"`
	BidAmount    *decimal.Decimal `json:"bid_amount,omitempty" swaggertype:"string" example:"250.00"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed completed cancelled" example:"confirmed"`
}

type BookingDTO struct {
	ID                uint     `json:"id"`
	UUID              string   `json:"uuid"`
	Reference         string   `json:"reference" example:"RNT-8F3A2C1D"`
	CompanyID         uint     `json:"company_id"`
	VehicleClass      string   `json:"vehicle_class"`
	PickupAt          string   `json:"pickup_at"`
	DropoffAt         string   `json:"dropoff_at"`
	RentalDays        int      `json:"rental_days"`
	Tier              string   `json:"tier"`
	IncludesCDW       bool     `json:"includes_cdw"`
	Currency          string   `json:"currency"`
	QuotedAmount      string   `json:"quoted_amount"`
	BidAmount         *string  `json:"bid_amount,omitempty"`
	FinalAmount       string   `json:"final_amount"`
	BiddingPctApplied *float64 `json:"bidding_pct_applied,omitempty"`
	Status            string   `json:"status"`
	CompletedAt       *string  `json:"completed_at,omitempty"`
	CreatedAt         string   `json:"created_at"`
}
