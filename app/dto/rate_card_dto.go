package dto

import "github.com/shopspring/decimal"

type CreateRateCardRequest struct {
	VehicleClass string          `json:"vehicle_class" validate:"required,max=64" example:"compact"`
	DailyRate    decimal.Decimal `json:"daily_rate" swaggertype:"string" example:"45.00"`
	CDWDailyRate decimal.Decimal `json:"cdw_daily_rate" swaggertype:"string" example:"9.50"`
}

type RateCardDTO struct {
	ID           uint   `json:"id"`
	UUID         string `json:"uuid"`
	VehicleClass string `json:"vehicle_class"`
	DailyRate    string `json:"daily_rate" example:"45.00"`
	CDWDailyRate string `json:"cdw_daily_rate" example:"9.50"`
	IsActive     *bool  `json:"is_active"`
	CreatedAt    string `json:"created_at"`
}

type ListRateCardsResponse struct {
	Items []RateCardDTO `json:"items"`
}
