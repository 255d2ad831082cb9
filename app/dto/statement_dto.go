package dto

// StatementRequest is bound from the from/to query parameters (YYYY-MM-DD, to is inclusive)
type StatementRequest struct {
	From string `query:"from" validate:"required,datetime=2006-01-02" example:"2026-03-01"`
	To   string `query:"to" validate:"required,datetime=2006-01-02" example:"2026-03-31"`
}

type StatementLineDTO struct {
	Reference    string `json:"reference"`
	VehicleClass string `json:"vehicle_class"`
	CompletedAt  string `json:"completed_at"`
	RentalDays   int    `json:"rental_days"`
	Gross        string `json:"gross" example:"300.00"`
	Commission   string `json:"commission" example:"45.00"`
	Payout       string `json:"payout" example:"255.00"`
}

type StatementTotalsDTO struct {
	Bookings   int    `json:"bookings"`
	Gross      string `json:"gross"`
	Commission string `json:"commission"`
	Payout     string `json:"payout"`
}

type StatementResponse struct {
	CompanyUUID       string             `json:"company_uuid"`
	CompanyName       string             `json:"company_name"`
	Currency          string             `json:"currency"`
	From              string             `json:"from"`
	To                string             `json:"to"`
	CommissionRatePct float64            `json:"commission_rate_pct"`
	Lines             []StatementLineDTO `json:"lines"`
	Totals            StatementTotalsDTO `json:"totals"`
}

// StatementFile is a rendered statement ready to be sent as an attachment
type StatementFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
