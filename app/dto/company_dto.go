package dto

type CreateCompanyRequest struct {
	Name              string   `json:"name" validate:"required,min=2,max=255"`
	Slug              string   `json:"slug" validate:"omitempty,max=255"`
	Currency          string   `json:"currency" validate:"omitempty,currency_code" example:"EUR"`
	CommissionRatePct *float64 `json:"commission_rate_pct" validate:"omitempty,gte=0,lte=100" example:"15"`
}

type CompanyDTO struct {
	ID                uint    `json:"id" example:"1"`
	UUID              string  `json:"uuid"`
	Name              string  `json:"name" example:"Sunny Wheels"`
	Slug              string  `json:"slug" example:"sunny-wheels"`
	Currency          string  `json:"currency" example:"EUR"`
	CommissionRatePct float64 `json:"commission_rate_pct" example:"15"`
	IsActive          *bool   `json:"is_active"`
	CreatedAt         string  `json:"created_at"`
}

type ListCompaniesResponse struct {
	Items      []CompanyDTO   `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}
