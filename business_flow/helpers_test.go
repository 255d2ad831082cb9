package businessflow

import (
	"time"

	"github.com/amirphl/Rentora/models"
	"github.com/amirphl/Rentora/pricing"
	"github.com/amirphl/Rentora/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

var testCompanyUUID = uuid.MustParse("6f1c2d3e-4a5b-4c6d-8e7f-901234567890")

func testCompany() *models.Company {
	return &models.Company{
		ID:                7,
		UUID:              testCompanyUUID,
		Name:              "Sunny Wheels",
		Slug:              "sunny-wheels",
		Currency:          "EUR",
		CommissionRatePct: 15,
		IsActive:          utils.ToPtr(true),
	}
}

// expectCompany makes the company resolvable by its UUID
func expectCompany(repo *mockCompanyRepo, company *models.Company) {
	repo.On("ByFilter", mock.Anything, models.CompanyFilter{UUID: &company.UUID}, "", 1, 0).
		Return([]*models.Company{company}, nil)
}

func testRateCard() *models.RateCard {
	return &models.RateCard{
		ID:           3,
		CompanyID:    7,
		VehicleClass: "compact",
		DailyRate:    decimal.RequireFromString("40.00"),
		CDWDailyRate: decimal.RequireFromString("5.00"),
		IsActive:     utils.ToPtr(true),
	}
}

func biddingConfig(companyID uint, t pricing.BiddingTiers) *models.BiddingConfig {
	cfg := &models.BiddingConfig{ID: 1, CompanyID: companyID}
	cfg.SetTiers(t)
	return cfg
}

func pct(v float64) *float64 { return &v }

var pickup = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
