package businessflow

import (
	"context"
	"strings"

	"github.com/amirphl/Rentora/app/dto"
	"github.com/amirphl/Rentora/models"
	"github.com/amirphl/Rentora/repository"
	"github.com/amirphl/Rentora/utils"
)

// RateCardFlow manages the daily prices quotes are computed from
type RateCardFlow interface {
	CreateRateCard(ctx context.Context, companyUUID string, req *dto.CreateRateCardRequest) (*dto.RateCardDTO, error)
	ListRateCards(ctx context.Context, companyUUID string) (*dto.ListRateCardsResponse, error)
}

type RateCardFlowImpl struct {
	companyRepo  repository.CompanyRepository
	rateCardRepo repository.RateCardRepository
}

func NewRateCardFlow(companyRepo repository.CompanyRepository, rateCardRepo repository.RateCardRepository) RateCardFlow {
	return &RateCardFlowImpl{
		companyRepo:  companyRepo,
		rateCardRepo: rateCardRepo,
	}
}

// CreateRateCard appends a new rate card; it supersedes older cards of the same vehicle class
func (f *RateCardFlowImpl) CreateRateCard(ctx context.Context, companyUUID string, req *dto.CreateRateCardRequest) (*dto.RateCardDTO, error) {
	if req == nil || strings.TrimSpace(req.VehicleClass) == "" {
		return nil, NewBusinessError("INVALID_RATE", "Vehicle class is required", ErrInvalidRate)
	}
	if !req.DailyRate.IsPositive() {
		return nil, NewBusinessError("INVALID_RATE", "Daily rate must be positive", ErrInvalidRate)
	}
	if req.CDWDailyRate.IsNegative() {
		return nil, NewBusinessError("INVALID_RATE", "CDW daily rate must not be negative", ErrInvalidRate)
	}

	company, err := getCompany(ctx, f.companyRepo, companyUUID)
	if err != nil {
		return nil, err
	}

	card := &models.RateCard{
		CompanyID:    company.ID,
		VehicleClass: strings.ToLower(strings.TrimSpace(req.VehicleClass)),
		DailyRate:    req.DailyRate.Round(moneyDecimals),
		CDWDailyRate: req.CDWDailyRate.Round(moneyDecimals),
		IsActive:     utils.ToPtr(true),
	}
	if err := f.rateCardRepo.Save(ctx, card); err != nil {
		return nil, NewBusinessError("RATE_CARD_CREATE_FAILED", "Failed to create rate card", err)
	}

	out := ToRateCardDTO(*card)
	return &out, nil
}

func (f *RateCardFlowImpl) ListRateCards(ctx context.Context, companyUUID string) (*dto.ListRateCardsResponse, error) {
	company, err := getCompany(ctx, f.companyRepo, companyUUID)
	if err != nil {
		return nil, err
	}

	cards, err := f.rateCardRepo.ByFilter(ctx, models.RateCardFilter{
		CompanyID: &company.ID,
		IsActive:  utils.ToPtr(true),
	}, "vehicle_class ASC, created_at DESC, id DESC", 0, 0)
	if err != nil {
		return nil, NewBusinessError("RATE_CARD_LIST_FAILED", "Failed to list rate cards", err)
	}

	items := make([]dto.RateCardDTO, 0, len(cards))
	for _, c := range cards {
		items = append(items, ToRateCardDTO(*c))
	}
	return &dto.ListRateCardsResponse{Items: items}, nil
}
