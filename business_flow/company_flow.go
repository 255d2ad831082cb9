package businessflow

import (
	"context"
	"strings"

	"github.com/amirphl/Rentora/app/dto"
	"github.com/amirphl/Rentora/models"
	"github.com/amirphl/Rentora/repository"
	"github.com/amirphl/Rentora/utils"
	"github.com/rs/zerolog/log"
)

// CompanyFlow manages the rental companies listed on the marketplace
type CompanyFlow interface {
	CreateCompany(ctx context.Context, req *dto.CreateCompanyRequest, metadata *ClientMetadata) (*dto.CompanyDTO, error)
	GetCompany(ctx context.Context, companyUUID string) (*dto.CompanyDTO, error)
	ListCompanies(ctx context.Context, page, pageSize int) (*dto.ListCompaniesResponse, error)
}

type CompanyFlowImpl struct {
	companyRepo repository.CompanyRepository
}

func NewCompanyFlow(companyRepo repository.CompanyRepository) CompanyFlow {
	return &CompanyFlowImpl{companyRepo: companyRepo}
}

func (f *CompanyFlowImpl) CreateCompany(ctx context.Context, req *dto.CreateCompanyRequest, metadata *ClientMetadata) (*dto.CompanyDTO, error) {
	if req == nil || strings.TrimSpace(req.Name) == "" {
		return nil, NewBusinessError("INVALID_COMPANY", "Company name is required", ErrInvalidCompany)
	}

	slug := utils.Slugify(req.Slug)
	if slug == "" {
		slug = utils.Slugify(req.Name)
	}
	if slug == "" {
		return nil, NewBusinessError("INVALID_COMPANY", "Company slug must contain letters or digits", ErrInvalidCompany)
	}

	existing, err := f.companyRepo.BySlug(ctx, slug)
	if err != nil {
		return nil, NewBusinessError("COMPANY_LOOKUP_FAILED", "Failed to lookup company", err)
	}
	if existing != nil {
		return nil, NewBusinessErrorf("COMPANY_SLUG_EXISTS", "Company slug %q is already taken", ErrCompanySlugExists, slug)
	}

	currency := req.Currency
	if currency == "" {
		currency = utils.DefaultCurrency
	}
	rate := utils.DefaultCommissionRatePct
	if req.CommissionRatePct != nil {
		rate = *req.CommissionRatePct
	}

	company := &models.Company{
		Name:              strings.TrimSpace(req.Name),
		Slug:              slug,
		Currency:          currency,
		CommissionRatePct: rate,
		IsActive:          utils.ToPtr(true),
	}
	if err := f.companyRepo.Save(ctx, company); err != nil {
		return nil, NewBusinessError("COMPANY_CREATE_FAILED", "Failed to create company", err)
	}

	event := log.Info().Str("company_uuid", company.UUID.String()).Str("slug", slug)
	if metadata != nil {
		event = event.Str("request_id", metadata.RequestID)
	}
	event.Msg("company created")

	out := ToCompanyDTO(*company)
	return &out, nil
}

func (f *CompanyFlowImpl) GetCompany(ctx context.Context, companyUUID string) (*dto.CompanyDTO, error) {
	company, err := getCompany(ctx, f.companyRepo, companyUUID)
	if err != nil {
		return nil, err
	}
	out := ToCompanyDTO(*company)
	return &out, nil
}

func (f *CompanyFlowImpl) ListCompanies(ctx context.Context, page, pageSize int) (*dto.ListCompaniesResponse, error) {
	limit, offset, err := normalizePagination(page, pageSize)
	if err != nil {
		return nil, err
	}

	total, err := f.companyRepo.Count(ctx, models.CompanyFilter{})
	if err != nil {
		return nil, NewBusinessError("COMPANY_LIST_FAILED", "Failed to count companies", err)
	}
	companies, err := f.companyRepo.ByFilter(ctx, models.CompanyFilter{}, "name ASC", limit, offset)
	if err != nil {
		return nil, NewBusinessError("COMPANY_LIST_FAILED", "Failed to list companies", err)
	}

	items := make([]dto.CompanyDTO, 0, len(companies))
	for _, c := range companies {
		items = append(items, ToCompanyDTO(*c))
	}
	return &dto.ListCompaniesResponse{
		Items:      items,
		Pagination: paginationInfo(total, limit, offset),
	}, nil
}
