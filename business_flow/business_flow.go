package businessflow

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/amirphl/Rentora/app/dto"
	"github.com/amirphl/Rentora/models"
	"github.com/amirphl/Rentora/pricing"
	"github.com/amirphl/Rentora/repository"
	"github.com/amirphl/Rentora/utils"
	"github.com/google/uuid"
)

const (
	defaultPageSize = 20
	moneyDecimals   = 2
)

// ClientMetadata holds the caller details recorded with admin actions
type ClientMetadata struct {
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	RequestID string `json:"request_id,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// getCompany resolves a company by its public UUID. Unknown and malformed IDs are both "not found".
func getCompany(ctx context.Context, repo repository.CompanyRepository, companyUUID string) (*models.Company, error) {
	id, err := uuid.Parse(companyUUID)
	if err != nil {
		return nil, NewBusinessError("COMPANY_NOT_FOUND", "Company not found", ErrCompanyNotFound)
	}

	companies, err := repo.ByFilter(ctx, models.CompanyFilter{UUID: &id}, "", 1, 0)
	if err != nil {
		return nil, NewBusinessError("COMPANY_LOOKUP_FAILED", "Failed to lookup company", err)
	}
	if len(companies) == 0 {
		return nil, NewBusinessError("COMPANY_NOT_FOUND", "Company not found", ErrCompanyNotFound)
	}
	return companies[0], nil
}

// normalizePagination applies defaults and bounds, returning limit and offset
func normalizePagination(page, pageSize int) (int, int, error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	if page < 1 {
		return 0, 0, NewBusinessError("INVALID_PAGE", "Page must be at least 1", ErrInvalidPage)
	}
	if pageSize < 1 || pageSize > utils.MaxPageSize {
		return 0, 0, NewBusinessErrorf("INVALID_PAGE_SIZE", "Page size must be between 1 and %d", ErrInvalidPageSize, utils.MaxPageSize)
	}
	return pageSize, (page - 1) * pageSize, nil
}

func paginationInfo(total int64, limit, offset int) dto.PaginationInfo {
	return dto.PaginationInfo{
		Total:      total,
		Page:       offset/limit + 1,
		PageSize:   limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
}

func ToAdminDTOModel(admin models.Admin) dto.AdminDTO {
	return dto.AdminDTO{
		ID:        admin.ID,
		UUID:      admin.UUID.String(),
		Username:  admin.Username,
		IsActive:  admin.IsActive,
		CreatedAt: admin.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func ToAdminSessionDTO(accessToken, refreshToken string, expiresIn time.Duration) dto.AdminSessionDTO {
	return dto.AdminSessionDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(expiresIn.Seconds()),
		TokenType:    "Bearer",
		CreatedAt:    utils.UTCNow().Format(time.RFC3339),
	}
}

func ToCompanyDTO(c models.Company) dto.CompanyDTO {
	return dto.CompanyDTO{
		ID:                c.ID,
		UUID:              c.UUID.String(),
		Name:              c.Name,
		Slug:              c.Slug,
		Currency:          c.Currency,
		CommissionRatePct: c.CommissionRatePct,
		IsActive:          c.IsActive,
		CreatedAt:         c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func ToRateCardDTO(r models.RateCard) dto.RateCardDTO {
	return dto.RateCardDTO{
		ID:           r.ID,
		UUID:         r.UUID.String(),
		VehicleClass: r.VehicleClass,
		DailyRate:    r.DailyRate.StringFixed(moneyDecimals),
		CDWDailyRate: r.CDWDailyRate.StringFixed(moneyDecimals),
		IsActive:     r.IsActive,
		CreatedAt:    r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func ToBookingDTO(b models.Booking) dto.BookingDTO {
	out := dto.BookingDTO{
		ID:                b.ID,
		UUID:              b.UUID.String(),
		Reference:         b.Reference,
		CompanyID:         b.CompanyID,
		VehicleClass:      b.VehicleClass,
		PickupAt:          b.PickupAt.UTC().Format(time.RFC3339),
		DropoffAt:         b.DropoffAt.UTC().Format(time.RFC3339),
		RentalDays:        b.RentalDays,
		Tier:              b.Tier,
		IncludesCDW:       b.IncludesCDW,
		Currency:          b.Currency,
		QuotedAmount:      b.QuotedAmount.StringFixed(moneyDecimals),
		FinalAmount:       b.FinalAmount.StringFixed(moneyDecimals),
		BiddingPctApplied: b.BiddingPctApplied,
		Status:            b.Status.String(),
		CreatedAt:         b.CreatedAt.UTC().Format(time.RFC3339),
	}
	if b.BidAmount != nil {
		out.BidAmount = utils.ToPtr(b.BidAmount.StringFixed(moneyDecimals))
	}
	if b.CompletedAt != nil {
		out.CompletedAt = utils.ToPtr(b.CompletedAt.UTC().Format(time.RFC3339))
	}
	return out
}

// ToBiddingConfigPayload renders stored tiers in the wire shape used by the dashboard
func ToBiddingConfigPayload(t pricing.BiddingTiers) dto.BiddingConfigPayload {
	return dto.BiddingConfigPayload{
		BiddingDailyPct:   t.Daily,
		BiddingWeeklyPct:  t.Weekly,
		BiddingMonthlyPct: t.Monthly,
	}
}

func fromBiddingConfigPayload(p dto.BiddingConfigPayload) pricing.BiddingTiers {
	return pricing.BiddingTiers{
		Daily:   p.BiddingDailyPct,
		Weekly:  p.BiddingWeeklyPct,
		Monthly: p.BiddingMonthlyPct,
	}
}

func ToDiscountFormDTO(d pricing.DiscountTiers) dto.DiscountFormDTO {
	return dto.DiscountFormDTO{
		Daily:   dto.DiscountTierDTO{Enabled: d.Daily.Enabled, Discount: d.Daily.Discount},
		Weekly:  dto.DiscountTierDTO{Enabled: d.Weekly.Enabled, Discount: d.Weekly.Discount},
		Monthly: dto.DiscountTierDTO{Enabled: d.Monthly.Enabled, Discount: d.Monthly.Discount},
	}
}

func fromDiscountFormDTO(f dto.DiscountFormDTO) pricing.DiscountTiers {
	return pricing.DiscountTiers{
		Daily:   pricing.DiscountTier{Enabled: f.Daily.Enabled, Discount: f.Daily.Discount},
		Weekly:  pricing.DiscountTier{Enabled: f.Weekly.Enabled, Discount: f.Weekly.Discount},
		Monthly: pricing.DiscountTier{Enabled: f.Monthly.Enabled, Discount: f.Monthly.Discount},
	}
}

func formatPct(p *float64) string {
	if p == nil {
		return "null"
	}
	return fmt.Sprintf("%g", *p)
}
