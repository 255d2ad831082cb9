package businessflow

import (
	"context"
	"math"
	"time"

	"github.com/amirphl/Rentora/app/dto"
	"github.com/amirphl/Rentora/app/services"
	"github.com/amirphl/Rentora/models"
	"github.com/amirphl/Rentora/pricing"
	"github.com/amirphl/Rentora/repository"
	"github.com/amirphl/Rentora/utils"
	"github.com/rs/zerolog/log"
)

// BiddingConfigFlow reads and writes a company's per-tier bidding percentages, either in the
// stored wire form or through the discount form operators edit in the dashboard
type BiddingConfigFlow interface {
	GetBiddingConfig(ctx context.Context, companyUUID string) (*dto.BiddingConfigPayload, error)
	GetDiscountForm(ctx context.Context, companyUUID string) (*dto.DiscountFormResponse, error)
	UpdateBiddingConfig(ctx context.Context, companyUUID string, req *dto.BiddingConfigPayload, adminID uint, metadata *ClientMetadata) (*dto.BiddingConfigPayload, error)
	UpdateDiscountForm(ctx context.Context, companyUUID string, req *dto.DiscountFormDTO, adminID uint, metadata *ClientMetadata) (*dto.DiscountFormResponse, error)
}

type BiddingConfigFlowImpl struct {
	companyRepo repository.CompanyRepository
	tiers       *tierReader
	publisher   services.EventPublisher
}

func NewBiddingConfigFlow(
	companyRepo repository.CompanyRepository,
	biddingRepo repository.BiddingConfigRepository,
	cache services.BiddingConfigCache,
	publisher services.EventPublisher,
) BiddingConfigFlow {
	return &BiddingConfigFlowImpl{
		companyRepo: companyRepo,
		tiers:       newTierReader(biddingRepo, cache),
		publisher:   publisher,
	}
}

// tierResettleDelay is how long after a write the cache entry is dropped a second time
const tierResettleDelay = 500 * time.Millisecond

// tierReader loads bidding tiers cache-aside. It is shared by the config and bid flows.
//
// A reader that fetched the old row before a write committed may Set it after the
// write's invalidation. Writes therefore invalidate twice, the second time after
// resettle; a stale entry that still slips through lives at most one cache TTL.
type tierReader struct {
	repo     repository.BiddingConfigRepository
	cache    services.BiddingConfigCache
	resettle time.Duration
}

func newTierReader(repo repository.BiddingConfigRepository, cache services.BiddingConfigCache) *tierReader {
	if cache == nil {
		cache = services.NewNoopBiddingConfigCache()
	}
	return &tierReader{repo: repo, cache: cache, resettle: tierResettleDelay}
}

func (r *tierReader) load(ctx context.Context, companyID uint) (pricing.BiddingTiers, error) {
	if tiers, hit, err := r.cache.Get(ctx, companyID); err != nil {
		log.Warn().Err(err).Uint("company_id", companyID).Msg("bidding config cache read failed")
	} else if hit {
		return tiers, nil
	}

	cfg, err := r.repo.ByCompanyID(ctx, companyID)
	if err != nil {
		return pricing.BiddingTiers{}, NewBusinessError("BIDDING_CONFIG_LOOKUP_FAILED", "Failed to load bidding configuration", err)
	}
	// nil-safe: a company that never configured bidding has every tier disabled
	tiers := cfg.Tiers()

	if err := r.cache.Set(ctx, companyID, tiers); err != nil {
		log.Warn().Err(err).Uint("company_id", companyID).Msg("bidding config cache write failed")
	}
	return tiers, nil
}

func (r *tierReader) invalidate(ctx context.Context, companyID uint) {
	if err := r.cache.Invalidate(ctx, companyID); err != nil {
		log.Warn().Err(err).Uint("company_id", companyID).Msg("bidding config cache invalidation failed")
	}
}

// invalidateAfterWrite drops the entry now and again once in-flight loads have settled
func (r *tierReader) invalidateAfterWrite(ctx context.Context, companyID uint) {
	r.invalidate(ctx, companyID)
	if r.resettle <= 0 {
		return
	}
	detached := context.WithoutCancel(ctx)
	time.AfterFunc(r.resettle, func() {
		r.invalidate(detached, companyID)
	})
}

func (f *BiddingConfigFlowImpl) GetBiddingConfig(ctx context.Context, companyUUID string) (*dto.BiddingConfigPayload, error) {
	company, err := getCompany(ctx, f.companyRepo, companyUUID)
	if err != nil {
		return nil, err
	}
	tiers, err := f.tiers.load(ctx, company.ID)
	if err != nil {
		return nil, err
	}
	payload := ToBiddingConfigPayload(tiers)
	return &payload, nil
}

func (f *BiddingConfigFlowImpl) GetDiscountForm(ctx context.Context, companyUUID string) (*dto.DiscountFormResponse, error) {
	company, err := getCompany(ctx, f.companyRepo, companyUUID)
	if err != nil {
		return nil, err
	}
	tiers, err := f.tiers.load(ctx, company.ID)
	if err != nil {
		return nil, err
	}
	return toDiscountFormResponse(tiers), nil
}

func (f *BiddingConfigFlowImpl) UpdateBiddingConfig(ctx context.Context, companyUUID string, req *dto.BiddingConfigPayload, adminID uint, metadata *ClientMetadata) (*dto.BiddingConfigPayload, error) {
	if req == nil {
		req = &dto.BiddingConfigPayload{}
	}
	for _, pct := range []*float64{req.BiddingDailyPct, req.BiddingWeeklyPct, req.BiddingMonthlyPct} {
		if pct != nil && !pricing.IsValidBiddingPercentage(*pct) {
			return nil, NewBusinessErrorf("BIDDING_PERCENTAGE_OUT_OF_RANGE", "Bidding percentage %g is outside [%g, %g]",
				ErrBiddingPercentageOutOfRange, *pct, pricing.MinBiddingPercentage, pricing.MaxBiddingPercentage)
		}
	}

	saved, err := f.save(ctx, companyUUID, fromBiddingConfigPayload(*req), adminID, biddingUpdateSourceWire, metadata)
	if err != nil {
		return nil, err
	}
	payload := ToBiddingConfigPayload(saved)
	return &payload, nil
}

func (f *BiddingConfigFlowImpl) UpdateDiscountForm(ctx context.Context, companyUUID string, req *dto.DiscountFormDTO, adminID uint, metadata *ClientMetadata) (*dto.DiscountFormResponse, error) {
	if req == nil {
		req = &dto.DiscountFormDTO{}
	}
	// out-of-range discounts are clamped by SerializeDiscountTiers; only NaN has no stored form
	for _, t := range []dto.DiscountTierDTO{req.Daily, req.Weekly, req.Monthly} {
		if t.Enabled && math.IsNaN(t.Discount) {
			return nil, NewBusinessError("INVALID_DISCOUNT", "Discount must be a number", ErrInvalidDiscount)
		}
	}

	tiers := pricing.SerializeDiscountTiers(fromDiscountFormDTO(*req))
	saved, err := f.save(ctx, companyUUID, tiers, adminID, biddingUpdateSourceDiscountForm, metadata)
	if err != nil {
		return nil, err
	}
	return toDiscountFormResponse(saved), nil
}

func (f *BiddingConfigFlowImpl) save(ctx context.Context, companyUUID string, tiers pricing.BiddingTiers, adminID uint, source string, metadata *ClientMetadata) (pricing.BiddingTiers, error) {
	company, err := getCompany(ctx, f.companyRepo, companyUUID)
	if err != nil {
		return pricing.BiddingTiers{}, err
	}

	var updatedBy *uint
	if adminID != 0 {
		updatedBy = utils.ToPtr(adminID)
	}
	cfg, err := f.tiers.repo.Upsert(ctx, company.ID, tiers, updatedBy)
	if err != nil {
		return pricing.BiddingTiers{}, NewBusinessError("BIDDING_CONFIG_UPDATE_FAILED", "Failed to save bidding configuration", err)
	}
	saved := cfg.Tiers()

	f.tiers.invalidateAfterWrite(ctx, company.ID)
	biddingConfigUpdatesTotal.WithLabelValues(source).Inc()
	f.publish(ctx, company, saved)

	event := log.Info().
		Str("company_uuid", company.UUID.String()).
		Uint("admin_id", adminID).
		Str("source", source).
		Str("daily", formatPct(saved.Daily)).
		Str("weekly", formatPct(saved.Weekly)).
		Str("monthly", formatPct(saved.Monthly))
	if metadata != nil {
		event = event.Str("request_id", metadata.RequestID)
	}
	event.Msg("bidding configuration updated")

	return saved, nil
}

func (f *BiddingConfigFlowImpl) publish(ctx context.Context, company *models.Company, tiers pricing.BiddingTiers) {
	if f.publisher == nil {
		return
	}
	err := f.publisher.Publish(ctx, services.Event{
		Type:        services.EventBiddingConfigUpdated,
		CompanyUUID: company.UUID.String(),
		OccurredAt:  utils.UTCNow(),
		Payload:     ToBiddingConfigPayload(tiers),
	})
	if err != nil {
		log.Warn().Err(err).Str("company_uuid", company.UUID.String()).Msg("failed to publish bidding config event")
	}
}

func toDiscountFormResponse(tiers pricing.BiddingTiers) *dto.DiscountFormResponse {
	return &dto.DiscountFormResponse{
		Form:    ToDiscountFormDTO(pricing.HydrateDiscountTiers(tiers)),
		Bidding: ToBiddingConfigPayload(tiers),
	}
}
