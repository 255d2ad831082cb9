package businessflow

import (
	"context"
	"strings"
	"time"

	"github.com/amirphl/Rentora/app/dto"
	"github.com/amirphl/Rentora/app/services"
	"github.com/amirphl/Rentora/models"
	"github.com/amirphl/Rentora/pricing"
	"github.com/amirphl/Rentora/repository"
	"github.com/amirphl/Rentora/utils"
	"github.com/shopspring/decimal"
)

// Bid evaluation outcomes
const (
	BidOutcomeBiddingDisabled = "bidding_disabled"
	BidOutcomeAutoAccepted    = "auto_accepted"
	BidOutcomeRejected        = "rejected"
)

// BidFlow checks a customer's bid against the company's auto-accept floor
type BidFlow interface {
	EvaluateBid(ctx context.Context, companyUUID string, req *dto.EvaluateBidRequest) (*dto.BidEvaluationResponse, error)
}

type BidFlowImpl struct {
	companyRepo  repository.CompanyRepository
	rateCardRepo repository.RateCardRepository
	tiers        *tierReader
}

func NewBidFlow(
	companyRepo repository.CompanyRepository,
	rateCardRepo repository.RateCardRepository,
	biddingRepo repository.BiddingConfigRepository,
	cache services.BiddingConfigCache,
) BidFlow {
	return &BidFlowImpl{
		companyRepo:  companyRepo,
		rateCardRepo: rateCardRepo,
		tiers:        newTierReader(biddingRepo, cache),
	}
}

// rentalQuote is a priced rental, before and after bid evaluation
type rentalQuote struct {
	Company    *models.Company
	Days       int
	Tier       pricing.Tier
	Quote      decimal.Decimal
	BiddingPct *float64
	Floor      *decimal.Decimal
}

type bidEvaluation struct {
	rentalQuote
	Bid     decimal.Decimal
	Outcome string
}

func (f *BidFlowImpl) EvaluateBid(ctx context.Context, companyUUID string, req *dto.EvaluateBidRequest) (*dto.BidEvaluationResponse, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_BID_AMOUNT", "Bid is required", ErrInvalidBidAmount)
	}
	if !req.BidAmount.IsPositive() {
		return nil, NewBusinessError("INVALID_BID_AMOUNT", "Bid amount must be positive", ErrInvalidBidAmount)
	}

	q, err := f.quote(ctx, companyUUID, req.VehicleClass, req.PickupAt, req.DropoffAt, req.IncludesCDW)
	if err != nil {
		return nil, err
	}
	ev := evaluateBid(*q, req.BidAmount)
	bidEvaluationsTotal.WithLabelValues(ev.Outcome).Inc()

	return toBidEvaluationResponse(ev), nil
}

// quote prices a rental from the company's latest rate card and attaches the tier's bidding floor
func (f *BidFlowImpl) quote(ctx context.Context, companyUUID, vehicleClass string, pickup, dropoff time.Time, includeCDW bool) (*rentalQuote, error) {
	if !dropoff.After(pickup) {
		return nil, NewBusinessError("INVALID_RENTAL_PERIOD", "Dropoff must be after pickup", ErrInvalidRentalPeriod)
	}

	company, err := getCompany(ctx, f.companyRepo, companyUUID)
	if err != nil {
		return nil, err
	}
	if !utils.IsTrue(company.IsActive) {
		return nil, NewBusinessError("COMPANY_INACTIVE", "Company is inactive", ErrCompanyInactive)
	}

	class := strings.ToLower(strings.TrimSpace(vehicleClass))
	card, err := f.rateCardRepo.LatestActive(ctx, company.ID, class)
	if err != nil {
		return nil, NewBusinessError("RATE_CARD_LOOKUP_FAILED", "Failed to lookup rate card", err)
	}
	if card == nil {
		return nil, NewBusinessErrorf("RATE_CARD_NOT_FOUND", "No active rate card for vehicle class %q", ErrRateCardNotFound, class)
	}

	tiers, err := f.tiers.load(ctx, company.ID)
	if err != nil {
		return nil, err
	}

	days := pricing.RentalDays(pickup, dropoff)
	tier := pricing.TierForRentalDays(days)
	q := &rentalQuote{
		Company:    company,
		Days:       days,
		Tier:       tier,
		Quote:      pricing.RentalQuote(card.DailyRate, card.CDWDailyRate, days, includeCDW),
		BiddingPct: tiers.ForTier(tier),
	}
	if q.BiddingPct != nil {
		floor := pricing.MinimumAcceptableAmount(q.Quote, *q.BiddingPct)
		q.Floor = &floor
	}
	return q, nil
}

func evaluateBid(q rentalQuote, bid decimal.Decimal) bidEvaluation {
	ev := bidEvaluation{rentalQuote: q, Bid: bid}
	switch {
	case q.BiddingPct == nil:
		ev.Outcome = BidOutcomeBiddingDisabled
	case pricing.BidMeetsFloor(bid, q.Quote, *q.BiddingPct):
		ev.Outcome = BidOutcomeAutoAccepted
	default:
		ev.Outcome = BidOutcomeRejected
	}
	return ev
}

func toBidEvaluationResponse(ev bidEvaluation) *dto.BidEvaluationResponse {
	resp := &dto.BidEvaluationResponse{
		Outcome:      ev.Outcome,
		Tier:         string(ev.Tier),
		RentalDays:   ev.Days,
		Currency:     ev.Company.Currency,
		QuotedAmount: ev.Quote.StringFixed(moneyDecimals),
		BidAmount:    ev.Bid.StringFixed(moneyDecimals),
		BiddingPct:   ev.BiddingPct,
		BidDiscount:  pricing.EffectiveDiscount(ev.Bid, ev.Quote).StringFixed(moneyDecimals),
	}
	if ev.Floor != nil {
		resp.MinimumAmount = utils.ToPtr(ev.Floor.StringFixed(moneyDecimals))
	}
	if ev.BiddingPct != nil {
		resp.DiscountPct = utils.ToPtr(pricing.BiddingPercentageToDiscount(ev.BiddingPct))
	}
	return resp
}
