package businessflow

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/amirphl/Rentora/app/dto"
	"github.com/amirphl/Rentora/app/services"
	"github.com/amirphl/Rentora/models"
	"github.com/amirphl/Rentora/repository"
	"github.com/amirphl/Rentora/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// BookingFlow records marketplace bookings and moves them through their lifecycle
type BookingFlow interface {
	CreateBooking(ctx context.Context, companyUUID string, req *dto.CreateBookingRequest, metadata *ClientMetadata) (*dto.BookingDTO, error)
	UpdateBookingStatus(ctx context.Context, reference string, req *dto.UpdateBookingStatusRequest, adminID uint, metadata *ClientMetadata) (*dto.BookingDTO, error)
}

type BookingFlowImpl struct {
	bids        *BidFlowImpl
	bookingRepo repository.BookingRepository
	publisher   services.EventPublisher
}

func NewBookingFlow(
	companyRepo repository.CompanyRepository,
	rateCardRepo repository.RateCardRepository,
	biddingRepo repository.BiddingConfigRepository,
	bookingRepo repository.BookingRepository,
	cache services.BiddingConfigCache,
	publisher services.EventPublisher,
) BookingFlow {
	return &BookingFlowImpl{
		bids: &BidFlowImpl{
			companyRepo:  companyRepo,
			rateCardRepo: rateCardRepo,
			tiers:        newTierReader(biddingRepo, cache),
		},
		bookingRepo: bookingRepo,
		publisher:   publisher,
	}
}

// CreateBooking prices the rental server side. With a bid, an auto-accepted bid becomes the final
// amount and the booking skips operator review; any other bid is kept for the operator to confirm.
func (f *BookingFlowImpl) CreateBooking(ctx context.Context, companyUUID string, req *dto.CreateBookingRequest, metadata *ClientMetadata) (*dto.BookingDTO, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_RENTAL_PERIOD", "Booking is required", ErrInvalidRentalPeriod)
	}
	if req.BidAmount != nil && !req.BidAmount.IsPositive() {
		return nil, NewBusinessError("INVALID_BID_AMOUNT", "Bid amount must be positive", ErrInvalidBidAmount)
	}

	q, err := f.bids.quote(ctx, companyUUID, req.VehicleClass, req.PickupAt, req.DropoffAt, req.IncludesCDW)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		CompanyID:    q.Company.ID,
		Reference:    newBookingReference(),
		VehicleClass: strings.ToLower(strings.TrimSpace(req.VehicleClass)),
		PickupAt:     req.PickupAt.UTC(),
		DropoffAt:    req.DropoffAt.UTC(),
		RentalDays:   q.Days,
		Tier:         string(q.Tier),
		IncludesCDW:  req.IncludesCDW,
		QuotedAmount: q.Quote,
		FinalAmount:  q.Quote,
		Currency:     q.Company.Currency,
		Status:       models.BookingStatusPending,
	}

	if req.BidAmount != nil {
		bid := req.BidAmount.Round(moneyDecimals)
		ev := evaluateBid(*q, bid)
		bidEvaluationsTotal.WithLabelValues(ev.Outcome).Inc()

		booking.BidAmount = &bid
		booking.FinalAmount = bid
		if ev.Outcome == BidOutcomeAutoAccepted {
			booking.Status = models.BookingStatusAutoAccepted
			booking.BiddingPctApplied = ev.BiddingPct
		}
	}

	if err := f.bookingRepo.Save(ctx, booking); err != nil {
		return nil, NewBusinessError("BOOKING_CREATE_FAILED", "Failed to create booking", err)
	}

	event := log.Info().
		Str("reference", booking.Reference).
		Str("company_uuid", q.Company.UUID.String()).
		Str("status", booking.Status.String())
	if metadata != nil {
		event = event.Str("request_id", metadata.RequestID)
	}
	event.Msg("booking created")

	out := ToBookingDTO(*booking)
	return &out, nil
}

func (f *BookingFlowImpl) UpdateBookingStatus(ctx context.Context, reference string, req *dto.UpdateBookingStatusRequest, adminID uint, metadata *ClientMetadata) (*dto.BookingDTO, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_STATUS_TRANSITION", "Status is required", ErrInvalidBookingStatusTransition)
	}
	next := models.BookingStatus(req.Status)
	if !next.Valid() {
		return nil, NewBusinessErrorf("INVALID_STATUS_TRANSITION", "Unknown booking status %q", ErrInvalidBookingStatusTransition, req.Status)
	}

	booking, err := f.bookingRepo.ByReference(ctx, reference)
	if err != nil {
		return nil, NewBusinessError("BOOKING_LOOKUP_FAILED", "Failed to lookup booking", err)
	}
	if booking == nil {
		return nil, NewBusinessError("BOOKING_NOT_FOUND", "Booking not found", ErrBookingNotFound)
	}

	previous := booking.Status
	if !previous.CanTransitionTo(next) {
		return nil, NewBusinessErrorf("INVALID_STATUS_TRANSITION", "Booking cannot move from %s to %s",
			ErrInvalidBookingStatusTransition, previous, next)
	}

	var completedAt *time.Time
	if next == models.BookingStatusCompleted {
		completedAt = utils.UTCNowPtr()
	}
	if err := f.bookingRepo.UpdateStatus(ctx, booking.ID, previous, next, completedAt); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewBusinessError("BOOKING_NOT_FOUND", "Booking not found", ErrBookingNotFound)
		}
		if errors.Is(err, repository.ErrBookingStatusChanged) {
			return nil, NewBusinessError("INVALID_STATUS_TRANSITION", "Booking status changed concurrently",
				errors.Join(ErrInvalidBookingStatusTransition, err))
		}
		return nil, NewBusinessError("BOOKING_UPDATE_FAILED", "Failed to update booking status", err)
	}
	booking.Status = next
	if completedAt != nil {
		booking.CompletedAt = completedAt
	}

	f.publishStatusChange(ctx, booking, previous)

	event := log.Info().
		Str("reference", booking.Reference).
		Uint("admin_id", adminID).
		Str("from", previous.String()).
		Str("to", next.String())
	if metadata != nil {
		event = event.Str("request_id", metadata.RequestID)
	}
	event.Msg("booking status changed")

	out := ToBookingDTO(*booking)
	return &out, nil
}

func (f *BookingFlowImpl) publishStatusChange(ctx context.Context, booking *models.Booking, previous models.BookingStatus) {
	if f.publisher == nil {
		return
	}
	company, err := f.bids.companyRepo.ByID(ctx, booking.CompanyID)
	if err != nil || company == nil {
		log.Warn().Err(err).Str("reference", booking.Reference).Msg("skipping booking event: company lookup failed")
		return
	}

	err = f.publisher.Publish(ctx, services.Event{
		Type:        services.EventBookingStatusChanged,
		CompanyUUID: company.UUID.String(),
		OccurredAt:  utils.UTCNow(),
		Payload: map[string]any{
			"reference":    booking.Reference,
			"from":         previous.String(),
			"to":           booking.Status.String(),
			"final_amount": booking.FinalAmount.StringFixed(moneyDecimals),
			"currency":     booking.Currency,
		},
	})
	if err != nil {
		log.Warn().Err(err).Str("reference", booking.Reference).Msg("failed to publish booking event")
	}
}

// newBookingReference returns a short human-friendly reference such as RNT-8F3A2C1D
func newBookingReference() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "RNT-" + strings.ToUpper(id[:8])
}
