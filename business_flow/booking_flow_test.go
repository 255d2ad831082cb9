package businessflow

import (
	"context"
	"testing"
	"time"

	"github.com/amirphl/Rentora/app/dto"
	"github.com/amirphl/Rentora/app/services"
	"github.com/amirphl/Rentora/models"
	"github.com/amirphl/Rentora/pricing"
	"github.com/amirphl/Rentora/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type bookingFixture struct {
	bidFixture
	bookings  *mockBookingRepo
	publisher *recordingPublisher
	flow      BookingFlow
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		bidFixture: *newBidFixture(pricing.BiddingTiers{Weekly: pct(80)}),
		bookings:   new(mockBookingRepo),
		publisher:  &recordingPublisher{},
	}
	f.flow = NewBookingFlow(f.companies, f.rateCards, f.bidding, f.bookings, nil, f.publisher)
	return f
}

func weeklyBooking(bid *decimal.Decimal) *dto.CreateBookingRequest {
	return &dto.CreateBookingRequest{
		VehicleClass: "compact",
		PickupAt:     pickup,
		DropoffAt:    pickup.Add(7 * 24 * time.Hour),
		IncludesCDW:  true,
		BidAmount:    bid,
	}
}

func TestCreateBooking(t *testing.T) {
	accepted := decimal.RequireFromString("260")
	rejected := decimal.RequireFromString("200")

	tests := []struct {
		name       string
		bid        *decimal.Decimal
		wantStatus models.BookingStatus
		wantFinal  string
		wantPct    *float64
	}{
		{"without bid", nil, models.BookingStatusPending, "315.00", nil},
		{"accepted bid", &accepted, models.BookingStatusAutoAccepted, "260.00", pct(80)},
		{"rejected bid waits for the operator", &rejected, models.BookingStatusPending, "200.00", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture()
			var saved *models.Booking
			f.bookings.On("Save", mock.Anything, mock.AnythingOfType("*models.Booking")).
				Run(func(args mock.Arguments) { saved = args.Get(1).(*models.Booking) }).
				Return(nil)

			got, err := f.flow.CreateBooking(context.Background(), testCompanyUUID.String(), weeklyBooking(tt.bid), nil)
			require.NoError(t, err)
			require.NotNil(t, saved)

			assert.Equal(t, tt.wantStatus, saved.Status)
			assert.Equal(t, tt.wantStatus.String(), got.Status)
			assert.Equal(t, "315.00", got.QuotedAmount)
			assert.Equal(t, tt.wantFinal, got.FinalAmount)
			assert.Equal(t, tt.wantPct, saved.BiddingPctApplied)
			assert.Equal(t, "weekly", got.Tier)
			assert.Equal(t, 7, got.RentalDays)
			assert.Equal(t, uint(7), saved.CompanyID)
			assert.Regexp(t, `^RNT-[0-9A-F]{8}$`, got.Reference)
		})
	}
}

func TestCreateBooking_RejectsNonPositiveBid(t *testing.T) {
	f := newBookingFixture()
	zero := decimal.Zero

	_, err := f.flow.CreateBooking(context.Background(), testCompanyUUID.String(), weeklyBooking(&zero), nil)
	assert.True(t, IsInvalidBidAmount(err))
	f.bookings.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func confirmedBooking() *models.Booking {
	return &models.Booking{
		ID:          11,
		CompanyID:   7,
		Reference:   "RNT-0000ABCD",
		Status:      models.BookingStatusConfirmed,
		FinalAmount: decimal.RequireFromString("315"),
		Currency:    "EUR",
	}
}

func TestUpdateBookingStatus_Complete(t *testing.T) {
	f := newBookingFixture()
	f.bookings.On("ByReference", mock.Anything, "RNT-0000ABCD").Return(confirmedBooking(), nil)
	f.bookings.On("UpdateStatus", mock.Anything, uint(11), models.BookingStatusConfirmed, models.BookingStatusCompleted, mock.AnythingOfType("*time.Time")).Return(nil)
	f.companies.On("ByID", mock.Anything, uint(7)).Return(testCompany(), nil)

	got, err := f.flow.UpdateBookingStatus(context.Background(), "RNT-0000ABCD", &dto.UpdateBookingStatusRequest{Status: "completed"}, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, "completed", got.Status)
	require.NotNil(t, got.CompletedAt)

	require.Len(t, f.publisher.events, 1)
	ev := f.publisher.events[0]
	assert.Equal(t, services.EventBookingStatusChanged, ev.Type)
	assert.Equal(t, testCompanyUUID.String(), ev.CompanyUUID)
	payload := ev.Payload.(map[string]any)
	assert.Equal(t, "confirmed", payload["from"])
	assert.Equal(t, "completed", payload["to"])
	assert.Equal(t, "315.00", payload["final_amount"])
}

func TestUpdateBookingStatus_Errors(t *testing.T) {
	t.Run("terminal status", func(t *testing.T) {
		f := newBookingFixture()
		b := confirmedBooking()
		b.Status = models.BookingStatusCompleted
		f.bookings.On("ByReference", mock.Anything, b.Reference).Return(b, nil)

		_, err := f.flow.UpdateBookingStatus(context.Background(), b.Reference, &dto.UpdateBookingStatusRequest{Status: "confirmed"}, 1, nil)
		assert.True(t, IsInvalidBookingStatusTransition(err))
	})

	t.Run("unknown status", func(t *testing.T) {
		f := newBookingFixture()
		_, err := f.flow.UpdateBookingStatus(context.Background(), "RNT-0000ABCD", &dto.UpdateBookingStatusRequest{Status: "bogus"}, 1, nil)
		assert.True(t, IsInvalidBookingStatusTransition(err))
	})

	t.Run("missing booking", func(t *testing.T) {
		f := newBookingFixture()
		f.bookings.On("ByReference", mock.Anything, "RNT-FFFFFFFF").Return(nil, nil)

		_, err := f.flow.UpdateBookingStatus(context.Background(), "RNT-FFFFFFFF", &dto.UpdateBookingStatusRequest{Status: "cancelled"}, 1, nil)
		assert.True(t, IsBookingNotFound(err))
	})

	t.Run("row vanished during update", func(t *testing.T) {
		f := newBookingFixture()
		f.bookings.On("ByReference", mock.Anything, "RNT-0000ABCD").Return(confirmedBooking(), nil)
		f.bookings.On("UpdateStatus", mock.Anything, uint(11), models.BookingStatusConfirmed, models.BookingStatusCancelled, (*time.Time)(nil)).Return(gorm.ErrRecordNotFound)

		_, err := f.flow.UpdateBookingStatus(context.Background(), "RNT-0000ABCD", &dto.UpdateBookingStatusRequest{Status: "cancelled"}, 1, nil)
		assert.True(t, IsBookingNotFound(err))
		assert.Empty(t, f.publisher.events)
	})

	t.Run("status changed by a concurrent request", func(t *testing.T) {
		f := newBookingFixture()
		f.bookings.On("ByReference", mock.Anything, "RNT-0000ABCD").Return(confirmedBooking(), nil)
		f.bookings.On("UpdateStatus", mock.Anything, uint(11), models.BookingStatusConfirmed, models.BookingStatusCancelled, (*time.Time)(nil)).
			Return(repository.ErrBookingStatusChanged)

		_, err := f.flow.UpdateBookingStatus(context.Background(), "RNT-0000ABCD", &dto.UpdateBookingStatusRequest{Status: "cancelled"}, 1, nil)
		assert.True(t, IsInvalidBookingStatusTransition(err))
		assert.ErrorIs(t, err, repository.ErrBookingStatusChanged)
		assert.Empty(t, f.publisher.events)
	})
}
