package businessflow

import (
	"testing"
	"time"

	"github.com/amirphl/Rentora/app/dto"
	"github.com/amirphl/Rentora/app/services"
	"github.com/amirphl/Rentora/models"
	"github.com/amirphl/Rentora/repository"
	rtesting "github.com/amirphl/Rentora/testing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRentalLifecycle drives the flows against a real database: login, bidding
// configuration, a bid-backed booking through completion, then the statement.
func TestRentalLifecycle(t *testing.T) {
	tdb := rtesting.RequireTestDB(t)
	fixtures := rtesting.NewTestFixtures(tdb)
	ctx := rtesting.CreateTestContext()

	adminRepo := repository.NewAdminRepository(tdb.DB)
	companyRepo := repository.NewCompanyRepository(tdb.DB)
	biddingRepo := repository.NewBiddingConfigRepository(tdb.DB)
	rateCardRepo := repository.NewRateCardRepository(tdb.DB)
	bookingRepo := repository.NewBookingRepository(tdb.DB)

	tokens, err := services.NewTokenService(time.Hour, 24*time.Hour, "rentora", "rentora-admin-api", false, "", "", "test-secret", nil)
	require.NoError(t, err)
	publisher := services.NewNoopEventPublisher()
	cache := services.NewNoopBiddingConfigCache()

	admin, err := fixtures.CreateTestAdmin()
	require.NoError(t, err)
	company, err := fixtures.CreateTestCompany("EUR", 10)
	require.NoError(t, err)
	companyUUID := company.UUID.String()

	t.Run("login", func(t *testing.T) {
		resp, err := NewAdminAuthFlow(adminRepo, tokens, nil, false).Login(ctx, &dto.AdminCaptchaVerifyRequest{
			Username: admin.Username,
			Password: rtesting.TestAdminPassword,
		}, nil)
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Session.AccessToken)

		stored, err := adminRepo.ByID(ctx, admin.ID)
		require.NoError(t, err)
		assert.NotNil(t, stored.LastLoginAt)
	})

	biddingFlow := NewBiddingConfigFlow(companyRepo, biddingRepo, cache, publisher)

	t.Run("bidding configuration round trip", func(t *testing.T) {
		form, err := biddingFlow.GetDiscountForm(ctx, companyUUID)
		require.NoError(t, err)
		assert.False(t, form.Form.Weekly.Enabled)

		_, err = biddingFlow.UpdateDiscountForm(ctx, companyUUID, &dto.DiscountFormDTO{
			Weekly: dto.DiscountTierDTO{Enabled: true, Discount: 20},
		}, admin.ID, nil)
		require.NoError(t, err)

		payload, err := biddingFlow.GetBiddingConfig(ctx, companyUUID)
		require.NoError(t, err)
		require.NotNil(t, payload.BiddingWeeklyPct)
		assert.Equal(t, 80.0, *payload.BiddingWeeklyPct)
		assert.Nil(t, payload.BiddingDailyPct)
	})

	_, err = NewRateCardFlow(companyRepo, rateCardRepo).CreateRateCard(ctx, companyUUID, &dto.CreateRateCardRequest{
		VehicleClass: "compact",
		DailyRate:    decimal.RequireFromString("40"),
		CDWDailyRate: decimal.RequireFromString("5"),
	})
	require.NoError(t, err)

	bookingFlow := NewBookingFlow(companyRepo, rateCardRepo, biddingRepo, bookingRepo, cache, publisher)
	bid := decimal.RequireFromString("270")

	booking, err := bookingFlow.CreateBooking(ctx, companyUUID, &dto.CreateBookingRequest{
		VehicleClass: "compact",
		PickupAt:     pickup,
		DropoffAt:    pickup.Add(7 * 24 * time.Hour),
		IncludesCDW:  true,
		BidAmount:    &bid,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusAutoAccepted.String(), booking.Status)

	for _, status := range []string{"confirmed", "completed"} {
		_, err = bookingFlow.UpdateBookingStatus(ctx, booking.Reference, &dto.UpdateBookingStatusRequest{Status: status}, admin.ID, nil)
		require.NoError(t, err)
	}

	today := time.Now().UTC().Format("2006-01-02")
	statement, err := NewAccountingFlow(companyRepo, bookingRepo).CompanyStatement(ctx, companyUUID, &dto.StatementRequest{From: today, To: today})
	require.NoError(t, err)
	require.Len(t, statement.Lines, 1)
	assert.Equal(t, "270.00", statement.Totals.Gross)
	assert.Equal(t, "27.00", statement.Totals.Commission)
	assert.Equal(t, "243.00", statement.Totals.Payout)
}
