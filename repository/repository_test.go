package repository

import (
	"context"
	"testing"
	"time"

	"github.com/amirphl/Rentora/models"
	"github.com/amirphl/Rentora/pricing"
	rtesting "github.com/amirphl/Rentora/testing"
	"github.com/amirphl/Rentora/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAdminRepository(t *testing.T) {
	tdb := rtesting.RequireTestDB(t)
	fixtures := rtesting.NewTestFixtures(tdb)
	repo := NewAdminRepository(tdb.DB)
	ctx := context.Background()

	admin, err := fixtures.CreateTestAdmin()
	require.NoError(t, err)

	got, err := repo.ByUsername(ctx, admin.Username)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, admin.ID, got.ID)
	assert.Nil(t, got.LastLoginAt)

	missing, err := repo.ByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)

	now := utils.UTCNow().Truncate(time.Second)
	require.NoError(t, repo.UpdateLastLogin(ctx, admin.ID, now))

	got, err = repo.ByID(ctx, admin.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastLoginAt)
	assert.True(t, now.Equal(*got.LastLoginAt))

	exists, err := repo.Exists(ctx, models.AdminFilter{IsActive: utils.ToPtr(true)})
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCompanyRepository(t *testing.T) {
	tdb := rtesting.RequireTestDB(t)
	repo := NewCompanyRepository(tdb.DB)
	ctx := context.Background()

	company := &models.Company{Name: "Sunny Wheels", Slug: "sunny-wheels", Currency: "EUR", CommissionRatePct: 12.5, IsActive: utils.ToPtr(true)}
	require.NoError(t, repo.Save(ctx, company))
	assert.NotZero(t, company.ID)
	assert.NotEqual(t, "", company.UUID.String())

	got, err := repo.BySlug(ctx, "sunny-wheels")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 12.5, got.CommissionRatePct)

	got.Name = "Sunny Wheels GmbH"
	require.NoError(t, repo.Update(ctx, got))

	rows, err := repo.ByFilter(ctx, models.CompanyFilter{Name: utils.ToPtr("gmbh")}, "", 10, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Sunny Wheels GmbH", rows[0].Name)

	n, err := repo.Count(ctx, models.CompanyFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestBiddingConfigRepository_Upsert(t *testing.T) {
	tdb := rtesting.RequireTestDB(t)
	fixtures := rtesting.NewTestFixtures(tdb)
	repo := NewBiddingConfigRepository(tdb.DB)
	ctx := context.Background()

	company, err := fixtures.CreateTestCompany("EUR", 15)
	require.NoError(t, err)

	none, err := repo.ByCompanyID(ctx, company.ID)
	require.NoError(t, err)
	assert.Nil(t, none)

	first, err := repo.Upsert(ctx, company.ID, pricing.BiddingTiers{Daily: utils.ToPtr(85.0), Weekly: utils.ToPtr(80.0)}, nil)
	require.NoError(t, err)
	assert.NotZero(t, first.ID)

	second, err := repo.Upsert(ctx, company.ID, pricing.BiddingTiers{Monthly: utils.ToPtr(70.0)}, nil)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	stored, err := repo.ByCompanyID(ctx, company.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Nil(t, stored.BiddingDailyPct)
	assert.Nil(t, stored.BiddingWeeklyPct)
	require.NotNil(t, stored.BiddingMonthlyPct)
	assert.Equal(t, 70.0, *stored.BiddingMonthlyPct)

	n, err := repo.Count(ctx, models.BiddingConfigFilter{CompanyID: &company.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRateCardRepository_LatestActive(t *testing.T) {
	tdb := rtesting.RequireTestDB(t)
	fixtures := rtesting.NewTestFixtures(tdb)
	repo := NewRateCardRepository(tdb.DB)
	ctx := context.Background()

	company, err := fixtures.CreateTestCompany("EUR", 15)
	require.NoError(t, err)

	_, err = fixtures.CreateTestRateCard(company.ID, "compact", "40.00", "8.00")
	require.NoError(t, err)
	latest, err := fixtures.CreateTestRateCard(company.ID, "compact", "45.00", "9.00")
	require.NoError(t, err)
	_, err = fixtures.CreateTestRateCard(company.ID, "suv", "90.00", "15.00")
	require.NoError(t, err)

	got, err := repo.LatestActive(ctx, company.ID, "compact")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, latest.ID, got.ID)
	assert.True(t, decimal.RequireFromString("45").Equal(got.DailyRate))

	none, err := repo.LatestActive(ctx, company.ID, "van")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestBookingRepository(t *testing.T) {
	tdb := rtesting.RequireTestDB(t)
	fixtures := rtesting.NewTestFixtures(tdb)
	repo := NewBookingRepository(tdb.DB)
	ctx := context.Background()

	company, err := fixtures.CreateTestCompany("EUR", 15)
	require.NoError(t, err)

	march := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	april := time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC)
	inMarch, err := fixtures.CreateCompletedBooking(company, "300.00", march)
	require.NoError(t, err)
	_, err = fixtures.CreateCompletedBooking(company, "120.00", april)
	require.NoError(t, err)

	rows, err := repo.ListCompletedInPeriod(ctx, company.ID,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, inMarch.ID, rows[0].ID)

	byRef, err := repo.ByReference(ctx, inMarch.Reference)
	require.NoError(t, err)
	require.NotNil(t, byRef)

	require.NoError(t, repo.UpdateStatus(ctx, inMarch.ID, models.BookingStatusCompleted, models.BookingStatusCancelled, nil))
	got, err := repo.ByID(ctx, inMarch.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, got.Status)

	// a second writer still expecting the old status loses
	err = repo.UpdateStatus(ctx, inMarch.ID, models.BookingStatusCompleted, models.BookingStatusConfirmed, nil)
	assert.ErrorIs(t, err, ErrBookingStatusChanged)
	got, err = repo.ByID(ctx, inMarch.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, got.Status)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, 999999, models.BookingStatusConfirmed, models.BookingStatusCancelled, nil), gorm.ErrRecordNotFound)
}

func TestWithTransaction_RollsBack(t *testing.T) {
	tdb := rtesting.RequireTestDB(t)
	repo := NewCompanyRepository(tdb.DB)
	ctx := context.Background()

	err := WithTransaction(ctx, tdb.DB, func(txCtx context.Context) error {
		if err := repo.Save(txCtx, &models.Company{Name: "Temp", Slug: "temp", Currency: "EUR"}); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	got, err := repo.BySlug(ctx, "temp")
	require.NoError(t, err)
	assert.Nil(t, got)
}
