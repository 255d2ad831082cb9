package testing

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/amirphl/Rentora/models"
	"github.com/amirphl/Rentora/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// TestAdminPassword is the plain-text password of admins created by CreateTestAdmin
const TestAdminPassword = "TestPass123!"

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestAdmin creates an active admin with TestAdminPassword
func (tf *TestFixtures) CreateTestAdmin() (*models.Admin, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(TestAdminPassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.Admin{
		Username:     fmt.Sprintf("admin_%d", rand.Intn(1_000_000)),
		PasswordHash: string(hash),
		IsActive:     utils.ToPtr(true),
	}
	if err := tf.DB.DB.Create(admin).Error; err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return admin, nil
}

// CreateTestCompany creates an active company with a unique slug
func (tf *TestFixtures) CreateTestCompany(currency string, commissionRatePct float64) (*models.Company, error) {
	suffix := uuid.NewString()[:8]
	company := &models.Company{
		Name:              "Test Rentals " + suffix,
		Slug:              "test-rentals-" + suffix,
		Currency:          currency,
		CommissionRatePct: commissionRatePct,
		IsActive:          utils.ToPtr(true),
	}
	if err := tf.DB.DB.Create(company).Error; err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	return company, nil
}

// CreateTestRateCard creates an active rate card for the company
func (tf *TestFixtures) CreateTestRateCard(companyID uint, vehicleClass, dailyRate, cdwDailyRate string) (*models.RateCard, error) {
	card := &models.RateCard{
		CompanyID:    companyID,
		VehicleClass: vehicleClass,
		DailyRate:    decimal.RequireFromString(dailyRate),
		CDWDailyRate: decimal.RequireFromString(cdwDailyRate),
		IsActive:     utils.ToPtr(true),
	}
	if err := tf.DB.DB.Create(card).Error; err != nil {
		return nil, fmt.Errorf("failed to create rate card: %w", err)
	}
	return card, nil
}

// CreateCompletedBooking creates a completed booking worth amount, finished at completedAt
func (tf *TestFixtures) CreateCompletedBooking(company *models.Company, amount string, completedAt time.Time) (*models.Booking, error) {
	value := decimal.RequireFromString(amount)
	pickup := completedAt.Add(-72 * time.Hour)
	booking := &models.Booking{
		CompanyID:    company.ID,
		Reference:    "RNT-" + uuid.NewString()[:8],
		VehicleClass: "compact",
		PickupAt:     pickup,
		DropoffAt:    completedAt,
		RentalDays:   3,
		Tier:         "daily",
		QuotedAmount: value,
		FinalAmount:  value,
		Currency:     company.Currency,
		Status:       models.BookingStatusCompleted,
		CompletedAt:  &completedAt,
	}
	if err := tf.DB.DB.Create(booking).Error; err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return booking, nil
}
