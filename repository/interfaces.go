// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"time"

	"github.com/amirphl/Rentora/models"
	"github.com/amirphl/Rentora/pricing"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// AdminRepository defines operations for admins
type AdminRepository interface {
	Repository[models.Admin, models.AdminFilter]
	ByUsername(ctx context.Context, username string) (*models.Admin, error)
	UpdateLastLogin(ctx context.Context, adminID uint, at time.Time) error
}

// CompanyRepository defines operations for rental companies
type CompanyRepository interface {
	Repository[models.Company, models.CompanyFilter]
	BySlug(ctx context.Context, slug string) (*models.Company, error)
	Update(ctx context.Context, company *models.Company) error
}

// BiddingConfigRepository defines operations for per-company bidding percentages
type BiddingConfigRepository interface {
	Repository[models.BiddingConfig, models.BiddingConfigFilter]
	ByCompanyID(ctx context.Context, companyID uint) (*models.BiddingConfig, error)
	// Upsert writes all three tier percentages for the company, creating the row when missing
	Upsert(ctx context.Context, companyID uint, tiers pricing.BiddingTiers, adminID *uint) (*models.BiddingConfig, error)
}

// RateCardRepository defines operations for rate cards
type RateCardRepository interface {
	Repository[models.RateCard, models.RateCardFilter]
	LatestActive(ctx context.Context, companyID uint, vehicleClass string) (*models.RateCard, error)
}

// BookingRepository defines operations for bookings
type BookingRepository interface {
	Repository[models.Booking, models.BookingFilter]
	ByReference(ctx context.Context, reference string) (*models.Booking, error)
	UpdateStatus(ctx context.Context, id uint, from, to models.BookingStatus, completedAt *time.Time) error
	// ListCompletedInPeriod returns bookings completed in [from, to), oldest first
	ListCompletedInPeriod(ctx context.Context, companyID uint, from, to time.Time) ([]*models.Booking, error)
}
