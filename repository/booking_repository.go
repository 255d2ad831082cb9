package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amirphl/Rentora/models"
	"github.com/amirphl/Rentora/utils"
	"gorm.io/gorm"
)

// ErrBookingStatusChanged is returned by UpdateStatus when the booking no longer holds the expected status
var ErrBookingStatusChanged = errors.New("booking status changed")

// BookingRepositoryImpl implements BookingRepository
type BookingRepositoryImpl struct {
	*BaseRepository[models.Booking, models.BookingFilter]
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &BookingRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Booking, models.BookingFilter](db),
	}
}

// ByReference retrieves a booking by its public reference
func (r *BookingRepositoryImpl) ByReference(ctx context.Context, reference string) (*models.Booking, error) {
	return first[models.Booking](r.getDB(ctx).Where("reference = ?", reference))
}

// UpdateStatus moves a booking from one status to another (and stamps the completion time).
// The write only applies while the row still holds from; otherwise ErrBookingStatusChanged is returned,
// or gorm.ErrRecordNotFound when the booking is gone.
func (r *BookingRepositoryImpl) UpdateStatus(ctx context.Context, id uint, from, to models.BookingStatus, completedAt *time.Time) error {
	return r.write(ctx, func(db *gorm.DB) error {
		updates := map[string]any{
			"status":     to,
			"updated_at": utils.UTCNow(),
		}
		if completedAt != nil {
			updates["completed_at"] = *completedAt
		}

		res := db.Model(&models.Booking{}).Where("id = ? AND status = ?", id, from).Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("failed to update booking %d status: %w", id, res.Error)
		}
		if res.RowsAffected > 0 {
			return nil
		}

		var count int64
		if err := db.Model(&models.Booking{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check booking %d: %w", id, err)
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return ErrBookingStatusChanged
	})
}

// ListCompletedInPeriod returns the company's bookings completed in [from, to), oldest first
func (r *BookingRepositoryImpl) ListCompletedInPeriod(ctx context.Context, companyID uint, from, to time.Time) ([]*models.Booking, error) {
	status := models.BookingStatusCompleted
	filter := models.BookingFilter{
		CompanyID:      &companyID,
		Status:         &status,
		CompletedAfter: &from,
		CompletedUntil: &to,
	}
	return r.ByFilter(ctx, filter, "completed_at ASC, id ASC", 0, 0)
}

func (r *BookingRepositoryImpl) applyFilter(query *gorm.DB, filter models.BookingFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.CompanyID != nil {
		query = query.Where("company_id = ?", *filter.CompanyID)
	}
	if filter.Reference != nil {
		query = query.Where("reference = ?", *filter.Reference)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CompletedAfter != nil {
		query = query.Where("completed_at >= ?", *filter.CompletedAfter)
	}
	if filter.CompletedUntil != nil {
		query = query.Where("completed_at < ?", *filter.CompletedUntil)
	}
	return query
}

// ByFilter retrieves bookings based on filter criteria
func (r *BookingRepositoryImpl) ByFilter(ctx context.Context, filter models.BookingFilter, orderBy string, limit, offset int) ([]*models.Booking, error) {
	query := r.applyFilter(r.getDB(ctx).Model(&models.Booking{}), filter)
	query = paginate(query, orderBy, "created_at DESC", limit, offset)

	var rows []*models.Booking
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *BookingRepositoryImpl) Count(ctx context.Context, filter models.BookingFilter) (int64, error) {
	return count(r.applyFilter(r.getDB(ctx).Model(&models.Booking{}), filter))
}

func (r *BookingRepositoryImpl) Exists(ctx context.Context, filter models.BookingFilter) (bool, error) {
	n, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
