package repository

import (
	"context"

	"github.com/amirphl/Rentora/models"
	"gorm.io/gorm"
)

// RateCardRepositoryImpl implements RateCardRepository
type RateCardRepositoryImpl struct {
	*BaseRepository[models.RateCard, models.RateCardFilter]
}

// NewRateCardRepository creates a new rate card repository
func NewRateCardRepository(db *gorm.DB) RateCardRepository {
	return &RateCardRepositoryImpl{
		BaseRepository: NewBaseRepository[models.RateCard, models.RateCardFilter](db),
	}
}

// LatestActive returns the most recently created active rate card for the vehicle class (last inserted wins)
func (r *RateCardRepositoryImpl) LatestActive(ctx context.Context, companyID uint, vehicleClass string) (*models.RateCard, error) {
	query := r.getDB(ctx).
		Where("company_id = ? AND vehicle_class = ? AND is_active = ?", companyID, vehicleClass, true).
		Order("created_at DESC").
		Order("id DESC")
	return first[models.RateCard](query)
}

func (r *RateCardRepositoryImpl) applyFilter(query *gorm.DB, filter models.RateCardFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.CompanyID != nil {
		query = query.Where("company_id = ?", *filter.CompanyID)
	}
	if filter.VehicleClass != nil {
		query = query.Where("vehicle_class = ?", *filter.VehicleClass)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	return query
}

// ByFilter retrieves rate cards based on filter criteria
func (r *RateCardRepositoryImpl) ByFilter(ctx context.Context, filter models.RateCardFilter, orderBy string, limit, offset int) ([]*models.RateCard, error) {
	query := r.applyFilter(r.getDB(ctx).Model(&models.RateCard{}), filter)
	query = paginate(query, orderBy, "created_at DESC", limit, offset)

	var rows []*models.RateCard
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *RateCardRepositoryImpl) Count(ctx context.Context, filter models.RateCardFilter) (int64, error) {
	return count(r.applyFilter(r.getDB(ctx).Model(&models.RateCard{}), filter))
}

func (r *RateCardRepositoryImpl) Exists(ctx context.Context, filter models.RateCardFilter) (bool, error) {
	n, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
