package repository

import (
	"context"
	"fmt"

	"github.com/amirphl/Rentora/models"
	"github.com/amirphl/Rentora/pricing"
	"github.com/amirphl/Rentora/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BiddingConfigRepositoryImpl implements BiddingConfigRepository
type BiddingConfigRepositoryImpl struct {
	*BaseRepository[models.BiddingConfig, models.BiddingConfigFilter]
}

// NewBiddingConfigRepository creates a new repository for bidding configurations
func NewBiddingConfigRepository(db *gorm.DB) BiddingConfigRepository {
	return &BiddingConfigRepositoryImpl{
		BaseRepository: NewBaseRepository[models.BiddingConfig, models.BiddingConfigFilter](db),
	}
}

// ByCompanyID returns the company's bidding configuration, or nil if it was never saved
func (r *BiddingConfigRepositoryImpl) ByCompanyID(ctx context.Context, companyID uint) (*models.BiddingConfig, error) {
	return first[models.BiddingConfig](r.getDB(ctx).Where("company_id = ?", companyID))
}

// Upsert inserts or overwrites the company's row. NULL percentages are written as NULL so a
// disabled tier stays disabled.
func (r *BiddingConfigRepositoryImpl) Upsert(ctx context.Context, companyID uint, tiers pricing.BiddingTiers, adminID *uint) (*models.BiddingConfig, error) {
	row := &models.BiddingConfig{
		CompanyID:        companyID,
		UpdatedByAdminID: adminID,
		UpdatedAt:        utils.UTCNow(),
	}
	row.SetTiers(tiers)

	err := r.write(ctx, func(db *gorm.DB) error {
		return db.Clauses(
			clause.OnConflict{
				Columns: []clause.Column{{Name: "company_id"}},
				DoUpdates: clause.Assignments(map[string]any{
					"bidding_daily_pct":   clause.Expr{SQL: "EXCLUDED.bidding_daily_pct"},
					"bidding_weekly_pct":  clause.Expr{SQL: "EXCLUDED.bidding_weekly_pct"},
					"bidding_monthly_pct": clause.Expr{SQL: "EXCLUDED.bidding_monthly_pct"},
					"updated_by_admin_id": clause.Expr{SQL: "EXCLUDED.updated_by_admin_id"},
					"updated_at":          clause.Expr{SQL: "EXCLUDED.updated_at"},
				}),
			},
			clause.Returning{},
		).Create(row).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert bidding config for company %d: %w", companyID, err)
	}

	return row, nil
}

func (r *BiddingConfigRepositoryImpl) applyFilter(query *gorm.DB, filter models.BiddingConfigFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.CompanyID != nil {
		query = query.Where("company_id = ?", *filter.CompanyID)
	}
	return query
}

// ByFilter retrieves bidding configurations based on filter criteria
func (r *BiddingConfigRepositoryImpl) ByFilter(ctx context.Context, filter models.BiddingConfigFilter, orderBy string, limit, offset int) ([]*models.BiddingConfig, error) {
	query := r.applyFilter(r.getDB(ctx).Model(&models.BiddingConfig{}), filter)
	query = paginate(query, orderBy, "updated_at DESC", limit, offset)

	var rows []*models.BiddingConfig
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *BiddingConfigRepositoryImpl) Count(ctx context.Context, filter models.BiddingConfigFilter) (int64, error) {
	return count(r.applyFilter(r.getDB(ctx).Model(&models.BiddingConfig{}), filter))
}

func (r *BiddingConfigRepositoryImpl) Exists(ctx context.Context, filter models.BiddingConfigFilter) (bool, error) {
	n, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
