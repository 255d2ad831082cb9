package repository

import (
	"context"
	"fmt"

	"github.com/amirphl/Rentora/models"
	"github.com/amirphl/Rentora/utils"
	"gorm.io/gorm"
)

// CompanyRepositoryImpl implements CompanyRepository
type CompanyRepositoryImpl struct {
	*BaseRepository[models.Company, models.CompanyFilter]
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &CompanyRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Company, models.CompanyFilter](db),
	}
}

// BySlug retrieves a company by its unique slug
func (r *CompanyRepositoryImpl) BySlug(ctx context.Context, slug string) (*models.Company, error) {
	return first[models.Company](r.getDB(ctx).Where("slug = ?", slug))
}

// Update persists every column of company
func (r *CompanyRepositoryImpl) Update(ctx context.Context, company *models.Company) error {
	return r.write(ctx, func(db *gorm.DB) error {
		company.UpdatedAt = utils.UTCNow()
		if err := db.Save(company).Error; err != nil {
			return fmt.Errorf("failed to update company %d: %w", company.ID, err)
		}
		return nil
	})
}

func (r *CompanyRepositoryImpl) applyFilter(query *gorm.DB, filter models.CompanyFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.Slug != nil {
		query = query.Where("slug = ?", *filter.Slug)
	}
	if filter.Name != nil {
		query = query.Where("name ILIKE ?", "%"+*filter.Name+"%")
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	return query
}

// ByFilter retrieves companies based on filter criteria
func (r *CompanyRepositoryImpl) ByFilter(ctx context.Context, filter models.CompanyFilter, orderBy string, limit, offset int) ([]*models.Company, error) {
	query := r.applyFilter(r.getDB(ctx).Model(&models.Company{}), filter)
	query = paginate(query, orderBy, "created_at DESC", limit, offset)

	var rows []*models.Company
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *CompanyRepositoryImpl) Count(ctx context.Context, filter models.CompanyFilter) (int64, error) {
	return count(r.applyFilter(r.getDB(ctx).Model(&models.Company{}), filter))
}

func (r *CompanyRepositoryImpl) Exists(ctx context.Context, filter models.CompanyFilter) (bool, error) {
	n, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
