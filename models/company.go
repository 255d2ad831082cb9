package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company is a rental operator listed on the marketplace
type Company struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UUID              uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_companies_uuid" json:"uuid"`
	Name              string    `gorm:"size:255;not null" json:"name"`
	Slug              string    `gorm:"size:255;not null;uniqueIndex:uk_companies_slug" json:"slug"`
	Currency          string    `gorm:"size:3;not null;default:'EUR'" json:"currency"`
	CommissionRatePct float64   `gorm:"type:numeric(5,2);not null;default:15" json:"commission_rate_pct"` // marketplace share of completed bookings, 0..100
	IsActive          *bool     `gorm:"default:true;index:idx_companies_is_active" json:"is_active"`
	CreatedAt         time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_companies_created_at" json:"created_at"`
	UpdatedAt         time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (Company) TableName() string {
	return "companies"
}

// BeforeCreate ensures UUID is set
func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.UUID == uuid.Nil {
		c.UUID = uuid.New()
	}
	return nil
}

type CompanyFilter struct {
	ID       *uint      `json:"id,omitempty"`
	UUID     *uuid.UUID `json:"uuid,omitempty"`
	Slug     *string    `json:"slug,omitempty"`
	Name     *string    `json:"name,omitempty"` // case-insensitive substring match
	IsActive *bool      `json:"is_active,omitempty"`
}
