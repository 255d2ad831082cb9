package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RateCard is a company's daily price for a vehicle class.
// Rate cards are append-only; the latest active row per (company, vehicle class) is the one in effect.
// Table: rate_cards
type RateCard struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	UUID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uk_rate_cards_uuid" json:"uuid"`
	CompanyID    uint            `gorm:"not null;index:idx_rate_cards_company_class" json:"company_id"`
	VehicleClass string          `gorm:"size:64;not null;index:idx_rate_cards_company_class" json:"vehicle_class"`
	DailyRate    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"daily_rate"`
	CDWDailyRate decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"cdw_daily_rate"` // collision damage waiver add-on
	IsActive     *bool           `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time       `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_rate_cards_created_at" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`

	Company Company `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"-"`
}

func (RateCard) TableName() string {
	return "rate_cards"
}

// BeforeCreate ensures UUID is set
func (r *RateCard) BeforeCreate(tx *gorm.DB) error {
	if r.UUID == uuid.Nil {
		r.UUID = uuid.New()
	}
	return nil
}

type RateCardFilter struct {
	ID           *uint   `json:"id,omitempty"`
	CompanyID    *uint   `json:"company_id,omitempty"`
	VehicleClass *string `json:"vehicle_class,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}
