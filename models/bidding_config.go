package models

import (
	"time"

	"github.com/amirphl/Rentora/pricing"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BiddingConfig holds the minimum bid percentage per rental-length tier for one company.
// A NULL percentage means bidding is disabled for that tier.
// Table: bidding_configs
type BiddingConfig struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UUID              uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_bidding_configs_uuid" json:"uuid"`
	CompanyID         uint      `gorm:"not null;uniqueIndex:uk_bidding_configs_company_id" json:"company_id"`
	BiddingDailyPct   *float64  `gorm:"type:numeric(5,2)" json:"bidding_daily_pct"`
	BiddingWeeklyPct  *float64  `gorm:"type:numeric(5,2)" json:"bidding_weekly_pct"`
	BiddingMonthlyPct *float64  `gorm:"type:numeric(5,2)" json:"bidding_monthly_pct"`
	UpdatedByAdminID  *uint     `gorm:"index:idx_bidding_configs_updated_by" json:"updated_by_admin_id,omitempty"`
	CreatedAt         time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt         time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`

	Company Company `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"-"`
}

func (BiddingConfig) TableName() string {
	return "bidding_configs"
}

// BeforeCreate ensures UUID is set
func (b *BiddingConfig) BeforeCreate(tx *gorm.DB) error {
	if b.UUID == uuid.Nil {
		b.UUID = uuid.New()
	}
	return nil
}

// Tiers returns the stored percentages as pricing tiers. A nil config has every tier disabled.
func (b *BiddingConfig) Tiers() pricing.BiddingTiers {
	if b == nil {
		return pricing.BiddingTiers{}
	}
	return pricing.BiddingTiers{
		Daily:   b.BiddingDailyPct,
		Weekly:  b.BiddingWeeklyPct,
		Monthly: b.BiddingMonthlyPct,
	}
}

// SetTiers overwrites all three stored percentages
func (b *BiddingConfig) SetTiers(t pricing.BiddingTiers) {
	b.BiddingDailyPct = t.Daily
	b.BiddingWeeklyPct = t.Weekly
	b.BiddingMonthlyPct = t.Monthly
}

type BiddingConfigFilter struct {
	ID        *uint `json:"id,omitempty"`
	CompanyID *uint `json:"company_id,omitempty"`
}
