package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusPending      BookingStatus = "pending"
	BookingStatusAutoAccepted BookingStatus = "auto_accepted"
	BookingStatusConfirmed    BookingStatus = "confirmed"
	BookingStatusCompleted    BookingStatus = "completed"
	BookingStatusCancelled    BookingStatus = "cancelled"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:      {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusAutoAccepted: {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed:    {BookingStatusCompleted, BookingStatusCancelled},
}

func (s BookingStatus) String() string {
	return string(s)
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusAutoAccepted, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a booking in status s may move to next.
// Completed and cancelled are terminal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return slices.Contains(bookingTransitions[s], next)
}

// Booking is a reservation made through the marketplace, optionally at a bid price
// Table: bookings
type Booking struct {
	ID                uint             `gorm:"primaryKey" json:"id"`
	UUID              uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:uk_bookings_uuid" json:"uuid"`
	CompanyID         uint             `gorm:"not null;index:idx_bookings_company_status" json:"company_id"`
	Reference         string           `gorm:"size:32;not null;uniqueIndex:uk_bookings_reference" json:"reference"`
	VehicleClass      string           `gorm:"size:64;not null" json:"vehicle_class"`
	PickupAt          time.Time        `gorm:"not null" json:"pickup_at"`
	DropoffAt         time.Time        `gorm:"not null" json:"dropoff_at"`
	RentalDays        int              `gorm:"not null" json:"rental_days"`
	Tier              string           `gorm:"size:16;not null" json:"tier"`
	IncludesCDW       bool             `gorm:"not null;default:false" json:"includes_cdw"`
	QuotedAmount      decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"quoted_amount"`
	BidAmount         *decimal.Decimal `gorm:"type:numeric(12,2)" json:"bid_amount,omitempty"`
	FinalAmount       decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"final_amount"`
	BiddingPctApplied *float64         `gorm:"type:numeric(5,2)" json:"bidding_pct_applied,omitempty"`
	Currency          string           `gorm:"size:3;not null" json:"currency"`
	Status            BookingStatus    `gorm:"size:20;not null;default:'pending';index:idx_bookings_company_status" json:"status"`
	CompletedAt       *time.Time       `gorm:"index:idx_bookings_completed_at" json:"completed_at,omitempty"`
	CreatedAt         time.Time        `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_bookings_created_at" json:"created_at"`
	UpdatedAt         time.Time        `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`

	Company Company `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Booking) TableName() string {
	return "bookings"
}

// BeforeCreate ensures UUID is set
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.UUID == uuid.Nil {
		b.UUID = uuid.New()
	}
	return nil
}

type BookingFilter struct {
	ID             *uint          `json:"id,omitempty"`
	CompanyID      *uint          `json:"company_id,omitempty"`
	Reference      *string        `json:"reference,omitempty"`
	Status         *BookingStatus `json:"status,omitempty"`
	CompletedAfter *time.Time     `json:"completed_after,omitempty"` // inclusive
	CompletedUntil *time.Time     `json:"completed_until,omitempty"` // exclusive
}
