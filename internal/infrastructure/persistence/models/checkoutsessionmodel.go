package models

import (
	"time"

	"github.com/reelgate-inc/reelgate/internal/shared/constants"
)

// CheckoutSessionModel stores purchase intents handed to the payment processor.
type CheckoutSessionModel struct {
	ID                uint      `gorm:"primarykey"`
	Reference         string    `gorm:"not null;size:64;uniqueIndex"`
	UserID            string    `gorm:"not null;size:128;index"`
	Tier              string    `gorm:"not null;size:20"`
	AmountCents       int64     `gorm:"not null"`
	Currency          string    `gorm:"not null;size:10"`
	Status            string    `gorm:"not null;size:20;index:idx_status_expires,priority:1"`
	ExternalSessionID *string   `gorm:"size:255;uniqueIndex"`
	RedirectURL       string    `gorm:"type:text"`
	RejectReason      string    `gorm:"size:255"`
	ExpiresAt         time.Time `gorm:"not null;index:idx_status_expires,priority:2"`
	SettledAt         *time.Time
	Version           int `gorm:"not null;default:1"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (CheckoutSessionModel) TableName() string {
	return constants.TableCheckoutSessions
}
