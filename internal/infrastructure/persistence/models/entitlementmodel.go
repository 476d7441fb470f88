package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/reelgate-inc/reelgate/internal/shared/constants"
)

// EntitlementModel represents the database persistence model for entitlements.
// Rows are append-only; only the notification flags change after insert.
type EntitlementModel struct {
	ID                uint       `gorm:"primarykey"`
	UserID            string     `gorm:"not null;size:128;index:idx_user_created,priority:1"`
	Tier              string     `gorm:"not null;size:20;index:idx_tier_expires,priority:1"`
	Status            string     `gorm:"not null;size:20;default:completed"`
	ExternalSessionID string     `gorm:"not null;size:255;uniqueIndex:idx_external_session"`
	ExpiresAt         *time.Time `gorm:"index:idx_tier_expires,priority:2"`
	Warning48hSent    bool       `gorm:"column:warning_48h_sent;not null;default:false"`
	Warning24hSent    bool       `gorm:"column:warning_24h_sent;not null;default:false"`
	ExpiredSent       bool       `gorm:"not null;default:false"`
	Metadata          datatypes.JSON
	CreatedAt         time.Time `gorm:"not null;index:idx_user_created,priority:2"`
}

// TableName specifies the table name for GORM
func (EntitlementModel) TableName() string {
	return constants.TableEntitlements
}
