package models

import (
	"time"

	"github.com/reelgate-inc/reelgate/internal/shared/constants"
)

type UserProfileModel struct {
	UserID      string  `gorm:"primaryKey;size:128"`
	Email       *string `gorm:"size:255"`
	DisplayName string  `gorm:"size:100"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (UserProfileModel) TableName() string {
	return constants.TableUserProfiles
}
