package db

import (
	"gorm.io/gorm"
)

// ForUser restricts a query to rows owned by userID.
func ForUser(userID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

// NewestFirst orders by creation time, newest first. Rows created in the same
// instant are ordered by descending id so the result is deterministic.
func NewestFirst() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC").Order("id DESC")
	}
}
