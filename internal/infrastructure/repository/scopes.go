package repository

import (
	"gorm.io/gorm"
)

// UserScope returns a GORM scope that filters by user_id.
// An empty user ID matches nothing so a missing identity can never read or
// update another user's row.
func UserScope(userID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if userID == "" {
			return db.Where("1 = 0")
		}
		return db.Where("user_id = ?", userID)
	}
}
