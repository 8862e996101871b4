package models

import "time"

// Category represents an expense category. Names are unique per owning user,
// not globally.
type Category struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"uniqueIndex:idx_user_category_name;not null"`
	Name        string `gorm:"size:64;uniqueIndex:idx_user_category_name;not null"`
	Description string `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
