package models

import "time"

// Expense represents a single spending record.
type Expense struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     uint      `gorm:"index;not null"`
	CategoryID uint      `gorm:"index;not null"`
	Title      string    `gorm:"size:128;not null"`
	Amount     float64   `gorm:"not null"`
	Date       time.Time `gorm:"index;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	User     User     `gorm:"constraint:OnDelete:CASCADE"`
	Category Category `gorm:"constraint:OnDelete:RESTRICT"`
}
