package models

import "time"

// Rule is a scoreable behavior category with its display icon and color.
type Rule struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	ClassroomID uint      `gorm:"index;not null" json:"classroom_id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	IconID      string    `gorm:"size:50;not null" json:"icon_id"`
	Color       string    `gorm:"size:20;not null" json:"color"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	DailyScores []DailyScore `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
