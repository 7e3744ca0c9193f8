package models

import "time"

// DailyScore is the ledger: one signed value per (student, rule, calendar
// day). Repeated scoring events for the same day accumulate into this one
// row, never duplicate it. Dates are stored as plain YYYY-MM-DD strings so
// no timezone conversion can shift a score across a day boundary.
type DailyScore struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"not null;uniqueIndex:idx_daily_scores_entry,priority:1" json:"student_id"`
	RuleID    uint      `gorm:"not null;uniqueIndex:idx_daily_scores_entry,priority:2;index" json:"rule_id"`
	Date      string    `gorm:"size:10;not null;uniqueIndex:idx_daily_scores_entry,priority:3;index" json:"date"`
	Value     int       `gorm:"not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
