package models

import "time"

// Student is one scoreable learner. The (classroom, grade, class, number)
// tuple is the natural identity shown to teachers; the surrogate ID keeps
// ledger rows stable when a student is renumbered.
//
// Score is the denormalized lifetime total, maintained in the same
// transaction as every ledger write. It always reflects the unfiltered sum
// of the student's DailyScore values and must never be used for
// period-filtered totals.
type Student struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	ClassroomID uint      `gorm:"not null;uniqueIndex:idx_students_identity,priority:1" json:"classroom_id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Grade       int       `gorm:"not null;uniqueIndex:idx_students_identity,priority:2" json:"grade"`
	ClassNum    int       `gorm:"not null;uniqueIndex:idx_students_identity,priority:3" json:"class_num"`
	StudentNum  int       `gorm:"not null;uniqueIndex:idx_students_identity,priority:4" json:"student_num"`
	Score       int       `gorm:"not null;default:0" json:"score"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	DailyScores []DailyScore `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
