package models

import "time"

// Classroom groups students, rules and managers under one teacher.
// Exactly one classroom per user carries IsDefault; the classroom service
// maintains that invariant, not the schema.
type Classroom struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	IsDefault bool      `gorm:"not null;default:false" json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Students []Student        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Rules    []Rule           `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Managers []StudentManager `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Settings []UserSetting    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
