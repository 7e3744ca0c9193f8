package models

import (
	"time"

	"gorm.io/datatypes"
)

// StudentManager is a restricted sub-account a teacher hands to a student:
// it is scoped to exactly one classroom and may only toggle the rules listed
// in AllowedRuleIDs. Keeping that set a subset of the classroom's rules is
// the manager service's responsibility.
type StudentManager struct {
	ID             uint                      `gorm:"primaryKey" json:"id"`
	UserID         uint                      `gorm:"index;not null" json:"user_id"`
	ClassroomID    uint                      `gorm:"index;not null" json:"classroom_id"`
	Username       string                    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	PasswordHash   string                    `gorm:"size:255;not null" json:"-"`
	DisplayName    string                    `gorm:"size:100;not null" json:"display_name"`
	AllowedRuleIDs datatypes.JSONSlice[uint] `gorm:"type:json" json:"allowed_rule_ids"`
	CreatedAt      time.Time                 `json:"created_at"`
	UpdatedAt      time.Time                 `json:"updated_at"`
}

// AllowsRule reports whether the manager may score the given rule.
func (m StudentManager) AllowsRule(ruleID uint) bool {
	for _, id := range m.AllowedRuleIDs {
		if id == ruleID {
			return true
		}
	}
	return false
}
