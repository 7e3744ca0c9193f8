package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const ledgerDateLayout = "2006-01-02"

// RegisterValidators installs the custom validation tags used by score
// payloads. Call once per validator instance.
func RegisterValidators(v *validator.Validate) error {
	return v.RegisterValidation("scoredate", func(fl validator.FieldLevel) bool {
		return IsLedgerDate(fl.Field().String())
	})
}

// IsLedgerDate reports whether s is a well-formed YYYY-MM-DD calendar date.
func IsLedgerDate(s string) bool {
	if len(s) != len(ledgerDateLayout) {
		return false
	}
	_, err := time.Parse(ledgerDateLayout, s)
	return err == nil
}

// ScoreToggleRequest flips one (student, rule, day) ledger entry between
// awarded and revoked.
type ScoreToggleRequest struct {
	StudentID uint   `json:"studentId" validate:"required"`
	RuleID    uint   `json:"ruleId" validate:"required"`
	Date      string `json:"date" validate:"required,scoredate"`
}

// ScoreAdjustRequest applies an arbitrary signed delta to one ledger entry.
type ScoreAdjustRequest struct {
	StudentID uint   `json:"studentId" validate:"required"`
	RuleID    uint   `json:"ruleId" validate:"required"`
	Date      string `json:"date" validate:"required,scoredate"`
	Delta     int    `json:"delta" validate:"required"`
}

// ScoreMutationResponse reports the ledger entry and denormalized total
// after a toggle or adjust.
type ScoreMutationResponse struct {
	StudentID  uint   `json:"studentId"`
	RuleID     uint   `json:"ruleId"`
	Date       string `json:"date"`
	Value      int    `json:"value"`
	TotalScore int    `json:"totalScore"`
}

// ScoreEntryResponse is one ledger row as returned by the date listing.
type ScoreEntryResponse struct {
	StudentID uint   `json:"studentId"`
	RuleID    uint   `json:"ruleId"`
	Date      string `json:"date"`
	Value     int    `json:"value"`
}

// BulkScoreRequest toggles one (rule, date) pair for every student in a
// classroom.
type BulkScoreRequest struct {
	ClassroomID uint   `json:"classroomId" validate:"required"`
	RuleID      uint   `json:"ruleId" validate:"required"`
	Date        string `json:"date" validate:"required,scoredate"`
}

// BulkScoreResult summarizes a classroom-wide toggle. Each student's toggle
// commits independently; a failure partway through leaves earlier toggles
// applied.
type BulkScoreResult struct {
	Applied int              `json:"applied"`
	Skipped int              `json:"skipped"`
	Failed  int              `json:"failed"`
	Rows    []BulkRowOutcome `json:"rows"`
}
