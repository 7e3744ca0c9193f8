package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func TestIsLedgerDate(t *testing.T) {
	valid := []string{"2026-03-02", "2024-02-29", "1999-12-31"}
	for _, s := range valid {
		require.True(t, IsLedgerDate(s), s)
	}

	invalid := []string{"", "2026-3-2", "2026/03/02", "2026-13-01", "2026-02-30", "02-03-2026", "2026-03-02T00:00:00Z"}
	for _, s := range invalid {
		require.False(t, IsLedgerDate(s), s)
	}
}

func TestScoredateValidationTag(t *testing.T) {
	v := validator.New(validator.WithRequiredStructEnabled())
	require.NoError(t, RegisterValidators(v))

	require.NoError(t, v.Struct(ScoreToggleRequest{StudentID: 1, RuleID: 1, Date: "2026-03-02"}))
	require.Error(t, v.Struct(ScoreToggleRequest{StudentID: 1, RuleID: 1, Date: "today"}))
	require.Error(t, v.Struct(ScoreAdjustRequest{StudentID: 1, RuleID: 1, Date: "2026-03-02"}), "zero delta fails required")
}
