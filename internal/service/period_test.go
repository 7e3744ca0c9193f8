package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classscore-api/internal/dto"
)

func TestResolveWindowPeriods(t *testing.T) {
	// 2026-03-04 is a Wednesday.
	wednesday := time.Date(2026, 3, 4, 15, 30, 0, 0, time.Local)

	cases := []struct {
		name  string
		now   time.Time
		query dto.LeaderboardQuery
		want  dateWindow
	}{
		{"empty period means all", wednesday, dto.LeaderboardQuery{}, dateWindow{}},
		{"all", wednesday, dto.LeaderboardQuery{Period: PeriodAll}, dateWindow{}},
		{"daily", wednesday, dto.LeaderboardQuery{Period: PeriodDaily}, dateWindow{start: "2026-03-04", end: "2026-03-04"}},
		{"weekly anchors on monday", wednesday, dto.LeaderboardQuery{Period: PeriodWeekly}, dateWindow{start: "2026-03-02", end: "2026-03-04"}},
		{"monthly starts on the first", wednesday, dto.LeaderboardQuery{Period: PeriodMonthly}, dateWindow{start: "2026-03-01", end: "2026-03-04"}},
		{"last30days spans 30 calendar days", wednesday, dto.LeaderboardQuery{Period: PeriodLast30Days}, dateWindow{start: "2026-02-03", end: "2026-03-04"}},
		{
			"custom passes bounds through",
			wednesday,
			dto.LeaderboardQuery{Period: PeriodCustom, StartDate: "2026-01-01", EndDate: "2026-01-31"},
			dateWindow{start: "2026-01-01", end: "2026-01-31"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			window, err := resolveWindow(tc.now, tc.query)
			require.NoError(t, err)
			require.Equal(t, tc.want, window)
		})
	}
}

func TestResolveWindowSundayBelongsToPreviousMonday(t *testing.T) {
	// 2026-03-08 is a Sunday; its week began on 2026-03-02.
	sunday := time.Date(2026, 3, 8, 9, 0, 0, 0, time.Local)

	window, err := resolveWindow(sunday, dto.LeaderboardQuery{Period: PeriodWeekly})
	require.NoError(t, err)
	require.Equal(t, dateWindow{start: "2026-03-02", end: "2026-03-08"}, window)
}

func TestResolveWindowRejectsBadInput(t *testing.T) {
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.Local)

	_, err := resolveWindow(now, dto.LeaderboardQuery{Period: "fortnightly"})
	require.ErrorIs(t, err, ErrPeriodInvalid)

	_, err = resolveWindow(now, dto.LeaderboardQuery{Period: PeriodCustom, StartDate: "2026-13-01", EndDate: "2026-03-04"})
	require.ErrorIs(t, err, ErrDateInvalid)

	_, err = resolveWindow(now, dto.LeaderboardQuery{Period: PeriodCustom, StartDate: "2026-03-05", EndDate: "2026-03-04"})
	require.ErrorIs(t, err, ErrDateInvalid)
}
