package service

import (
	"time"

	"github.com/noah-isme/classscore-api/internal/dto"
)

const ledgerDateLayout = "2006-01-02"

// Leaderboard period names accepted by the aggregator.
const (
	PeriodAll        = "all"
	PeriodDaily      = "daily"
	PeriodWeekly     = "weekly"
	PeriodMonthly    = "monthly"
	PeriodLast30Days = "last30days"
	PeriodCustom     = "custom"
)

// dateWindow is an inclusive calendar-date range; empty bounds mean
// unbounded.
type dateWindow struct {
	start string
	end   string
}

// resolveWindow maps a period query to concrete date bounds using the
// server's local calendar date. Local time is deliberate: deriving "today"
// from UTC shifts scores across midnight for timezones behind UTC.
func resolveWindow(now time.Time, query dto.LeaderboardQuery) (dateWindow, error) {
	today := now.Format(ledgerDateLayout)

	switch query.Period {
	case "", PeriodAll:
		return dateWindow{}, nil

	case PeriodDaily:
		return dateWindow{start: today, end: today}, nil

	case PeriodWeekly:
		// Monday anchors the week; Sunday belongs to the week that began
		// six days earlier.
		offset := (int(now.Weekday()) + 6) % 7
		monday := now.AddDate(0, 0, -offset).Format(ledgerDateLayout)
		return dateWindow{start: monday, end: today}, nil

	case PeriodMonthly:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format(ledgerDateLayout)
		return dateWindow{start: first, end: today}, nil

	case PeriodLast30Days:
		start := now.AddDate(0, 0, -29).Format(ledgerDateLayout)
		return dateWindow{start: start, end: today}, nil

	case PeriodCustom:
		if !dto.IsLedgerDate(query.StartDate) || !dto.IsLedgerDate(query.EndDate) {
			return dateWindow{}, ErrDateInvalid
		}
		if query.StartDate > query.EndDate {
			return dateWindow{}, ErrDateInvalid
		}
		return dateWindow{start: query.StartDate, end: query.EndDate}, nil

	default:
		return dateWindow{}, ErrPeriodInvalid
	}
}
