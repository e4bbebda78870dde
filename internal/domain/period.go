package domain

import "time"

// Period is a statistics time window.
type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "7d"
	PeriodMonth Period = "30d"
	PeriodAll   Period = "all"
)

// AllPeriods returns the periods in menu order.
func AllPeriods() []Period {
	return []Period{PeriodToday, PeriodWeek, PeriodMonth, PeriodAll}
}

// Days returns the number of calendar days (counting today) the period covers,
// or nil for all time.
func (p Period) Days() *int {
	var days int
	switch p {
	case PeriodToday:
		days = 1
	case PeriodWeek:
		days = 7
	case PeriodMonth:
		days = 30
	default:
		return nil
	}
	return &days
}

// Title returns the heading used in summaries and chart titles.
func (p Period) Title() string {
	switch p {
	case PeriodToday:
		return "Today"
	case PeriodWeek:
		return "Last 7 days"
	case PeriodMonth:
		return "Last 30 days"
	default:
		return "All time"
	}
}

// IsValid returns true if the period is a known value.
func (p Period) IsValid() bool {
	switch p {
	case PeriodToday, PeriodWeek, PeriodMonth, PeriodAll:
		return true
	default:
		return false
	}
}

// Cutoff returns the start of the window: midnight, days-1 days before now.
func Cutoff(now time.Time, days int) time.Time {
	start := now.AddDate(0, 0, -(days - 1))
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, now.Location())
}
