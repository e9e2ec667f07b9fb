package domain

import "time"

// Period is a symbolic statistics window anchored to the start of the
// current calendar unit.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// Name returns the human-readable period name used in messages.
func (p Period) Name() string {
	switch p {
	case PeriodDay:
		return "день"
	case PeriodWeek:
		return "неделю"
	case PeriodMonth:
		return "месяц"
	case PeriodYear:
		return "год"
	}
	return string(p)
}

// PeriodStart returns the lower boundary of the period containing now,
// computed in now's location. The week starts on Monday. An unknown
// period returns ok=false; callers treat it as an empty result.
func PeriodStart(p Period, now time.Time) (time.Time, bool) {
	loc := now.Location()

	switch p {
	case PeriodDay:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc), true
	case PeriodWeek:
		// Monday of the current ISO week. time.Weekday numbers Sunday as 0.
		offset := (int(now.Weekday()) + 6) % 7
		monday := now.AddDate(0, 0, -offset)
		return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, loc), true
	case PeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc), true
	case PeriodYear:
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, loc), true
	}
	return time.Time{}, false
}

const dateLayout = "02.01.2006"

// ParseDate parses a dd.mm.yyyy user-entered date at midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, loc)
}

// FormatDate renders a date back to the dd.mm.yyyy form used in messages.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
