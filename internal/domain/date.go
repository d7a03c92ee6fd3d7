// internal/domain/date.go
package domain

import (
	"fmt"
	"strings"
	"time"

	"exercise-tracker/internal/util"
)

// CalendarLayout renders dates as e.g. "Mon Jan 01 2024".
const CalendarLayout = "Mon Jan 02 2006"

const dateOnlyLayout = "2006-01-02"

// Accepted input layouts, tried in order. Values without a zone are read as UTC.
var dateLayouts = []string{
	dateOnlyLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	CalendarLayout,
	"2006/01/02",
	"2006/1/2",
	"01/02/2006",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// FormatCalendarDate renders t in UTC using CalendarLayout.
func FormatCalendarDate(t time.Time) string {
	return t.UTC().Format(CalendarLayout)
}

// ParseDate parses a user-supplied date string.
// dateOnly is true when the input carried no time-of-day component.
func ParseDate(raw string) (t time.Time, dateOnly bool, err error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false, fmt.Errorf("%w: empty value", util.ErrInvalidDate)
	}
	for _, layout := range dateLayouts {
		parsed, parseErr := time.ParseInLocation(layout, value, time.UTC)
		if parseErr != nil {
			continue
		}
		return parsed.UTC(), !strings.Contains(layout, "15:04"), nil
	}
	return time.Time{}, false, fmt.Errorf("%w: %q", util.ErrInvalidDate, raw)
}

// EndOfDay returns the last microsecond of t's UTC calendar day.
// Postgres timestamps keep microseconds and round anything finer, so a
// nanosecond bound would land on the next midnight.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1).Add(-time.Microsecond)
}

// SameCalendarDay reports whether a and b fall on the same UTC day.
func SameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
