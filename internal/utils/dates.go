package utils

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used by ledger rows
const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// ParseDate converts a yyyy-mm-dd formatted string into a UTC midnight time
func ParseDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}

	t, err := time.ParseInLocation(DateLayout, dateStr, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, expected yyyy-mm-dd: %w", err)
	}
	return t, nil
}

// FormatDate renders the calendar date of t as yyyy-mm-dd
func FormatDate(t time.Time) string {
	return CalendarDate(t).Format(DateLayout)
}

// CalendarDate drops the time of day, keeping the date as seen in t's location
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// InclusiveDays counts calendar days from start to end, both ends included.
// The order of the arguments does not matter; same-day ranges count as 1.
func InclusiveDays(start, end time.Time) int {
	// Unix seconds rather than Sub, which saturates past ~292 years.
	diff := CalendarDate(end).Unix() - CalendarDate(start).Unix()
	if diff < 0 {
		diff = -diff
	}
	return int(diff/secondsPerDay) + 1
}
