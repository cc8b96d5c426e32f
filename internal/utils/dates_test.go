package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("Valid date", func(t *testing.T) {
		date, err := ParseDate("2024-01-15")
		require.NoError(t, err)
		assert.Equal(t, 2024, date.Year())
		assert.Equal(t, time.January, date.Month())
		assert.Equal(t, 15, date.Day())
		assert.Equal(t, time.UTC, date.Location())
	})

	t.Run("Surrounding whitespace", func(t *testing.T) {
		date, err := ParseDate(" 2024-01-15 ")
		require.NoError(t, err)
		assert.Equal(t, 15, date.Day())
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := ParseDate("")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "date is empty")
	})

	t.Run("Invalid format", func(t *testing.T) {
		_, err := ParseDate("2024/01/15")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid date format")
	})

	t.Run("Invalid month", func(t *testing.T) {
		_, err := ParseDate("2024-13-15")
		assert.Error(t, err)
	})

	t.Run("Invalid day", func(t *testing.T) {
		_, err := ParseDate("2023-02-29")
		assert.Error(t, err)
	})
}

func TestCalendarDate(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	late := time.Date(2024, 1, 1, 23, 30, 0, 0, ist)

	assert.Equal(t, "2024-01-01", FormatDate(late))
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), CalendarDate(late))
}

func TestInclusiveDays(t *testing.T) {
	date := func(s string) time.Time {
		d, err := ParseDate(s)
		require.NoError(t, err)
		return d
	}

	tests := []struct {
		name     string
		start    string
		end      string
		expected int
	}{
		{"Same day", "2024-01-15", "2024-01-15", 1},
		{"Six days later", "2024-01-01", "2024-01-07", 7},
		{"Cross month boundary", "2024-01-25", "2024-02-05", 12},
		{"Leap day", "2024-02-28", "2024-03-01", 3},
		{"Year boundary", "2023-12-25", "2024-01-10", 17},
		{"Inverted range", "2024-01-07", "2024-01-01", 7},
		{"Two thousand years", "0024-01-01", "2024-01-01", 730486},
		{"Inverted wide range", "2024-01-01", "1500-01-01", 191388},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, InclusiveDays(date(tt.start), date(tt.end)))
		})
	}

	t.Run("Time of day is ignored", func(t *testing.T) {
		start := date("2024-01-01")
		afternoon := time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC)
		assert.Equal(t, 1, InclusiveDays(start, afternoon))
	})
}
