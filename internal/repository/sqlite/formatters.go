package sqlite

import (
	"time"
)

// dbTimeLayout has a fixed-width fraction so stored values sort as text.
const dbTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FormatTimeForDB formats a time.Time value in UTC for consistent database storage
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(dbTimeLayout)
}

// ParseTimeFromDB parses a time string written by FormatTimeForDB. Plain
// RFC3339 values are accepted too.
func ParseTimeFromDB(s string) (time.Time, error) {
	t, err := time.Parse(dbTimeLayout, s)
	if err != nil {
		return time.Parse(time.RFC3339Nano, s)
	}
	return t, nil
}

// NullableString returns nil for an empty string so it is stored as NULL.
func NullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
