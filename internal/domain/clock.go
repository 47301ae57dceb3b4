package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ClockTime is a time of day measured from midnight. Values past 24h are
// allowed and belong to the following day.
type ClockTime time.Duration

// Clock builds a ClockTime from hours and minutes.
func Clock(hour, minute int) ClockTime {
	return ClockTime(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

// ParseClock parses "HH:MM". "24:00" is accepted as the end of the day.
func ParseClock(s string) (ClockTime, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || len(hh) == 0 || len(hh) > 2 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || len(mm) != 2 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	if hour < 0 || minute < 0 || minute > 59 || hour > 24 || (hour == 24 && minute != 0) {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return Clock(hour, minute), nil
}

// MustParseClock is ParseClock for constants; it panics on bad input.
func MustParseClock(s string) ClockTime {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// HoursToDuration converts fractional hours to a Duration rounded to the second.
func HoursToDuration(hours float64) time.Duration {
	return time.Duration(math.Round(hours*3600)) * time.Second
}

// Add returns c shifted by d.
func (c ClockTime) Add(d time.Duration) ClockTime {
	return c + ClockTime(d)
}

// Sub returns the duration c - other.
func (c ClockTime) Sub(other ClockTime) time.Duration {
	return time.Duration(c - other)
}

// Hours returns c as fractional hours since midnight.
func (c ClockTime) Hours() float64 {
	return time.Duration(c).Hours()
}

// String formats c as "HH:MM", truncating seconds. Times past midnight keep
// counting ("25:15") so an end never reads earlier than its start.
// Negative offsets format as "00:00".
func (c ClockTime) String() string {
	minutes := int64(time.Duration(c) / time.Minute)
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
