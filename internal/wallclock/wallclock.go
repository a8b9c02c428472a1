// Package wallclock handles the naive local date and time values used for
// bookings. Every value lives in time.UTC and carries no zone meaning.
package wallclock

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// ParseClock parses an HH:MM time of day. Seconds are accepted and dropped.
func ParseClock(s string) (time.Time, error) {
	t, err := time.ParseInLocation(ClockLayout, s, time.UTC)
	if err == nil {
		return t, nil
	}
	t, err2 := time.ParseInLocation("15:04:05", s, time.UTC)
	if err2 != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return t.Truncate(time.Minute), nil
}

// Combine places the clock part of clock on the calendar day of date.
func Combine(date, clock time.Time) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0,
		time.UTC,
	)
}

// Day strips the clock part.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func Clock(t time.Time) string {
	return t.Format(ClockLayout)
}

func Date(t time.Time) string {
	return t.Format(DateLayout)
}

// Now returns the current local wall time re-labelled as UTC.
func Now() time.Time {
	n := time.Now()
	return time.Date(n.Year(), n.Month(), n.Day(), n.Hour(), n.Minute(), n.Second(), n.Nanosecond(), time.UTC)
}
