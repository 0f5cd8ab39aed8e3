package timeutil

import (
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the length of the circular clock used for time distances
const MinutesPerDay = 24 * 60

// ToMinutes parses an HH:MM string into minutes since midnight.
// Missing or malformed input returns 0 rather than an error: the matching
// engine treats bad time data as "no signal", not as a failure.
func ToMinutes(s string) int {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0
	}

	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0
	}

	return hours*60 + minutes
}

// CircularDiff returns the distance in minutes between two times of day on a
// 24-hour clock. 23:50 and 00:10 are 20 minutes apart, not 1420.
func CircularDiff(a, b int) int {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	if wrapped := MinutesPerDay - diff; wrapped < diff {
		return wrapped
	}
	return diff
}

// ParseServiceDate parses a service date in 2006-01-02 format
func ParseServiceDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// Instant combines a service date and an HH:MM start time into the UTC
// instant used for rest-window arithmetic. A malformed date yields the zero
// time; a malformed start time contributes 0 minutes (same safe default as
// ToMinutes).
func Instant(serviceDate, startTime string) time.Time {
	day, err := ParseServiceDate(serviceDate)
	if err != nil {
		return time.Time{}
	}
	return day.Add(time.Duration(ToMinutes(startTime)) * time.Minute)
}

// DayName returns the lowercase weekday name for a time. time.Weekday uses
// the Sunday=0 convention the preference profiles are built on.
func DayName(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}
