// Package dates turns the free-form date strings found on webpages and
// in model output into comparable UTC instants.
package dates

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Normalize converts a raw date string into a timezone-aware instant.
// Relative phrases ("today", "yesterday", "2 days ago") resolve against
// now and are truncated to day start in UTC; everything else goes
// through free-form parsing with UTC assumed when no zone is present.
// ok is false when nothing matched; callers treat that as "no date",
// never as a fatal condition.
func Normalize(raw string, now time.Time) (t time.Time, ok bool) {
	lower := strings.ToLower(raw)
	now = now.UTC()

	switch {
	case strings.Contains(lower, "today"):
		return dayStart(now), true
	case strings.Contains(lower, "yesterday"):
		return dayStart(now.AddDate(0, 0, -1)), true
	case strings.Contains(lower, "ago"):
		if t, ok := relative(lower, now); ok {
			return t, true
		}
	}

	parsed, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// relative handles "N <unit> ago" phrases. Months and years are the
// fixed 30/365-day approximations, not calendar-exact.
func relative(lower string, now time.Time) (time.Time, bool) {
	parts := strings.Fields(lower)
	if len(parts) < 2 {
		return time.Time{}, false
	}
	value, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, false
	}

	unit := parts[1]
	switch {
	case strings.Contains(unit, "day"):
		return dayStart(now.AddDate(0, 0, -value)), true
	case strings.Contains(unit, "week"):
		return dayStart(now.AddDate(0, 0, -value*7)), true
	case strings.Contains(unit, "month"):
		return dayStart(now.AddDate(0, 0, -value*30)), true
	case strings.Contains(unit, "year"):
		return dayStart(now.AddDate(0, 0, -value*365)), true
	}
	return time.Time{}, false
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
