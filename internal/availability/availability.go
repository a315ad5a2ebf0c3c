// Package availability decides whether a calendar date can be booked.
package availability

import (
	"time"

	"github.com/spacehash/portal/internal/catalog"
)

// DayOf truncates t to midnight, keeping its location. All comparisons in
// this package are at day granularity.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// IsDateUnavailable reports whether d falls within any of the given ranges.
// A date is unavailable when it is strictly after start-1day and strictly
// before end+1day, which at day granularity is inclusive containment in
// [start, end]. A zero date is never unavailable.
func IsDateUnavailable(d time.Time, ranges []catalog.UnavailableRange) bool {
	if d.IsZero() {
		return false
	}
	day := DayOf(d)
	for _, r := range ranges {
		if day.After(r.Start.AddDate(0, 0, -1)) && day.Before(r.End.AddDate(0, 0, 1)) {
			return true
		}
	}
	return false
}

// IsDateAlreadySelected reports whether any of the selected dates is the same
// calendar day as d.
func IsDateAlreadySelected(d time.Time, selected []time.Time) bool {
	if d.IsZero() {
		return false
	}
	for _, s := range selected {
		if SameDay(s, d) {
			return true
		}
	}
	return false
}
