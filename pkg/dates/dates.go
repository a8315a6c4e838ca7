// Package dates is the single boundary for date construction and display
// formatting. All policy questions (local vs UTC, display format, default
// loan window) live here so they can be changed in one place.
package dates

import "time"

// DefaultLoanDays is the borrow-window length used when an item does not
// specify a duration.
const DefaultLoanDays = 7

// longFormat is the human-readable long date used everywhere a date is shown.
const longFormat = "January 2, 2006"

// Today returns the current moment in local time. Wire encoding keeps the
// offset (RFC 3339), so the server sees an unambiguous instant.
func Today() time.Time {
	return time.Now()
}

// AddDays returns t shifted by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// Window derives the default borrow window starting at start for an item
// with the given duration in days. A zero or negative duration falls back
// to DefaultLoanDays.
func Window(start time.Time, durationDays int) (time.Time, time.Time) {
	if durationDays <= 0 {
		durationDays = DefaultLoanDays
	}
	return start, AddDays(start, durationDays)
}

// Long formats t in the long display form, e.g. "March 14, 2026".
func Long(t time.Time) string {
	return t.Format(longFormat)
}
