// Package compliance evaluates time-bound safety obligations for a single tenant.
//
// Everything in this package is a pure computation over data that the caller has
// already loaded and scoped to one tenant. "Today" is always passed in explicitly
// so that results are reproducible.
package compliance

import "time"

// Clock supplies the current calendar day
type Clock interface {
	Today() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

// Today returns the current UTC date
func (SystemClock) Today() time.Time {
	return Date(time.Now())
}

// FixedClock always returns the same day
type FixedClock struct {
	Day time.Time
}

// Today returns the fixed day
func (c FixedClock) Today() time.Time {
	return Date(c.Day)
}

// Date truncates t to midnight UTC of its calendar day
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole days from "from" to "to".
// The result is negative when "to" is before "from".
func DaysBetween(from, to time.Time) int {
	return int(Date(to).Sub(Date(from)).Hours() / 24)
}

// AddDays returns the date n days after t
func AddDays(t time.Time, n int) time.Time {
	return Date(t).AddDate(0, 0, n)
}
