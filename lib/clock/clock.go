// Package clock provides the single source of "today" for the service.
// Handlers and services never read the wall clock directly, so tests can
// pin the date.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

// LocalDate formats the clock's current local date as YYYY-MM-DD, the
// representation stored on subjects and compared against toggles.
func LocalDate(c Clock) string {
	return c.Now().Format("2006-01-02")
}

// Weekday returns the clock's current weekday name (Sunday..Saturday),
// the key timetable entries are stored under.
func Weekday(c Clock) string {
	return c.Now().Weekday().String()
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().Local()
}

func NewSystemClock() Clock {
	return systemClock{}
}

// Fixed is a clock pinned to one instant.
type Fixed struct {
	Time time.Time
}

func (f Fixed) Now() time.Time {
	return f.Time
}
