// Package rotation implements the deterministic month-to-host schedule
// generation and the phase arithmetic of the movie club. Everything here
// is pure computation: no I/O, no logging, no shared state between calls.
package rotation

import (
	"fmt"
	"time"
)

// Mode selects how hosts are assigned to months.
type Mode int

const (
	// ModeSequential walks the participant list in rotation order.
	ModeSequential Mode = iota
	// ModeRandomized draws from a without-replacement pool per phase,
	// using a fixed seed so every run produces the same schedule.
	ModeRandomized
)

// Kind distinguishes the two variants an Assignment can hold.
type Kind int

const (
	// KindPerson assigns a participant to host the month.
	KindPerson Kind = iota
	// KindAward marks a synthetic awards month; no participant hosts it.
	KindAward
)

// Assignment is the atomic unit of the generated schedule: one calendar
// month mapped to either a host or a numbered awards event.
type Assignment struct {
	// Month is the first-of-month date, UTC.
	Month time.Time

	Kind Kind

	// Person is the host name. Only set for KindPerson.
	Person string

	// AwardNumber is the 1-based awards event number. Only set for KindAward.
	AwardNumber int

	// Phase is the phase number attributed during generation. For an
	// awards month it is the number of the phase it follows.
	Phase int
}

// IsAward reports whether the assignment is a synthetic awards month.
func (a Assignment) IsAward() bool {
	return a.Kind == KindAward
}

// Label renders the assignment for display: the host name, or the
// awards event label.
func (a Assignment) Label() string {
	if a.Kind == KindAward {
		return fmt.Sprintf("Awards Event %d", a.AwardNumber)
	}
	return a.Person
}

// FirstOfMonth truncates t to the first of its month, midnight UTC.
// All months in the schedule map are normalized this way.
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthsBetween returns the calendar-month difference to minus from,
// ignoring days and time of day. Negative when to precedes from.
func MonthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}
