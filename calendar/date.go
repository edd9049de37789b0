/*
Package calendar provides the date arithmetic and business-day accounting
for the hours reporting robot.

PURPOSE:
  Every rule-driven computation in this system is anchored on calendar
  dates: which Friday closes a reporting week, which days inside a period
  are working days, how many hours a person was expected to log. This
  package owns those primitives so that the resolver and the
  reconciliation engine stay pure functions of their inputs.

KEY CONCEPTS IN THIS FILE (date.go):
  - Date: a calendar day (no time-of-day component, always UTC)
  - Week arithmetic: weeks start on Monday, matching the reporting rule
  - Month arithmetic: first/last day of a month

DESIGN PRINCIPLES:
  1. Value semantics: Date is a small immutable value, usable as a map key
  2. Determinism: nothing in this package reads the wall clock except
     Today(), which callers inject rather than call from business logic
  3. No I/O: pure computation only

SEE ALSO:
  - holidays.go: statutory + local holiday calendar
  - hours.go: business-day counting and expected-hours conversion
*/
package calendar

import (
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// DATE - A calendar day
// =============================================================================

// Date represents a single calendar day at UTC midnight.
//
// All constructors normalize through time.Date, so two Dates for the same
// day are == comparable and Date can be used as a map key.
type Date struct {
	Time time.Time
}

// NewDate builds a Date for the given year/month/day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time.Time to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today returns the current calendar day.
// Business logic should receive a Date instead of calling this directly.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses "dd/mm/yyyy", the format used by the timesheet portal.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("02/01/2006", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Comparison
func (d Date) Before(other Date) bool        { return d.Time.Before(other.Time) }
func (d Date) After(other Date) bool         { return d.Time.After(other.Time) }
func (d Date) Equal(other Date) bool         { return d.Time.Equal(other.Time) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }

// Arithmetic
func (d Date) AddDays(n int) Date   { return DateOf(d.Time.AddDate(0, 0, n)) }
func (d Date) AddMonths(n int) Date { return DateOf(d.Time.AddDate(0, n, 0)) }

// Properties
func (d Date) Year() int             { return d.Time.Year() }
func (d Date) Month() time.Month     { return d.Time.Month() }
func (d Date) Day() int              { return d.Time.Day() }
func (d Date) Weekday() time.Weekday { return d.Time.Weekday() }
func (d Date) IsZero() bool          { return d.Time.IsZero() }

func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// WeekdayIndex returns the day's position in a Monday-started week
// (Monday = 0 .. Sunday = 6).
func (d Date) WeekdayIndex() int {
	return (int(d.Weekday()) + 6) % 7
}

// StartOfWeek returns the Monday of the week containing d.
func (d Date) StartOfWeek() Date {
	return d.AddDays(-d.WeekdayIndex())
}

// SameMonth reports whether two dates fall in the same month and year.
func (d Date) SameMonth(other Date) bool {
	return d.Year() == other.Year() && d.Month() == other.Month()
}

// MonthBefore reports whether d's month is strictly before other's month,
// comparing (year, month) pairs.
func (d Date) MonthBefore(other Date) bool {
	if d.Year() != other.Year() {
		return d.Year() < other.Year()
	}
	return d.Month() < other.Month()
}

// String returns ISO format, for logs and errors.
func (d Date) String() string { return d.Time.Format("2006-01-02") }

// MarshalJSON encodes the date as its ISO string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes an ISO "yyyy-mm-dd" string.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	*d = DateOf(t)
	return nil
}

// DayMonth returns "dd/mm", the short form used in report titles.
func (d Date) DayMonth() string { return d.Time.Format("02/01") }

// DayMonthYear returns "dd/mm/yyyy", the portal's date format.
func (d Date) DayMonthYear() string { return d.Time.Format("02/01/2006") }

// =============================================================================
// MONTH BOUNDARIES
// =============================================================================

// StartOfMonth returns the first day of the given month.
func StartOfMonth(year int, month time.Month) Date {
	return NewDate(year, month, 1)
}

// EndOfMonth returns the last day of the given month.
func EndOfMonth(year int, month time.Month) Date {
	return DateOf(time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1))
}
