/*
holidays.go - Statutory and local holiday calendar

PURPOSE:
  Answers "is this date a holiday?" for the jurisdiction the timesheet
  portal operates in: Brazilian national holidays, the São Paulo state
  holiday, and a configurable set of fixed-date municipal holidays.

DESIGN:
  Built on rickar/cal's BusinessCalendar, which already knows the national
  statutory set (including the Easter-derived movable feasts). Municipal
  dates are plain month/day pairs applied to every year queried; they are
  configuration, not law — a deployment in another city swaps them out.

  The calendar is a pure function of the year: no network, no side
  effects, safe to rebuild per run and to query concurrently.

SEE ALSO:
  - hours.go: consumes IsBusinessDay for expected-hours accounting
*/
package calendar

import (
	"time"

	cal "github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/br"
	"github.com/shopspring/decimal"
)

// =============================================================================
// LOCAL HOLIDAYS - Fixed-date municipal observances
// =============================================================================

// LocalHoliday is a fixed-date holiday observed on the same month/day
// every year, on top of the statutory calendar.
type LocalHoliday struct {
	Name  string
	Month time.Month
	Day   int
}

// DefaultLocalHolidays returns the municipal pair for Santos/SP, the
// deployment this robot was written for.
func DefaultLocalHolidays() []LocalHoliday {
	return []LocalHoliday{
		{Name: "Aniversário de Santos", Month: time.January, Day: 26},
		{Name: "Nossa Senhora do Monte Serrat", Month: time.September, Day: 8},
	}
}

// revolucaoConstitucionalista is the São Paulo state holiday (9 July),
// not part of the national set shipped by rickar/cal.
var revolucaoConstitucionalista = &cal.Holiday{
	Name:  "Revolução Constitucionalista",
	Type:  cal.ObservancePublic,
	Month: time.July,
	Day:   9,
	Func:  cal.CalcDayOfMonth,
}

// =============================================================================
// CALENDAR - Holiday lookup + workday policy
// =============================================================================

// Calendar combines the statutory holiday set with local holidays and the
// workday-hours policy. One instance is built per run.
type Calendar struct {
	// WorkdayHours is the contracted hours per business day.
	WorkdayHours decimal.Decimal

	business *cal.BusinessCalendar
}

// New builds a Calendar with the national + São Paulo state holidays plus
// the given local holidays. Pass DefaultLocalHolidays() for the standard
// deployment, or nothing for the statutory set only.
func New(local ...LocalHoliday) *Calendar {
	bc := cal.NewBusinessCalendar()
	bc.AddHoliday(br.Holidays...)
	bc.AddHoliday(revolucaoConstitucionalista)
	for _, lh := range local {
		bc.AddHoliday(&cal.Holiday{
			Name:  lh.Name,
			Type:  cal.ObservancePublic,
			Month: lh.Month,
			Day:   lh.Day,
			Func:  cal.CalcDayOfMonth,
		})
	}
	return &Calendar{
		WorkdayHours: decimal.NewFromInt(8),
		business:     bc,
	}
}

// IsHoliday reports whether the date is a statutory or local holiday.
func (c *Calendar) IsHoliday(d Date) bool {
	actual, _, _ := c.business.IsHoliday(d.Time)
	return actual
}

// HolidayName returns the label of the holiday on d, or "" if none.
func (c *Calendar) HolidayName(d Date) string {
	actual, _, h := c.business.IsHoliday(d.Time)
	if !actual || h == nil {
		return ""
	}
	return h.Name
}

// HolidaysFor returns the holiday set for one calendar year as a
// date -> label mapping.
func (c *Calendar) HolidaysFor(year int) map[Date]string {
	out := make(map[Date]string)
	for d := NewDate(year, time.January, 1); d.Year() == year; d = d.AddDays(1) {
		if name := c.HolidayName(d); name != "" {
			out[d] = name
		}
	}
	return out
}

// HolidaysInRange unions HolidaysFor across every year the range touches
// and keeps only the dates inside [start, end]. A period may straddle a
// year boundary (late December into January).
func (c *Calendar) HolidaysInRange(start, end Date) map[Date]string {
	out := make(map[Date]string)
	for year := start.Year(); year <= end.Year(); year++ {
		for d, name := range c.HolidaysFor(year) {
			if d.AfterOrEqual(start) && d.BeforeOrEqual(end) {
				out[d] = name
			}
		}
	}
	return out
}
