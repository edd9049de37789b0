/*
hours.go - Business-day counting and expected-hours accounting

PURPOSE:
  Converts a date range into the number of hours an active person was
  expected to log: count the business days (weekday, not a holiday) in
  the inclusive range and multiply by the workday-hours policy.

PRECONDITION:
  Callers supply start <= end. A reversed range is not an error; it
  simply contains no business days.
*/
package calendar

import "github.com/shopspring/decimal"

// IsBusinessDay reports whether d is a working day: Monday-Friday and
// not a statutory or local holiday.
func (c *Calendar) IsBusinessDay(d Date) bool {
	return c.business.IsWorkday(d.Time)
}

// BusinessDays counts the business days in [start, end] inclusive.
// A single-day range counts that day alone; start > end yields 0.
func (c *Calendar) BusinessDays(start, end Date) int {
	n := 0
	for d := start; d.BeforeOrEqual(end); d = d.AddDays(1) {
		if c.IsBusinessDay(d) {
			n++
		}
	}
	return n
}

// ExpectedHours returns BusinessDays(start, end) x WorkdayHours.
func (c *Calendar) ExpectedHours(start, end Date) decimal.Decimal {
	return c.WorkdayHours.Mul(decimal.NewFromInt(int64(c.BusinessDays(start, end))))
}
