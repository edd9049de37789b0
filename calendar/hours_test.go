package calendar_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/warp/hours-reporter/calendar"
)

func santos() *calendar.Calendar {
	return calendar.New(calendar.DefaultLocalHolidays()...)
}

// =============================================================================
// HOLIDAY CALENDAR
// =============================================================================

func TestHolidaysFor_StatutoryAndLocal(t *testing.T) {
	// GIVEN: the Santos calendar for 2025
	// THEN: national, state and municipal fixed dates are all present
	holidays := santos().HolidaysFor(2025)

	expected := []calendar.Date{
		calendar.NewDate(2025, time.January, 1),    // Ano Novo
		calendar.NewDate(2025, time.April, 18),     // Sexta-feira Santa
		calendar.NewDate(2025, time.May, 1),        // Dia do Trabalhador
		calendar.NewDate(2025, time.July, 9),       // Revolução Constitucionalista (SP)
		calendar.NewDate(2025, time.December, 25),  // Natal
		calendar.NewDate(2025, time.January, 26),   // Aniversário de Santos
		calendar.NewDate(2025, time.September, 8),  // Nossa Senhora do Monte Serrat
	}
	for _, d := range expected {
		assert.Contains(t, holidays, d, "expected holiday on %s", d)
	}
}

func TestHolidaysFor_LocalHolidaysAreConfiguration(t *testing.T) {
	// A calendar built without local holidays carries only the statutory set.
	holidays := calendar.New().HolidaysFor(2025)

	assert.NotContains(t, holidays, calendar.NewDate(2025, time.January, 26))
	assert.NotContains(t, holidays, calendar.NewDate(2025, time.September, 8))
	assert.Contains(t, holidays, calendar.NewDate(2025, time.January, 1))
}

func TestHolidaysInRange_StraddlesYearBoundary(t *testing.T) {
	// GIVEN: a range from late December 2025 into January 2026
	// THEN: holidays from both years are unioned, range-filtered
	c := santos()
	holidays := c.HolidaysInRange(
		calendar.NewDate(2025, time.December, 20),
		calendar.NewDate(2026, time.January, 10),
	)

	assert.Contains(t, holidays, calendar.NewDate(2025, time.December, 25))
	assert.Contains(t, holidays, calendar.NewDate(2026, time.January, 1))
	assert.NotContains(t, holidays, calendar.NewDate(2025, time.May, 1), "outside the range")
	assert.NotContains(t, holidays, calendar.NewDate(2026, time.January, 26), "outside the range")
}

// =============================================================================
// BUSINESS-DAY ACCOUNTING
// =============================================================================

func TestIsBusinessDay(t *testing.T) {
	c := santos()

	assert.False(t, c.IsBusinessDay(calendar.NewDate(2025, time.May, 1)), "weekday holiday")
	assert.True(t, c.IsBusinessDay(calendar.NewDate(2025, time.May, 2)), "plain Friday")
	assert.False(t, c.IsBusinessDay(calendar.NewDate(2025, time.May, 3)), "Saturday")
	assert.False(t, c.IsBusinessDay(calendar.NewDate(2025, time.May, 4)), "Sunday")
	assert.False(t, c.IsBusinessDay(calendar.NewDate(2025, time.September, 8)), "municipal holiday")
}

func TestExpectedHours_SingleDay(t *testing.T) {
	// expectedHours(s, s) is 8 for a working day, 0 otherwise.
	c := santos()

	workday := calendar.NewDate(2025, time.June, 4) // Wednesday
	assert.True(t, decimal.NewFromInt(8).Equal(c.ExpectedHours(workday, workday)))

	saturday := calendar.NewDate(2025, time.June, 7)
	assert.True(t, c.ExpectedHours(saturday, saturday).IsZero())

	holiday := calendar.NewDate(2025, time.May, 1)
	assert.True(t, c.ExpectedHours(holiday, holiday).IsZero())
}

func TestExpectedHours_FullWeek(t *testing.T) {
	// Monday 2025-06-02 .. Friday 2025-06-06: five plain working days.
	c := santos()
	got := c.ExpectedHours(
		calendar.NewDate(2025, time.June, 2),
		calendar.NewDate(2025, time.June, 6),
	)
	assert.True(t, decimal.NewFromInt(40).Equal(got), "got %s", got)
}

func TestExpectedHours_WeekdayHolidayExcluded(t *testing.T) {
	// GIVEN: Wed 2025-04-30 .. Fri 2025-05-02, with May 1 a holiday
	// THEN: only two days count
	c := santos()
	got := c.ExpectedHours(
		calendar.NewDate(2025, time.April, 30),
		calendar.NewDate(2025, time.May, 2),
	)
	assert.True(t, decimal.NewFromInt(16).Equal(got), "got %s", got)
}

func TestExpectedHours_RangeAcrossYears(t *testing.T) {
	// Mon 2025-12-29 .. Fri 2026-01-02: Jan 1 is a holiday, four days count.
	c := santos()
	got := c.ExpectedHours(
		calendar.NewDate(2025, time.December, 29),
		calendar.NewDate(2026, time.January, 2),
	)
	assert.True(t, decimal.NewFromInt(32).Equal(got), "got %s", got)
}

func TestBusinessDays_ReversedRangeIsEmpty(t *testing.T) {
	c := santos()
	start := calendar.NewDate(2025, time.June, 10)
	assert.Equal(t, 0, c.BusinessDays(start, start.AddDays(-1)))
	assert.True(t, c.ExpectedHours(start, start.AddDays(-1)).IsZero())
}

func TestExpectedHours_MonotonicInEndDate(t *testing.T) {
	// Fixing the start, expected hours never decrease as the end advances.
	c := santos()
	start := calendar.NewDate(2025, time.April, 1)

	prev := decimal.Zero
	for end := start; end.BeforeOrEqual(calendar.NewDate(2025, time.May, 15)); end = end.AddDays(1) {
		got := c.ExpectedHours(start, end)
		assert.False(t, got.LessThan(prev), "expected hours decreased at %s", end)
		prev = got
	}
}

func TestExpectedHours_CustomWorkdayPolicy(t *testing.T) {
	c := santos()
	c.WorkdayHours = decimal.NewFromInt(6)

	workday := calendar.NewDate(2025, time.June, 4)
	assert.True(t, decimal.NewFromInt(6).Equal(c.ExpectedHours(workday, workday)))
}
