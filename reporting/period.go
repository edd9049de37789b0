/*
Package reporting decides which period a report run covers.

PURPOSE:
  The robot runs on a schedule, but the window it reports on follows a
  business rule, not the clock: the analysis always covers the reference
  month from its first day up to the Friday of the last completed week.
  When a run happens at the start of a month, before that month's first
  Friday has closed, the report covers the previous month in full.

KEY CONCEPTS:
  - Mode: current-month-to-date vs previous-month-complete
  - FilterKeyword: the abstract selector handed to the portal driver;
    mapping it to a concrete UI action is the driver's business
  - Title: the localized pt-BR heading used in the e-mail and workbook

DESIGN PRINCIPLES:
  Resolve is a pure function of an injected "today". It never reads the
  wall clock and cannot fail on a valid date.

SEE ALSO:
  - calendar: week/month arithmetic used by the resolver
*/
package reporting

import (
	"fmt"
	"time"

	"github.com/warp/hours-reporter/calendar"
)

// =============================================================================
// MODE - Which window the report covers
// =============================================================================

type Mode string

const (
	// CurrentMonthToDate covers day 1 of the running month through the
	// Friday of the last completed week.
	CurrentMonthToDate Mode = "current-month"

	// PreviousMonthComplete covers the whole previous month. Chosen when
	// the last completed week's Friday still belongs to that month.
	PreviousMonthComplete Mode = "previous-month-complete"
)

// FilterKeyword is the period selector passed to the portal driver.
// The driver owns the mapping from keyword to UI action.
func (m Mode) FilterKeyword() string { return string(m) }

// =============================================================================
// PERIOD - The resolved reporting window
// =============================================================================

// Period is the date range a report run covers. Built once per run by
// Resolve and immutable thereafter.
//
// Invariants:
//   - Start is the first day of the reference month
//   - End is <= the Friday preceding the current week, in Start's month
//   - End is a Friday, except in the previous-month branch where it is
//     the month's last calendar day
type Period struct {
	Mode          Mode
	FilterKeyword string
	Start         calendar.Date
	End           calendar.Date
	Title         string
}

// Contains reports whether d falls inside [Start, End].
func (p Period) Contains(d calendar.Date) bool {
	return d.AfterOrEqual(p.Start) && d.BeforeOrEqual(p.End)
}

// =============================================================================
// RESOLVER
// =============================================================================

// Resolve determines the reporting period for a run happening on "today".
//
// The closing Friday is found by walking to the Monday of the current
// week and stepping back three days. If that Friday falls in a month
// before today's, the whole of that month is reported instead.
func Resolve(today calendar.Date) Period {
	startOfWeek := today.StartOfWeek()
	candidateEnd := startOfWeek.AddDays(-3) // Friday of the previous week

	if candidateEnd.MonthBefore(today) {
		// The month has not accumulated a closed week yet; report the
		// previous month in full.
		start := calendar.StartOfMonth(candidateEnd.Year(), candidateEnd.Month())
		end := calendar.EndOfMonth(candidateEnd.Year(), candidateEnd.Month())
		return Period{
			Mode:          PreviousMonthComplete,
			FilterKeyword: PreviousMonthComplete.FilterKeyword(),
			Start:         start,
			End:           end,
			Title:         title(start, end),
		}
	}

	start := calendar.StartOfMonth(today.Year(), today.Month())
	return Period{
		Mode:          CurrentMonthToDate,
		FilterKeyword: CurrentMonthToDate.FilterKeyword(),
		Start:         start,
		End:           candidateEnd,
		Title:         title(start, candidateEnd),
	}
}

// =============================================================================
// LOCALIZED TITLE
// =============================================================================

var monthNamesPT = [12]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// MonthNamePT returns the Portuguese name for a month.
func MonthNamePT(m time.Month) string { return monthNamesPT[m-1] }

func title(start, end calendar.Date) string {
	return fmt.Sprintf("%s de %d (período de %s a %s)",
		MonthNamePT(start.Month()), start.Year(), start.DayMonth(), end.DayMonth())
}
