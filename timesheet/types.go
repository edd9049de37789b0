/*
Package timesheet implements the hours reconciliation engine.

PURPOSE:
  Joins the approved-hours records downloaded from the portal against the
  roster of active staff and computes, per person, how the logged hours
  compare with the hours a business-day calendar says were expected.

KEY CONCEPTS IN THIS FILE (types.go):
  - Record: one approved timesheet entry (date, person, status, hours)
  - Roster: the authoritative list of active people
  - Row: one reconciliation line (approved vs expected vs balance)

DESIGN PRINCIPLES:
  1. Precision: all hours are decimal.Decimal, never float64
  2. Purity: nothing here performs I/O; the engine is reentrant and safe
     to call concurrently
  3. The roster is authoritative: people absent from it are dropped even
     when they carry approved hours (documented business rule)

SEE ALSO:
  - reconcile.go: the join + balance computation
  - ingest: produces Records from the downloaded spreadsheet
*/
package timesheet

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/warp/hours-reporter/calendar"
)

// =============================================================================
// RECORD - One timesheet entry
// =============================================================================

// Record is a single timesheet entry as extracted from the portal report.
// Hours are non-negative; Status is free text matched against the
// configured approval marker during filtering.
type Record struct {
	Date   calendar.Date
	Person string
	Status string
	Hours  decimal.Decimal
}

// StatusApproved is the portal's marker for entries that count.
const StatusApproved = "Aprovado"

// IsApproved matches the record's status against the marker, ignoring
// case and surrounding whitespace (the portal is not consistent).
func (r Record) IsApproved(marker string) bool {
	return strings.EqualFold(strings.TrimSpace(r.Status), strings.TrimSpace(marker))
}

// =============================================================================
// ROSTER - Active staff
// =============================================================================

// Roster is the ordered list of active person names. Only people on the
// roster appear in the reconciliation output.
type Roster []string

// NewRoster trims names, drops blanks and deduplicates while preserving
// first-seen order.
func NewRoster(names []string) Roster {
	seen := make(map[string]bool, len(names))
	out := make(Roster, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// Contains reports whether name is on the roster.
func (r Roster) Contains(name string) bool {
	for _, n := range r {
		if n == name {
			return true
		}
	}
	return false
}

// =============================================================================
// ROW - One reconciliation line
// =============================================================================

// Row is one line of the reconciliation output.
// Invariant: Balance = ApprovedHours - ExpectedHours, always.
type Row struct {
	Person        string
	ApprovedHours decimal.Decimal
	ExpectedHours decimal.Decimal
	Balance       decimal.Decimal
}

// Summary is the full reconciliation result handed to the renderer:
// one row per active person, plus the synthetic total row, plus the
// period-wide expected-hours constant.
type Summary struct {
	Rows          []Row
	Total         Row
	ExpectedHours decimal.Decimal
}
