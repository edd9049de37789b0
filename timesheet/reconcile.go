/*
reconcile.go - The hours reconciliation computation

PURPOSE:
  Left-joins the active roster against the approved records and computes
  per-person and aggregate balances against the expected-hours constant.

ALGORITHM:
  1. Group records by person, summing hours (decimal, order-independent)
  2. Every roster person gets a row; no records means zero approved hours
  3. People with records but off the roster are dropped entirely
  4. Balance = approved - expected, per row
  5. Rows sorted by person name (ordinal ascending) for stable output
  6. The total row sums the three columns ACROSS ROWS, so the aggregate
     balance is exactly the sum of row balances by construction
*/
package timesheet

import (
	"sort"

	"github.com/shopspring/decimal"
)

// TotalLabel names the synthetic aggregate row.
const TotalLabel = "Total"

// Reconcile joins approvedRecords against the roster and computes the
// balance of every active person against expectedHours.
//
// Records for people absent from the roster do not appear in the output
// and do not contribute to the total. Roster people without records
// appear with zero approved hours. len(rows) == len(roster) always.
func Reconcile(approvedRecords []Record, roster Roster, expectedHours decimal.Decimal) Summary {
	approvedBy := make(map[string]decimal.Decimal, len(roster))
	for _, rec := range approvedRecords {
		approvedBy[rec.Person] = approvedBy[rec.Person].Add(rec.Hours)
	}

	rows := make([]Row, 0, len(roster))
	for _, person := range roster {
		approved := approvedBy[person] // zero decimal when absent
		rows = append(rows, Row{
			Person:        person,
			ApprovedHours: approved,
			ExpectedHours: expectedHours,
			Balance:       approved.Sub(expectedHours),
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Person < rows[j].Person })

	total := Row{Person: TotalLabel}
	for _, row := range rows {
		total.ApprovedHours = total.ApprovedHours.Add(row.ApprovedHours)
		total.ExpectedHours = total.ExpectedHours.Add(row.ExpectedHours)
		total.Balance = total.Balance.Add(row.Balance)
	}

	return Summary{Rows: rows, Total: total, ExpectedHours: expectedHours}
}
