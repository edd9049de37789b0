/*
Package ingest turns the downloaded portal artifacts into domain values.

PURPOSE:
  The portal hands us a styled spreadsheet with a preamble of logos and
  filter descriptions before the actual table. This package locates the
  header row, extracts the required columns, drops rows that fail
  validation, and filters the survivors down to approved, in-window
  records ready for reconciliation.

COLUMN CONTRACT (report):
  Data | Profissional | Situação | Horas
  Any of the four missing is fatal (ErrMissingColumn). Rows with an
  unparseable date, a blank person or unparseable hours are dropped and
  counted in Stats; dropping rows is never fatal.

SEE ALSO:
  - roster.go: active-staff list loading (CSV or spreadsheet)
  - timesheet: the Record type produced here
*/
package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/warp/hours-reporter/calendar"
	"github.com/warp/hours-reporter/reporting"
	"github.com/warp/hours-reporter/timesheet"
)

// Required report columns, as named by the portal.
const (
	ColDate   = "Data"
	ColPerson = "Profissional"
	ColStatus = "Situação"
	ColHours  = "Horas"
)

// Stats reports what happened to the raw rows during parsing.
type Stats struct {
	TotalRows   int // data rows seen below the header
	DroppedRows int // rows discarded by validation
}

// ParseReport reads the downloaded hours report and returns every valid
// record, unfiltered. The header row is located by scanning for the row
// that carries all four required columns (the portal prepends a preamble
// of variable height).
func ParseReport(path string) ([]timesheet.Record, Stats, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, Stats{}, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, Stats{}, ErrNoSheet
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, Stats{}, err
	}

	cols, headerIdx, err := locateHeader(rows)
	if err != nil {
		return nil, Stats{}, err
	}

	var (
		records []timesheet.Record
		stats   Stats
	)
	for _, row := range rows[headerIdx+1:] {
		if isBlankRow(row) {
			continue
		}
		stats.TotalRows++

		rec, ok := parseRow(row, cols)
		if !ok {
			stats.DroppedRows++
			continue
		}
		records = append(records, rec)
	}
	return records, stats, nil
}

// Filter keeps only records whose status matches the approved marker and
// whose date falls inside the reporting period.
func Filter(records []timesheet.Record, period reporting.Period, approvedMarker string) []timesheet.Record {
	out := make([]timesheet.Record, 0, len(records))
	for _, rec := range records {
		if rec.IsApproved(approvedMarker) && period.Contains(rec.Date) {
			out = append(out, rec)
		}
	}
	return out
}

// =============================================================================
// HEADER AND ROW PARSING
// =============================================================================

type columns struct {
	date, person, status, hours int
}

// locateHeader scans for the first row carrying the anchor column
// ("Data") and validates the rest of the contract against that row.
// A table whose header lacks one of the required columns is a broken
// report, reported as MissingColumnError; a sheet with no header at all
// is ErrNoHeaderRow.
func locateHeader(rows [][]string) (columns, int, error) {
	for i, row := range rows {
		found := map[string]int{}
		for j, c := range row {
			found[strings.TrimSpace(c)] = j
		}
		if _, ok := found[ColDate]; !ok {
			continue
		}

		for _, col := range []string{ColPerson, ColStatus, ColHours} {
			if _, ok := found[col]; !ok {
				return columns{}, 0, &MissingColumnError{Column: col, Source: "report"}
			}
		}
		return columns{
			date:   found[ColDate],
			person: found[ColPerson],
			status: found[ColStatus],
			hours:  found[ColHours],
		}, i, nil
	}
	return columns{}, 0, ErrNoHeaderRow
}

func parseRow(row []string, cols columns) (timesheet.Record, bool) {
	date, ok := parseCellDate(cell(row, cols.date))
	if !ok {
		return timesheet.Record{}, false
	}
	person := strings.TrimSpace(cell(row, cols.person))
	if person == "" {
		return timesheet.Record{}, false
	}
	hours, ok := parseCellHours(cell(row, cols.hours))
	if !ok || hours.IsNegative() {
		return timesheet.Record{}, false
	}
	return timesheet.Record{
		Date:   date,
		Person: person,
		Status: strings.TrimSpace(cell(row, cols.status)),
		Hours:  hours,
	}, true
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// parseCellDate accepts the portal's dd/mm/yyyy plus the formats Excel
// falls back to when a cell is stored as a real date value.
func parseCellDate(s string) (calendar.Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return calendar.Date{}, false
	}
	if d, err := calendar.ParseDate(s); err == nil {
		return d, true
	}
	for _, layout := range []string{"02/01/06", "2006-01-02", "1-2-06"} {
		if t, err := time.Parse(layout, s); err == nil {
			return calendar.DateOf(t), true
		}
	}
	// Unformatted cells come back as the raw Excel serial number.
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return calendar.DateOf(t), true
		}
	}
	return calendar.Date{}, false
}

// parseCellHours accepts both decimal separators: "7.5" as Excel emits
// raw numbers, and "7,50" (with optional thousands dots) as the portal
// formats them.
func parseCellHours(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, false
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
