/*
roster.go - Active-staff roster loading

PURPOSE:
  The roster comes from an external source the robot does not own: a CSV
  export or a spreadsheet, either way a table with a name column. The
  column may be labeled "Name" or "Nome" depending on who exported it.
  A roster without that column is fatal — without the authoritative list
  there is nothing to reconcile against.
*/
package ingest

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/warp/hours-reporter/timesheet"
)

// Accepted roster name-column labels.
var rosterNameColumns = []string{"Name", "Nome"}

// LoadRoster reads the active roster from path, dispatching on the file
// extension: .csv for CSV, anything else is treated as a spreadsheet.
func LoadRoster(path string) (timesheet.Roster, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return LoadRosterCSV(path)
	}
	return LoadRosterXLSX(path)
}

// LoadRosterCSV reads the roster from a CSV file with a header row.
func LoadRosterCSV(path string) (timesheet.Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	return rosterFromRows(rows)
}

// LoadRosterXLSX reads the roster from the first sheet of a workbook.
func LoadRosterXLSX(path string) (timesheet.Roster, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheet
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	return rosterFromRows(rows)
}

func rosterFromRows(rows [][]string) (timesheet.Roster, error) {
	col := -1
	header := 0
scan:
	for i, row := range rows {
		for j, c := range row {
			for _, label := range rosterNameColumns {
				if strings.EqualFold(strings.TrimSpace(c), label) {
					col, header = j, i
					break scan
				}
			}
		}
	}
	if col < 0 {
		return nil, &MissingColumnError{Column: rosterNameColumns[0], Source: "roster"}
	}

	var names []string
	for _, row := range rows[header+1:] {
		names = append(names, cell(row, col))
	}
	return timesheet.NewRoster(names), nil
}
