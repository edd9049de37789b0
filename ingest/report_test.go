package ingest_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/warp/hours-reporter/calendar"
	"github.com/warp/hours-reporter/ingest"
	"github.com/warp/hours-reporter/reporting"
	"github.com/warp/hours-reporter/timesheet"
)

// =============================================================================
// TEST FIXTURES - workbooks built the way the portal exports them
// =============================================================================

// writeReport builds a spreadsheet with a preamble above the header row,
// mimicking the portal's export layout.
func writeReport(t *testing.T, header []interface{}, dataRows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetList()[0]

	// Preamble the portal prepends: logo caption, filter description, blanks.
	require.NoError(t, f.SetCellValue(sheet, "A1", "Relatório de Apontamento de Horas"))
	require.NoError(t, f.SetCellValue(sheet, "A2", "Filtro: período selecionado"))

	if header != nil {
		require.NoError(t, f.SetSheetRow(sheet, "A4", &header))
	}
	for i, row := range dataRows {
		cellRef, err := excelize.CoordinatesToCellName(1, 5+i)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &row))
	}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func reportHeader() []interface{} {
	return []interface{}{"Data", "Profissional", "Situação", "Horas"}
}

// =============================================================================
// PARSING
// =============================================================================

func TestParseReport_ReadsRowsBelowPreamble(t *testing.T) {
	path := writeReport(t, reportHeader(), [][]interface{}{
		{"02/06/2025", "Ana", "Aprovado", "8,00"},
		{"03/06/2025", "Bruno", "Pendente", 7.5},
	})

	records, stats, err := ingest.ParseReport(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 2, stats.TotalRows)
	assert.Equal(t, 0, stats.DroppedRows)

	assert.Equal(t, calendar.NewDate(2025, time.June, 2), records[0].Date)
	assert.Equal(t, "Ana", records[0].Person)
	assert.Equal(t, "Aprovado", records[0].Status)
	assert.Equal(t, "8", records[0].Hours.String())

	assert.Equal(t, "Bruno", records[1].Person)
	assert.Equal(t, "7.5", records[1].Hours.String())
}

func TestParseReport_DropsInvalidRows(t *testing.T) {
	// GIVEN: rows with an unparseable date, a blank person, broken hours
	// and negative hours
	// THEN: they are dropped and counted, never fatal
	path := writeReport(t, reportHeader(), [][]interface{}{
		{"02/06/2025", "Ana", "Aprovado", "8"},
		{"not-a-date", "Bruno", "Aprovado", "8"},
		{"03/06/2025", "   ", "Aprovado", "8"},
		{"04/06/2025", "Carla", "Aprovado", "oito"},
		{"05/06/2025", "Diego", "Aprovado", "-4"},
	})

	records, stats, err := ingest.ParseReport(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Ana", records[0].Person)
	assert.Equal(t, 5, stats.TotalRows)
	assert.Equal(t, 4, stats.DroppedRows)
}

func TestParseReport_MissingColumnIsFatal(t *testing.T) {
	path := writeReport(t, []interface{}{"Data", "Profissional", "Horas"}, nil)

	_, _, err := ingest.ParseReport(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ingest.ErrMissingColumn))

	var missing *ingest.MissingColumnError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "Situação", missing.Column)
}

func TestParseReport_NoHeaderRow(t *testing.T) {
	path := writeReport(t, nil, nil)

	_, _, err := ingest.ParseReport(path)
	assert.True(t, errors.Is(err, ingest.ErrNoHeaderRow))
}

// =============================================================================
// FILTERING
// =============================================================================

func TestFilter_StatusAndWindow(t *testing.T) {
	period := reporting.Resolve(calendar.NewDate(2025, time.June, 11)) // 01/06 .. 06/06

	records := []timesheet.Record{
		{Date: calendar.NewDate(2025, time.June, 2), Person: "Ana", Status: "Aprovado"},
		{Date: calendar.NewDate(2025, time.June, 2), Person: "Bruno", Status: "Pendente"},
		{Date: calendar.NewDate(2025, time.June, 9), Person: "Ana", Status: "Aprovado"}, // past the window
		{Date: calendar.NewDate(2025, time.May, 30), Person: "Ana", Status: "Aprovado"}, // before the window
		{Date: calendar.NewDate(2025, time.June, 6), Person: "Carla", Status: " aprovado "},
	}

	got := ingest.Filter(records, period, timesheet.StatusApproved)

	require.Len(t, got, 2)
	assert.Equal(t, "Ana", got[0].Person)
	assert.Equal(t, "Carla", got[1].Person)
}

func TestFilter_WindowBoundariesAreInclusive(t *testing.T) {
	period := reporting.Resolve(calendar.NewDate(2025, time.June, 11))

	records := []timesheet.Record{
		{Date: period.Start, Person: "Ana", Status: "Aprovado"},
		{Date: period.End, Person: "Bruno", Status: "Aprovado"},
	}

	assert.Len(t, ingest.Filter(records, period, timesheet.StatusApproved), 2)
}
