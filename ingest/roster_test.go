package ingest_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/warp/hours-reporter/ingest"
	"github.com/warp/hours-reporter/timesheet"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRosterCSV(t *testing.T) {
	path := writeCSV(t, "Name,Team\nAna,Core\nBruno,Core\n Ana ,Core\n,Core\n")

	roster, err := ingest.LoadRoster(path)
	require.NoError(t, err)
	assert.Equal(t, timesheet.Roster{"Ana", "Bruno"}, roster)
}

func TestLoadRosterCSV_PortugueseHeader(t *testing.T) {
	path := writeCSV(t, "Nome\nCarla\nDiego\n")

	roster, err := ingest.LoadRoster(path)
	require.NoError(t, err)
	assert.Equal(t, timesheet.Roster{"Carla", "Diego"}, roster)
}

func TestLoadRosterCSV_MissingNameColumnIsFatal(t *testing.T) {
	path := writeCSV(t, "Pessoa,Time\nAna,Core\n")

	_, err := ingest.LoadRoster(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ingest.ErrMissingColumn))
}

func TestLoadRosterXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetList()[0]
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Name"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"Ana"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"Bruno"}))

	path := filepath.Join(t.TempDir(), "roster.xlsx")
	require.NoError(t, f.SaveAs(path))

	roster, err := ingest.LoadRoster(path)
	require.NoError(t, err)
	assert.Equal(t, timesheet.Roster{"Ana", "Bruno"}, roster)
}
