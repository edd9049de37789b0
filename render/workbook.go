/*
workbook.go - Styled workbook attachment

PURPOSE:
  Builds the two-sheet spreadsheet attached to the summary e-mail:

    Apontamentos - every approved record in the period, raw
    Resumo       - the reconciliation rows plus the total line

  Styling mirrors the e-mail: blue header band, two-decimal numbers,
  widened columns. The workbook repeats the renderer's inputs verbatim so
  recipients can sort and pivot without recomputing anything.
*/
package render

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/warp/hours-reporter/reporting"
	"github.com/warp/hours-reporter/timesheet"
)

const (
	SheetRecords = "Apontamentos"
	SheetSummary = "Resumo"
)

var attachmentNameSanitizer = strings.NewReplacer(" ", "_", "/", "-", "(", "", ")", "")

// AttachmentName derives the workbook filename from the period title.
func AttachmentName(p reporting.Period) string {
	return fmt.Sprintf("Relatorio_Horas_%s.xlsx", attachmentNameSanitizer.Replace(p.Title))
}

// Workbook assembles the attachment for the given period. The caller
// owns the returned file and is responsible for SaveAs/Close.
func Workbook(p reporting.Period, s timesheet.Summary, records []timesheet.Record) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetList()[0], SheetRecords); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF", Family: "Calibri"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	numberStyle, err := f.NewStyle(&excelize.Style{
		NumFmt: 4, // #,##0.00
	})
	if err != nil {
		return nil, err
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		NumFmt: 4,
	})
	if err != nil {
		return nil, err
	}

	if err := writeRecordsSheet(f, records, headerStyle, numberStyle); err != nil {
		return nil, err
	}
	if err := writeSummarySheet(f, p, s, headerStyle, numberStyle, totalStyle); err != nil {
		return nil, err
	}

	idx, err := f.GetSheetIndex(SheetSummary)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	return f, nil
}

func writeRecordsSheet(f *excelize.File, records []timesheet.Record, headerStyle, numberStyle int) error {
	header := []interface{}{"Data", "Profissional", "Situação", "Horas"}
	if err := f.SetSheetRow(SheetRecords, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetRecords, "A1", "D1", headerStyle); err != nil {
		return err
	}
	for i, rec := range records {
		rowRef := i + 2
		hours, _ := rec.Hours.Float64()
		row := []interface{}{rec.Date.DayMonthYear(), rec.Person, rec.Status, hours}
		cellRef, err := excelize.CoordinatesToCellName(1, rowRef)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetRecords, cellRef, &row); err != nil {
			return err
		}
	}
	if len(records) > 0 {
		last, err := excelize.CoordinatesToCellName(4, len(records)+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetRecords, "D2", last, numberStyle); err != nil {
			return err
		}
	}
	return f.SetColWidth(SheetRecords, "A", "D", 22)
}

func writeSummarySheet(f *excelize.File, p reporting.Period, s timesheet.Summary, headerStyle, numberStyle, totalStyle int) error {
	if err := f.SetCellValue(SheetSummary, "A1", p.Title); err != nil {
		return err
	}
	header := []interface{}{"Profissional", "Horas Lançadas", "Horas Esperadas (Período)", "Saldo (Período)"}
	if err := f.SetSheetRow(SheetSummary, "A3", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetSummary, "A3", "D3", headerStyle); err != nil {
		return err
	}

	for i, row := range s.Rows {
		if err := writeSummaryRow(f, i+4, row, numberStyle); err != nil {
			return err
		}
	}
	totalRow := len(s.Rows) + 4
	if err := writeSummaryRow(f, totalRow, s.Total, totalStyle); err != nil {
		return err
	}
	return f.SetColWidth(SheetSummary, "A", "D", 26)
}

func writeSummaryRow(f *excelize.File, rowRef int, row timesheet.Row, style int) error {
	approved, _ := row.ApprovedHours.Float64()
	expected, _ := row.ExpectedHours.Float64()
	balance, _ := row.Balance.Float64()
	values := []interface{}{row.Person, approved, expected, balance}

	cellRef, err := excelize.CoordinatesToCellName(1, rowRef)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetSummary, cellRef, &values); err != nil {
		return err
	}
	start, err := excelize.CoordinatesToCellName(2, rowRef)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(4, rowRef)
	if err != nil {
		return err
	}
	return f.SetCellStyle(SheetSummary, start, end, style)
}
