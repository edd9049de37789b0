/*
email.go - HTML summary e-mail body

PURPOSE:
  Renders the consolidated reconciliation table plus the aggregate
  totalizer as an inline-styled HTML body. Styles are inlined because
  mail clients ignore stylesheets; the palette and typography follow the
  report the business already receives (Calibri, #4472C4 headers).
*/
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/warp/hours-reporter/reporting"
	"github.com/warp/hours-reporter/timesheet"
)

// SummarySubject is the subject line of the summary e-mail.
func SummarySubject(p reporting.Period) string {
	return fmt.Sprintf("[RESUMO][APONTAMENTO] - %s", p.Title)
}

// emailRow is a pre-formatted table line.
type emailRow struct {
	Person   string
	Approved string
	Expected string
	Balance  string
	Even     bool
}

type emailData struct {
	Title         string
	GeneratedAt   string
	ExpectedHours string
	Rows          []emailRow
	Total         emailRow
}

// Email renders the summary body for the given period and reconciliation
// result. generatedAt is injected so the output is deterministic in tests.
func Email(p reporting.Period, s timesheet.Summary, generatedAt time.Time) (string, error) {
	data := emailData{
		Title:         p.Title,
		GeneratedAt:   generatedAt.Format("02/01/2006 às 15:04"),
		ExpectedHours: FormatHours(s.ExpectedHours),
		Total:         formatRow(s.Total, true),
	}
	for i, row := range s.Rows {
		data.Rows = append(data.Rows, formatRow(row, i%2 == 0))
	}

	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatRow(r timesheet.Row, even bool) emailRow {
	return emailRow{
		Person:   r.Person,
		Approved: FormatHours(r.ApprovedHours),
		Expected: FormatHours(r.ExpectedHours),
		Balance:  FormatHours(r.Balance),
		Even:     even,
	}
}

var emailTemplate = template.Must(template.New("summary").Parse(`<html>
<body style="font-family: 'Calibri', sans-serif; font-size: 11pt; color: #333;">
  <h2>Resumo de Apontamento de Horas - {{.Title}}</h2>
  <p>Prezados,</p>
  <p>Segue abaixo o resumo consolidado do status de apontamento de horas para o período de <b>{{.Title}}</b>.</p>
  <p>Este relatório foi gerado em <b>{{.GeneratedAt}}</b> e considera um total de <b>{{.ExpectedHours}} horas úteis</b> no período.</p>
  <hr style="border: 0; border-top: 1px solid #ccc; margin: 20px 0;">
  <h3 style="font-family: Calibri, sans-serif;">Resumo de Apontamentos</h3>
  {{if .Rows}}<table style="width: auto; max-width: 800px; border-collapse: collapse; font-family: Calibri, sans-serif; font-size: 11pt; margin-bottom: 25px;">
    <thead><tr>
      <th style="background-color: #4472C4; color: #ffffff; padding: 12px 15px; text-align: left; font-weight: bold; border: 1px solid #dddddd;">Profissional</th>
      <th style="background-color: #4472C4; color: #ffffff; padding: 12px 15px; text-align: left; font-weight: bold; border: 1px solid #dddddd;">Horas Lançadas</th>
      <th style="background-color: #4472C4; color: #ffffff; padding: 12px 15px; text-align: left; font-weight: bold; border: 1px solid #dddddd;">Horas Esperadas (Período)</th>
      <th style="background-color: #4472C4; color: #ffffff; padding: 12px 15px; text-align: left; font-weight: bold; border: 1px solid #dddddd;">Saldo (Período)</th>
    </tr></thead>
    <tbody>
    {{range .Rows}}<tr{{if .Even}} style="background-color: #f8f8f8;"{{end}}>
      <td style="padding: 12px 15px; text-align: left; border: 1px solid #dddddd;">{{.Person}}</td>
      <td style="padding: 12px 15px; text-align: left; border: 1px solid #dddddd;">{{.Approved}}</td>
      <td style="padding: 12px 15px; text-align: left; border: 1px solid #dddddd;">{{.Expected}}</td>
      <td style="padding: 12px 15px; text-align: left; border: 1px solid #dddddd;">{{.Balance}}</td>
    </tr>
    {{end}}</tbody>
  </table>{{else}}<p>Nenhum registro encontrado.</p>{{end}}
  <h3 style="font-family: Calibri, sans-serif;">Totalizador Geral do Período</h3>
  <table style="width: auto; max-width: 800px; border-collapse: collapse; font-family: Calibri, sans-serif; font-size: 11pt; margin-bottom: 25px;">
    <thead><tr>
      <th style="background-color: #4472C4; color: #ffffff; padding: 12px 15px; text-align: left; font-weight: bold; border: 1px solid #dddddd;">Total Horas Lançadas</th>
      <th style="background-color: #4472C4; color: #ffffff; padding: 12px 15px; text-align: left; font-weight: bold; border: 1px solid #dddddd;">Total Horas Esperadas</th>
      <th style="background-color: #4472C4; color: #ffffff; padding: 12px 15px; text-align: left; font-weight: bold; border: 1px solid #dddddd;">Total Saldo</th>
    </tr></thead>
    <tbody><tr style="background-color: #f8f8f8;">
      <td style="padding: 12px 15px; text-align: left; border: 1px solid #dddddd;">{{.Total.Approved}}</td>
      <td style="padding: 12px 15px; text-align: left; border: 1px solid #dddddd;">{{.Total.Expected}}</td>
      <td style="padding: 12px 15px; text-align: left; border: 1px solid #dddddd;">{{.Total.Balance}}</td>
    </tr></tbody>
  </table>
  <p><i>Este e-mail foi gerado automaticamente pelo robô.</i></p>
</body>
</html>
`))
