/*
status.go - Run-status notification

PURPOSE:
  Whatever happens to a run — clean success, an empty period, or a
  failure halfway through — somebody has to hear about it. The status
  e-mail carries the final classification, the per-step timing breakdown
  and, on failure, the error detail.

CLASSIFICATION:
  StatusSuccess  - summary generated and delivered
  StatusNoData   - the filtered period had no approved records; a valid
                   terminal state, not a failure
  StatusFailure  - any step errored; the run aborted
*/
package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

// =============================================================================
// STATUS - Final run classification
// =============================================================================

type Status string

const (
	StatusSuccess Status = "SUCESSO"
	StatusNoData  Status = "SUCESSO (SEM DADOS)"
	StatusFailure Status = "FALHA"
)

// OK reports whether the status is a success variant.
func (s Status) OK() bool { return s != StatusFailure }

// StepTiming records how long one pipeline step took.
type StepTiming struct {
	Name     string
	Duration time.Duration
}

// StatusReport is everything the status e-mail needs.
type StatusReport struct {
	Status     Status
	PeriodName string
	Steps      []StepTiming
	Total      time.Duration
	Error      string // full detail, failure only
	FinishedAt time.Time
}

// =============================================================================
// STATUS EMAIL
// =============================================================================

// StatusSubject is the subject line of the status notification.
func StatusSubject(r StatusReport) string {
	return fmt.Sprintf("Status do Robô de Apontamentos: %s", r.Status)
}

type statusStep struct {
	Name    string
	Seconds string
}

type statusData struct {
	Status     Status
	Color      string
	PeriodName string
	FinishedAt string
	Steps      []statusStep
	Total      string
	Error      string
}

// StatusEmail renders the status notification body.
func StatusEmail(r StatusReport) (string, error) {
	color := "green"
	if !r.Status.OK() {
		color = "red"
	}
	data := statusData{
		Status:     r.Status,
		Color:      color,
		PeriodName: r.PeriodName,
		FinishedAt: r.FinishedAt.Format("02/01/2006 15:04:05"),
		Total:      fmt.Sprintf("%.2f segundos", r.Total.Seconds()),
		Error:      r.Error,
	}
	for _, s := range r.Steps {
		data.Steps = append(data.Steps, statusStep{
			Name:    s.Name,
			Seconds: fmt.Sprintf("%.2f segundos", s.Duration.Seconds()),
		})
	}

	var buf bytes.Buffer
	if err := statusTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var statusTemplate = template.Must(template.New("status").Parse(`<html><body>
  <h2>Relatório de Execução do Robô de Apontamentos</h2>
  <p><b>Status Final:</b> <span style="color: {{.Color}}; font-weight: bold;">{{.Status}}</span></p>
  {{if .PeriodName}}<p><b>Período:</b> {{.PeriodName}}</p>{{end}}
  <p><b>Data e Hora:</b> {{.FinishedAt}}</p>
  <h3>Tempos de Execução por Etapa:</h3>
  <table style="width: 600px; border-collapse: collapse;">
    <thead style="background-color: #4472C4; color: white;">
      <tr>
        <th style="padding: 8px; border: 1px solid #dddddd; text-align: left;">Etapa</th>
        <th style="padding: 8px; border: 1px solid #dddddd; text-align: right;">Duração</th>
      </tr>
    </thead>
    <tbody>
      {{range .Steps}}<tr>
        <td style="padding: 8px; border: 1px solid #dddddd;">{{.Name}}</td>
        <td style="padding: 8px; border: 1px solid #dddddd; text-align: right;">{{.Seconds}}</td>
      </tr>
      {{end}}<tr>
        <td style="padding: 8px; border: 1px solid #dddddd;"><b>Total</b></td>
        <td style="padding: 8px; border: 1px solid #dddddd; text-align: right;"><b>{{.Total}}</b></td>
      </tr>
    </tbody>
  </table>
  {{if .Error}}<h3 style="color: red;">Detalhes do Erro:</h3>
  <pre style="font-family: 'Courier New', monospace; background-color: #f5f5f5; padding: 10px; border: 1px solid #ccc; white-space: pre-wrap; word-wrap: break-word;">{{.Error}}</pre>{{end}}
</body></html>
`))
