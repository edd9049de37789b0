/*
Package robot orchestrates one full reporting run.

PURPOSE:
  Wires the pure core (resolver, calendar, reconciliation) to the
  collaborators at the edges (portal driver, unlocker, mailer) and owns
  everything the core must not: I/O, temp-file lifetime, step timing,
  and the final run classification.

RUN PIPELINE:
  1. Download do Relatório      (portal driver, by filter keyword)
  2. Desbloqueio do Arquivo     (unlocker, usually a no-op)
  3. Processamento da Planilha  (parse, validate, filter to the period)
  4. Análise e Geração do HTML  (reconcile + e-mail body)
  5. Criação do Anexo Excel     (two-sheet workbook)
  6. Envio do E-mail de Resumo

GUARANTEES:
  - Downloaded and generated temp files are removed on every exit path
  - The status notification is attempted on every exit path
  - An empty filtered period is SUCESSO (SEM DADOS), not a failure,
    and short-circuits steps 4-6
*/
package robot

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/warp/hours-reporter/calendar"
	"github.com/warp/hours-reporter/ingest"
	"github.com/warp/hours-reporter/notify"
	"github.com/warp/hours-reporter/portal"
	"github.com/warp/hours-reporter/render"
	"github.com/warp/hours-reporter/reporting"
	"github.com/warp/hours-reporter/timesheet"
)

// =============================================================================
// RUNNER
// =============================================================================

// Runner executes reporting runs. One Runner serves the whole process;
// runs are serialized so a scheduler tick and a manual trigger cannot
// race over the drop directory.
type Runner struct {
	Config   *Config
	Calendar *calendar.Calendar
	Driver   portal.Driver
	Unlocker portal.Unlocker
	Mailer   notify.Mailer
	History  *History

	// Now is the injected clock; tests pin it to a fixed date.
	Now func() time.Time

	mu sync.Mutex
}

// NewRunner wires a Runner with the default collaborators left nil-safe.
func NewRunner(cfg *Config, cal *calendar.Calendar, driver portal.Driver, unlocker portal.Unlocker, mailer notify.Mailer) *Runner {
	if unlocker == nil {
		unlocker = portal.PassthroughUnlocker{}
	}
	return &Runner{
		Config:   cfg,
		Calendar: cal,
		Driver:   driver,
		Unlocker: unlocker,
		Mailer:   mailer,
		History:  NewHistory(50),
		Now:      time.Now,
	}
}

// RunReport is the outcome of one run, kept in history and exposed by
// the status endpoint.
type RunReport struct {
	Status      notify.Status
	Period      reporting.Period
	Steps       []notify.StepTiming
	Error       string
	RecordCount int // approved, in-window records
	DroppedRows int // rows discarded by validation
	StartedAt   time.Time
	Duration    time.Duration
}

// =============================================================================
// RUN
// =============================================================================

// Run executes one full reporting run for the day Now() falls on and
// returns its report. The report is also appended to History.
func (r *Runner) Run(ctx context.Context) *RunReport {
	r.mu.Lock()
	defer r.mu.Unlock()

	started := r.Now()
	today := calendar.DateOf(started)
	period := reporting.Resolve(today)

	report := &RunReport{
		Status:    notify.StatusSuccess,
		Period:    period,
		StartedAt: started,
	}
	log.Printf("[Run] Período de análise: %s (filtro %q)", period.Title, period.FilterKeyword)

	var tempFiles []string
	defer func() {
		for _, path := range tempFiles {
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				log.Printf("[Run] Falha ao remover arquivo temporário %s: %v", path, err)
			}
		}
	}()

	if err := r.pipeline(ctx, period, report, &tempFiles); err != nil {
		report.Status = notify.StatusFailure
		report.Error = err.Error()
		log.Printf("[Run] Execução falhou: %v", err)
	}

	report.Duration = r.Now().Sub(started)
	r.sendStatus(ctx, report)

	if r.History != nil {
		r.History.Append(*report)
	}
	return report
}

func (r *Runner) pipeline(ctx context.Context, period reporting.Period, report *RunReport, tempFiles *[]string) error {
	step := func(name string, fn func() error) error {
		t0 := time.Now()
		err := fn()
		report.Steps = append(report.Steps, notify.StepTiming{Name: name, Duration: time.Since(t0)})
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return nil
	}

	var reportPath string
	if err := step("1. Download do Relatório", func() error {
		path, err := r.Driver.Download(ctx, period.FilterKeyword)
		if err != nil {
			return err
		}
		reportPath = path
		*tempFiles = append(*tempFiles, path)
		return nil
	}); err != nil {
		return err
	}

	if err := step("2. Desbloqueio do Arquivo", func() error {
		return r.Unlocker.Unlock(ctx, reportPath)
	}); err != nil {
		return err
	}

	var filtered []timesheet.Record
	var roster timesheet.Roster
	if err := step("3. Processamento da Planilha", func() error {
		records, stats, err := ingest.ParseReport(reportPath)
		if err != nil {
			return err
		}
		report.DroppedRows = stats.DroppedRows
		if stats.DroppedRows > 0 {
			log.Printf("[Run] %d de %d linhas descartadas na validação", stats.DroppedRows, stats.TotalRows)
		}

		roster, err = ingest.LoadRoster(r.Config.RosterPath)
		if err != nil {
			return err
		}

		filtered = ingest.Filter(records, period, r.Config.ApprovedStatus)
		report.RecordCount = len(filtered)
		return nil
	}); err != nil {
		return err
	}

	if len(filtered) == 0 {
		// A valid terminal state: the period simply has nothing approved
		// yet. The summary is skipped; the status mail says so.
		report.Status = notify.StatusNoData
		log.Printf("[Run] Nenhum registro aprovado no período; resumo não será enviado")
		return nil
	}

	var summary timesheet.Summary
	var htmlBody string
	if err := step("4. Análise e Geração do HTML", func() error {
		expected := r.Calendar.ExpectedHours(period.Start, period.End)
		summary = timesheet.Reconcile(filtered, roster, expected)

		var err error
		htmlBody, err = render.Email(period, summary, r.Now())
		return err
	}); err != nil {
		return err
	}

	var attachment *notify.Attachment
	if err := step("5. Criação do Anexo Excel", func() error {
		wb, err := render.Workbook(period, summary, filtered)
		if err != nil {
			return err
		}
		defer wb.Close()

		path := filepath.Join(os.TempDir(), render.AttachmentName(period))
		if err := wb.SaveAs(path); err != nil {
			return err
		}
		*tempFiles = append(*tempFiles, path)

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		attachment = &notify.Attachment{Filename: render.AttachmentName(period), Content: content}
		return nil
	}); err != nil {
		return err
	}

	return step("6. Envio do E-mail de Resumo", func() error {
		if len(r.Config.SummaryTo) == 0 {
			log.Printf("[Run] Destinatários do resumo não configurados; envio pulado")
			return nil
		}
		return r.Mailer.Send(ctx, notify.Message{
			From:       r.Config.MailFrom,
			FromName:   r.Config.MailFromName,
			To:         r.Config.SummaryTo,
			Cc:         r.Config.SummaryCc,
			Subject:    render.SummarySubject(period),
			HTML:       htmlBody,
			Attachment: attachment,
		})
	})
}

// sendStatus delivers the run-status notification. Failures here are
// logged, never propagated — the run's classification is already final.
func (r *Runner) sendStatus(ctx context.Context, report *RunReport) {
	if len(r.Config.StatusTo) == 0 {
		log.Printf("[Run] Destinatário do e-mail de status não configurado; envio pulado")
		return
	}

	statusReport := notify.StatusReport{
		Status:     report.Status,
		PeriodName: report.Period.Title,
		Steps:      report.Steps,
		Total:      report.Duration,
		Error:      report.Error,
		FinishedAt: r.Now(),
	}
	body, err := notify.StatusEmail(statusReport)
	if err != nil {
		log.Printf("[Run] Falha ao montar e-mail de status: %v", err)
		return
	}
	msg := notify.Message{
		From:     r.Config.MailFrom,
		FromName: r.Config.MailFromName,
		To:       r.Config.StatusTo,
		Subject:  notify.StatusSubject(statusReport),
		HTML:     body,
	}
	if err := r.Mailer.Send(ctx, msg); err != nil {
		log.Printf("[Run] Falha ao enviar e-mail de status: %v", err)
	}
}
