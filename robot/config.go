/*
config.go - Runtime configuration

PURPOSE:
  Everything the orchestrator needs in one explicit structure, read from
  the environment at startup and passed down by value. The core packages
  (calendar, reporting, timesheet) take no configuration at all — their
  inputs arrive as plain arguments.

CONVENTION:
  All variables carry the HOURS_ prefix, e.g. HOURS_SMTP_HOST.
  Local holidays are "dd/mm=Label" pairs, comma separated.
*/
package robot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"

	"github.com/warp/hours-reporter/calendar"
)

// Config holds the runtime configuration for the reporting robot.
type Config struct {
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`

	// Where the exported portal reports land (see portal.FileDriver).
	ReportDropDir string `envconfig:"REPORT_DROP_DIR" default:"./reports"`

	// Active-staff roster, CSV or spreadsheet with a Name/Nome column.
	RosterPath string `envconfig:"ROSTER_PATH" default:"./roster.csv"`

	// Marker a record's status must match to count.
	ApprovedStatus string `envconfig:"APPROVED_STATUS" default:"Aprovado"`

	// Contracted hours per business day.
	WorkdayHours int `envconfig:"WORKDAY_HOURS" default:"8"`

	// Fixed-date municipal holidays, "dd/mm=Label" comma separated.
	LocalHolidays []string `envconfig:"LOCAL_HOLIDAYS" default:"26/01=Aniversário de Santos,08/09=Nossa Senhora do Monte Serrat"`

	SMTPHost     string `envconfig:"SMTP_HOST" default:"127.0.0.1"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
	MailFrom     string `envconfig:"MAIL_FROM" default:"robo@example.com"`
	MailFromName string `envconfig:"MAIL_FROM_NAME" default:"Robô de Apontamentos"`

	// Summary e-mail recipients. Empty SummaryTo skips the summary mail.
	SummaryTo []string `envconfig:"SUMMARY_TO"`
	SummaryCc []string `envconfig:"SUMMARY_CC"`

	// Status notification recipients. Empty skips the status mail.
	StatusTo []string `envconfig:"STATUS_TO"`

	// Hour of day (local time) the scheduler fires the daily run.
	ScheduleHour int `envconfig:"SCHEDULE_HOUR" default:"7"`
}

// LoadConfig reads configuration from HOURS_-prefixed environment
// variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("HOURS", &cfg); err != nil {
		return nil, err
	}
	if cfg.WorkdayHours <= 0 || cfg.WorkdayHours > 24 {
		return nil, fmt.Errorf("workday hours must be in 1..24, got %d", cfg.WorkdayHours)
	}
	if cfg.ScheduleHour < 0 || cfg.ScheduleHour > 23 {
		return nil, fmt.Errorf("schedule hour must be in 0..23, got %d", cfg.ScheduleHour)
	}
	if _, err := cfg.LocalHolidayList(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LocalHolidayList parses the configured "dd/mm=Label" pairs.
func (c *Config) LocalHolidayList() ([]calendar.LocalHoliday, error) {
	out := make([]calendar.LocalHoliday, 0, len(c.LocalHolidays))
	for _, raw := range c.LocalHolidays {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		datePart, label, ok := strings.Cut(raw, "=")
		if !ok {
			return nil, fmt.Errorf("local holiday %q: want dd/mm=Label", raw)
		}
		dayStr, monthStr, ok := strings.Cut(strings.TrimSpace(datePart), "/")
		if !ok {
			return nil, fmt.Errorf("local holiday %q: want dd/mm=Label", raw)
		}
		day, err := strconv.Atoi(dayStr)
		if err != nil || day < 1 || day > 31 {
			return nil, fmt.Errorf("local holiday %q: bad day", raw)
		}
		month, err := strconv.Atoi(monthStr)
		if err != nil || month < 1 || month > 12 {
			return nil, fmt.Errorf("local holiday %q: bad month", raw)
		}
		out = append(out, calendar.LocalHoliday{
			Name:  strings.TrimSpace(label),
			Month: time.Month(month),
			Day:   day,
		})
	}
	return out, nil
}

// NewCalendar builds the holiday calendar this configuration describes.
func (c *Config) NewCalendar() (*calendar.Calendar, error) {
	local, err := c.LocalHolidayList()
	if err != nil {
		return nil, err
	}
	cal := calendar.New(local...)
	cal.WorkdayHours = decimal.NewFromInt(int64(c.WorkdayHours))
	return cal, nil
}
