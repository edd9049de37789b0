/*
dto.go - Data Transfer Objects for API responses

PURPOSE:
  Defines the JSON structures exposed over HTTP. These types decouple
  the internal run/period model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients

SEE ALSO:
  - handlers.go: Uses these types
  - robot/run.go: RunReport, the internal counterpart of RunDTO
*/
package api

import (
	"time"

	"github.com/warp/hours-reporter/calendar"
	"github.com/warp/hours-reporter/reporting"
	"github.com/warp/hours-reporter/robot"
)

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// PeriodDTO describes a resolved analysis window.
type PeriodDTO struct {
	Mode          string `json:"mode"`
	FilterKeyword string `json:"filter_keyword"`
	Start         string `json:"start"`
	End           string `json:"end"`
	Title         string `json:"title"`
	BusinessDays  int    `json:"business_days"`
	ExpectedHours string `json:"expected_hours"`
}

// StepDTO is one timed pipeline stage of a run.
type StepDTO struct {
	Name    string  `json:"name"`
	Seconds float64 `json:"seconds"`
}

// RunDTO represents one reporting run in API responses.
type RunDTO struct {
	Status      string    `json:"status"`
	Period      PeriodDTO `json:"period"`
	Steps       []StepDTO `json:"steps"`
	Error       string    `json:"error,omitempty"`
	RecordCount int       `json:"record_count"`
	DroppedRows int       `json:"dropped_rows"`
	StartedAt   time.Time `json:"started_at"`
	Seconds     float64   `json:"seconds"`
}

// HolidayDTO is one non-working date inside a window.
type HolidayDTO struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// ErrorResponse is the JSON body of every non-2xx answer.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERTERS
// =============================================================================

func toPeriodDTO(p reporting.Period, cal *calendar.Calendar) PeriodDTO {
	dto := PeriodDTO{
		Mode:          string(p.Mode),
		FilterKeyword: p.FilterKeyword,
		Start:         p.Start.String(),
		End:           p.End.String(),
		Title:         p.Title,
	}
	if cal != nil {
		dto.BusinessDays = cal.BusinessDays(p.Start, p.End)
		dto.ExpectedHours = cal.ExpectedHours(p.Start, p.End).String()
	}
	return dto
}

func toRunDTO(r robot.RunReport, cal *calendar.Calendar) RunDTO {
	steps := make([]StepDTO, 0, len(r.Steps))
	for _, s := range r.Steps {
		steps = append(steps, StepDTO{Name: s.Name, Seconds: s.Duration.Seconds()})
	}
	return RunDTO{
		Status:      string(r.Status),
		Period:      toPeriodDTO(r.Period, cal),
		Steps:       steps,
		Error:       r.Error,
		RecordCount: r.RecordCount,
		DroppedRows: r.DroppedRows,
		StartedAt:   r.StartedAt,
		Seconds:     r.Duration.Seconds(),
	}
}
