/*
handlers.go - HTTP API handlers for the reporting robot

PURPOSE:
  Exposes the robot's state and controls over REST. Handles HTTP
  request/response, JSON serialization, and delegates to the runner.

ENDPOINTS:
  GET  /healthz              Liveness probe
  GET  /api/status           Latest run report
  GET  /api/runs             Recent run history, newest first
  GET  /api/period?date=     Resolve the analysis window for a date
  GET  /api/holidays?year=   Holidays the calendar observes in a year
  POST /api/run              Trigger a run outside the schedule

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid query parameters
  - 404: No run has happened yet
  - 409: A run is already in flight
  - 500: Internal errors

SEE ALSO:
  - dto.go: Response data structures
  - server.go: Router setup and middleware
  - robot/run.go: The pipeline behind POST /api/run
*/
package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/warp/hours-reporter/calendar"
	"github.com/warp/hours-reporter/reporting"
	"github.com/warp/hours-reporter/robot"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Runner   *robot.Runner
	Calendar *calendar.Calendar

	// running guards POST /api/run; the Runner also serializes runs
	// internally, but rejecting early gives the caller a clean 409.
	running atomic.Bool
}

// NewHandler creates a handler around a configured runner.
func NewHandler(runner *robot.Runner) *Handler {
	return &Handler{Runner: runner, Calendar: runner.Calendar}
}

// =============================================================================
// ENDPOINTS
// =============================================================================

// Healthz answers liveness probes.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetStatus returns the most recent run report.
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	last, ok := h.Runner.History.Last()
	if !ok {
		writeError(w, http.StatusNotFound, "no runs recorded yet", nil)
		return
	}
	writeJSON(w, http.StatusOK, toRunDTO(last, h.Calendar))
}

// ListRuns returns the retained run history, newest first.
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs := h.Runner.History.List()
	dtos := make([]RunDTO, 0, len(runs))
	for _, run := range runs {
		dtos = append(dtos, toRunDTO(run, h.Calendar))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ResolvePeriod answers which window a run on the given date would
// analyze. Defaults to today when no date is passed.
func (h *Handler) ResolvePeriod(w http.ResponseWriter, r *http.Request) {
	today := calendar.DateOf(h.Runner.Now())
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD", err)
			return
		}
		today = calendar.DateOf(parsed)
	}
	writeJSON(w, http.StatusOK, toPeriodDTO(reporting.Resolve(today), h.Calendar))
}

// ListHolidays returns the observed holidays of a year, ordered by date.
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year := calendar.DateOf(h.Runner.Now()).Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1900 || parsed > 2200 {
			writeError(w, http.StatusBadRequest, "year must be a four-digit number", err)
			return
		}
		year = parsed
	}

	byDate := h.Calendar.HolidaysFor(year)
	dtos := make([]HolidayDTO, 0, len(byDate))
	for date, name := range byDate {
		dtos = append(dtos, HolidayDTO{Date: date.String(), Name: name})
	}
	sort.Slice(dtos, func(i, j int) bool { return dtos[i].Date < dtos[j].Date })

	writeJSON(w, http.StatusOK, map[string]any{"year": year, "holidays": dtos})
}

// TriggerRun starts a run in the background and answers immediately.
func (h *Handler) TriggerRun(w http.ResponseWriter, r *http.Request) {
	if !h.running.CompareAndSwap(false, true) {
		writeError(w, http.StatusConflict, "a run is already in progress", nil)
		return
	}

	go func() {
		defer h.running.Store(false)
		report := h.Runner.Run(context.Background())
		log.Printf("[API] Execução manual terminou com status %s", report.Status)
	}()

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "started"})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
