package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/hours-reporter/api"
	"github.com/warp/hours-reporter/calendar"
	"github.com/warp/hours-reporter/notify"
	"github.com/warp/hours-reporter/reporting"
	"github.com/warp/hours-reporter/robot"
)

// =============================================================================
// FIXTURES
// =============================================================================

type stubDriver struct{ err error }

func (d stubDriver) Download(context.Context, string) (string, error) {
	return "", d.err
}

type stubMailer struct{}

func (stubMailer) Send(context.Context, notify.Message) error { return nil }

func newTestHandler(t *testing.T) (*api.Handler, *robot.Runner) {
	t.Helper()

	cfg := &robot.Config{
		ApprovedStatus: "Aprovado",
		WorkdayHours:   8,
		MailFrom:       "robo@example.com",
	}
	cal, err := cfg.NewCalendar()
	require.NoError(t, err)

	runner := robot.NewRunner(cfg, cal, stubDriver{err: errors.New("no portal in tests")}, nil, stubMailer{})
	runner.Now = func() time.Time {
		return time.Date(2025, time.June, 11, 8, 0, 0, 0, time.UTC)
	}
	return api.NewHandler(runner), runner
}

func doRequest(h *api.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	api.NewRouter(h).ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

// =============================================================================
// ENDPOINTS
// =============================================================================

func TestHealthz(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := doRequest(h, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetStatus_EmptyHistoryIs404(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := doRequest(h, http.MethodGet, "/api/status")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetStatus_ReturnsLatestRun(t *testing.T) {
	h, runner := newTestHandler(t)
	runner.History.Append(robot.RunReport{
		Status:      notify.StatusSuccess,
		Period:      reporting.Resolve(calendar.DateOf(runner.Now())),
		RecordCount: 12,
		StartedAt:   runner.Now(),
		Duration:    3 * time.Second,
	})

	rec := doRequest(h, http.MethodGet, "/api/status")
	require.Equal(t, http.StatusOK, rec.Code)

	var dto api.RunDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, "SUCESSO", dto.Status)
	assert.Equal(t, 12, dto.RecordCount)
	assert.Equal(t, "2025-06-01", dto.Period.Start)
	assert.Equal(t, "2025-06-06", dto.Period.End)
	assert.InDelta(t, 3.0, dto.Seconds, 0.001)
}

func TestListRuns_NewestFirst(t *testing.T) {
	h, runner := newTestHandler(t)
	runner.History.Append(robot.RunReport{Status: notify.StatusFailure})
	runner.History.Append(robot.RunReport{Status: notify.StatusSuccess})

	rec := doRequest(h, http.MethodGet, "/api/runs")
	require.Equal(t, http.StatusOK, rec.Code)

	var dtos []api.RunDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dtos))
	require.Len(t, dtos, 2)
	assert.Equal(t, "SUCESSO", dtos[0].Status)
	assert.Equal(t, "FALHA", dtos[1].Status)
}

func TestResolvePeriod(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doRequest(h, http.MethodGet, "/api/period?date=2025-06-11")
	require.Equal(t, http.StatusOK, rec.Code)

	var dto api.PeriodDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, "2025-06-01", dto.Start)
	assert.Equal(t, "2025-06-06", dto.End)
	assert.Equal(t, "current-month", dto.FilterKeyword)
	assert.Equal(t, 5, dto.BusinessDays)
	assert.Equal(t, "40", dto.ExpectedHours)
	assert.Contains(t, dto.Title, "Junho de 2025")
}

func TestResolvePeriod_DefaultsToToday(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doRequest(h, http.MethodGet, "/api/period")
	require.Equal(t, http.StatusOK, rec.Code)

	var dto api.PeriodDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, "2025-06-01", dto.Start)
}

func TestResolvePeriod_BadDateIs400(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := doRequest(h, http.MethodGet, "/api/period?date=11/06/2025")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListHolidays(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doRequest(h, http.MethodGet, "/api/holidays?year=2025")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Year     int              `json:"year"`
		Holidays []api.HolidayDTO `json:"holidays"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2025, body.Year)

	byDate := make(map[string]string)
	for i, day := range body.Holidays {
		byDate[day.Date] = day.Name
		if i > 0 {
			assert.Less(t, body.Holidays[i-1].Date, day.Date, "holidays must be sorted")
		}
	}
	assert.Contains(t, byDate, "2025-01-01")
	assert.Contains(t, byDate, "2025-01-26")
	assert.Contains(t, byDate, "2025-09-08")
}

func TestTriggerRun_RunsInBackground(t *testing.T) {
	h, runner := newTestHandler(t)

	rec := doRequest(h, http.MethodPost, "/api/run")
	assert.Equal(t, http.StatusAccepted, rec.Code)

	// The stub driver fails fast; wait for the report to land.
	deadline := time.Now().Add(5 * time.Second)
	for {
		if last, ok := runner.History.Last(); ok {
			assert.Equal(t, notify.StatusFailure, last.Status)
			assert.Contains(t, last.Error, "no portal in tests")
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("background run never recorded a report")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// =============================================================================
// SCHEDULER
// =============================================================================

func TestScheduler_FiresOncePerDay(t *testing.T) {
	_, runner := newTestHandler(t)

	sched := api.NewDailyScheduler(runner, 7)
	sched.Now = func() time.Time {
		return time.Date(2025, time.June, 11, 7, 15, 0, 0, time.UTC)
	}

	sched.RunNow()
	sched.RunNow() // same day, same hour: must not fire again

	assert.Len(t, runner.History.List(), 1)
}

func TestScheduler_SkipsOutsideTargetHour(t *testing.T) {
	_, runner := newTestHandler(t)

	sched := api.NewDailyScheduler(runner, 7)
	sched.Now = func() time.Time {
		return time.Date(2025, time.June, 11, 9, 0, 0, 0, time.UTC)
	}

	sched.RunNow()
	assert.Empty(t, runner.History.List())
}
