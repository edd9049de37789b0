/*
scheduler.go - Daily run scheduler

PURPOSE:
  Fires one reporting run per day at the configured hour, replacing an
  external cron entry. The check loop wakes every minute and triggers
  when the local clock enters the target hour and no run has happened
  that day yet.

DESIGN:
  - Runs a background goroutine with a minute ticker
  - Remembers the last fired date, so restarts inside the target hour
    do not double-send the summary
  - A manual POST /api/run does not count as the scheduled run; the
    scheduler only tracks its own firings

USAGE:
  scheduler := NewDailyScheduler(runner, cfg.ScheduleHour)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - robot/run.go: The pipeline each firing executes
  - handlers.go: TriggerRun endpoint (manual runs)
*/
package api

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/warp/hours-reporter/calendar"
	"github.com/warp/hours-reporter/robot"
)

// DailyScheduler triggers a reporting run once per day.
type DailyScheduler struct {
	Runner        *robot.Runner
	Hour          int
	CheckInterval time.Duration
	Enabled       bool

	// Now is the injected clock; tests pin it to a fixed date.
	Now func() time.Time

	ticker    *time.Ticker
	stop      chan bool
	wg        sync.WaitGroup
	mu        sync.Mutex
	lastFired calendar.Date
}

// NewDailyScheduler creates a scheduler firing at the given local hour.
func NewDailyScheduler(runner *robot.Runner, hour int) *DailyScheduler {
	return &DailyScheduler{
		Runner:        runner,
		Hour:          hour,
		CheckInterval: 1 * time.Minute,
		Enabled:       true,
		Now:           time.Now,
		stop:          make(chan bool),
	}
}

// Start begins the scheduler.
func (s *DailyScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.Enabled {
		log.Println("[Scheduler] Disabled, not starting")
		return
	}

	s.ticker = time.NewTicker(s.CheckInterval)
	s.wg.Add(1)

	go s.run()

	log.Printf("[Scheduler] Started, firing daily at %02d:00 local time", s.Hour)
}

// Stop stops the scheduler.
func (s *DailyScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker != nil {
		s.ticker.Stop()
		close(s.stop)
		s.wg.Wait()
		log.Println("[Scheduler] Stopped")
	}
}

func (s *DailyScheduler) run() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ticker.C:
			s.checkAndFire()
		case <-s.stop:
			return
		}
	}
}

func (s *DailyScheduler) checkAndFire() {
	now := s.Now()
	today := calendar.DateOf(now)

	// lastFired is only touched from the scheduler goroutine.
	if now.Hour() != s.Hour || s.lastFired.Equal(today) {
		return
	}
	s.lastFired = today

	log.Printf("[Scheduler] Disparando execução agendada de %s", today)
	report := s.Runner.Run(context.Background())
	log.Printf("[Scheduler] Execução agendada terminou com status %s", report.Status)
}

// RunNow triggers an immediate check (for testing/admin).
func (s *DailyScheduler) RunNow() {
	s.checkAndFire()
}
