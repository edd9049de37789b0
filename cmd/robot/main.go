/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the timesheet reporting robot. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load HOURS_-prefixed environment configuration
  3. Build the holiday calendar and the runner
  4. Either run once and exit (-once), or start the HTTP server and
     the daily scheduler

COMMAND-LINE FLAGS:
  -once    Execute a single reporting run and exit. The exit code is 0
           on SUCESSO / SUCESSO (SEM DADOS) and 1 on FALHA, so a cron
           entry can still drive the robot.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop the scheduler (waits for an in-flight run)
  2. Stop accepting new connections
  3. Wait for active requests to complete (30s timeout)
  4. Exit

EXAMPLES:
  # One-shot run, driven by cron
  HOURS_SUMMARY_TO=gestor@empresa.com ./robot -once

  # Long-running service with daily schedule
  HOURS_SCHEDULE_HOUR=7 ./robot

SEE ALSO:
  - api/server.go: Router configuration
  - api/scheduler.go: Daily trigger
  - robot/run.go: The reporting pipeline
*/
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/hours-reporter/api"
	"github.com/warp/hours-reporter/notify"
	"github.com/warp/hours-reporter/portal"
	"github.com/warp/hours-reporter/robot"
)

func main() {
	once := flag.Bool("once", false, "run a single report and exit")
	flag.Parse()

	cfg, err := robot.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	cal, err := cfg.NewCalendar()
	if err != nil {
		log.Fatalf("Failed to build calendar: %v", err)
	}

	driver := &portal.FileDriver{Dir: cfg.ReportDropDir}
	mailer := &notify.SMTPMailer{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
	}
	runner := robot.NewRunner(cfg, cal, driver, nil, mailer)

	if *once {
		report := runner.Run(context.Background())
		if !report.Status.OK() {
			os.Exit(1)
		}
		return
	}

	handler := api.NewHandler(runner)
	router := api.NewRouter(handler)

	scheduler := api.NewDailyScheduler(runner, cfg.ScheduleHour)
	scheduler.Start()

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Robot listening on %s", cfg.HTTPAddr)
		log.Printf("📊 API available at http://localhost%s/api", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Robot stopped")
}
