/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for dashboards

SECURITY NOTE:
  No authentication middleware. The robot is expected to run inside a
  private network; POST /api/run is reachable by anyone who can reach
  the port.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/robot/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", h.Healthz)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/status", h.GetStatus)
		r.Get("/runs", h.ListRuns)
		r.Get("/period", h.ResolvePeriod)
		r.Get("/holidays", h.ListHolidays)
		r.Post("/run", h.TriggerRun)
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Robô de Apontamentos</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Robô de Apontamentos</h1>
<h2>API Endpoints</h2>
<ul>
<li><a href="/api/status">/api/status</a> - Latest run report</li>
<li><a href="/api/runs">/api/runs</a> - Run history</li>
<li><a href="/api/period">/api/period</a> - Resolved analysis window</li>
<li><a href="/api/holidays">/api/holidays</a> - Observed holidays</li>
<li>POST /api/run - Trigger a run now</li>
</ul>
</body>
</html>`))
	})

	return r
}
