/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

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
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/shifts/*         Shift rostering
  /api/board            Staffing board
  /api/requirements     Headcount overrides
  /api/staff/*          Per-worker payroll and pay terms
  /api/incomes          Game income recording
  /api/advances         Pay advances
  /api/special-wages    Supplemental rates
  /api/scenarios/*      Demo scenarios

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
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
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Shift routes
		r.Route("/shifts", func(r chi.Router) {
			r.Post("/", h.CreateShift)
			r.Get("/{id}", h.GetShift)
			r.Put("/{id}", h.UpdateShift)
			r.Patch("/{id}", h.PatchShift)
			r.Delete("/{id}", h.DeleteShift)
		})

		// Board and requirement routes
		r.Get("/board", h.GetBoard)
		r.Route("/requirements", func(r chi.Router) {
			r.Get("/", h.ListRequirements)
			r.Put("/", h.PutRequirement)
		})

		// Per-worker payroll routes
		r.Route("/staff/{id}", func(r chi.Router) {
			r.Get("/shifts", h.ListStaffShifts)
			r.Get("/payroll", h.GetPayroll)
			r.Get("/wage-policy", h.GetWagePolicy)
			r.Put("/wage-policy", h.SetWagePolicy)
		})

		// Monetary record routes
		r.Post("/incomes", h.RecordIncome)
		r.Post("/advances", h.RecordAdvance)
		r.Route("/special-wages", func(r chi.Router) {
			r.Get("/", h.ListSpecialWages)
			r.Post("/", h.CreateSpecialWage)
		})

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
		})
	})

	// Landing page for anyone hitting the server directly.
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Staffing Engine</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Staffing Engine API</h1>
<h2>API Endpoints</h2>
<ul>
<li><code>GET /api/board?store=...&from=...&to=...</code> - Staffing board</li>
<li><code>POST /api/shifts</code> - Roster a shift</li>
<li><code>GET /api/staff/{id}/payroll?month=...</code> - Monthly payroll</li>
<li><a href="/api/scenarios">/api/scenarios</a> - Demo scenarios</li>
</ul>
</body>
</html>`))
	})

	return r
}
