/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:      Unique ID per request for tracing
  2. RealIP:         Client address behind proxies
  3. RequestLogger:  One zerolog line per request
  4. Recoverer:      Panic recovery (500 instead of crash)
  5. CORS:           Cross-origin requests for frontend

SECURITY NOTE:
  Tenant/user resolution and authorization are external collaborators;
  this service trusts the tenant path parameter. Put it behind the
  gateway that owns authn.

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

	"github.com/crewops/timeledger/logging"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, log *logging.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// API routes
	r.Route("/api/tenants/{tenantID}", func(r chi.Router) {
		r.Post("/punches", h.RecordPunch)

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)
			r.Get("/{id}", h.GetEmployee)
		})

		r.Route("/locations", func(r chi.Router) {
			r.Get("/", h.ListLocations)
			r.Post("/", h.CreateLocation)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", h.GetSettings)
			r.Put("/", h.UpdateSettings)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/hours", h.HoursReport)
			r.Get("/daily", h.DailyReport)
			r.Get("/payroll", h.PayrollReport)
			r.Get("/audit", h.AuditReport)
		})
	})

	return r
}
