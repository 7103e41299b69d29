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
  1. RequestID:     Unique ID per request for tracing
  2. RequestLogger: Structured request logging (httplog over slog)
  3. Recoverer:     Panic recovery (500 instead of crash)
  4. CORS:          Cross-origin requests for frontend

ROUTE GROUPS:
  /api/employees/*   Per-employee views and submissions
  /api/leaves/*      Leave lifecycle
  /api/admin/*       Admin-only operations (overrides, closes, settings)
  /api/holidays/*    Holiday calendar

SECURITY NOTE:
  No authentication middleware currently. The /api/admin subtree is where
  an authorization check belongs once one exists.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "attendance-engine"),
	)

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(middleware.Heartbeat("/health"))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Employee routes
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)
			r.Get("/{id}", h.GetEmployee)
			r.Get("/{id}/attendance", h.GetMonthView)
			r.Get("/{id}/attendance/day", h.ClassifyDay)
			r.Post("/{id}/check-in", h.RecordCheckIn)
			r.Get("/{id}/overtime", h.ListOvertime)
			r.Post("/{id}/overtime", h.SubmitOvertime)
			r.Get("/{id}/leaves", h.ListLeaves)
			r.Get("/{id}/rating", h.GetRating)
			r.Get("/{id}/entitlement", h.GetEntitlement)
		})

		// Leave lifecycle routes
		r.Route("/leaves", func(r chi.Router) {
			r.Post("/", h.CreateLeave)
		})

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Post("/overtime", h.AdminLogOvertime)
			r.Route("/employees/{id}", func(r chi.Router) {
				r.Post("/attendance", h.OverrideAttendance)
				r.Post("/overtime/{otID}/approve", h.ApproveOvertime)
				r.Post("/overtime/{otID}/reject", h.RejectOvertime)
				r.Post("/leaves/{leaveID}/approve", h.ApproveLeave)
				r.Post("/leaves/{leaveID}/reject", h.RejectLeave)
				r.Post("/rating/close", h.CloseRating)
				r.Get("/integrity", h.CheckIntegrity)
			})
			r.Get("/settings", h.GetSettings)
			r.Put("/settings", h.SaveSettings)
		})

		// Holiday routes
		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", h.ListHolidays)
			r.Post("/", h.AddHoliday)
			r.Delete("/{date}", h.DeleteHoliday)
		})
	})

	return r
}
