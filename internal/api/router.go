package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/folio/internal/portfolio"
)

// NewRouter creates a chi router with all API routes mounted.
// events, if non-nil, is mounted at GET /admin/events behind bearer auth.
func NewRouter(svc *portfolio.Service, events http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()

	// Public.
	r.Get("/projects", h.ListProjects)
	r.Get("/certificates", h.ListCertificates)
	r.Post("/contact", h.SubmitContact)
	r.Post("/auth/login", h.Login)

	// Admin.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(svc))
		r.Get("/admin/messages", h.ListMessages)
		r.Get("/admin/stats", h.Stats)
		if events != nil {
			r.Get("/admin/events", events.ServeHTTP)
		}
	})

	return r
}

// HealthRoutes mounts the liveness and readiness probes.
func HealthRoutes(r chi.Router, svc *portfolio.Service) {
	h := NewHandler(svc)
	r.Get("/health/live", h.Live)
	r.Get("/health/ready", h.Ready)
}
