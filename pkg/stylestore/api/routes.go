package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) SetupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RequestLogger(h.logger))
	r.Use(middleware.Recoverer)
	r.Use(CORSMiddleware)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(DefaultHealthCheckTimeout))
		r.Get("/healthz", h.Healthz)
		r.Get("/readyz", h.Readyz)
	})

	r.Route("/styles", func(r chi.Router) {
		r.Use(middleware.Timeout(h.requestTimeout))
		r.Get("/", h.ListStyles)
		r.Head("/{typeName}", h.HeadStyle)
		r.Get("/{typeName}", h.GetStyle)
		r.Put("/{typeName}", h.PutStyle)
		r.Delete("/{typeName}", h.DeleteStyle)
	})

	r.Route("/api/events", func(r chi.Router) {
		r.Use(middleware.Timeout(h.requestTimeout))
		r.Get("/", h.ListEvents)
		r.Get("/errors", h.GetRecentErrors)
		r.Delete("/", h.CleanupEvents)
	})

	return r
}
