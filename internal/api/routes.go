package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates a new router with all routes configured
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (all routes)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware)
	r.Use(RecoveryMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes (no auth required)
		r.Get("/health", h.Health)

		// Protected routes (auth required)
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(h.apiKey))

			r.Route("/owners/{owner}", func(r chi.Router) {
				r.Post("/session", h.StartSession)
				r.Get("/progression", h.GetProgression)

				r.Route("/subscriptions", func(r chi.Router) {
					r.Get("/", h.ListSubscriptions)
					r.Post("/", h.CreateSubscription)
					r.Patch("/{id}", h.UpdateSubscription)
					r.Delete("/{id}", h.DeleteSubscription)
				})

				r.Route("/focus", func(r chi.Router) {
					r.Get("/", h.GetFocus)
					r.Post("/", h.StartFocus)
					r.Delete("/", h.CancelFocus)
					r.Get("/spend", h.FocusSpend)
				})

				r.Route("/expenses", func(r chi.Router) {
					r.Get("/", h.ListExpenses)
					r.Post("/", h.CreateExpense)
					r.Delete("/{id}", h.DeleteExpense)
				})
			})
		})
	})

	return r
}
