package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all projection routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/projection", func(r chi.Router) {
		r.Post("/simulate", h.HandleSimulate)
		r.Post("/metrics", h.HandleMetrics)
		r.Get("/assets", h.HandleAssets)
	})
}
