package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all hierarchy routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/coherence", func(r chi.Router) {
		r.Get("/report", h.HandleCoherenceReport)
	})
}
