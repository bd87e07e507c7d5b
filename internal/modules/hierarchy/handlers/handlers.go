// Package handlers provides HTTP handlers for the coherence hierarchy report.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/coherence/internal/modules/hierarchy"
)

// Handler handles hierarchy report HTTP requests
type Handler struct {
	service *hierarchy.Service
	log     zerolog.Logger
}

// NewHandler creates a new hierarchy handler
func NewHandler(service *hierarchy.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "hierarchy").Logger(),
	}
}

// HandleCoherenceReport handles GET /coherence/report
func (h *Handler) HandleCoherenceReport(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	report, err := h.service.Analyze()
	if err != nil {
		h.log.Error().Err(err).Msg("Hierarchy analysis failed")
		h.writeError(w, http.StatusInternalServerError, "Analysis failed: "+err.Error())
		return
	}

	h.log.Info().
		Str("report_id", report.ReportID).
		Dur("elapsed", time.Since(startTime)).
		Float64("emotional_intelligence", report.EmotionalIntelligence).
		Msg("Coherence report generated")

	h.writeJSON(w, http.StatusOK, report)
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an error response
func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{
		"error": message,
	})
}
