package analytics

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

// Handler handles analytics HTTP requests
type Handler struct {
	service *Service
	log     zerolog.Logger
}

// NewHandler creates a new analytics handler
func NewHandler(service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "analytics").Logger(),
	}
}

// HandleComplianceSummary returns the aggregate compliance summary
// GET /api/analytics/compliance
func (h *Handler) HandleComplianceSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.ComplianceSummary()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to compute compliance summary")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
