package risk

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/synapses/sfdr-navigator/internal/modules/assessments"
)

// Handler handles risk assessment HTTP requests
type Handler struct {
	service *Service
	log     zerolog.Logger
}

// NewHandler creates a new risk handler
func NewHandler(service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "risk").Logger(),
	}
}

type assessRequest struct {
	AssessmentID string `json:"assessmentId"`
}

// HandleAssess runs a risk assessment over a stored compliance assessment
// POST /api/risk-assessment
func (h *Handler) HandleAssess(w http.ResponseWriter, r *http.Request) {
	var req assessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.AssessmentID == "" {
		h.writeError(w, http.StatusBadRequest, "Assessment ID is required")
		return
	}

	result, record, err := h.service.Assess(req.AssessmentID)
	if err != nil {
		if errors.Is(err, assessments.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "Assessment not found")
			return
		}
		h.log.Error().Err(err).Str("assessment_id", req.AssessmentID).Msg("Risk assessment failed")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	message := "Risk assessment completed successfully"
	if record == nil {
		message = "Risk assessment completed but could not be stored"
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"riskAssessment": record,
		"analysis":       result,
		"message":        message,
	})
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
