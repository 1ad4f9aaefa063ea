package assessments

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/synapses/sfdr-navigator/internal/domain"
)

// Handler handles assessment HTTP requests
type Handler struct {
	repo *Repository
	log  zerolog.Logger
}

// NewHandler creates a new assessments handler
func NewHandler(repo *Repository, log zerolog.Logger) *Handler {
	return &Handler{
		repo: repo,
		log:  log.With().Str("handler", "assessments").Logger(),
	}
}

// HandleList returns stored assessments, newest first
// GET /api/assessments?status=&article=&limit=
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		Status:  domain.AssessmentStatus(r.URL.Query().Get("status")),
		Article: domain.Article(r.URL.Query().Get("article")),
	}

	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		if parsed, err := strconv.Atoi(limitParam); err == nil {
			filter.Limit = parsed
		}
	}

	result, err := h.repo.List(filter)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if result == nil {
		result = []Assessment{}
	}

	h.writeJSON(w, http.StatusOK, result)
}

// HandleGet returns a single assessment by id
// GET /api/assessments/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	assessment, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "Assessment not found")
			return
		}
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, assessment)
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
