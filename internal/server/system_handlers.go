package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/synapses/sfdr-navigator/internal/clients/oracle"
	"github.com/synapses/sfdr-navigator/internal/database"
	"github.com/synapses/sfdr-navigator/internal/scheduler"
)

// SystemHandlers handles health, status and operational endpoints
type SystemHandlers struct {
	log       zerolog.Logger
	db        *database.DB
	oracle    *oracle.Client
	scheduler *scheduler.Scheduler
	reviewJob scheduler.Job
	startedAt time.Time
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(
	log zerolog.Logger,
	db *database.DB,
	oracleClient *oracle.Client,
	sched *scheduler.Scheduler,
	reviewJob scheduler.Job,
) *SystemHandlers {
	return &SystemHandlers{
		log:       log.With().Str("component", "system_handlers").Logger(),
		db:        db,
		oracle:    oracleClient,
		scheduler: sched,
		reviewJob: reviewJob,
		startedAt: time.Now(),
	}
}

// SystemStatusResponse represents the system status response
type SystemStatusResponse struct {
	AssessmentCount     int     `json:"assessment_count"`
	RiskAssessmentCount int     `json:"risk_assessment_count"`
	NeedsReviewCount    int     `json:"needs_review_count"`
	LastAssessment      string  `json:"last_assessment,omitempty"`
	DatabaseSizeMB      float64 `json:"database_size_mb"`
	ScheduledJobs       int     `json:"scheduled_jobs"`
	UptimeSeconds       int64   `json:"uptime_seconds"`
	OracleConfigured    bool    `json:"oracle_configured"`
}

// HandleHealth returns service liveness
// GET /health
func (h *SystemHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, map[string]string{
		"status":  "ok",
		"service": "sfdr-navigator",
	})
}

// HandleSystemStatus returns comprehensive system status
// GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting system status")

	var assessmentCount, needsReview int
	var lastAssessment sql.NullString

	err := h.db.Conn().QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN status = 'needs_review' THEN 1 ELSE 0 END), 0),
		       MAX(created_at)
		FROM compliance_assessments
	`).Scan(&assessmentCount, &needsReview, &lastAssessment)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		h.log.Error().Err(err).Msg("Failed to query assessments")
	}

	var riskCount int
	err = h.db.Conn().QueryRow(`SELECT COUNT(*) FROM risk_assessments`).Scan(&riskCount)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		h.log.Error().Err(err).Msg("Failed to query risk assessments")
	}

	last := ""
	if lastAssessment.Valid {
		if t, err := time.Parse(time.RFC3339, lastAssessment.String); err == nil {
			last = t.Format("2006-01-02 15:04")
		}
	}

	sizeMB := 0.0
	if info, err := os.Stat(h.db.Path()); err == nil {
		sizeMB = float64(info.Size()) / 1024 / 1024
	}

	response := SystemStatusResponse{
		AssessmentCount:     assessmentCount,
		RiskAssessmentCount: riskCount,
		NeedsReviewCount:    needsReview,
		LastAssessment:      last,
		DatabaseSizeMB:      sizeMB,
		ScheduledJobs:       h.scheduler.JobCount(),
		UptimeSeconds:       int64(time.Since(h.startedAt).Seconds()),
		OracleConfigured:    h.oracle != nil && h.oracle.Enabled(),
	}

	h.writeJSON(w, response)
}

// HandleCapabilities returns the classification capability document.
// Oracle data is used when reachable; otherwise the static document.
// GET /api/capabilities
func (h *SystemHandlers) HandleCapabilities(w http.ResponseWriter, r *http.Request) {
	if h.oracle != nil && h.oracle.Enabled() {
		if caps, err := h.oracle.GetCapabilities(r.Context()); err == nil {
			h.writeJSON(w, caps)
			return
		} else {
			h.log.Warn().Err(err).Msg("Oracle capabilities unavailable, serving static document")
		}
	}

	h.writeJSON(w, oracle.StaticCapabilities())
}

// HandleTriggerReviewScan triggers the review scan job immediately
// POST /api/jobs/review-scan
func (h *SystemHandlers) HandleTriggerReviewScan(w http.ResponseWriter, r *http.Request) {
	if h.reviewJob == nil {
		h.log.Warn().Msg("Review scan job not registered yet")
		h.writeJSON(w, map[string]string{
			"status":  "error",
			"message": "Review scan job not registered",
		})
		return
	}

	h.log.Info().Msg("Manual review scan triggered")

	if err := h.scheduler.RunNow(h.reviewJob); err != nil {
		h.log.Error().Err(err).Msg("Failed to run review scan")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, map[string]string{
		"status":  "success",
		"message": "Review scan completed",
	})
}

// writeJSON writes a JSON response
func (h *SystemHandlers) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
