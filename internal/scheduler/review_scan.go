package scheduler

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/synapses/sfdr-navigator/internal/events"
	"github.com/synapses/sfdr-navigator/internal/modules/risk"
)

// ReviewScanJob flags risk assessments whose 90-day review window has
// lapsed. It only reports; re-assessment stays a caller decision.
type ReviewScanJob struct {
	riskRepo *risk.Repository
	eventMgr *events.Manager
	log      zerolog.Logger
}

// NewReviewScanJob creates a new review scan job
func NewReviewScanJob(riskRepo *risk.Repository, eventMgr *events.Manager, log zerolog.Logger) *ReviewScanJob {
	return &ReviewScanJob{
		riskRepo: riskRepo,
		eventMgr: eventMgr,
		log:      log.With().Str("job", "review_scan").Logger(),
	}
}

// Name implements Job
func (j *ReviewScanJob) Name() string {
	return "review_scan"
}

// Run implements Job
func (j *ReviewScanJob) Run() error {
	due, err := j.riskRepo.ListReviewDue(time.Now())
	if err != nil {
		return fmt.Errorf("review scan failed: %w", err)
	}

	if len(due) == 0 {
		j.log.Debug().Msg("No risk assessments due for review")
		return nil
	}

	for _, rec := range due {
		j.log.Info().
			Str("risk_id", rec.ID).
			Str("assessment_id", rec.AssessmentID).
			Str("risk_level", string(rec.RiskLevel)).
			Time("next_review_date", rec.NextReviewDate).
			Msg("Risk assessment review overdue")

		j.eventMgr.Emit(events.ReviewDue, "scheduler", map[string]interface{}{
			"risk_id":          rec.ID,
			"assessment_id":    rec.AssessmentID,
			"risk_level":       string(rec.RiskLevel),
			"next_review_date": rec.NextReviewDate.Format(time.RFC3339),
		})
	}

	j.log.Info().Int("count", len(due)).Msg("Review scan completed")

	return nil
}
