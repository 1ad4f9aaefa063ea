package risk

import (
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/synapses/sfdr-navigator/internal/events"
	"github.com/synapses/sfdr-navigator/internal/modules/assessments"
	"github.com/synapses/sfdr-navigator/internal/weights"
)

// reviewInterval is how far ahead the next review date is set
const reviewInterval = 90 * 24 * time.Hour

// Service computes and persists risk assessments over stored compliance
// assessments. Stateless apart from injected collaborators.
type Service struct {
	analyzer   *Analyzer
	assessRepo *assessments.Repository
	riskRepo   *Repository
	eventMgr   *events.Manager
	log        zerolog.Logger
}

// NewService creates a new risk service
func NewService(
	w weights.Weights,
	assessRepo *assessments.Repository,
	riskRepo *Repository,
	eventMgr *events.Manager,
	log zerolog.Logger,
) *Service {
	return &Service{
		analyzer:   NewAnalyzer(w.Risk),
		assessRepo: assessRepo,
		riskRepo:   riskRepo,
		eventMgr:   eventMgr,
		log:        log.With().Str("service", "risk").Logger(),
	}
}

// Assess runs the five category analyzers over a stored assessment and
// persists the outcome. The computed result is returned even when the
// insert fails; in that case the returned record is nil and the failure
// is logged.
func (s *Service) Assess(assessmentID string) (*Result, *Record, error) {
	assessment, err := s.assessRepo.GetByID(assessmentID)
	if err != nil {
		return nil, nil, err
	}

	var validation assessments.ValidationResults
	if err := json.Unmarshal(assessment.ValidationResults, &validation); err != nil {
		s.log.Warn().Err(err).Str("assessment_id", assessmentID).Msg("Unreadable validation results, assessing without issues")
	}

	var data AssessmentData
	if len(assessment.AssessmentData) > 0 {
		if err := json.Unmarshal(assessment.AssessmentData, &data); err != nil {
			s.log.Warn().Err(err).Str("assessment_id", assessmentID).Msg("Unreadable assessment data, using defaults")
		}
	}

	categories := map[string]Category{
		"regulatory":   s.analyzer.AnalyzeRegulatory(assessment, validation.Issues),
		"operational":  s.analyzer.AnalyzeOperational(data),
		"reputational": s.analyzer.AnalyzeReputational(assessment, data, validation.Issues),
		"financial":    s.analyzer.AnalyzeFinancial(data),
		"data":         s.analyzer.AnalyzeDataQuality(data),
	}

	sum := 0
	for _, cat := range categories {
		sum += cat.Score
	}
	overall := int(math.Round(float64(sum) / float64(len(categories))))

	risks := IdentifyTopRisks(categories)
	mitigations := BuildMitigations(risks)

	now := time.Now().UTC()
	result := &Result{
		OverallRiskScore:          overall,
		RiskLevel:                 LevelFromScore(overall),
		Categories:                categories,
		IdentifiedRisks:           risks,
		MitigationRecommendations: mitigations,
		AssessmentDate:            now.Format(time.RFC3339),
		NextReviewDate:            now.Add(reviewInterval).Format(time.RFC3339),
	}

	record := &Record{
		ID:             uuid.NewString(),
		AssessmentID:   assessmentID,
		RiskScore:      overall,
		RiskLevel:      result.RiskLevel,
		Categories:     mustMarshal(categories),
		Identified:     mustMarshal(risks),
		Mitigation:     mustMarshal(mitigations),
		AssessmentDate: now,
		NextReviewDate: now.Add(reviewInterval),
	}

	if err := s.riskRepo.Insert(record); err != nil {
		s.log.Error().Err(err).Str("assessment_id", assessmentID).Msg("Failed to persist risk assessment")
		s.eventMgr.EmitError("risk", err, map[string]interface{}{
			"assessment_id": assessmentID,
		})
		return result, nil, nil
	}

	s.eventMgr.Emit(events.RiskAssessed, "risk", map[string]interface{}{
		"assessment_id": assessmentID,
		"risk_id":       record.ID,
		"risk_score":    overall,
		"risk_level":    string(result.RiskLevel),
	})

	return result, record, nil
}

func mustMarshal(v interface{}) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		return []byte("{}")
	}
	return data
}
