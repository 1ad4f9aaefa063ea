package classification

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/synapses/sfdr-navigator/internal/clients/oracle"
	"github.com/synapses/sfdr-navigator/internal/domain"
	"github.com/synapses/sfdr-navigator/internal/events"
	"github.com/synapses/sfdr-navigator/internal/modules/assessments"
	"github.com/synapses/sfdr-navigator/internal/weights"
)

const validatorVersion = "1.2.0"

// complianceCheckCount is the denominator of the compliance score:
// errors subtract from a battery of ten notional checks.
const complianceCheckCount = 10

// validatedConfidenceThreshold gates the validated/needs_review status
const validatedConfidenceThreshold = 0.7

// Service runs the full classification pipeline: request validation,
// rule evaluation, article recommendation, confidence scoring and
// assessment persistence. It holds no per-request state and is safe for
// concurrent use.
type Service struct {
	rules    *RuleEvaluator
	scorer   *ConfidenceScorer
	repo     *assessments.Repository
	oracle   *oracle.Client
	eventMgr *events.Manager
	log      zerolog.Logger
}

// NewService creates a new classification service
func NewService(
	w weights.Weights,
	repo *assessments.Repository,
	oracleClient *oracle.Client,
	eventMgr *events.Manager,
	log zerolog.Logger,
) *Service {
	return &Service{
		rules:    NewRuleEvaluator(w.PAI),
		scorer:   NewConfidenceScorer(w.Confidence),
		repo:     repo,
		oracle:   oracleClient,
		eventMgr: eventMgr,
		log:      log.With().Str("service", "classification").Logger(),
	}
}

// Classify validates and evaluates a classification request. A
// *ValidationError return means the request was malformed and nothing
// was evaluated; any other outcome produces a full response, including
// when persistence fails (the failure is logged and surfaced in the
// audit trail rather than aborting the reply).
func (s *Service) Classify(ctx context.Context, req *Request) (*Response, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	started := time.Now()

	issues, recommendations := s.rules.Evaluate(req)
	recommended := s.recommendArticle(ctx, req)
	confidence := s.scorer.Score(req, issues)

	errorCount := domain.CountBySeverity(issues, domain.SeverityError)
	complianceScore := int(math.Round(float64(complianceCheckCount-errorCount) / complianceCheckCount * 100))

	classification := Result{
		RecommendedArticle:         recommended,
		Confidence:                 confidence,
		Reasoning:                  BuildReasoning(req, recommended),
		AlternativeClassifications: BuildAlternatives(recommended),
	}

	resp := &Response{
		IsValid:           errorCount == 0,
		RequestID:         uuid.NewString(),
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
		Classification:    classification,
		Issues:            issues,
		Recommendations:   append(recommendations, standingRecommendations()...),
		Sources:           regulatorySources(),
		ValidationDetails: buildValidationDetails(req, issues),
		ComplianceScore:   complianceScore,
		RegulatoryReferences: []RegulatoryReference{
			{
				Regulation: "SFDR",
				Article:    strings.TrimPrefix(string(req.FundProfile.TargetArticleClassification), "Article"),
				Text:       "Regulatory requirements for " + string(req.FundProfile.TargetArticleClassification) + " fund classification",
			},
		},
		AuditTrail: AuditTrail{
			ValidatorVersion: validatorVersion,
			ChecksPerformed: []string{
				"Article classification validation",
				"PAI indicator consistency",
				"Taxonomy alignment check",
				"Data quality assessment",
				"Disclosure completeness review",
			},
		},
	}

	s.persistAssessment(req, resp, confidence)

	resp.AuditTrail.ProcessingTimeMs = float64(time.Since(started).Microseconds()) / 1000

	return resp, nil
}

// recommendArticle asks the oracle first when one is configured, falling
// back to the local heuristic classifier. Oracle failures are non-fatal.
func (s *Service) recommendArticle(ctx context.Context, req *Request) domain.Article {
	local := RecommendArticle(req.FundProfile)

	if s.oracle == nil || !s.oracle.Enabled() {
		return local
	}

	text := req.FundProfile.InvestmentObjective
	if len(req.FundProfile.SustainabilityCharacteristics) > 0 {
		text += "\n" + strings.Join(req.FundProfile.SustainabilityCharacteristics, "; ")
	}

	result, err := s.oracle.Classify(ctx, oracle.ClassifyRequest{
		Text:         text,
		DocumentType: "fund_profile",
		Strategy:     "sfdr_article",
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("Oracle classification failed, using heuristic classifier")
		s.eventMgr.Emit(events.OracleFallback, "classification", map[string]interface{}{
			"entity_id": req.Metadata.EntityID,
			"error":     err.Error(),
		})
		return local
	}

	if article := domain.Article(result.Classification); article.Valid() {
		return article
	}

	s.log.Warn().Str("classification", result.Classification).Msg("Oracle returned unknown article, using heuristic classifier")
	return local
}

// persistAssessment writes the assessment row. Insert failures do not
// abort the response; they are logged and recorded in the audit trail.
func (s *Service) persistAssessment(req *Request, resp *Response, confidence float64) {
	status := domain.StatusNeedsReview
	if confidence >= validatedConfidenceThreshold {
		status = domain.StatusValidated
	}

	results, err := json.Marshal(assessments.ValidationResults{
		Issues:          resp.Issues,
		Recommendations: resp.Recommendations,
		Classification:  mustMarshal(resp.Classification),
		ComplianceScore: resp.ComplianceScore,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to encode validation results")
		resp.AuditTrail.PersistenceError = "failed to encode validation results"
		return
	}

	record := &assessments.Assessment{
		ID:                uuid.NewString(),
		FundName:          req.FundProfile.FundName,
		EntityID:          req.Metadata.EntityID,
		TargetArticle:     req.FundProfile.TargetArticleClassification,
		AssessmentData:    req.AssessmentData,
		ValidationResults: results,
		ComplianceScore:   resp.ComplianceScore,
		Status:            status,
		CreatedAt:         time.Now().UTC(),
	}

	if err := s.repo.Insert(record); err != nil {
		s.log.Error().Err(err).Str("fund", record.FundName).Msg("Failed to persist assessment")
		s.eventMgr.EmitError("classification", err, map[string]interface{}{
			"entity_id": record.EntityID,
		})
		resp.AuditTrail.PersistenceError = "assessment could not be stored"
		return
	}

	resp.AssessmentID = record.ID

	s.eventMgr.Emit(events.AssessmentCreated, "classification", map[string]interface{}{
		"assessment_id":    record.ID,
		"fund_name":        record.FundName,
		"target_article":   string(record.TargetArticle),
		"compliance_score": record.ComplianceScore,
		"status":           string(record.Status),
	})
}

func buildValidationDetails(req *Request, issues []domain.ValidationIssue) ValidationDetails {
	articleCompliant := true
	paiConsistent := true
	for _, issue := range issues {
		if issue.Severity == domain.SeverityError && strings.Contains(issue.RuleID, "ART") {
			articleCompliant = false
		}
		if strings.Contains(issue.RuleID, "PAI") || strings.Contains(issue.ID, "PAI") {
			paiConsistent = false
		}
	}

	dataQuality := false
	if req.PAIIndicators != nil && req.PAIIndicators.DataQuality != nil {
		dataQuality = req.PAIIndicators.DataQuality.CoveragePercentage > 80
	}

	return ValidationDetails{
		ArticleCompliance:        articleCompliant,
		PAIConsistency:           paiConsistent,
		TaxonomyAlignment:        req.TaxonomyAlignment != nil,
		DataQuality:              dataQuality,
		DisclosureCompleteness:   domain.CountBySeverity(issues, domain.SeverityError) == 0,
		DocumentationSufficiency: true,
	}
}

func standingRecommendations() []string {
	return []string{
		"Ensure all mandatory disclosures are complete before filing",
		"Consider implementing systematic PAI data collection processes",
		"Review ESMA Q&A for latest SFDR interpretation guidance",
	}
}

func regulatorySources() []string {
	return []string{
		"SFDR Regulation (EU) 2019/2088",
		"Commission Delegated Regulation (EU) 2022/1288",
		"ESMA Guidelines on SFDR Article 8 and 9",
		"EU Taxonomy Regulation (EU) 2020/852",
	}
}

func mustMarshal(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage("{}")
	}
	return data
}
