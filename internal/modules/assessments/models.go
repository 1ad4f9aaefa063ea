package assessments

import (
	"encoding/json"
	"time"

	"github.com/synapses/sfdr-navigator/internal/domain"
)

// Assessment is a persisted compliance assessment row. Persisted fields
// use snake_case on the wire, matching the stored row convention.
type Assessment struct {
	ID                string                  `json:"id"`
	FundName          string                  `json:"fund_name"`
	EntityID          string                  `json:"entity_id"`
	TargetArticle     domain.Article          `json:"target_article"`
	AssessmentData    json.RawMessage         `json:"assessment_data"`
	ValidationResults json.RawMessage         `json:"validation_results"`
	ComplianceScore   int                     `json:"compliance_score"`
	Status            domain.AssessmentStatus `json:"status"`
	CreatedAt         time.Time               `json:"created_at"`
}

// ValidationResults is the decoded shape of the validation_results
// column, written at classification time and read back by the risk module
type ValidationResults struct {
	Issues          []domain.ValidationIssue `json:"issues"`
	Recommendations []string                 `json:"recommendations"`
	Classification  json.RawMessage          `json:"classification"`
	ComplianceScore int                      `json:"complianceScore"`
}

// ListFilter narrows List queries
type ListFilter struct {
	Status  domain.AssessmentStatus
	Article domain.Article
	Limit   int
}

// ScoreSample is a compliance score observation used by analytics
type ScoreSample struct {
	Score     int
	Article   domain.Article
	Status    domain.AssessmentStatus
	CreatedAt time.Time
}
