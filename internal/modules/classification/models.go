package classification

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/synapses/sfdr-navigator/internal/domain"
)

// RequestMetadata carries caller identification for a classification request
type RequestMetadata struct {
	EntityID        string `json:"entityId"`
	ReportingPeriod string `json:"reportingPeriod,omitempty"`
}

// FundProfile describes the fund under classification
type FundProfile struct {
	FundName                      string         `json:"fundName"`
	InvestmentObjective           string         `json:"investmentObjective,omitempty"`
	TargetArticleClassification   domain.Article `json:"targetArticleClassification"`
	SustainabilityCharacteristics []string       `json:"sustainabilityCharacteristics,omitempty"`
}

// DataQuality describes coverage of the reported indicator data
type DataQuality struct {
	CoveragePercentage float64 `json:"coveragePercentage"`
}

// PAIIndicators holds Principal Adverse Impact disclosure data
type PAIIndicators struct {
	ConsiderationStatement string       `json:"considerationStatement,omitempty"`
	MandatoryIndicators    []string     `json:"mandatoryIndicators,omitempty"`
	DataQuality            *DataQuality `json:"dataQuality,omitempty"`
}

// Percentage accepts both JSON numbers and numeric strings, since both
// conventions appear in upstream filings.
type Percentage float64

// UnmarshalJSON implements json.Unmarshaler
func (p *Percentage) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid percentage value %q", s)
	}

	*p = Percentage(v)
	return nil
}

// TaxonomyAlignment holds EU Taxonomy alignment disclosure
type TaxonomyAlignment struct {
	AlignmentPercentage *Percentage `json:"alignmentPercentage,omitempty"`
}

// Request is a full SFDR classification request
type Request struct {
	Metadata          RequestMetadata    `json:"metadata"`
	FundProfile       FundProfile        `json:"fundProfile"`
	PAIIndicators     *PAIIndicators     `json:"paiIndicators,omitempty"`
	TaxonomyAlignment *TaxonomyAlignment `json:"taxonomyAlignment,omitempty"`
	// AssessmentData is stored verbatim with the assessment and consumed
	// later by the risk module; classification treats it as opaque.
	AssessmentData json.RawMessage `json:"assessmentData,omitempty"`
}

// AlternativeClassification is a non-recommended article with the
// conditions under which it would apply
type AlternativeClassification struct {
	Article    domain.Article `json:"article"`
	Confidence float64        `json:"confidence"`
	Conditions []string       `json:"conditions"`
}

// Result is the classifier output
type Result struct {
	RecommendedArticle         domain.Article              `json:"recommendedArticle"`
	Confidence                 float64                     `json:"confidence"`
	Reasoning                  []string                    `json:"reasoning"`
	AlternativeClassifications []AlternativeClassification `json:"alternativeClassifications"`
}

// ValidationDetails summarizes which compliance dimensions passed
type ValidationDetails struct {
	ArticleCompliance        bool `json:"articleCompliance"`
	PAIConsistency           bool `json:"paiConsistency"`
	TaxonomyAlignment        bool `json:"taxonomyAlignment"`
	DataQuality              bool `json:"dataQuality"`
	DisclosureCompleteness   bool `json:"disclosureCompleteness"`
	DocumentationSufficiency bool `json:"documentationSufficiency"`
}

// RegulatoryReference cites the regulation backing a validation run
type RegulatoryReference struct {
	Regulation string `json:"regulation"`
	Article    string `json:"article"`
	Text       string `json:"text"`
}

// AuditTrail records how a validation run was performed
type AuditTrail struct {
	ValidatorVersion string   `json:"validatorVersion"`
	ProcessingTimeMs float64  `json:"processingTime"`
	ChecksPerformed  []string `json:"checksPerformed"`
	PersistenceError string   `json:"persistenceError,omitempty"`
}

// Response is the full payload returned by POST /api/classify
type Response struct {
	IsValid              bool                     `json:"isValid"`
	RequestID            string                   `json:"requestId"`
	Timestamp            string                   `json:"timestamp"`
	AssessmentID         string                   `json:"assessmentId,omitempty"`
	Classification       Result                   `json:"classification"`
	Issues               []domain.ValidationIssue `json:"issues"`
	Recommendations      []string                 `json:"recommendations"`
	Sources              []string                 `json:"sources"`
	ValidationDetails    ValidationDetails        `json:"validationDetails"`
	ComplianceScore      int                      `json:"complianceScore"`
	RegulatoryReferences []RegulatoryReference    `json:"regulatoryReferences"`
	AuditTrail           AuditTrail               `json:"auditTrail"`
}

// ValidationError reports a malformed request. It aborts evaluation
// before any rule runs and maps to a 400 at the HTTP boundary.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}
