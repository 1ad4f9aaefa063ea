package classification

import (
	"fmt"
	"strings"

	"github.com/synapses/sfdr-navigator/internal/domain"
	"github.com/synapses/sfdr-navigator/internal/weights"
)

// RuleEvaluator applies the SFDR business rules to a validated request.
// Every rule is independent; issues are appended in evaluation order and
// never sorted afterwards. Missing data is a finding, not an error, so
// evaluation is total over valid requests.
type RuleEvaluator struct {
	pai weights.PAIWeights
}

// NewRuleEvaluator creates a rule evaluator with the given PAI weights
func NewRuleEvaluator(pai weights.PAIWeights) *RuleEvaluator {
	return &RuleEvaluator{pai: pai}
}

// Evaluate runs the full rule battery and returns the ordered issue list
// plus standalone recommendations (findings too soft to be issues).
func (e *RuleEvaluator) Evaluate(req *Request) ([]domain.ValidationIssue, []string) {
	var issues []domain.ValidationIssue
	var recommendations []string

	profile := req.FundProfile
	target := profile.TargetArticleClassification

	if target == domain.Article8 {
		if len(profile.SustainabilityCharacteristics) == 0 {
			issues = append(issues, domain.ValidationIssue{
				ID:         "SFDR_ART8_001",
				Message:    "Article 8 funds must specify sustainability characteristics being promoted",
				Severity:   domain.SeverityError,
				Field:      "fundProfile.sustainabilityCharacteristics",
				RuleID:     "SFDR_ART8_PROMOTION_REQUIREMENT",
				Category:   "Sustainability",
				Regulation: "SFDR Article 8(1)",
				Suggestion: "Add specific environmental or social characteristics that the fund promotes",
			})
		}

		if req.PAIIndicators == nil || req.PAIIndicators.ConsiderationStatement == "" {
			issues = append(issues, domain.ValidationIssue{
				ID:       "SFDR_PAI_001",
				Message:  "PAI consideration statement is required for Article 8 funds",
				Severity: domain.SeverityWarning,
				Field:    "paiIndicators.considerationStatement",
				RuleID:   "PAI_CONSIDERATION_REQUIRED",
				Category: "PAI Indicators",
			})
		}
	}

	if target == domain.Article9 {
		if !strings.Contains(strings.ToLower(profile.InvestmentObjective), "sustainable") {
			issues = append(issues, domain.ValidationIssue{
				ID:       "SFDR_ART9_001",
				Message:  "Article 9 funds must have sustainable investment as objective",
				Severity: domain.SeverityError,
				Field:    "fundProfile.investmentObjective",
				RuleID:   "SFDR_ART9_OBJECTIVE_REQUIREMENT",
				Category: "Sustainability",
			})
		}

		if req.TaxonomyAlignment == nil || req.TaxonomyAlignment.AlignmentPercentage == nil {
			recommendations = append(recommendations,
				"Consider providing EU Taxonomy alignment percentage for Article 9 funds")
		}
	}

	if req.PAIIndicators != nil && req.PAIIndicators.MandatoryIndicators != nil {
		required := e.pai.MandatoryIndicatorCount
		found := len(req.PAIIndicators.MandatoryIndicators)
		if found < required {
			issues = append(issues, domain.ValidationIssue{
				ID:       "SFDR_PAI_002",
				Message:  fmt.Sprintf("Missing mandatory PAI indicators. Expected %d, found %d", required, found),
				Severity: domain.SeverityWarning,
				Field:    "paiIndicators.mandatoryIndicators",
				Category: "PAI Indicators",
			})
		}
	}

	return issues, recommendations
}
