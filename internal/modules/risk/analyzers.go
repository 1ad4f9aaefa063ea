package risk

import (
	"fmt"
	"strings"

	"github.com/synapses/sfdr-navigator/internal/domain"
	"github.com/synapses/sfdr-navigator/internal/modules/assessments"
	"github.com/synapses/sfdr-navigator/internal/weights"
)

// Analyzer scores the five risk categories for a stored assessment.
// Each category is independent; scores are clamped to [0, 100].
type Analyzer struct {
	w weights.RiskWeights
}

// NewAnalyzer creates an analyzer with the given weights
func NewAnalyzer(w weights.RiskWeights) *Analyzer {
	return &Analyzer{w: w}
}

// AnalyzeRegulatory scores the risk of regulatory penalties or
// enforcement actions
func (a *Analyzer) AnalyzeRegulatory(assessment *assessments.Assessment, issues []domain.ValidationIssue) Category {
	score := 0
	var findings []string

	criticalCount := domain.CountBySeverity(issues, domain.SeverityError)
	score += criticalCount * a.w.Regulatory.PerCriticalIssue

	if criticalCount > 0 {
		findings = append(findings, fmt.Sprintf("%d critical compliance failures identified", criticalCount))
	}

	if assessment.TargetArticle == domain.Article9 && assessment.ComplianceScore < a.w.Regulatory.Article9ScoreBar {
		score += a.w.Regulatory.Article9Scrutiny
		findings = append(findings, "Article 9 funds face heightened regulatory scrutiny")
	}

	if countByCategory(issues, "PAI Indicators") > 0 {
		score += a.w.Regulatory.PAIIndicatorGaps
		findings = append(findings, "PAI indicator gaps create regulatory non-compliance risk")
	}

	return newCategory(score, findings,
		"Regulatory Compliance",
		"Risk of regulatory penalties, enforcement actions, or compliance failures")
}

// AnalyzeOperational scores the risk of process and reporting failures
func (a *Analyzer) AnalyzeOperational(data AssessmentData) Category {
	score := 0
	var findings []string

	coverage := 0.0
	if data.DataQuality != nil {
		coverage = data.DataQuality.CoveragePercentage
	}

	if coverage < a.w.Operational.PoorCoverageBelow {
		score += a.w.Operational.PoorCoverage
		findings = append(findings, "Poor data coverage may lead to operational reporting failures")
	} else if coverage < a.w.Operational.ModerateCoverageBelow {
		score += a.w.Operational.ModerateCoverage
		findings = append(findings, "Moderate data coverage requires monitoring and improvement")
	}

	if !data.AutomatedReporting {
		score += a.w.Operational.ManualReporting
		findings = append(findings, "Manual reporting processes increase operational risk")
	}

	if !data.DedicatedComplianceTeam {
		score += a.w.Operational.NoComplianceTeam
		findings = append(findings, "Lack of dedicated compliance resources increases operational burden")
	}

	return newCategory(score, findings,
		"Operational",
		"Risk of operational failures in compliance processes and reporting")
}

// AnalyzeReputational scores greenwashing and public perception risk
func (a *Analyzer) AnalyzeReputational(assessment *assessments.Assessment, data AssessmentData, issues []domain.ValidationIssue) Category {
	score := 0
	var findings []string

	if data.FundType == "UCITS" && len(issues) > 0 {
		score += a.w.Reputational.PublicFundIssues
		findings = append(findings, "Public fund compliance issues may attract media attention")
	}

	if assessment.TargetArticle == domain.Article8 || assessment.TargetArticle == domain.Article9 {
		sustainabilityIssues := 0
		for _, issue := range issues {
			category := strings.ToLower(issue.Category)
			if strings.Contains(category, "sustainability") ||
				strings.Contains(category, "pai") ||
				strings.Contains(category, "taxonomy") {
				sustainabilityIssues++
			}
		}

		if sustainabilityIssues > 0 {
			score += a.w.Reputational.GreenwashingGaps
			findings = append(findings, "Sustainability compliance gaps create greenwashing risk")
		}
	}

	if assessment.ComplianceScore < a.w.Reputational.LowScoreBelow {
		score += a.w.Reputational.LowScore
		findings = append(findings, "Poor compliance rating may damage market reputation")
	}

	return newCategory(score, findings,
		"Reputational",
		"Risk of reputational damage due to compliance failures or greenwashing accusations")
}

// AnalyzeFinancial scores the financial impact of compliance failures
func (a *Analyzer) AnalyzeFinancial(data AssessmentData) Category {
	score := 0
	var findings []string

	if data.FundSize > a.w.Financial.LargeFundAbove {
		score += a.w.Financial.LargeFund
		findings = append(findings, "Large fund size increases potential financial impact of penalties")
	}

	if data.InvestmentComplexity == "high" {
		score += a.w.Financial.HighComplexity
		findings = append(findings, "Complex investment strategies increase remediation costs")
	}

	if data.CrossBorderDistribution {
		score += a.w.Financial.CrossBorder
		findings = append(findings, "Cross-border distribution amplifies financial impact of compliance failures")
	}

	return newCategory(score, findings,
		"Financial",
		"Financial impact of compliance failures, penalties, and remediation costs")
}

// AnalyzeDataQuality scores data accuracy and reliability risk
func (a *Analyzer) AnalyzeDataQuality(data AssessmentData) Category {
	score := 0
	var findings []string

	if data.DataSources == nil || data.DataSources.Primary == "" || data.DataSources.Primary == "manual" {
		score += a.w.DataQuality.ManualPrimarySource
		findings = append(findings, "Reliance on manual data entry increases error risk")
	}

	if data.DataSources != nil && len(data.DataSources.ThirdParty) > a.w.DataQuality.ThirdPartyAbove {
		score += a.w.DataQuality.ManyThirdParty
		findings = append(findings, "Multiple third-party data dependencies create operational risk")
	}

	if !data.DataGovernanceFramework {
		score += a.w.DataQuality.NoGovernance
		findings = append(findings, "Lack of data governance framework increases data quality risk")
	}

	return newCategory(score, findings,
		"Data Quality",
		"Risk related to data accuracy, completeness, and reliability")
}

func newCategory(score int, findings []string, name, description string) Category {
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	if findings == nil {
		findings = []string{}
	}

	return Category{
		Score:       score,
		Level:       LevelFromScore(score),
		Findings:    findings,
		Category:    name,
		Description: description,
	}
}

func countByCategory(issues []domain.ValidationIssue, category string) int {
	count := 0
	for _, issue := range issues {
		if issue.Category == category {
			count++
		}
	}
	return count
}
