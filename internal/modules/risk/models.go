package risk

import (
	"encoding/json"
	"time"
)

// Level buckets a 0-100 risk score
type Level string

const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

// LevelFromScore maps a score to its level. The 40/70 thresholds apply
// to category scores and the overall score alike.
func LevelFromScore(score int) Level {
	if score >= 70 {
		return LevelHigh
	}
	if score >= 40 {
		return LevelMedium
	}
	return LevelLow
}

// Category is one scored risk dimension
type Category struct {
	Score       int      `json:"score"`
	Level       Level    `json:"level"`
	Findings    []string `json:"findings"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
}

// IdentifiedRisk is a category annotated for ranking and prioritization
type IdentifiedRisk struct {
	ID          string   `json:"id"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	RiskLevel   Level    `json:"riskLevel"`
	Likelihood  string   `json:"likelihood"`
	Impact      string   `json:"impact"`
	Findings    []string `json:"findings"`
	Priority    string   `json:"priority"`
}

// MitigationRecommendation is an actionable follow-up for a risk
type MitigationRecommendation struct {
	RiskID      string   `json:"riskId,omitempty"`
	Priority    string   `json:"priority"`
	Action      string   `json:"action"`
	Description string   `json:"description"`
	Timeline    string   `json:"timeline"`
	Owner       string   `json:"owner"`
	Resources   []string `json:"resources"`
}

// Result is a complete risk assessment over a stored compliance assessment
type Result struct {
	OverallRiskScore          int                        `json:"overallRiskScore"`
	RiskLevel                 Level                      `json:"riskLevel"`
	Categories                map[string]Category        `json:"categories"`
	IdentifiedRisks           []IdentifiedRisk           `json:"identifiedRisks"`
	MitigationRecommendations []MitigationRecommendation `json:"mitigationRecommendations"`
	AssessmentDate            string                     `json:"assessmentDate"`
	NextReviewDate            string                     `json:"nextReviewDate"`
}

// DataSources describes where indicator data comes from
type DataSources struct {
	Primary    string   `json:"primary,omitempty"`
	ThirdParty []string `json:"thirdParty,omitempty"`
}

// AssessmentData is the decoded shape of the opaque assessment_data
// column. Every field is optional; absence reads as the risky default.
type AssessmentData struct {
	FundType                string       `json:"fundType,omitempty"`
	FundSize                float64      `json:"fundSize,omitempty"`
	InvestmentComplexity    string       `json:"investmentComplexity,omitempty"`
	CrossBorderDistribution bool         `json:"crossBorderDistribution,omitempty"`
	AutomatedReporting      bool         `json:"automatedReporting,omitempty"`
	DedicatedComplianceTeam bool         `json:"dedicatedComplianceTeam,omitempty"`
	DataGovernanceFramework bool         `json:"dataGovernanceFramework,omitempty"`
	DataQuality             *DataQuality `json:"dataQuality,omitempty"`
	DataSources             *DataSources `json:"dataSources,omitempty"`
}

// DataQuality mirrors the coverage figure reported at classification time
type DataQuality struct {
	CoveragePercentage float64 `json:"coveragePercentage"`
}

// Record is a persisted risk assessment row
type Record struct {
	ID             string          `json:"id"`
	AssessmentID   string          `json:"assessment_id"`
	RiskScore      int             `json:"risk_score"`
	RiskLevel      Level           `json:"risk_level"`
	Categories     json.RawMessage `json:"risk_categories"`
	Identified     json.RawMessage `json:"identified_risks"`
	Mitigation     json.RawMessage `json:"mitigation_recommendations"`
	AssessmentDate time.Time       `json:"assessment_date"`
	NextReviewDate time.Time       `json:"next_review_date"`
}
