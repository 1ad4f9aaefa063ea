package weights

// Weights holds all tunable scoring constants for the classification and
// risk engines. The defaults reproduce the SFDR rule set exactly; a YAML
// file can override individual values for jurisdictions or policy updates.
type Weights struct {
	Confidence ConfidenceWeights `yaml:"confidence"`
	PAI        PAIWeights        `yaml:"pai"`
	Risk       RiskWeights       `yaml:"risk"`
}

// ConfidenceWeights controls the additive confidence heuristic
type ConfidenceWeights struct {
	Base           float64 `yaml:"base"`
	ErrorPenalty   float64 `yaml:"error_penalty"`
	WarningPenalty float64 `yaml:"warning_penalty"`
	PAIBonus       float64 `yaml:"pai_bonus"`
	TaxonomyBonus  float64 `yaml:"taxonomy_bonus"`
	Min            float64 `yaml:"min"`
	Max            float64 `yaml:"max"`
}

// PAIWeights controls Principal Adverse Impact indicator checks
type PAIWeights struct {
	// SFDR mandates 18 mandatory indicators (Delegated Regulation 2022/1288)
	MandatoryIndicatorCount int `yaml:"mandatory_indicator_count"`
}

// RiskWeights controls the per-category risk analyzers
type RiskWeights struct {
	Regulatory   RegulatoryWeights   `yaml:"regulatory"`
	Operational  OperationalWeights  `yaml:"operational"`
	Reputational ReputationalWeights `yaml:"reputational"`
	Financial    FinancialWeights    `yaml:"financial"`
	DataQuality  DataQualityWeights  `yaml:"data_quality"`
}

// RegulatoryWeights scores regulatory compliance risk
type RegulatoryWeights struct {
	PerCriticalIssue int `yaml:"per_critical_issue"`
	Article9Scrutiny int `yaml:"article9_scrutiny"`
	Article9ScoreBar int `yaml:"article9_score_bar"`
	PAIIndicatorGaps int `yaml:"pai_indicator_gaps"`
}

// OperationalWeights scores operational process risk
type OperationalWeights struct {
	PoorCoverage          int     `yaml:"poor_coverage"`
	ModerateCoverage      int     `yaml:"moderate_coverage"`
	PoorCoverageBelow     float64 `yaml:"poor_coverage_below"`
	ModerateCoverageBelow float64 `yaml:"moderate_coverage_below"`
	ManualReporting       int     `yaml:"manual_reporting"`
	NoComplianceTeam      int     `yaml:"no_compliance_team"`
}

// ReputationalWeights scores reputational and greenwashing risk
type ReputationalWeights struct {
	PublicFundIssues int `yaml:"public_fund_issues"`
	GreenwashingGaps int `yaml:"greenwashing_gaps"`
	LowScore         int `yaml:"low_score"`
	LowScoreBelow    int `yaml:"low_score_below"`
}

// FinancialWeights scores financial exposure
type FinancialWeights struct {
	LargeFund      int     `yaml:"large_fund"`
	LargeFundAbove float64 `yaml:"large_fund_above"`
	HighComplexity int     `yaml:"high_complexity"`
	CrossBorder    int     `yaml:"cross_border"`
}

// DataQualityWeights scores data reliability risk
type DataQualityWeights struct {
	ManualPrimarySource int `yaml:"manual_primary_source"`
	ManyThirdParty      int `yaml:"many_third_party"`
	ThirdPartyAbove     int `yaml:"third_party_above"`
	NoGovernance        int `yaml:"no_governance"`
}

// Defaults returns the standard SFDR weight set
func Defaults() Weights {
	return Weights{
		Confidence: ConfidenceWeights{
			Base:           0.95,
			ErrorPenalty:   0.2,
			WarningPenalty: 0.1,
			PAIBonus:       0.05,
			TaxonomyBonus:  0.05,
			Min:            0.1,
			Max:            0.99,
		},
		PAI: PAIWeights{
			MandatoryIndicatorCount: 18,
		},
		Risk: RiskWeights{
			Regulatory: RegulatoryWeights{
				PerCriticalIssue: 25,
				Article9Scrutiny: 20,
				Article9ScoreBar: 90,
				PAIIndicatorGaps: 15,
			},
			Operational: OperationalWeights{
				PoorCoverage:          30,
				ModerateCoverage:      15,
				PoorCoverageBelow:     60,
				ModerateCoverageBelow: 80,
				ManualReporting:       20,
				NoComplianceTeam:      15,
			},
			Reputational: ReputationalWeights{
				PublicFundIssues: 25,
				GreenwashingGaps: 30,
				LowScore:         20,
				LowScoreBelow:    70,
			},
			Financial: FinancialWeights{
				LargeFund:      20,
				LargeFundAbove: 1_000_000_000,
				HighComplexity: 15,
				CrossBorder:    10,
			},
			DataQuality: DataQualityWeights{
				ManualPrimarySource: 25,
				ManyThirdParty:      15,
				ThirdPartyAbove:     3,
				NoGovernance:        20,
			},
		},
	}
}
