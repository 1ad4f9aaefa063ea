package risk

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// categoryOrder fixes iteration order over the category map so ranking
// is deterministic when scores tie
var categoryOrder = []string{"regulatory", "operational", "reputational", "financial", "data"}

// IdentifyTopRisks ranks categories by score descending and annotates
// each with likelihood, impact and priority. With five categories the
// "top 5" is always all of them.
func IdentifyTopRisks(categories map[string]Category) []IdentifiedRisk {
	keys := make([]string, 0, len(categories))
	for _, key := range categoryOrder {
		if _, ok := categories[key]; ok {
			keys = append(keys, key)
		}
	}

	sort.SliceStable(keys, func(i, j int) bool {
		return categories[keys[i]].Score > categories[keys[j]].Score
	})

	if len(keys) > 5 {
		keys = keys[:5]
	}

	risks := make([]IdentifiedRisk, 0, len(keys))
	for _, key := range keys {
		cat := categories[key]
		risks = append(risks, IdentifiedRisk{
			ID:          "RISK_" + strings.ToUpper(key) + "_" + uuid.NewString(),
			Category:    cat.Category,
			Description: cat.Description,
			RiskLevel:   cat.Level,
			Likelihood:  bucket(cat.Score, 70, 40),
			Impact:      bucket(cat.Score, 60, 30),
			Findings:    cat.Findings,
			Priority:    priority(cat.Score),
		})
	}

	return risks
}

func bucket(score, high, medium int) string {
	if score > high {
		return "High"
	}
	if score > medium {
		return "Medium"
	}
	return "Low"
}

func priority(score int) string {
	if score > 70 {
		return "Critical"
	}
	if score > 40 {
		return "High"
	}
	return "Medium"
}

// BuildMitigations produces one immediate action per Critical risk, one
// short-term action per High risk, and two standing recommendations.
func BuildMitigations(risks []IdentifiedRisk) []MitigationRecommendation {
	var recommendations []MitigationRecommendation

	for _, r := range risks {
		if r.Priority != "Critical" {
			continue
		}
		recommendations = append(recommendations, MitigationRecommendation{
			RiskID:      r.ID,
			Priority:    "Immediate",
			Action:      "Address " + strings.ToLower(r.Category) + " compliance gaps",
			Description: specificMitigation(r.Category),
			Timeline:    "30 days",
			Owner:       "Compliance Team",
			Resources:   mitigationResources(r.Category),
		})
	}

	for _, r := range risks {
		if r.Priority != "High" {
			continue
		}
		recommendations = append(recommendations, MitigationRecommendation{
			RiskID:      r.ID,
			Priority:    "Short-term",
			Action:      "Improve " + strings.ToLower(r.Category) + " processes",
			Description: processImprovement(r.Category),
			Timeline:    "90 days",
			Owner:       "Operations Team",
			Resources:   mitigationResources(r.Category),
		})
	}

	recommendations = append(recommendations,
		MitigationRecommendation{
			Priority:    "Long-term",
			Action:      "Implement continuous monitoring",
			Description: "Establish automated compliance monitoring and alerting system",
			Timeline:    "6 months",
			Owner:       "Technology Team",
			Resources:   []string{"Compliance software", "Data integration tools", "Training"},
		},
		MitigationRecommendation{
			Priority:    "Ongoing",
			Action:      "Regular risk assessments",
			Description: "Conduct quarterly risk assessments and annual comprehensive reviews",
			Timeline:    "Quarterly",
			Owner:       "Risk Committee",
			Resources:   []string{"Risk assessment framework", "External consultants (if needed)"},
		},
	)

	return recommendations
}

func specificMitigation(category string) string {
	mitigations := map[string]string{
		"Regulatory Compliance": "Review and update compliance procedures, engage regulatory counsel, implement immediate corrective actions",
		"Operational":           "Strengthen operational controls, improve data collection processes, enhance reporting procedures",
		"Reputational":          "Develop crisis communication plan, engage with stakeholders, improve transparency in sustainability reporting",
		"Financial":             "Assess financial impact, establish remediation budget, consider compliance insurance",
		"Data Quality":          "Implement data validation controls, establish data quality metrics, improve data governance",
	}

	if m, ok := mitigations[category]; ok {
		return m
	}
	return "Implement category-specific risk controls"
}

func processImprovement(category string) string {
	improvements := map[string]string{
		"Regulatory Compliance": "Establish compliance calendar, implement regular regulatory updates review, create compliance dashboard",
		"Operational":           "Automate manual processes, implement quality controls, establish backup procedures",
		"Reputational":          "Create sustainability reporting standards, implement greenwashing prevention controls",
		"Financial":             "Establish cost-benefit analysis framework, implement financial impact assessment procedures",
		"Data Quality":          "Create data quality framework, implement automated data validation, establish data lineage tracking",
	}

	if m, ok := improvements[category]; ok {
		return m
	}
	return "Implement process improvement initiatives"
}

func mitigationResources(category string) []string {
	resources := map[string][]string{
		"Regulatory Compliance": {"Legal counsel", "Compliance software", "Regulatory updates service"},
		"Operational":           {"Process automation tools", "Staff training", "Quality management system"},
		"Reputational":          {"Communication strategy", "ESG expertise", "Stakeholder engagement plan"},
		"Financial":             {"Financial modeling tools", "Risk quantification software", "Insurance coverage"},
		"Data Quality":          {"Data management platform", "Validation tools", "Data governance framework"},
	}

	if r, ok := resources[category]; ok {
		return r
	}
	return []string{"Expert consultation", "Process documentation", "Training materials"}
}
