package classification

import (
	"strings"

	"github.com/synapses/sfdr-navigator/internal/domain"
)

// RecommendArticle derives the article classification suggested by the
// fund profile itself. The recommendation is independent of the
// caller-supplied target article and the two may disagree; both are
// returned to the caller so a mismatch stays visible.
func RecommendArticle(profile FundProfile) domain.Article {
	if strings.Contains(strings.ToLower(profile.InvestmentObjective), "sustainable investment") {
		return domain.Article9
	}

	if len(profile.SustainabilityCharacteristics) > 0 {
		return domain.Article8
	}

	return domain.Article6
}

// BuildReasoning produces human-readable justifications for the target
// article, tied to which classification branches fired
func BuildReasoning(req *Request, target domain.Article) []string {
	var reasoning []string

	if target == domain.Article8 {
		reasoning = append(reasoning, "Fund promotes environmental/social characteristics")
		if len(req.FundProfile.SustainabilityCharacteristics) > 0 {
			reasoning = append(reasoning, "Sustainability characteristics clearly defined")
		}
	}

	if target == domain.Article9 {
		reasoning = append(reasoning, "Fund has sustainable investment objective")
		if req.TaxonomyAlignment != nil {
			reasoning = append(reasoning, "EU Taxonomy alignment documented")
		}
	}

	reasoning = append(reasoning, "PAI considerations addressed appropriately")

	return reasoning
}

// BuildAlternatives lists the non-recommended articles, each with a
// placeholder confidence and the conditions required for it to apply.
// Article 9 never appears as an alternative.
func BuildAlternatives(recommended domain.Article) []AlternativeClassification {
	var alternatives []AlternativeClassification

	if recommended != domain.Article6 {
		alternatives = append(alternatives, AlternativeClassification{
			Article:    domain.Article6,
			Confidence: 0.3,
			Conditions: []string{
				"Remove sustainability characteristics",
				"Focus on traditional investment approach",
			},
		})
	}

	if recommended != domain.Article8 {
		alternatives = append(alternatives, AlternativeClassification{
			Article:    domain.Article8,
			Confidence: 0.7,
			Conditions: []string{
				"Define sustainability characteristics",
				"Implement ESG integration",
			},
		})
	}

	return alternatives
}
