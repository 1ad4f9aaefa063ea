package classification

import (
	"github.com/synapses/sfdr-navigator/internal/domain"
	"github.com/synapses/sfdr-navigator/internal/weights"
)

// ConfidenceScorer computes classification confidence from a base value
// with additive penalties per issue and bonuses for data completeness.
// The result is always clamped to [Min, Max], so downstream threshold
// logic (the 0.7 needs-review cutoff) sees a bounded value.
type ConfidenceScorer struct {
	w weights.ConfidenceWeights
}

// NewConfidenceScorer creates a confidence scorer with the given weights
func NewConfidenceScorer(w weights.ConfidenceWeights) *ConfidenceScorer {
	return &ConfidenceScorer{w: w}
}

// Score returns the confidence for a request and its evaluated issues
func (s *ConfidenceScorer) Score(req *Request, issues []domain.ValidationIssue) float64 {
	confidence := s.w.Base

	for _, issue := range issues {
		switch issue.Severity {
		case domain.SeverityError:
			confidence -= s.w.ErrorPenalty
		case domain.SeverityWarning:
			confidence -= s.w.WarningPenalty
		}
	}

	if req.PAIIndicators != nil {
		confidence += s.w.PAIBonus
	}
	if req.TaxonomyAlignment != nil {
		confidence += s.w.TaxonomyBonus
	}

	if confidence < s.w.Min {
		confidence = s.w.Min
	}
	if confidence > s.w.Max {
		confidence = s.w.Max
	}

	return confidence
}
