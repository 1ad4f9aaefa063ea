package analytics

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/synapses/sfdr-navigator/internal/domain"
	"github.com/synapses/sfdr-navigator/internal/modules/assessments"
	"github.com/synapses/sfdr-navigator/internal/modules/risk"
)

// Summary aggregates compliance posture across all stored assessments
type Summary struct {
	TotalAssessments int            `json:"totalAssessments"`
	MeanScore        float64        `json:"meanScore"`
	ScoreStdDev      float64        `json:"scoreStdDev"`
	NeedsReview      int            `json:"needsReview"`
	ByArticle        map[string]int `json:"byArticle"`
	// ScoreTrend is the least-squares slope of compliance scores over
	// submission order; positive means scores are improving.
	ScoreTrend float64        `json:"scoreTrend"`
	RiskLevels map[string]int `json:"riskLevels"`
}

// Service computes compliance analytics over stored assessments
type Service struct {
	assessRepo *assessments.Repository
	riskRepo   *risk.Repository
	log        zerolog.Logger
}

// NewService creates a new analytics service
func NewService(assessRepo *assessments.Repository, riskRepo *risk.Repository, log zerolog.Logger) *Service {
	return &Service{
		assessRepo: assessRepo,
		riskRepo:   riskRepo,
		log:        log.With().Str("service", "analytics").Logger(),
	}
}

// ComplianceSummary computes the aggregate compliance summary
func (s *Service) ComplianceSummary() (*Summary, error) {
	samples, err := s.assessRepo.ListScores()
	if err != nil {
		return nil, fmt.Errorf("failed to load score samples: %w", err)
	}

	summary := &Summary{
		TotalAssessments: len(samples),
		ByArticle:        make(map[string]int),
		RiskLevels:       make(map[string]int),
	}

	if len(samples) > 0 {
		scores := make([]float64, len(samples))
		order := make([]float64, len(samples))
		for i, sample := range samples {
			scores[i] = float64(sample.Score)
			order[i] = float64(i)
			summary.ByArticle[string(sample.Article)]++
			if sample.Status == domain.StatusNeedsReview {
				summary.NeedsReview++
			}
		}

		summary.MeanScore = round2(stat.Mean(scores, nil))
		if len(scores) > 1 {
			summary.ScoreStdDev = round2(stat.StdDev(scores, nil))
			_, slope := stat.LinearRegression(order, scores, nil, false)
			summary.ScoreTrend = round2(slope)
		}
	}

	levels, err := s.riskRepo.CountByLevel()
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to load risk level counts")
	} else {
		for level, count := range levels {
			summary.RiskLevels[string(level)] = count
		}
	}

	return summary, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
