package risk

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Repository handles risk assessment database operations
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new risk repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "risk").Logger(),
	}
}

// Insert stores a new risk assessment row
func (r *Repository) Insert(rec *Record) error {
	query := `
		INSERT INTO risk_assessments
			(id, assessment_id, risk_score, risk_level, risk_categories,
			 identified_risks, mitigation_recommendations, assessment_date, next_review_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		rec.ID,
		rec.AssessmentID,
		rec.RiskScore,
		string(rec.RiskLevel),
		string(rec.Categories),
		string(rec.Identified),
		string(rec.Mitigation),
		rec.AssessmentDate.Format(time.RFC3339),
		rec.NextReviewDate.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert risk assessment: %w", err)
	}

	return nil
}

// ListReviewDue returns risk assessments whose review date has passed
func (r *Repository) ListReviewDue(now time.Time) ([]Record, error) {
	query := `
		SELECT id, assessment_id, risk_score, risk_level,
		       assessment_date, next_review_date
		FROM risk_assessments
		WHERE next_review_date < ?
		ORDER BY next_review_date ASC
	`

	rows, err := r.db.Query(query, now.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to query review-due assessments: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var level, assessed, review string
		if err := rows.Scan(&rec.ID, &rec.AssessmentID, &rec.RiskScore, &level, &assessed, &review); err != nil {
			return nil, fmt.Errorf("failed to scan risk assessment: %w", err)
		}
		rec.RiskLevel = Level(level)
		if t, err := time.Parse(time.RFC3339, assessed); err == nil {
			rec.AssessmentDate = t
		}
		if t, err := time.Parse(time.RFC3339, review); err == nil {
			rec.NextReviewDate = t
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating risk assessments: %w", err)
	}

	return records, nil
}

// CountByLevel returns the number of stored risk assessments per level
func (r *Repository) CountByLevel() (map[Level]int, error) {
	rows, err := r.db.Query(`SELECT risk_level, COUNT(*) FROM risk_assessments GROUP BY risk_level`)
	if err != nil {
		return nil, fmt.Errorf("failed to count risk assessments: %w", err)
	}
	defer rows.Close()

	counts := make(map[Level]int)
	for rows.Next() {
		var level string
		var count int
		if err := rows.Scan(&level, &count); err != nil {
			return nil, fmt.Errorf("failed to scan risk count: %w", err)
		}
		counts[Level(level)] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating risk counts: %w", err)
	}

	return counts, nil
}
