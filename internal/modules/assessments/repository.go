package assessments

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/synapses/sfdr-navigator/internal/domain"
)

// ErrNotFound is returned when an assessment does not exist
var ErrNotFound = errors.New("assessment not found")

// Repository handles compliance assessment database operations
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new assessment repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "assessments").Logger(),
	}
}

// Insert stores a new assessment
func (r *Repository) Insert(a *Assessment) error {
	query := `
		INSERT INTO compliance_assessments
			(id, fund_name, entity_id, target_article, assessment_data,
			 validation_results, compliance_score, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	data := a.AssessmentData
	if len(data) == 0 {
		data = []byte("{}")
	}

	_, err := r.db.Exec(query,
		a.ID,
		a.FundName,
		a.EntityID,
		string(a.TargetArticle),
		string(data),
		string(a.ValidationResults),
		a.ComplianceScore,
		string(a.Status),
		a.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert assessment: %w", err)
	}

	return nil
}

// GetByID returns a single assessment, or ErrNotFound
func (r *Repository) GetByID(id string) (*Assessment, error) {
	query := `
		SELECT id, fund_name, entity_id, target_article, assessment_data,
		       validation_results, compliance_score, status, created_at
		FROM compliance_assessments
		WHERE id = ?
	`

	a, err := r.scanAssessment(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	return a, nil
}

// List returns assessments matching the filter, newest first
func (r *Repository) List(filter ListFilter) ([]Assessment, error) {
	query := `
		SELECT id, fund_name, entity_id, target_article, assessment_data,
		       validation_results, compliance_score, status, created_at
		FROM compliance_assessments
		WHERE 1=1
	`
	var args []interface{}

	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, string(filter.Status))
	}
	if filter.Article != "" {
		query += " AND target_article = ?"
		args = append(args, string(filter.Article))
	}

	query += " ORDER BY created_at DESC"

	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	query += " LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessments: %w", err)
	}
	defer rows.Close()

	var result []Assessment
	for rows.Next() {
		a, err := r.scanAssessment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		result = append(result, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assessments: %w", err)
	}

	return result, nil
}

// ListScores returns compliance score samples in chronological order,
// used by the analytics module
func (r *Repository) ListScores() ([]ScoreSample, error) {
	query := `
		SELECT compliance_score, target_article, status, created_at
		FROM compliance_assessments
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query scores: %w", err)
	}
	defer rows.Close()

	var samples []ScoreSample
	for rows.Next() {
		var s ScoreSample
		var article, status, createdAt string
		if err := rows.Scan(&s.Score, &article, &status, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan score sample: %w", err)
		}
		s.Article = domain.Article(article)
		s.Status = domain.AssessmentStatus(status)
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			s.CreatedAt = t
		}
		samples = append(samples, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scores: %w", err)
	}

	return samples, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanAssessment(row rowScanner) (*Assessment, error) {
	var a Assessment
	var article, status, createdAt string
	var data, results string

	err := row.Scan(
		&a.ID,
		&a.FundName,
		&a.EntityID,
		&article,
		&data,
		&results,
		&a.ComplianceScore,
		&status,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	a.TargetArticle = domain.Article(article)
	a.Status = domain.AssessmentStatus(status)
	a.AssessmentData = []byte(data)
	a.ValidationResults = []byte(results)
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		a.CreatedAt = t
	}

	return &a, nil
}
