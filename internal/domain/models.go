package domain

// Article represents an SFDR article classification
type Article string

const (
	Article6 Article = "Article6"
	Article8 Article = "Article8"
	Article9 Article = "Article9"
)

// Valid reports whether a is one of the three SFDR classifications
func (a Article) Valid() bool {
	switch a {
	case Article6, Article8, Article9:
		return true
	}
	return false
}

// Articles lists all valid classifications in regulatory order
func Articles() []Article {
	return []Article{Article6, Article8, Article9}
}

// Severity represents the severity of a validation issue
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ValidationIssue is a single finding produced by rule evaluation.
// Issues are created once per evaluation run and never mutated.
type ValidationIssue struct {
	ID         string   `json:"id"`
	Message    string   `json:"message"`
	Severity   Severity `json:"severity"`
	Field      string   `json:"field"`
	RuleID     string   `json:"ruleId,omitempty"`
	Category   string   `json:"category,omitempty"`
	Regulation string   `json:"regulation,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// CountBySeverity returns the number of issues with the given severity
func CountBySeverity(issues []ValidationIssue, severity Severity) int {
	count := 0
	for _, issue := range issues {
		if issue.Severity == severity {
			count++
		}
	}
	return count
}

// AssessmentStatus is the lifecycle status of a compliance assessment
type AssessmentStatus string

const (
	StatusValidated   AssessmentStatus = "validated"
	StatusNeedsReview AssessmentStatus = "needs_review"
)
