package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArticle_Valid(t *testing.T) {
	assert.True(t, Article6.Valid())
	assert.True(t, Article8.Valid())
	assert.True(t, Article9.Valid())

	assert.False(t, Article("Article7").Valid())
	assert.False(t, Article("article8").Valid())
	assert.False(t, Article("").Valid())
}

func TestArticles(t *testing.T) {
	articles := Articles()

	assert.Len(t, articles, 3)
	assert.Equal(t, Article6, articles[0])
	assert.Equal(t, Article9, articles[2])
	for _, a := range articles {
		assert.True(t, a.Valid())
	}
}

func TestCountBySeverity(t *testing.T) {
	issues := []ValidationIssue{
		{ID: "a", Severity: SeverityError},
		{ID: "b", Severity: SeverityWarning},
		{ID: "c", Severity: SeverityError},
	}

	assert.Equal(t, 2, CountBySeverity(issues, SeverityError))
	assert.Equal(t, 1, CountBySeverity(issues, SeverityWarning))
	assert.Equal(t, 0, CountBySeverity(nil, SeverityError))
}
