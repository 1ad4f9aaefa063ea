package classification

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/synapses/sfdr-navigator/internal/clients/oracle"
	"github.com/synapses/sfdr-navigator/internal/database"
	"github.com/synapses/sfdr-navigator/internal/domain"
	"github.com/synapses/sfdr-navigator/internal/events"
	"github.com/synapses/sfdr-navigator/internal/modules/assessments"
	"github.com/synapses/sfdr-navigator/internal/weights"
	"github.com/synapses/sfdr-navigator/pkg/logger"
)

func newTestService(t *testing.T, oracleURL string) (*Service, *assessments.Repository) {
	t.Helper()

	log := logger.New(logger.Config{Level: "error", Pretty: false})

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	repo := assessments.NewRepository(db.Conn(), log)
	oracleClient := oracle.NewClient(oracleURL, log)
	eventMgr := events.NewManager(log)

	return NewService(weights.Defaults(), repo, oracleClient, eventMgr, log), repo
}

func TestService_Classify_CompliantArticle8(t *testing.T) {
	service, repo := newTestService(t, "")

	req := &Request{
		Metadata: RequestMetadata{EntityID: "entity-1"},
		FundProfile: FundProfile{
			FundName:                      "Green Future Fund",
			TargetArticleClassification:   domain.Article8,
			SustainabilityCharacteristics: []string{"Carbon reduction"},
		},
		PAIIndicators:     paiWithIndicators(18),
		TaxonomyAlignment: taxonomyAligned(25),
	}

	resp, err := service.Classify(context.Background(), req)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	if !resp.IsValid {
		t.Errorf("Expected valid response, issues: %+v", resp.Issues)
	}
	if resp.ComplianceScore != 100 {
		t.Errorf("Expected compliance score 100, got %d", resp.ComplianceScore)
	}
	if resp.Classification.RecommendedArticle != domain.Article8 {
		t.Errorf("Expected Article8 recommendation, got %s", resp.Classification.RecommendedArticle)
	}
	if resp.Classification.Confidence != 0.99 {
		t.Errorf("Expected confidence 0.99, got %v", resp.Classification.Confidence)
	}
	if resp.RequestID == "" || resp.AssessmentID == "" {
		t.Error("Expected request and assessment IDs to be set")
	}
	if resp.AuditTrail.PersistenceError != "" {
		t.Errorf("Unexpected persistence error: %s", resp.AuditTrail.PersistenceError)
	}

	stored, err := repo.GetByID(resp.AssessmentID)
	if err != nil {
		t.Fatalf("Stored assessment not found: %v", err)
	}
	if stored.Status != domain.StatusValidated {
		t.Errorf("High confidence should store as validated, got %s", stored.Status)
	}
	if stored.ComplianceScore != 100 {
		t.Errorf("Stored score mismatch: %d", stored.ComplianceScore)
	}
}

func TestService_Classify_ErrorsLowerScoreAndStatus(t *testing.T) {
	service, repo := newTestService(t, "")

	// Article 9 without a sustainable objective: one error issue
	req := &Request{
		Metadata: RequestMetadata{EntityID: "entity-2"},
		FundProfile: FundProfile{
			FundName:                    "Ambitious Fund",
			TargetArticleClassification: domain.Article9,
			InvestmentObjective:         "Maximize returns",
		},
	}

	resp, err := service.Classify(context.Background(), req)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	if resp.IsValid {
		t.Error("Response with error issues must not be valid")
	}
	if resp.ComplianceScore != 90 {
		t.Errorf("One error should score 90, got %d", resp.ComplianceScore)
	}
	// 0.95 - 0.2 = 0.75, still above the review threshold
	if resp.Classification.Confidence != 0.75 {
		t.Errorf("Expected confidence 0.75, got %v", resp.Classification.Confidence)
	}
	if !resp.ValidationDetails.ArticleCompliance {
		t.Error("Article compliance should fail on an ART error")
	}
	if resp.ValidationDetails.DisclosureCompleteness {
		t.Error("Disclosure completeness should fail with errors present")
	}

	stored, err := repo.GetByID(resp.AssessmentID)
	if err != nil {
		t.Fatalf("Stored assessment not found: %v", err)
	}
	if stored.Status != domain.StatusValidated {
		t.Errorf("Confidence 0.75 is above the 0.7 cutoff, got status %s", stored.Status)
	}
}

func TestService_Classify_NeedsReviewBelowThreshold(t *testing.T) {
	service, repo := newTestService(t, "")

	// Two errors plus a warning: 0.95 - 0.4 - 0.1 = 0.45
	req := &Request{
		Metadata: RequestMetadata{EntityID: "entity-3"},
		FundProfile: FundProfile{
			FundName:                    "Bare Fund",
			TargetArticleClassification: domain.Article8,
		},
	}

	resp, err := service.Classify(context.Background(), req)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	stored, err := repo.GetByID(resp.AssessmentID)
	if err != nil {
		t.Fatalf("Stored assessment not found: %v", err)
	}
	if stored.Status != domain.StatusNeedsReview {
		t.Errorf("Low confidence should store as needs_review, got %s", stored.Status)
	}
}

func TestService_Classify_RejectsMalformedRequest(t *testing.T) {
	service, _ := newTestService(t, "")

	_, err := service.Classify(context.Background(), &Request{})
	if err == nil {
		t.Fatal("Expected validation error")
	}
	if _, ok := err.(*ValidationError); !ok {
		t.Errorf("Expected *ValidationError, got %T", err)
	}
}

func TestService_Classify_OracleOverridesHeuristic(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/classify" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"classification": "Article9", "confidence": 0.92, "explanation": "objective driven"}`))
	}))
	defer ts.Close()

	service, _ := newTestService(t, ts.URL)

	// Heuristic alone would say Article8 here
	req := &Request{
		Metadata: RequestMetadata{EntityID: "entity-4"},
		FundProfile: FundProfile{
			FundName:                      "Oracle Fund",
			TargetArticleClassification:   domain.Article8,
			SustainabilityCharacteristics: []string{"ESG screening"},
		},
	}

	resp, err := service.Classify(context.Background(), req)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if resp.Classification.RecommendedArticle != domain.Article9 {
		t.Errorf("Expected oracle's Article9, got %s", resp.Classification.RecommendedArticle)
	}
}

func TestService_Classify_OracleFailureFallsBack(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer ts.Close()

	service, _ := newTestService(t, ts.URL)

	req := &Request{
		Metadata: RequestMetadata{EntityID: "entity-5"},
		FundProfile: FundProfile{
			FundName:                      "Fallback Fund",
			TargetArticleClassification:   domain.Article8,
			SustainabilityCharacteristics: []string{"ESG screening"},
		},
	}

	resp, err := service.Classify(context.Background(), req)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if resp.Classification.RecommendedArticle != domain.Article8 {
		t.Errorf("Expected heuristic Article8 after oracle failure, got %s", resp.Classification.RecommendedArticle)
	}
}
