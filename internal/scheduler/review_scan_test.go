package scheduler

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/synapses/sfdr-navigator/internal/database"
	"github.com/synapses/sfdr-navigator/internal/domain"
	"github.com/synapses/sfdr-navigator/internal/events"
	"github.com/synapses/sfdr-navigator/internal/modules/assessments"
	"github.com/synapses/sfdr-navigator/internal/modules/risk"
	"github.com/synapses/sfdr-navigator/pkg/logger"
)

func TestReviewScanJob_Run(t *testing.T) {
	log := logger.New(logger.Config{Level: "error", Pretty: false})

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	assessRepo := assessments.NewRepository(db.Conn(), log)
	riskRepo := risk.NewRepository(db.Conn(), log)
	job := NewReviewScanJob(riskRepo, events.NewManager(log), log)

	if job.Name() != "review_scan" {
		t.Errorf("Unexpected job name: %s", job.Name())
	}

	// Empty store: nothing due, no error
	if err := job.Run(); err != nil {
		t.Fatalf("Run on empty store failed: %v", err)
	}

	assessment := &assessments.Assessment{
		ID:                uuid.NewString(),
		FundName:          "Fund",
		EntityID:          "entity",
		TargetArticle:     domain.Article8,
		ValidationResults: json.RawMessage(`{}`),
		ComplianceScore:   90,
		Status:            domain.StatusValidated,
		CreatedAt:         time.Now().UTC(),
	}
	if err := assessRepo.Insert(assessment); err != nil {
		t.Fatalf("Failed to insert assessment: %v", err)
	}

	now := time.Now().UTC()
	if err := riskRepo.Insert(&risk.Record{
		ID:             uuid.NewString(),
		AssessmentID:   assessment.ID,
		RiskScore:      60,
		RiskLevel:      risk.LevelMedium,
		Categories:     json.RawMessage(`{}`),
		Identified:     json.RawMessage(`[]`),
		Mitigation:     json.RawMessage(`[]`),
		AssessmentDate: now.Add(-120 * 24 * time.Hour),
		NextReviewDate: now.Add(-30 * 24 * time.Hour),
	}); err != nil {
		t.Fatalf("Failed to insert risk record: %v", err)
	}

	if err := job.Run(); err != nil {
		t.Fatalf("Run with overdue record failed: %v", err)
	}
}

func TestScheduler_AddJobAndRunNow(t *testing.T) {
	log := logger.New(logger.Config{Level: "error", Pretty: false})
	sched := New(log)

	if sched.JobCount() != 0 {
		t.Errorf("New scheduler should have no jobs, got %d", sched.JobCount())
	}

	job := &countingJob{}
	if err := sched.AddJob("@daily", job); err != nil {
		t.Fatalf("AddJob failed: %v", err)
	}
	if sched.JobCount() != 1 {
		t.Errorf("Expected 1 registered job, got %d", sched.JobCount())
	}

	if err := sched.AddJob("not a schedule", job); err == nil {
		t.Error("Invalid cron expression should be rejected")
	}

	if err := sched.RunNow(job); err != nil {
		t.Fatalf("RunNow failed: %v", err)
	}
	if job.runs != 1 {
		t.Errorf("Expected 1 run, got %d", job.runs)
	}
}

type countingJob struct {
	runs int
}

func (j *countingJob) Name() string { return "counting" }

func (j *countingJob) Run() error {
	j.runs++
	return nil
}
