package weights

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/synapses/sfdr-navigator/pkg/logger"
)

func TestLoader_Load_Defaults(t *testing.T) {
	log := logger.New(logger.Config{Level: "error", Pretty: false})

	w, err := NewLoader(log).Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if w.Confidence.Base != 0.95 {
		t.Errorf("Unexpected base confidence: %v", w.Confidence.Base)
	}
	if w.PAI.MandatoryIndicatorCount != 18 {
		t.Errorf("Unexpected indicator count: %d", w.PAI.MandatoryIndicatorCount)
	}
	if w.Risk.Regulatory.PerCriticalIssue != 25 {
		t.Errorf("Unexpected regulatory weight: %d", w.Risk.Regulatory.PerCriticalIssue)
	}
}

func TestLoader_Load_Overrides(t *testing.T) {
	log := logger.New(logger.Config{Level: "error", Pretty: false})

	path := filepath.Join(t.TempDir(), "weights.yaml")
	content := `
confidence:
  base: 0.9
pai:
  mandatory_indicator_count: 14
risk:
  regulatory:
    per_critical_issue: 30
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write weights file: %v", err)
	}

	w, err := NewLoader(log).Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if w.Confidence.Base != 0.9 {
		t.Errorf("Override not applied: base = %v", w.Confidence.Base)
	}
	if w.PAI.MandatoryIndicatorCount != 14 {
		t.Errorf("Override not applied: indicators = %d", w.PAI.MandatoryIndicatorCount)
	}
	if w.Risk.Regulatory.PerCriticalIssue != 30 {
		t.Errorf("Override not applied: per critical issue = %d", w.Risk.Regulatory.PerCriticalIssue)
	}

	// Keys absent from the file keep their defaults
	if w.Confidence.ErrorPenalty != 0.2 {
		t.Errorf("Default lost: error penalty = %v", w.Confidence.ErrorPenalty)
	}
	if w.Risk.Operational.PoorCoverage != 30 {
		t.Errorf("Default lost: poor coverage = %d", w.Risk.Operational.PoorCoverage)
	}
}

func TestLoader_Load_MissingFile(t *testing.T) {
	log := logger.New(logger.Config{Level: "error", Pretty: false})

	if _, err := NewLoader(log).Load("/nonexistent/weights.yaml"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoader_Load_MalformedFile(t *testing.T) {
	log := logger.New(logger.Config{Level: "error", Pretty: false})

	path := filepath.Join(t.TempDir(), "weights.yaml")
	if err := os.WriteFile(path, []byte("confidence: [not a map"), 0644); err != nil {
		t.Fatalf("Failed to write weights file: %v", err)
	}

	if _, err := NewLoader(log).Load(path); err == nil {
		t.Error("Expected error for malformed YAML")
	}
}
