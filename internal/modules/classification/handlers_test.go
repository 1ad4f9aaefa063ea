package classification

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/synapses/sfdr-navigator/pkg/logger"
)

func TestHandler_HandleClassify(t *testing.T) {
	log := logger.New(logger.Config{Level: "error", Pretty: false})
	service, _ := newTestService(t, "")
	handler := NewHandler(service, log)

	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantField   string
		description string
	}{
		{
			name: "Valid request",
			body: `{
				"metadata": {"entityId": "entity-1"},
				"fundProfile": {
					"fundName": "Green Fund",
					"targetArticleClassification": "Article6"
				}
			}`,
			wantStatus:  http.StatusOK,
			description: "Well-formed request classifies successfully",
		},
		{
			name:        "Malformed JSON",
			body:        `{not json`,
			wantStatus:  http.StatusBadRequest,
			description: "Broken JSON is a 400",
		},
		{
			name:        "Missing entity ID",
			body:        `{"fundProfile": {"fundName": "F", "targetArticleClassification": "Article6"}}`,
			wantStatus:  http.StatusBadRequest,
			wantField:   "metadata.entityId",
			description: "Validation failures report the offending field",
		},
		{
			name: "Invalid article",
			body: `{
				"metadata": {"entityId": "entity-1"},
				"fundProfile": {"fundName": "F", "targetArticleClassification": "Article5"}
			}`,
			wantStatus:  http.StatusBadRequest,
			wantField:   "fundProfile.targetArticleClassification",
			description: "Unknown articles are rejected before evaluation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/classify", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			handler.HandleClassify(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d: %s - %s",
					tt.wantStatus, rec.Code, rec.Body.String(), tt.description)
			}

			if tt.wantField != "" {
				var body map[string]string
				if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
					t.Fatalf("Failed to decode error body: %v", err)
				}
				if body["field"] != tt.wantField {
					t.Errorf("Expected field %q, got %q - %s", tt.wantField, body["field"], tt.description)
				}
			}

			if tt.wantStatus == http.StatusOK {
				var resp Response
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}
				if resp.RequestID == "" {
					t.Error("Response should carry a request ID")
				}
				if resp.AuditTrail.ValidatorVersion == "" {
					t.Error("Response should carry the validator version")
				}
			}
		})
	}
}
