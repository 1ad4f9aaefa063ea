package classification

import (
	"errors"
	"testing"

	"github.com/synapses/sfdr-navigator/internal/domain"
)

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name        string
		request     Request
		wantField   string
		description string
	}{
		{
			name: "Valid request",
			request: Request{
				Metadata: RequestMetadata{EntityID: "entity-1"},
				FundProfile: FundProfile{
					FundName:                    "Green Fund",
					TargetArticleClassification: domain.Article8,
				},
			},
			wantField:   "",
			description: "Complete request should pass validation",
		},
		{
			name: "Missing entity ID",
			request: Request{
				FundProfile: FundProfile{
					FundName:                    "Green Fund",
					TargetArticleClassification: domain.Article8,
				},
			},
			wantField:   "metadata.entityId",
			description: "Entity ID is mandatory",
		},
		{
			name: "Missing fund name",
			request: Request{
				Metadata: RequestMetadata{EntityID: "entity-1"},
				FundProfile: FundProfile{
					TargetArticleClassification: domain.Article8,
				},
			},
			wantField:   "fundProfile.fundName",
			description: "Fund name is mandatory",
		},
		{
			name: "Invalid article",
			request: Request{
				Metadata: RequestMetadata{EntityID: "entity-1"},
				FundProfile: FundProfile{
					FundName:                    "Green Fund",
					TargetArticleClassification: domain.Article("Article7"),
				},
			},
			wantField:   "fundProfile.targetArticleClassification",
			description: "Only Article6/8/9 are valid targets",
		},
		{
			name: "Empty article",
			request: Request{
				Metadata: RequestMetadata{EntityID: "entity-1"},
				FundProfile: FundProfile{
					FundName: "Green Fund",
				},
			},
			wantField:   "fundProfile.targetArticleClassification",
			description: "Missing article is invalid, not defaulted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(&tt.request)

			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v - %s", err, tt.description)
				}
				return
			}

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Expected *ValidationError, got %v - %s", err, tt.description)
			}
			if vErr.Field != tt.wantField {
				t.Errorf("Expected field %q, got %q - %s", tt.wantField, vErr.Field, tt.description)
			}
		})
	}
}
