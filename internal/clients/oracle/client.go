package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Client talks to the external classification oracle. The oracle is an
// optional collaborator: callers must treat any error as non-fatal and
// fall back to the local heuristic classifier.
type Client struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewClient creates a new oracle client. An empty baseURL disables it.
func NewClient(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log.With().Str("client", "oracle").Logger(),
	}
}

// Enabled reports whether an oracle endpoint is configured
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// Classify submits fund text to the oracle for article classification
func (c *Client) Classify(ctx context.Context, req ClassifyRequest) (*ClassifyResponse, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("oracle not configured")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode classify request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/classify", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build classify request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("oracle request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oracle returned status %d", resp.StatusCode)
	}

	var result ClassifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode oracle response: %w", err)
	}

	return &result, nil
}

// GetCapabilities fetches the oracle's capability document
func (c *Client) GetCapabilities(ctx context.Context) (*Capabilities, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("oracle not configured")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/metrics", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build capabilities request: %w", err)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("oracle request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oracle returned status %d", resp.StatusCode)
	}

	var result Capabilities
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode capabilities: %w", err)
	}

	return &result, nil
}

// StaticCapabilities is the capability document served when the oracle
// is unreachable or not configured
func StaticCapabilities() *Capabilities {
	return &Capabilities{
		SupportedRegulations: []string{"SFDR", "EU_TAXONOMY", "CSRD"},
		SupportedArticles:    []string{"Article6", "Article8", "Article9"},
		ValidationRules: []string{
			"SFDR_ART8_PROMOTION_REQUIREMENT",
			"SFDR_ART9_OBJECTIVE_REQUIREMENT",
			"PAI_MANDATORY_INDICATORS",
			"TAXONOMY_ALIGNMENT_VALIDATION",
			"DATA_QUALITY_CHECKS",
		},
		Languages:   []string{"en", "de", "fr", "es", "it"},
		Version:     "1.2.0",
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	}
}
