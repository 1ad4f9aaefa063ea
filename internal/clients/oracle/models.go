package oracle

// ClassifyRequest is the payload sent to the external classification API
type ClassifyRequest struct {
	Text         string `json:"text"`
	DocumentType string `json:"document_type"`
	Strategy     string `json:"strategy"`
}

// ClassifyResponse is the external API's classification verdict
type ClassifyResponse struct {
	Classification string  `json:"classification"`
	Confidence     float64 `json:"confidence"`
	Explanation    string  `json:"explanation,omitempty"`
}

// Capabilities describes what the classification service supports
type Capabilities struct {
	SupportedRegulations []string `json:"supportedRegulations"`
	SupportedArticles    []string `json:"supportedArticles"`
	ValidationRules      []string `json:"validationRules"`
	Languages            []string `json:"languages"`
	Version              string   `json:"version"`
	LastUpdated          string   `json:"lastUpdated"`
}
