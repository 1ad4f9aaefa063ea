package classification

// ValidateRequest checks a classification request for required fields and
// valid enum values. It must run before any rule evaluation; a non-nil
// error means the whole evaluation aborts with no partial results.
func ValidateRequest(req *Request) error {
	if req.Metadata.EntityID == "" {
		return &ValidationError{
			Field:   "metadata.entityId",
			Message: "Entity ID is required",
		}
	}

	if req.FundProfile.FundName == "" {
		return &ValidationError{
			Field:   "fundProfile.fundName",
			Message: "Fund name is required",
		}
	}

	if !req.FundProfile.TargetArticleClassification.Valid() {
		return &ValidationError{
			Field:   "fundProfile.targetArticleClassification",
			Message: "Invalid target article classification",
		}
	}

	return nil
}
