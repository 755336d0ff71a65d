package dto

type CompletenessRequest struct {
	Topic           string   `json:"topic" validate:"required,min=1"`
	RequiredAspects []string `json:"required_aspects"`
}

type CompletenessResponse struct {
	Topic               string   `json:"topic"`
	OverallScore        float64  `json:"overall_score"`
	HasSufficientInfo   bool     `json:"has_sufficient_info"`
	CoveredAspects      []string `json:"covered_aspects"`
	MissingAspects      []string `json:"missing_aspects"`
	Recommendations     []string `json:"recommendations"`
	SupportingDocuments []string `json:"supporting_documents"`
}
