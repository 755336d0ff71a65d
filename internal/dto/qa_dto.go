package dto

type QARequest struct {
	Question string `json:"question" validate:"required,min=1"`
	TopK     int    `json:"top_k" validate:"omitempty,min=1,max=10"`
}

type SourceCitation struct {
	DocumentId     string  `json:"document_id"`
	Filename       string  `json:"filename"`
	ChunkContent   string  `json:"chunk_content"`
	RelevanceScore float64 `json:"relevance_score"`
}

type QAResponse struct {
	Question         string           `json:"question"`
	Answer           string           `json:"answer"`
	Sources          []SourceCitation `json:"sources"`
	Confidence       float64          `json:"confidence"`
	ProcessingTimeMs float64          `json:"processing_time_ms"`
}
