package dto

type SearchRequest struct {
	Query          string                 `json:"query" validate:"required,min=1"`
	TopK           int                    `json:"top_k" validate:"omitempty,min=1,max=20"`
	FilterMetadata map[string]interface{} `json:"filter_metadata"`
}

type SearchResultItem struct {
	ChunkId    string                 `json:"chunk_id"`
	DocumentId string                 `json:"document_id"`
	Filename   string                 `json:"filename"`
	Content    string                 `json:"content"`
	Score      float64                `json:"score"`
	Metadata   map[string]interface{} `json:"metadata"`
}

type SearchResponse struct {
	Query            string             `json:"query"`
	Results          []SearchResultItem `json:"results"`
	TotalResults     int                `json:"total_results"`
	ProcessingTimeMs float64            `json:"processing_time_ms"`
}
