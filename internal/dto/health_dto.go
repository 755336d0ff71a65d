package dto

type HealthResponse struct {
	Status         string `json:"status"`
	Version        string `json:"version"`
	VectorDbStatus string `json:"vector_db_status"`
	TotalDocuments int    `json:"total_documents"`
	TotalChunks    int64  `json:"total_chunks"`
}
