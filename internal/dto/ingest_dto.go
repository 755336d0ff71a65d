package dto

// IngestDocumentMessage rides the ingest topic between upload and the consumer.
type IngestDocumentMessage struct {
	DocumentId  string `json:"document_id"`
	FilePath    string `json:"file_path"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}
