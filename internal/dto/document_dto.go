package dto

import "time"

type DocumentResponse struct {
	Id           string    `json:"id"`
	Filename     string    `json:"filename"`
	FileSize     int64     `json:"file_size"`
	ContentType  string    `json:"content_type"`
	UploadedAt   time.Time `json:"uploaded_at"`
	Status       string    `json:"status"`
	ChunkCount   *int      `json:"chunk_count"`
	ErrorMessage *string   `json:"error_message"`
}

type UploadResponse struct {
	DocumentId string `json:"document_id"`
	Filename   string `json:"filename"`
	Message    string `json:"message"`
	Status     string `json:"status"`
}

type DocumentListResponse struct {
	Documents  []DocumentResponse `json:"documents"`
	TotalCount int                `json:"total_count"`
}

type DeleteDocumentResponse struct {
	DocumentId    string `json:"document_id"`
	ChunksDeleted int    `json:"chunks_deleted"`
}
