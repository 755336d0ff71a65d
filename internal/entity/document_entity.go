package entity

import "time"

type DocumentStatus string

const (
	DocumentStatusPending    DocumentStatus = "pending"
	DocumentStatusProcessing DocumentStatus = "processing"
	DocumentStatusCompleted  DocumentStatus = "completed"
	DocumentStatusFailed     DocumentStatus = "failed"
)

// DocumentRecord tracks one uploaded document through its ingestion
// lifecycle: pending -> processing -> completed | failed.
type DocumentRecord struct {
	Id           string
	Filename     string
	FileSize     int64
	ContentType  string
	UploadedAt   time.Time
	Status       DocumentStatus
	ChunkCount   *int
	ErrorMessage *string
}
