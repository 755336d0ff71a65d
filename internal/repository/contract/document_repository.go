package contract

import (
	"context"

	"knowledgebase-be/internal/entity"
)

// DocumentRepository is the record store for uploaded-document metadata.
// FindByID returns (nil, nil) when the record does not exist.
type DocumentRepository interface {
	Save(ctx context.Context, record *entity.DocumentRecord) error
	FindByID(ctx context.Context, id string) (*entity.DocumentRecord, error)
	FindAll(ctx context.Context) ([]*entity.DocumentRecord, error)
	Delete(ctx context.Context, id string) error

	SetStatus(ctx context.Context, id string, status entity.DocumentStatus) error
	// SetChunkCount marks the document completed with its final chunk count.
	SetChunkCount(ctx context.Context, id string, count int) error
	// SetError marks the document failed with the ingestion error.
	SetError(ctx context.Context, id string, message string) error
}
