package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "DOCUMENT_INGESTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewDocumentIngestedEvent fires when a document finished indexing.
func NewDocumentIngestedEvent(documentID, filename string, chunkCount int) Event {
	return BaseEvent{
		Type: "DOCUMENT_INGESTED",
		Data: map[string]interface{}{
			"document_id": documentID,
			"filename":    filename,
			"chunk_count": chunkCount,
		},
		OccurredAt: time.Now(),
	}
}

// NewDocumentIngestFailedEvent fires when ingestion could not complete.
func NewDocumentIngestFailedEvent(documentID, filename, reason string) Event {
	return BaseEvent{
		Type: "DOCUMENT_INGEST_FAILED",
		Data: map[string]interface{}{
			"document_id": documentID,
			"filename":    filename,
			"reason":      reason,
		},
		OccurredAt: time.Now(),
	}
}

// NewDocumentDeletedEvent fires when a document and its units are removed.
func NewDocumentDeletedEvent(documentID string, chunksDeleted int) Event {
	return BaseEvent{
		Type: "DOCUMENT_DELETED",
		Data: map[string]interface{}{
			"document_id":    documentID,
			"chunks_deleted": chunksDeleted,
		},
		OccurredAt: time.Now(),
	}
}
