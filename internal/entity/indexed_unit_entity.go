package entity

import "time"

// IndexedUnit is one chunk as stored in the vector index: content plus its
// embedding, identified by a deterministic "{document_id}_chunk_{n}" key.
// Units belong to exactly one document and are destroyed with it.
type IndexedUnit struct {
	Id            string
	Content       string
	Embedding     []float32
	DocumentId    string
	SequenceIndex int
	Metadata      map[string]interface{}
	AddedAt       time.Time
}
