package vectorindex

import (
	"context"
	"fmt"
	"sync"
	"time"

	"knowledgebase-be/internal/entity"
	"knowledgebase-be/internal/repository/contract"
	"knowledgebase-be/pkg/chunker"
	"knowledgebase-be/pkg/embedding"
)

const defaultTopK = 5

// SearchResult is a read-only projection of an indexed unit relative to one
// query. Constructed fresh per search, never persisted.
type SearchResult struct {
	UnitID   string
	Content  string
	Metadata map[string]interface{}
	Distance float64
}

// Stats describes the current index contents.
type Stats struct {
	TotalDocuments     int
	TotalChunks        int64
	EmbeddingDimension int
}

// Index owns the embedding provider and the nearest-neighbor repository.
// Writes (Add, DeleteDocument) are serialized through a mutex: the underlying
// repository is not assumed safe for concurrent writers. Reads may run
// alongside a write and may or may not observe it.
type Index struct {
	provider embedding.Provider
	units    contract.UnitRepository

	writeMu sync.Mutex
}

func New(provider embedding.Provider, units contract.UnitRepository) *Index {
	return &Index{
		provider: provider,
		units:    units,
	}
}

// Add embeds all chunks in one provider call and inserts them as a single
// logical write. Unit ids are deterministic: "{documentID}_chunk_{n}".
// An empty chunk slice returns 0 without touching any collaborator.
func (ix *Index) Add(ctx context.Context, chunks []chunker.Chunk, documentID string) (int, error) {
	if len(chunks) == 0 {
		return 0, nil
	}

	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Content
	}

	vectors, err := ix.provider.Embed(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return 0, fmt.Errorf("embedding provider returned %d vectors for %d chunks", len(vectors), len(chunks))
	}

	now := time.Now().UTC()
	units := make([]*entity.IndexedUnit, len(chunks))
	for i, ch := range chunks {
		metadata := make(map[string]interface{}, len(ch.Metadata)+3)
		for k, v := range ch.Metadata {
			metadata[k] = v
		}
		metadata["document_id"] = documentID
		metadata["sequence_index"] = ch.SequenceIndex
		metadata["added_at"] = now.Format(time.RFC3339)

		units[i] = &entity.IndexedUnit{
			Id:            fmt.Sprintf("%s_chunk_%d", documentID, ch.SequenceIndex),
			Content:       ch.Content,
			Embedding:     vectors[i],
			DocumentId:    documentID,
			SequenceIndex: ch.SequenceIndex,
			Metadata:      metadata,
			AddedAt:       now,
		}
	}

	ix.writeMu.Lock()
	defer ix.writeMu.Unlock()

	if err := ix.units.Upsert(ctx, units); err != nil {
		return 0, fmt.Errorf("upsert units: %w", err)
	}
	return len(units), nil
}

// Search returns up to topK units ranked by ascending cosine distance.
// filterMetadata, when given, restricts candidates to units whose metadata
// matches every key/value pair exactly. An empty index or a filter matching
// nothing yields an empty slice, not an error.
func (ix *Index) Search(ctx context.Context, query string, topK int, filterMetadata map[string]interface{}) ([]SearchResult, error) {
	if topK <= 0 {
		topK = defaultTopK
	}

	vectors, err := ix.provider.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("embedding provider returned %d vectors for the query", len(vectors))
	}

	scored, err := ix.units.Query(ctx, vectors[0], topK, filterMetadata)
	if err != nil {
		return nil, fmt.Errorf("query units: %w", err)
	}

	results := make([]SearchResult, len(scored))
	for i, s := range scored {
		results[i] = SearchResult{
			UnitID:   s.Unit.Id,
			Content:  s.Unit.Content,
			Metadata: s.Unit.Metadata,
			Distance: s.Distance,
		}
	}
	return results, nil
}

// DeleteDocument removes every unit whose metadata document_id matches, as a
// single logical write, and returns the count removed. An unknown document id
// yields 0, not an error.
func (ix *Index) DeleteDocument(ctx context.Context, documentID string) (int, error) {
	ix.writeMu.Lock()
	defer ix.writeMu.Unlock()

	units, err := ix.units.Get(ctx, map[string]interface{}{"document_id": documentID})
	if err != nil {
		return 0, fmt.Errorf("find document units: %w", err)
	}
	if len(units) == 0 {
		return 0, nil
	}

	ids := make([]string, len(units))
	for i, u := range units {
		ids[i] = u.Id
	}
	if err := ix.units.Delete(ctx, ids); err != nil {
		return 0, fmt.Errorf("delete units: %w", err)
	}
	return len(ids), nil
}

// Stats derives document totals by scanning unit metadata. There is no
// separate document counter to drift out of sync; the units table is the
// single source of truth, at the cost of a full scan per call.
func (ix *Index) Stats(ctx context.Context) (*Stats, error) {
	total, err := ix.units.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count units: %w", err)
	}

	units, err := ix.units.Get(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("scan units: %w", err)
	}

	distinct := make(map[string]struct{})
	for _, u := range units {
		if id, ok := u.Metadata["document_id"].(string); ok {
			distinct[id] = struct{}{}
		}
	}

	return &Stats{
		TotalDocuments:     len(distinct),
		TotalChunks:        total,
		EmbeddingDimension: ix.provider.Dimension(),
	}, nil
}
