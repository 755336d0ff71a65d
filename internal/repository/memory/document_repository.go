package memory

import (
	"context"
	"sort"

	"knowledgebase-be/internal/entity"
	"knowledgebase-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// DocumentRepository keeps document records in process memory. Records never
// expire; the cache is used for its concurrency-safe map semantics.
type DocumentRepository struct {
	cache *cache.Cache
}

func NewDocumentRepository() contract.DocumentRepository {
	return &DocumentRepository{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (r *DocumentRepository) Save(ctx context.Context, record *entity.DocumentRecord) error {
	stored := *record
	r.cache.Set(record.Id, &stored, cache.NoExpiration)
	return nil
}

func (r *DocumentRepository) FindByID(ctx context.Context, id string) (*entity.DocumentRecord, error) {
	if x, found := r.cache.Get(id); found {
		stored := *x.(*entity.DocumentRecord)
		return &stored, nil
	}
	return nil, nil
}

func (r *DocumentRepository) FindAll(ctx context.Context) ([]*entity.DocumentRecord, error) {
	items := r.cache.Items()

	records := make([]*entity.DocumentRecord, 0, len(items))
	for _, item := range items {
		stored := *item.Object.(*entity.DocumentRecord)
		records = append(records, &stored)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].UploadedAt.Before(records[j].UploadedAt)
	})
	return records, nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	r.cache.Delete(id)
	return nil
}

func (r *DocumentRepository) SetStatus(ctx context.Context, id string, status entity.DocumentStatus) error {
	return r.update(id, func(rec *entity.DocumentRecord) {
		rec.Status = status
	})
}

func (r *DocumentRepository) SetChunkCount(ctx context.Context, id string, count int) error {
	return r.update(id, func(rec *entity.DocumentRecord) {
		rec.Status = entity.DocumentStatusCompleted
		rec.ChunkCount = &count
	})
}

func (r *DocumentRepository) SetError(ctx context.Context, id string, message string) error {
	return r.update(id, func(rec *entity.DocumentRecord) {
		rec.Status = entity.DocumentStatusFailed
		rec.ErrorMessage = &message
	})
}

func (r *DocumentRepository) update(id string, apply func(*entity.DocumentRecord)) error {
	x, found := r.cache.Get(id)
	if !found {
		return nil // record gone; nothing to update
	}
	stored := *x.(*entity.DocumentRecord)
	apply(&stored)
	r.cache.Set(id, &stored, cache.NoExpiration)
	return nil
}
