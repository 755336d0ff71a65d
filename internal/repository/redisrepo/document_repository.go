package redisrepo

import (
	"context"
	"encoding/json"
	"sort"

	"knowledgebase-be/internal/entity"
	"knowledgebase-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

const documentKeyPrefix = "document:"

// DocumentRepository stores document records as JSON values in Redis so
// ingestion status survives process restarts without requiring Postgres.
type DocumentRepository struct {
	rdb *redis.Client
}

func NewDocumentRepository(rdb *redis.Client) contract.DocumentRepository {
	return &DocumentRepository{rdb: rdb}
}

func (r *DocumentRepository) Save(ctx context.Context, record *entity.DocumentRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, documentKeyPrefix+record.Id, payload, 0).Err()
}

func (r *DocumentRepository) FindByID(ctx context.Context, id string) (*entity.DocumentRecord, error) {
	payload, err := r.rdb.Get(ctx, documentKeyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var record entity.DocumentRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *DocumentRepository) FindAll(ctx context.Context) ([]*entity.DocumentRecord, error) {
	var records []*entity.DocumentRecord

	iter := r.rdb.Scan(ctx, 0, documentKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		payload, err := r.rdb.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			if err == redis.Nil {
				continue // deleted between scan and get
			}
			return nil, err
		}
		var record entity.DocumentRecord
		if err := json.Unmarshal(payload, &record); err != nil {
			return nil, err
		}
		records = append(records, &record)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].UploadedAt.Before(records[j].UploadedAt)
	})
	return records, nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, documentKeyPrefix+id).Err()
}

func (r *DocumentRepository) SetStatus(ctx context.Context, id string, status entity.DocumentStatus) error {
	return r.update(ctx, id, func(rec *entity.DocumentRecord) {
		rec.Status = status
	})
}

func (r *DocumentRepository) SetChunkCount(ctx context.Context, id string, count int) error {
	return r.update(ctx, id, func(rec *entity.DocumentRecord) {
		rec.Status = entity.DocumentStatusCompleted
		rec.ChunkCount = &count
	})
}

func (r *DocumentRepository) SetError(ctx context.Context, id string, message string) error {
	return r.update(ctx, id, func(rec *entity.DocumentRecord) {
		rec.Status = entity.DocumentStatusFailed
		rec.ErrorMessage = &message
	})
}

// update is read-modify-write. The ingestion job is the only writer for a
// given document id, so the absence of a transaction here is safe.
func (r *DocumentRepository) update(ctx context.Context, id string, apply func(*entity.DocumentRecord)) error {
	record, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if record == nil {
		return nil
	}
	apply(record)
	return r.Save(ctx, record)
}
