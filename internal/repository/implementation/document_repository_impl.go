package implementation

import (
	"context"
	"errors"

	"knowledgebase-be/internal/entity"
	"knowledgebase-be/internal/mapper"
	"knowledgebase-be/internal/model"
	"knowledgebase-be/internal/repository/contract"

	"gorm.io/gorm"
)

type DocumentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentMapper
}

func NewDocumentRepository(db *gorm.DB) contract.DocumentRepository {
	return &DocumentRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentMapper(),
	}
}

func (r *DocumentRepositoryImpl) Save(ctx context.Context, record *entity.DocumentRecord) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *DocumentRepositoryImpl) FindByID(ctx context.Context, id string) (*entity.DocumentRecord, error) {
	var m model.Document
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *DocumentRepositoryImpl) FindAll(ctx context.Context) ([]*entity.DocumentRecord, error) {
	var models []*model.Document
	if err := r.db.WithContext(ctx).Order("uploaded_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.DocumentRecord, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *DocumentRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Document{}, "id = ?", id).Error
}

func (r *DocumentRepositoryImpl) SetStatus(ctx context.Context, id string, status entity.DocumentStatus) error {
	return r.db.WithContext(ctx).Model(&model.Document{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}

// SetChunkCount records a successful ingestion: chunk count plus the
// completed status in one write.
func (r *DocumentRepositoryImpl) SetChunkCount(ctx context.Context, id string, count int) error {
	return r.db.WithContext(ctx).Model(&model.Document{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      string(entity.DocumentStatusCompleted),
			"chunk_count": count,
		}).Error
}

// SetError records a failed ingestion: error message plus the failed status.
func (r *DocumentRepositoryImpl) SetError(ctx context.Context, id string, message string) error {
	return r.db.WithContext(ctx).Model(&model.Document{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        string(entity.DocumentStatusFailed),
			"error_message": message,
		}).Error
}
