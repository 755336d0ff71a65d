package implementation

import (
	"context"
	"fmt"

	"knowledgebase-be/internal/entity"
	"knowledgebase-be/internal/mapper"
	"knowledgebase-be/internal/model"
	"knowledgebase-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UnitRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentUnitMapper
}

func NewUnitRepository(db *gorm.DB) contract.UnitRepository {
	return &UnitRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentUnitMapper(),
	}
}

func (r *UnitRepositoryImpl) Upsert(ctx context.Context, units []*entity.IndexedUnit) error {
	if len(units) == 0 {
		return nil
	}

	models := make([]*model.DocumentUnit, len(units))
	for i, u := range units {
		models[i] = r.mapper.ToModel(u)
	}

	// Unit ids are deterministic per (document, sequence), so re-ingesting a
	// document overwrites its previous units instead of duplicating them.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(models).Error
}

func (r *UnitRepositoryImpl) applyMetadataFilter(db *gorm.DB, filter map[string]interface{}) *gorm.DB {
	for key, value := range filter {
		db = db.Where("metadata->>? = ?", key, fmt.Sprint(value))
	}
	return db
}

func (r *UnitRepositoryImpl) Query(ctx context.Context, vector []float32, k int, filter map[string]interface{}) ([]*contract.ScoredUnit, error) {
	if k <= 0 {
		k = 5
	}

	// pgvector cosine distance: embedding <=> query_vector, ascending.
	type row struct {
		model.DocumentUnit
		Distance float64
	}
	var rows []row

	queryVector := pgvector.NewVector(vector)

	q := r.db.WithContext(ctx).
		Table("document_units").
		Select("document_units.*, embedding <=> ? AS distance", queryVector)
	q = r.applyMetadataFilter(q, filter)

	if err := q.Order("distance ASC").Limit(k).Scan(&rows).Error; err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredUnit, len(rows))
	for i, res := range rows {
		scored[i] = &contract.ScoredUnit{
			Unit:     r.mapper.ToEntity(&res.DocumentUnit),
			Distance: res.Distance,
		}
	}
	return scored, nil
}

func (r *UnitRepositoryImpl) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.DocumentUnit{}).Error
}

func (r *UnitRepositoryImpl) Get(ctx context.Context, filter map[string]interface{}) ([]*entity.IndexedUnit, error) {
	var models []*model.DocumentUnit

	q := r.applyMetadataFilter(r.db.WithContext(ctx), filter)
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}

	entities := make([]*entity.IndexedUnit, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *UnitRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.DocumentUnit{}).Count(&count).Error
	return count, err
}
