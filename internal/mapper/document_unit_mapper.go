package mapper

import (
	"knowledgebase-be/internal/entity"
	"knowledgebase-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type DocumentUnitMapper struct{}

func NewDocumentUnitMapper() *DocumentUnitMapper {
	return &DocumentUnitMapper{}
}

func (m *DocumentUnitMapper) ToModel(e *entity.IndexedUnit) *model.DocumentUnit {
	return &model.DocumentUnit{
		Id:            e.Id,
		Content:       e.Content,
		Embedding:     pgvector.NewVector(e.Embedding),
		DocumentId:    e.DocumentId,
		SequenceIndex: e.SequenceIndex,
		Metadata:      datatypes.JSONMap(e.Metadata),
		AddedAt:       e.AddedAt,
	}
}

func (m *DocumentUnitMapper) ToEntity(mod *model.DocumentUnit) *entity.IndexedUnit {
	return &entity.IndexedUnit{
		Id:            mod.Id,
		Content:       mod.Content,
		Embedding:     mod.Embedding.Slice(),
		DocumentId:    mod.DocumentId,
		SequenceIndex: mod.SequenceIndex,
		Metadata:      map[string]interface{}(mod.Metadata),
		AddedAt:       mod.AddedAt,
	}
}
