package mapper

import (
	"knowledgebase-be/internal/entity"
	"knowledgebase-be/internal/model"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToModel(e *entity.DocumentRecord) *model.Document {
	return &model.Document{
		Id:           e.Id,
		Filename:     e.Filename,
		FileSize:     e.FileSize,
		ContentType:  e.ContentType,
		UploadedAt:   e.UploadedAt,
		Status:       string(e.Status),
		ChunkCount:   e.ChunkCount,
		ErrorMessage: e.ErrorMessage,
	}
}

func (m *DocumentMapper) ToEntity(mod *model.Document) *entity.DocumentRecord {
	return &entity.DocumentRecord{
		Id:           mod.Id,
		Filename:     mod.Filename,
		FileSize:     mod.FileSize,
		ContentType:  mod.ContentType,
		UploadedAt:   mod.UploadedAt,
		Status:       entity.DocumentStatus(mod.Status),
		ChunkCount:   mod.ChunkCount,
		ErrorMessage: mod.ErrorMessage,
	}
}
