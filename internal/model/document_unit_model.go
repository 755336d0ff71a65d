package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type DocumentUnit struct {
	Id            string            `gorm:"primaryKey"` // "{document_id}_chunk_{n}"
	Content       string            `gorm:"type:text"`
	Embedding     pgvector.Vector   `gorm:"type:vector(768)"` // nomic-embed-text / text-embedding-004 use 768 dimensions; EMBEDDING_DIMENSION must match with this store
	DocumentId    string            `gorm:"not null;index"`
	SequenceIndex int               `gorm:"default:0"` // 0-based index for ordering
	Metadata      datatypes.JSONMap `gorm:"type:jsonb"`
	AddedAt       time.Time         `gorm:"autoCreateTime"`
}

func (DocumentUnit) TableName() string {
	return "document_units"
}
