package model

import "time"

type Document struct {
	Id           string `gorm:"primaryKey"`
	Filename     string `gorm:"not null"`
	FileSize     int64
	ContentType  string
	UploadedAt   time.Time
	Status       string `gorm:"index;default:pending"`
	ChunkCount   *int
	ErrorMessage *string `gorm:"type:text"`
}

func (Document) TableName() string {
	return "documents"
}
