package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"knowledgebase-be/internal/dto"
	"knowledgebase-be/internal/entity"
	"knowledgebase-be/internal/pkg/apperrors"
	"knowledgebase-be/internal/pkg/logger"
	"knowledgebase-be/internal/repository/contract"
	"knowledgebase-be/pkg/events"
	pktNats "knowledgebase-be/pkg/nats"
	"knowledgebase-be/pkg/vectorindex"

	"github.com/google/uuid"
)

type IDocumentService interface {
	Upload(ctx context.Context, file *multipart.FileHeader) (*dto.UploadResponse, error)
	List(ctx context.Context) (*dto.DocumentListResponse, error)
	Get(ctx context.Context, id string) (*dto.DocumentResponse, error)
	Delete(ctx context.Context, id string) (*dto.DeleteDocumentResponse, error)
}

type documentService struct {
	documentRepo     contract.DocumentRepository
	index            *vectorindex.Index
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	logger           logger.ILogger
	uploadDir        string
}

func NewDocumentService(
	documentRepo contract.DocumentRepository,
	index *vectorindex.Index,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
	uploadDir string,
) IDocumentService {
	return &documentService{
		documentRepo:     documentRepo,
		index:            index,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
		uploadDir:        uploadDir,
	}
}

var allowedContentTypes = map[string]bool{
	"application/pdf": true,
	"text/plain":      true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

var allowedExtensions = []string{".pdf", ".txt", ".docx", ".doc", ".md"}

func isAllowedUpload(filename, contentType string) bool {
	if allowedContentTypes[contentType] || strings.HasPrefix(contentType, "text/") {
		return true
	}
	for _, ext := range allowedExtensions {
		if strings.HasSuffix(filename, ext) {
			return true
		}
	}
	return false
}

func (s *documentService) Upload(ctx context.Context, file *multipart.FileHeader) (*dto.UploadResponse, error) {
	contentType := file.Header.Get("Content-Type")
	if !isAllowedUpload(file.Filename, contentType) {
		return nil, apperrors.ErrUnsupportedFileType
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	documentId := uuid.NewString()
	filePath := filepath.Join(s.uploadDir, fmt.Sprintf("%s_%s", documentId, file.Filename))

	if err := s.saveUpload(file, filePath); err != nil {
		return nil, err
	}

	record := &entity.DocumentRecord{
		Id:          documentId,
		Filename:    file.Filename,
		FileSize:    file.Size,
		ContentType: contentType,
		UploadedAt:  time.Now().UTC(),
		Status:      entity.DocumentStatusPending,
	}

	if err := s.documentRepo.Save(ctx, record); err != nil {
		os.Remove(filePath)
		return nil, err
	}

	payload, err := json.Marshal(dto.IngestDocumentMessage{
		DocumentId:  documentId,
		FilePath:    filePath,
		Filename:    file.Filename,
		ContentType: contentType,
	})
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		return nil, err
	}

	s.logger.Info("document_service", "Document accepted for ingestion", map[string]interface{}{
		"document_id": documentId,
		"filename":    file.Filename,
	})

	return &dto.UploadResponse{
		DocumentId: documentId,
		Filename:   file.Filename,
		Message:    "Document uploaded successfully. Processing in background.",
		Status:     string(entity.DocumentStatusPending),
	}, nil
}

func (s *documentService) saveUpload(file *multipart.FileHeader, filePath string) error {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return err
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(filePath)
		return err
	}
	return nil
}

func (s *documentService) List(ctx context.Context) (*dto.DocumentListResponse, error) {
	records, err := s.documentRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	documents := make([]dto.DocumentResponse, 0, len(records))
	for _, record := range records {
		documents = append(documents, toDocumentResponse(record))
	}

	return &dto.DocumentListResponse{
		Documents:  documents,
		TotalCount: len(documents),
	}, nil
}

func (s *documentService) Get(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	record, err := s.documentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperrors.ErrDocumentNotFound
	}

	res := toDocumentResponse(record)
	return &res, nil
}

func (s *documentService) Delete(ctx context.Context, id string) (*dto.DeleteDocumentResponse, error) {
	record, err := s.documentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperrors.ErrDocumentNotFound
	}

	chunksDeleted, err := s.index.DeleteDocument(ctx, id)
	if err != nil {
		return nil, err
	}

	filePath := filepath.Join(s.uploadDir, fmt.Sprintf("%s_%s", id, record.Filename))
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("document_service", "Failed to remove uploaded file", map[string]interface{}{
			"document_id": id,
			"error":       err.Error(),
		})
	}

	if err := s.documentRepo.Delete(ctx, id); err != nil {
		return nil, err
	}

	// Lifecycle event is auxiliary, failures only get logged.
	if err := s.eventPublisher.Publish(ctx, events.NewDocumentDeletedEvent(id, chunksDeleted)); err != nil {
		s.logger.Warn("document_service", "Failed to publish DOCUMENT_DELETED event", map[string]interface{}{
			"document_id": id,
			"error":       err.Error(),
		})
	}

	return &dto.DeleteDocumentResponse{
		DocumentId:    id,
		ChunksDeleted: chunksDeleted,
	}, nil
}

func toDocumentResponse(record *entity.DocumentRecord) dto.DocumentResponse {
	return dto.DocumentResponse{
		Id:           record.Id,
		Filename:     record.Filename,
		FileSize:     record.FileSize,
		ContentType:  record.ContentType,
		UploadedAt:   record.UploadedAt,
		Status:       string(record.Status),
		ChunkCount:   record.ChunkCount,
		ErrorMessage: record.ErrorMessage,
	}
}
