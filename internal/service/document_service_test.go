package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"knowledgebase-be/internal/dto"
	"knowledgebase-be/internal/entity"
	"knowledgebase-be/internal/pkg/apperrors"
	"knowledgebase-be/internal/repository/memory"
	"knowledgebase-be/pkg/chunker"
	"knowledgebase-be/pkg/vectorindex"

	"github.com/stretchr/testify/assert"
)

func newDocumentFixture(t *testing.T) (IDocumentService, *capturedPublisher, *vectorindex.Index, string) {
	t.Helper()

	uploadDir := t.TempDir()
	index := vectorindex.New(fakeEmbedder{}, memory.NewUnitRepository())
	publisher := &capturedPublisher{}
	svc := NewDocumentService(memory.NewDocumentRepository(), index, publisher, nil, nopLogger{}, uploadDir)
	return svc, publisher, index, uploadDir
}

func TestUploadCreatesPendingRecordAndPublishes(t *testing.T) {
	svc, publisher, _, uploadDir := newDocumentFixture(t)
	ctx := context.Background()

	res, err := svc.Upload(ctx, fileHeader(t, "notes.txt", "text/plain", "Cats are mammals."))
	assert.NoError(t, err)
	assert.NotEmpty(t, res.DocumentId)
	assert.Equal(t, "notes.txt", res.Filename)
	assert.Equal(t, string(entity.DocumentStatusPending), res.Status)

	// File landed in the upload dir
	savedPath := filepath.Join(uploadDir, res.DocumentId+"_notes.txt")
	data, err := os.ReadFile(savedPath)
	assert.NoError(t, err)
	assert.Equal(t, "Cats are mammals.", string(data))

	// Ingest message published
	assert.Len(t, publisher.payloads, 1)
	var msg dto.IngestDocumentMessage
	assert.NoError(t, json.Unmarshal(publisher.payloads[0], &msg))
	assert.Equal(t, res.DocumentId, msg.DocumentId)
	assert.Equal(t, savedPath, msg.FilePath)
	assert.Equal(t, "text/plain", msg.ContentType)

	// Record is queryable and pending
	doc, err := svc.Get(ctx, res.DocumentId)
	assert.NoError(t, err)
	assert.Equal(t, string(entity.DocumentStatusPending), doc.Status)
	assert.Nil(t, doc.ChunkCount)
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	svc, publisher, _, _ := newDocumentFixture(t)

	_, err := svc.Upload(context.Background(), fileHeader(t, "image.png", "image/png", "binary"))
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedFileType)
	assert.Empty(t, publisher.payloads)
}

func TestListOrdersByUpload(t *testing.T) {
	svc, _, _, _ := newDocumentFixture(t)
	ctx := context.Background()

	first, err := svc.Upload(ctx, fileHeader(t, "a.txt", "text/plain", "one"))
	assert.NoError(t, err)
	second, err := svc.Upload(ctx, fileHeader(t, "b.txt", "text/plain", "two"))
	assert.NoError(t, err)

	list, err := svc.List(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 2, list.TotalCount)
	ids := []string{list.Documents[0].Id, list.Documents[1].Id}
	assert.Contains(t, ids, first.DocumentId)
	assert.Contains(t, ids, second.DocumentId)
}

func TestGetUnknownDocument(t *testing.T) {
	svc, _, _, _ := newDocumentFixture(t)

	_, err := svc.Get(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, apperrors.ErrDocumentNotFound)
}

func TestDeleteRemovesRecordUnitsAndFile(t *testing.T) {
	svc, _, index, uploadDir := newDocumentFixture(t)
	ctx := context.Background()

	res, err := svc.Upload(ctx, fileHeader(t, "mammals.txt", "text/plain", "Cats are mammals. Dogs are mammals too."))
	assert.NoError(t, err)

	// Index some chunks for the document, as the consumer would.
	c := chunker.New(500, 0)
	chunks := c.Chunk("Cats are mammals. Dogs are mammals too.", map[string]interface{}{"filename": "mammals.txt"})
	added, err := index.Add(ctx, chunks, res.DocumentId)
	assert.NoError(t, err)
	assert.Greater(t, added, 0)

	deleted, err := svc.Delete(ctx, res.DocumentId)
	assert.NoError(t, err)
	assert.Equal(t, added, deleted.ChunksDeleted)

	_, err = svc.Get(ctx, res.DocumentId)
	assert.ErrorIs(t, err, apperrors.ErrDocumentNotFound)

	_, err = os.Stat(filepath.Join(uploadDir, res.DocumentId+"_mammals.txt"))
	assert.True(t, os.IsNotExist(err))

	stats, err := index.Stats(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalChunks)
}

func TestDeleteUnknownDocument(t *testing.T) {
	svc, _, _, _ := newDocumentFixture(t)

	_, err := svc.Delete(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, apperrors.ErrDocumentNotFound)
}
