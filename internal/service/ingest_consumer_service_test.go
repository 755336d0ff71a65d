package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"knowledgebase-be/internal/dto"
	"knowledgebase-be/internal/entity"
	"knowledgebase-be/internal/repository/contract"
	"knowledgebase-be/internal/repository/memory"
	"knowledgebase-be/pkg/chunker"
	"knowledgebase-be/pkg/extractor"
	"knowledgebase-be/pkg/vectorindex"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
)

type ingestFixture struct {
	publisher IPublisherService
	docRepo   contract.DocumentRepository
	index     *vectorindex.Index
}

func newIngestFixture(t *testing.T) *ingestFixture {
	t.Helper()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	docRepo := memory.NewDocumentRepository()
	index := vectorindex.New(fakeEmbedder{}, memory.NewUnitRepository())

	consumer := NewIngestConsumerService(
		pubSub,
		"INGEST_DOCUMENT_TEST",
		docRepo,
		extractor.New(),
		chunker.New(40, 15),
		index,
		nil,
		nopLogger{},
	)
	if err := consumer.Consume(context.Background()); err != nil {
		t.Fatalf("start consumer: %v", err)
	}

	return &ingestFixture{
		publisher: NewPublisherService("INGEST_DOCUMENT_TEST", pubSub),
		docRepo:   docRepo,
		index:     index,
	}
}

func (f *ingestFixture) enqueue(t *testing.T, docID, filePath, filename, contentType string) {
	t.Helper()
	payload, err := json.Marshal(dto.IngestDocumentMessage{
		DocumentId:  docID,
		FilePath:    filePath,
		Filename:    filename,
		ContentType: contentType,
	})
	assert.NoError(t, err)
	assert.NoError(t, f.publisher.Publish(context.Background(), payload))
}

func seedRecord(t *testing.T, repo contract.DocumentRepository, docID, filename string) {
	t.Helper()
	err := repo.Save(context.Background(), &entity.DocumentRecord{
		Id:         docID,
		Filename:   filename,
		FileSize:   1,
		UploadedAt: time.Now().UTC(),
		Status:     entity.DocumentStatusPending,
	})
	assert.NoError(t, err)
}

func waitForStatus(t *testing.T, repo contract.DocumentRepository, docID string, want entity.DocumentStatus) *entity.DocumentRecord {
	t.Helper()
	var record *entity.DocumentRecord
	assert.Eventually(t, func() bool {
		var err error
		record, err = repo.FindByID(context.Background(), docID)
		return err == nil && record != nil && record.Status == want
	}, 5*time.Second, 10*time.Millisecond)
	return record
}

func TestConsumeIndexesDocument(t *testing.T) {
	f := newIngestFixture(t)

	path := filepath.Join(t.TempDir(), "mammals.txt")
	text := "Cats are mammals. Dogs are mammals too. Fish are not mammals."
	assert.NoError(t, os.WriteFile(path, []byte(text), 0o644))

	seedRecord(t, f.docRepo, "doc-1", "mammals.txt")
	f.enqueue(t, "doc-1", path, "mammals.txt", "text/plain")

	record := waitForStatus(t, f.docRepo, "doc-1", entity.DocumentStatusCompleted)
	if assert.NotNil(t, record.ChunkCount) {
		assert.Equal(t, 2, *record.ChunkCount)
	}
	assert.Nil(t, record.ErrorMessage)

	stats, err := f.index.Stats(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, stats.TotalDocuments)
	assert.Equal(t, int64(2), stats.TotalChunks)
}

func TestConsumeRecordsExtractionFailure(t *testing.T) {
	f := newIngestFixture(t)

	path := filepath.Join(t.TempDir(), "report.pdf")
	assert.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))

	seedRecord(t, f.docRepo, "doc-2", "report.pdf")
	f.enqueue(t, "doc-2", path, "report.pdf", "application/pdf")

	record := waitForStatus(t, f.docRepo, "doc-2", entity.DocumentStatusFailed)
	if assert.NotNil(t, record.ErrorMessage) {
		assert.Contains(t, *record.ErrorMessage, "no text extractor")
	}
	assert.Nil(t, record.ChunkCount)

	stats, err := f.index.Stats(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalChunks)
}

func TestConsumeMissingFileFails(t *testing.T) {
	f := newIngestFixture(t)

	seedRecord(t, f.docRepo, "doc-3", "gone.txt")
	f.enqueue(t, "doc-3", filepath.Join(t.TempDir(), "gone.txt"), "gone.txt", "text/plain")

	record := waitForStatus(t, f.docRepo, "doc-3", entity.DocumentStatusFailed)
	assert.NotNil(t, record.ErrorMessage)
}
