package service

import (
	"context"
	"encoding/json"

	"knowledgebase-be/internal/dto"
	"knowledgebase-be/internal/entity"
	"knowledgebase-be/internal/pkg/logger"
	"knowledgebase-be/internal/repository/contract"
	"knowledgebase-be/pkg/chunker"
	"knowledgebase-be/pkg/events"
	"knowledgebase-be/pkg/extractor"
	pktNats "knowledgebase-be/pkg/nats"
	"knowledgebase-be/pkg/vectorindex"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IIngestConsumerService interface {
	Consume(ctx context.Context) error
}

type ingestConsumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	documentRepo   contract.DocumentRepository
	extractor      *extractor.Extractor
	chunker        *chunker.Chunker
	index          *vectorindex.Index
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewIngestConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	documentRepo contract.DocumentRepository,
	ext *extractor.Extractor,
	chk *chunker.Chunker,
	index *vectorindex.Index,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IIngestConsumerService {
	return &ingestConsumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		documentRepo:   documentRepo,
		extractor:      ext,
		chunker:        chk,
		index:          index,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (cs *ingestConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *ingestConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.IngestDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ingest_consumer", "Failed to unmarshal ingest message", map[string]interface{}{
			"error": err.Error(),
		})
		// Ack invalid messages to prevent infinite retry
		msg.Ack()
		return
	}

	cs.logger.Info("ingest_consumer", "Processing document", map[string]interface{}{
		"document_id": payload.DocumentId,
		"filename":    payload.Filename,
	})

	if err := cs.documentRepo.SetStatus(ctx, payload.DocumentId, entity.DocumentStatusProcessing); err != nil {
		cs.logger.Error("ingest_consumer", "Failed to mark document processing", map[string]interface{}{
			"document_id": payload.DocumentId,
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}

	chunkCount, err := cs.ingest(ctx, payload)
	if err != nil {
		cs.fail(ctx, payload, err)
		// The failure is recorded on the document, so the message is done.
		msg.Ack()
		return
	}

	if err := cs.documentRepo.SetChunkCount(ctx, payload.DocumentId, chunkCount); err != nil {
		cs.logger.Error("ingest_consumer", "Failed to mark document completed", map[string]interface{}{
			"document_id": payload.DocumentId,
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}

	cs.logger.Info("ingest_consumer", "Document indexed", map[string]interface{}{
		"document_id": payload.DocumentId,
		"filename":    payload.Filename,
		"chunk_count": chunkCount,
	})

	evt := events.NewDocumentIngestedEvent(payload.DocumentId, payload.Filename, chunkCount)
	if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
		cs.logger.Warn("ingest_consumer", "Failed to publish DOCUMENT_INGESTED event", map[string]interface{}{
			"document_id": payload.DocumentId,
			"error":       err.Error(),
		})
	}

	msg.Ack()
}

func (cs *ingestConsumerService) ingest(ctx context.Context, payload dto.IngestDocumentMessage) (int, error) {
	text, err := cs.extractor.ExtractText(payload.FilePath, payload.ContentType)
	if err != nil {
		return 0, err
	}

	chunks := cs.chunker.Chunk(text, map[string]interface{}{
		"document_id":  payload.DocumentId,
		"filename":     payload.Filename,
		"content_type": payload.ContentType,
	})

	return cs.index.Add(ctx, chunks, payload.DocumentId)
}

func (cs *ingestConsumerService) fail(ctx context.Context, payload dto.IngestDocumentMessage, cause error) {
	cs.logger.Error("ingest_consumer", "Document ingestion failed", map[string]interface{}{
		"document_id": payload.DocumentId,
		"filename":    payload.Filename,
		"error":       cause.Error(),
	})

	if err := cs.documentRepo.SetError(ctx, payload.DocumentId, cause.Error()); err != nil {
		cs.logger.Error("ingest_consumer", "Failed to record ingestion error", map[string]interface{}{
			"document_id": payload.DocumentId,
			"error":       err.Error(),
		})
	}

	evt := events.NewDocumentIngestFailedEvent(payload.DocumentId, payload.Filename, cause.Error())
	if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
		cs.logger.Warn("ingest_consumer", "Failed to publish DOCUMENT_INGEST_FAILED event", map[string]interface{}{
			"document_id": payload.DocumentId,
			"error":       err.Error(),
		})
	}
}
