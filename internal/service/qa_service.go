package service

import (
	"context"
	"errors"
	"time"

	"knowledgebase-be/internal/dto"
	"knowledgebase-be/internal/pkg/apperrors"
	"knowledgebase-be/internal/pkg/logger"
	"knowledgebase-be/pkg/llm"
	"knowledgebase-be/pkg/rag/answer"
	"knowledgebase-be/pkg/vectorindex"
)

const citationContentLimit = 200

type IQAService interface {
	Answer(ctx context.Context, req *dto.QARequest) (*dto.QAResponse, error)
}

type qaService struct {
	index       *vectorindex.Index
	synthesizer *answer.Synthesizer
	logger      logger.ILogger
	defaultTopK int
}

func NewQAService(index *vectorindex.Index, synthesizer *answer.Synthesizer, log logger.ILogger, defaultTopK int) IQAService {
	if defaultTopK <= 0 {
		defaultTopK = 5
	}
	return &qaService{
		index:       index,
		synthesizer: synthesizer,
		logger:      log,
		defaultTopK: defaultTopK,
	}
}

func (s *qaService) Answer(ctx context.Context, req *dto.QARequest) (*dto.QAResponse, error) {
	start := time.Now()

	topK := req.TopK
	if topK <= 0 {
		topK = s.defaultTopK
	}

	results, err := s.index.Search(ctx, req.Question, topK, nil)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, apperrors.ErrNoRelevantContext
	}

	ans, err := s.synthesizer.Synthesize(ctx, req.Question, results)
	if err != nil {
		if errors.Is(err, answer.ErrNoContext) {
			return nil, apperrors.ErrNoRelevantContext
		}
		if llm.IsTransient(err) {
			s.logger.Error("qa_service", "Completion provider unavailable", map[string]interface{}{
				"error": err.Error(),
			})
			return nil, apperrors.ErrServiceUnavailable
		}
		return nil, err
	}

	sources := make([]dto.SourceCitation, 0, len(results))
	for _, result := range results {
		sources = append(sources, dto.SourceCitation{
			DocumentId:     metadataString(result.Metadata, "document_id"),
			Filename:       metadataString(result.Metadata, "filename"),
			ChunkContent:   truncateContent(result.Content, citationContentLimit),
			RelevanceScore: distanceToScore(result.Distance),
		})
	}

	return &dto.QAResponse{
		Question:         req.Question,
		Answer:           ans.Text,
		Sources:          sources,
		Confidence:       ans.Confidence,
		ProcessingTimeMs: elapsedMs(start),
	}, nil
}

func truncateContent(content string, limit int) string {
	runes := []rune(content)
	if len(runes) <= limit {
		return content
	}
	return string(runes[:limit]) + "..."
}
