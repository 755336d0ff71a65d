package service

import (
	"context"
	"math"
	"time"

	"knowledgebase-be/internal/dto"
	"knowledgebase-be/internal/pkg/logger"
	"knowledgebase-be/pkg/vectorindex"
)

type ISearchService interface {
	Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error)
}

type searchService struct {
	index       *vectorindex.Index
	logger      logger.ILogger
	defaultTopK int
}

func NewSearchService(index *vectorindex.Index, log logger.ILogger, defaultTopK int) ISearchService {
	if defaultTopK <= 0 {
		defaultTopK = 5
	}
	return &searchService{
		index:       index,
		logger:      log,
		defaultTopK: defaultTopK,
	}
}

func (s *searchService) Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	start := time.Now()

	topK := req.TopK
	if topK <= 0 {
		topK = s.defaultTopK
	}

	results, err := s.index.Search(ctx, req.Query, topK, req.FilterMetadata)
	if err != nil {
		return nil, err
	}

	items := make([]dto.SearchResultItem, 0, len(results))
	for _, result := range results {
		items = append(items, dto.SearchResultItem{
			ChunkId:    result.UnitID,
			DocumentId: metadataString(result.Metadata, "document_id"),
			Filename:   metadataString(result.Metadata, "filename"),
			Content:    result.Content,
			Score:      distanceToScore(result.Distance),
			Metadata:   result.Metadata,
		})
	}

	return &dto.SearchResponse{
		Query:            req.Query,
		Results:          items,
		TotalResults:     len(items),
		ProcessingTimeMs: elapsedMs(start),
	}, nil
}

func metadataString(metadata map[string]interface{}, key string) string {
	if v, ok := metadata[key].(string); ok && v != "" {
		return v
	}
	return "unknown"
}

// distanceToScore converts cosine distance to a similarity score.
func distanceToScore(distance float64) float64 {
	return 1.0 - distance
}

func elapsedMs(start time.Time) float64 {
	ms := float64(time.Since(start).Microseconds()) / 1000.0
	return math.Round(ms*100) / 100
}
