package service

import (
	"context"

	"knowledgebase-be/internal/dto"
	"knowledgebase-be/internal/pkg/apperrors"
	"knowledgebase-be/internal/pkg/logger"
	"knowledgebase-be/pkg/llm"
	"knowledgebase-be/pkg/rag/completeness"
	"knowledgebase-be/pkg/vectorindex"
)

// Completeness pulls more context than plain search.
const completenessTopK = 10

// Scores at or above this mean the topic is covered well enough.
const sufficientScore = 0.7

type ICompletenessService interface {
	Check(ctx context.Context, req *dto.CompletenessRequest) (*dto.CompletenessResponse, error)
}

type completenessService struct {
	index    *vectorindex.Index
	assessor *completeness.Assessor
	logger   logger.ILogger
}

func NewCompletenessService(index *vectorindex.Index, assessor *completeness.Assessor, log logger.ILogger) ICompletenessService {
	return &completenessService{
		index:    index,
		assessor: assessor,
		logger:   log,
	}
}

func (s *completenessService) Check(ctx context.Context, req *dto.CompletenessRequest) (*dto.CompletenessResponse, error) {
	results, err := s.index.Search(ctx, req.Topic, completenessTopK, nil)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		// Nothing indexed on this topic; answer without an LLM round-trip.
		return &dto.CompletenessResponse{
			Topic:               req.Topic,
			OverallScore:        0.0,
			HasSufficientInfo:   false,
			CoveredAspects:      []string{},
			MissingAspects:      []string{"No documents found related to this topic"},
			Recommendations:     []string{"Upload relevant documents to build knowledge base"},
			SupportingDocuments: []string{},
		}, nil
	}

	assessment, err := s.assessor.Assess(ctx, req.Topic, results, req.RequiredAspects)
	if err != nil {
		if llm.IsTransient(err) {
			s.logger.Error("completeness_service", "Completion provider unavailable", map[string]interface{}{
				"error": err.Error(),
			})
			return nil, apperrors.ErrServiceUnavailable
		}
		return nil, err
	}

	return &dto.CompletenessResponse{
		Topic:               req.Topic,
		OverallScore:        assessment.Score,
		HasSufficientInfo:   assessment.Score >= sufficientScore,
		CoveredAspects:      assessment.CoveredAspects,
		MissingAspects:      assessment.MissingAspects,
		Recommendations:     assessment.Recommendations,
		SupportingDocuments: supportingDocuments(results),
	}, nil
}

// supportingDocuments lists the distinct filenames behind the retrieved
// units, in retrieval order.
func supportingDocuments(results []vectorindex.SearchResult) []string {
	seen := make(map[string]bool, len(results))
	docs := make([]string, 0, len(results))
	for _, result := range results {
		filename := metadataString(result.Metadata, "filename")
		if seen[filename] {
			continue
		}
		seen[filename] = true
		docs = append(docs, filename)
	}
	return docs
}
