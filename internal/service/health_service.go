package service

import (
	"context"
	"fmt"

	"knowledgebase-be/internal/dto"
	"knowledgebase-be/pkg/vectorindex"
)

type IHealthService interface {
	Check(ctx context.Context) (*dto.HealthResponse, error)
}

type healthService struct {
	index   *vectorindex.Index
	version string
}

func NewHealthService(index *vectorindex.Index, version string) IHealthService {
	return &healthService{
		index:   index,
		version: version,
	}
}

func (s *healthService) Check(ctx context.Context) (*dto.HealthResponse, error) {
	stats, err := s.index.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("vector store error: %w", err)
	}

	return &dto.HealthResponse{
		Status:         "healthy",
		Version:        s.version,
		VectorDbStatus: "connected",
		TotalDocuments: stats.TotalDocuments,
		TotalChunks:    stats.TotalChunks,
	}, nil
}
